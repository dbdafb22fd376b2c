package level

import (
	"encoding/json"
	"slices"
)

// Document is one level file.
type Document struct {
	Comment string    `json:"#comment,omitempty"`
	Objects []*Object `json:"objects"`
	Version int       `json:"version"`
}

// Object is one entry of a level document.
type Object struct {
	Aliases []string        `json:"aliases,omitempty"`
	Class   string          `json:"objclass"`
	Data    json.RawMessage `json:"objdata,omitempty"`
}

// HasAlias reports whether the object carries alias.
func (o *Object) HasAlias(alias string) bool {
	return slices.Contains(o.Aliases, alias)
}

// Label returns the object's first alias, or its class when it has none.
func (o *Object) Label() string {
	if len(o.Aliases) > 0 {
		return o.Aliases[0]
	}
	return o.Class
}

// Aliases returns the set of every alias defined in the document.
func (d *Document) Aliases() map[string]struct{} {
	set := make(map[string]struct{})
	for _, o := range d.Objects {
		if o == nil {
			continue
		}
		for _, a := range o.Aliases {
			set[a] = struct{}{}
		}
	}
	return set
}

// FindByAlias returns the first object carrying alias.
func (d *Document) FindByAlias(alias string) (*Object, bool) {
	for _, o := range d.Objects {
		if o != nil && o.HasAlias(alias) {
			return o, true
		}
	}
	return nil, false
}

// Classes returns the class tag of each object, in order.
func (d *Document) Classes() []string {
	out := make([]string, 0, len(d.Objects))
	for _, o := range d.Objects {
		if o == nil {
			continue
		}
		out = append(out, o.Class)
	}
	return out
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	c := &Document{Comment: d.Comment, Version: d.Version}
	if d.Objects != nil {
		c.Objects = make([]*Object, 0, len(d.Objects))
	}
	for _, o := range d.Objects {
		if o == nil {
			c.Objects = append(c.Objects, nil)
			continue
		}
		c.Objects = append(c.Objects, &Object{
			Aliases: slices.Clone(o.Aliases),
			Class:   o.Class,
			Data:    slices.Clone(o.Data),
		})
	}
	return c
}
