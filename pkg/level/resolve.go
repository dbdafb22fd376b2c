package level

import (
	"github.com/matzehuels/levelkit/pkg/catalog"
	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/rtid"
)

// Resolution is the outcome of checking one reference string.
type Resolution struct {
	Text    string         // the raw reference text
	Ref     rtid.Reference // parsed reference, or the fallback for unparsable text
	Parsed  bool           // whether Text was well formed
	Valid   bool           // whether the alias exists in its addressed domain
	Display string         // display name: alias for local refs, catalog name otherwise
	Icon    string         // catalog icon path, if any
}

// Finding ties a resolution to the object whose payload contains it.
type Finding struct {
	Object string // label of the containing object
	Resolution
}

// Resolver checks references against a document and the static catalogs.
type Resolver struct {
	Catalogs catalog.Set
}

// NewResolver returns a resolver over cats. A nil set uses the built-in
// catalogs.
func NewResolver(cats catalog.Set) *Resolver {
	if cats == nil {
		cats = catalog.Defaults()
	}
	return &Resolver{Catalogs: cats}
}

// Resolve checks text against aliases (the current document's alias set)
// or against the catalog named by its source. Unparsable text keeps the raw
// text as alias with an unknown source and is never valid.
func (r *Resolver) Resolve(aliases map[string]struct{}, text string) Resolution {
	ref, ok := rtid.Parse(text)
	if !ok {
		ref = rtid.Fallback(text)
		return Resolution{Text: text, Ref: ref, Display: ref.Alias}
	}

	res := Resolution{Text: text, Ref: ref, Parsed: true, Display: ref.Alias}
	if ref.IsLocal() {
		_, res.Valid = aliases[ref.Alias]
		return res
	}

	cat, ok := r.Catalogs[ref.Source]
	if !ok {
		return res
	}
	res.Valid = cat.IsValid(ref.Alias)
	res.Display = cat.Name(ref.Alias)
	if icon, ok := cat.IconPath(ref.Alias); ok {
		res.Icon = icon
	}
	return res
}

// ResolveIn resolves text against doc's aliases.
func (r *Resolver) ResolveIn(doc *Document, text string) Resolution {
	return r.Resolve(doc.Aliases(), text)
}

// Check resolves every RTID found in every object payload of doc, in
// object order.
func (r *Resolver) Check(doc *Document) ([]Finding, error) {
	aliases := doc.Aliases()
	var out []Finding
	for _, o := range doc.Objects {
		if o == nil {
			continue
		}
		refs, err := rtid.ScanJSON(o.Data)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "scan %s", o.Label())
		}
		for _, text := range refs {
			out = append(out, Finding{Object: o.Label(), Resolution: r.Resolve(aliases, text)})
		}
	}
	return out, nil
}

// Broken filters findings down to the unresolved ones.
func Broken(findings []Finding) []Finding {
	var out []Finding
	for _, f := range findings {
		if !f.Valid {
			out = append(out, f)
		}
	}
	return out
}
