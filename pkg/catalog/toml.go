package catalog

import (
	"io"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/rtid"
)

// File is the on-disk shape of a catalog extension:
//
//	source = "GridItemTypes"
//	icon_dir = "images/griditems"
//
//	[[item]]
//	type_name = "gravestone_custom"
//	name = "Custom Gravestone"
//	category = "scene"
//	icon = "gravestone_custom.png"
type File struct {
	Source  string `toml:"source"`
	IconDir string `toml:"icon_dir"`
	Items   []Item `toml:"item"`
}

// LoadTOML reads a catalog extension. It returns the source the catalog
// answers for along with the catalog itself.
func LoadTOML(r io.Reader) (rtid.Source, *Static, error) {
	var f File
	if _, err := toml.NewDecoder(r).Decode(&f); err != nil {
		return "", nil, errors.Wrap(errors.ErrCodeDecodeFailed, err, "decode catalog")
	}
	if f.Source == "" {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "catalog has no source")
	}
	if f.Source == string(rtid.CurrentLevel) {
		return "", nil, errors.New(errors.ErrCodeInvalidInput, "catalog cannot answer for %s", rtid.CurrentLevel)
	}
	return rtid.Source(f.Source), NewStatic(f.IconDir, f.Items), nil
}
