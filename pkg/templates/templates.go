// Package templates serves the read-only level templates new documents are
// instantiated from.
package templates

import (
	"embed"
	"io/fs"
	"os"

	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/natural"
)

//go:embed bundled/*.json
var bundled embed.FS

// Catalog is a read-only set of named templates.
type Catalog interface {
	// List returns the template names in natural order.
	List() ([]string, error)
	// Read returns the template's bytes, or a NOT_FOUND error.
	Read(name string) ([]byte, error)
}

// FS is a Catalog over the top level of a file system.
type FS struct {
	fsys fs.FS
}

// FromFS returns a Catalog of the regular files at the root of fsys.
func FromFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Dir returns a Catalog of the regular files in a local directory.
func Dir(dir string) *FS {
	return FromFS(os.DirFS(dir))
}

// Bundled returns the templates compiled into the binary.
func Bundled() *FS {
	sub, err := fs.Sub(bundled, "bundled")
	if err != nil {
		panic(err) // fixed path into an embed.FS
	}
	return FromFS(sub)
}

func (c *FS) List() ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "list templates")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			names = append(names, e.Name())
		}
	}
	natural.Sort(names)
	return names, nil
}

func (c *FS) Read(name string) ([]byte, error) {
	if err := errors.ValidateName(name); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "template %s", name)
		}
		return nil, errors.Wrap(errors.ErrCodeIO, err, "read template %s", name)
	}
	return data, nil
}

var _ Catalog = (*FS)(nil)
