// Package cli implements the levelkit command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/levelkit/pkg/cache"
	"github.com/matzehuels/levelkit/pkg/catalog"
	"github.com/matzehuels/levelkit/pkg/errors"
	"github.com/matzehuels/levelkit/pkg/prefs"
	"github.com/matzehuels/levelkit/pkg/store"
	"github.com/matzehuels/levelkit/pkg/templates"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "levelkit"

	// prefsFile is the preferences file name inside the config directory.
	prefsFile = "prefs.toml"

	// levelsDir is the cache subdirectory holding working copies.
	levelsDir = "levels"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Flag values; empty means the XDG default.
	configPath  string
	cacheDir    string
	catalogPath string
	templateDir string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// =============================================================================
// Store Factory
// =============================================================================

// openPrefs opens the preference store selected by --config.
func (c *CLI) openPrefs(ctx context.Context) (prefs.Store, error) {
	location := c.configPath
	if location == "" {
		dir, err := configDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "get config dir")
		}
		location = filepath.Join(dir, prefsFile)
	}
	return prefs.Open(ctx, location)
}

// openCache opens the working-copy cache selected by --cache-dir.
func (c *CLI) openCache() (*cache.Dir, error) {
	dir := c.cacheDir
	if dir == "" {
		base, err := cacheDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeIO, err, "get cache dir")
		}
		dir = filepath.Join(base, levelsDir)
	}
	return cache.New(dir)
}

// newStore creates a document store for CLI use. The returned function
// releases the preference store.
func (c *CLI) newStore(ctx context.Context) (*store.Store, func(), error) {
	p, err := c.openPrefs(ctx)
	if err != nil {
		return nil, nil, err
	}
	cd, err := c.openCache()
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	opts := store.Options{Prefs: p, Cache: cd, Logger: loggerFromContext(ctx)}
	if c.templateDir != "" {
		opts.Templates = templates.Dir(c.templateDir)
	}
	s, err := store.New(opts)
	if err != nil {
		p.Close()
		return nil, nil, err
	}
	return s, func() { p.Close() }, nil
}

// catalogs returns the built-in catalogs, extended by --catalog.
func (c *CLI) catalogs() (catalog.Set, error) {
	set := catalog.Defaults()
	if c.catalogPath == "" {
		return set, nil
	}
	f, err := os.Open(c.catalogPath)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeIO, err, "open catalog")
	}
	defer f.Close()

	source, cat, err := catalog.LoadTOML(f)
	if err != nil {
		return nil, err
	}
	set.Extend(source, cat)
	c.Logger.Debug("loaded catalog", "source", source, "items", len(cat.Items()))
	return set, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/levelkit/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// configDir returns the config directory using XDG standard (~/.config/levelkit/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
