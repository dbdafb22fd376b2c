// Package rtid parses and builds RTID reference strings.
//
// An RTID points from one level object at another object, either inside
// the same level document or inside a named static catalog:
//
//	RTID(Wave1@CurrentLevel)        object aliased "Wave1" in this document
//	RTID(gravestone_egypt@GridItemTypes)  entry of the GridItemTypes catalog
//
// Parsing never resolves anything. A Reference is well formed whether or
// not its alias currently exists; checking that is the caller's job (see
// level.Resolver).
//
// A reference without a source segment ("RTID(Wave1)" or plain "Wave1")
// always means CurrentLevel.
package rtid

import (
	"strings"

	"github.com/matzehuels/levelkit/pkg/errors"
)

const (
	// Separator splits the alias from the source.
	Separator = "@"

	prefix = "RTID("
	suffix = ")"
)

// Source names the domain an alias is looked up in.
type Source string

// Known sources. Any other non-empty source names an external catalog too.
const (
	CurrentLevel  Source = "CurrentLevel"
	GridItemTypes Source = "GridItemTypes"
	ZombieTypes   Source = "ZombieTypes"
	PlantTypes    Source = "PlantTypes"
	LevelModules  Source = "LevelModules"
)

// DefaultSource is assumed when a reference has no source segment.
const DefaultSource = CurrentLevel

// Reference is a parsed RTID.
// Source is empty only for references produced by Fallback.
type Reference struct {
	Alias  string
	Source Source
}

// IsLocal reports whether the reference addresses the current document.
func (r Reference) IsLocal() bool {
	return r.Source == CurrentLevel
}

// Known reports whether the source is set.
func (r Reference) Known() bool {
	return r.Source != ""
}

// String renders the canonical RTID form. References with an unknown
// source render as their bare alias.
func (r Reference) String() string {
	if r.Source == "" {
		return r.Alias
	}
	return prefix + r.Alias + Separator + string(r.Source) + suffix
}

// Parse splits text into alias and source.
// It accepts "RTID(alias@source)", "RTID(alias)", "alias@source" and a bare
// "alias". It reports false for empty input, an unterminated "RTID(", more
// than one separator, or an empty alias or source.
func Parse(text string) (Reference, bool) {
	inner := text
	if strings.HasPrefix(text, prefix) {
		if !strings.HasSuffix(text, suffix) {
			return Reference{}, false
		}
		inner = text[len(prefix) : len(text)-len(suffix)]
	}
	if inner == "" {
		return Reference{}, false
	}

	alias, source, found := strings.Cut(inner, Separator)
	if !found {
		return Reference{Alias: inner, Source: DefaultSource}, true
	}
	if alias == "" || source == "" || strings.Contains(source, Separator) {
		return Reference{}, false
	}
	return Reference{Alias: alias, Source: Source(source)}, true
}

// Fallback returns the reference for text, or, when text does not parse,
// a reference whose alias is the raw text and whose source is unknown.
func Fallback(text string) Reference {
	if ref, ok := Parse(text); ok {
		return ref
	}
	return Reference{Alias: text}
}

// Build renders alias and source as an RTID string. Aliases or sources
// that are empty or contain the separator cannot round-trip through Parse
// and are rejected.
func Build(alias string, source Source) (string, error) {
	if alias == "" {
		return "", errors.New(errors.ErrCodeInvalidReference, "alias cannot be empty")
	}
	if strings.Contains(alias, Separator) {
		return "", errors.New(errors.ErrCodeInvalidReference, "alias %q contains %q", alias, Separator)
	}
	if source == "" {
		return "", errors.New(errors.ErrCodeInvalidReference, "source cannot be empty")
	}
	if strings.Contains(string(source), Separator) {
		return "", errors.New(errors.ErrCodeInvalidReference, "source %q contains %q", source, Separator)
	}
	return Reference{Alias: alias, Source: source}.String(), nil
}

// MustBuild is like Build but panics on invalid input.
// It is meant for references assembled from constants.
func MustBuild(alias string, source Source) string {
	s, err := Build(alias, source)
	if err != nil {
		panic(err)
	}
	return s
}

// Local builds a CurrentLevel reference.
func Local(alias string) (string, error) {
	return Build(alias, CurrentLevel)
}

// IsRTID reports whether text is written in the explicit "RTID(...)" form.
func IsRTID(text string) bool {
	return len(text) >= len(prefix)+len(suffix) &&
		strings.HasPrefix(text, prefix) && strings.HasSuffix(text, suffix)
}
