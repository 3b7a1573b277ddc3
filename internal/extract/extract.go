// Package extract turns a task into the set of item names counted for it.
package extract

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/calvinalkan/taskstat/internal/task"
)

// Domain selects which part of a task items are taken from.
type Domain string

// Domains.
const (
	DomainTags    Domain = "tags"
	DomainHeading Domain = "heading"
	DomainBody    Domain = "body"
)

// ErrUnknownDomain is returned by ParseDomain.
var ErrUnknownDomain = errors.New("unknown domain (want tags, heading or body)")

// ParseDomain validates a domain name.
func ParseDomain(s string) (Domain, error) {
	switch d := Domain(strings.ToLower(strings.TrimSpace(s))); d {
	case DomainTags, DomainHeading, DomainBody:
		return d, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, s)
	}
}

// Punctuation stripped from both ends of every word.
const Punctuation = ".:!,;?"

// Extractor computes the normalized item set of a task.
// The zero value extracts tags without mapping or exclusion.
type Extractor struct {
	Domain  Domain
	Mapping map[string]string
	Exclude Exclude
}

// Items returns the sorted, de-duplicated item names v contributes.
func (e Extractor) Items(v task.View) []string {
	var raw []string

	switch e.Domain {
	case DomainHeading:
		raw = strings.Fields(v.Heading())
	case DomainBody:
		raw = strings.Fields(v.Body())
	default:
		raw = v.Tags()
	}

	items := make([]string, 0, len(raw))

	for _, r := range raw {
		item := e.Normalize(r)
		if item == "" || e.Exclude.Has(item) {
			continue
		}

		items = append(items, item)
	}

	slices.Sort(items)

	return slices.Compact(items)
}

// Normalize applies the domain's normalization and the mapping table to one name.
func (e Extractor) Normalize(name string) string {
	name = strings.TrimSpace(name)
	if e.Domain == DomainHeading || e.Domain == DomainBody {
		name = CleanWord(name)
	}

	if mapped, ok := e.Mapping[name]; ok {
		return mapped
	}

	return name
}

// Excluded reports whether a normalized name is hidden.
func (e Extractor) Excluded(name string) bool {
	return e.Exclude.Has(name)
}

// CleanWord lowercases a word and strips surrounding punctuation.
func CleanWord(word string) string {
	return strings.TrimSpace(strings.Trim(lowerString(word), Punctuation))
}

// Exclude is a case-insensitive set of item names.
type Exclude map[string]struct{}

// NewExclude builds an exclusion set. Blank entries are ignored.
func NewExclude(names []string) Exclude {
	ex := make(Exclude, len(names))

	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			ex[lowerString(n)] = struct{}{}
		}
	}

	return ex
}

// Has reports whether name is excluded.
func (ex Exclude) Has(name string) bool {
	if len(ex) == 0 {
		return false
	}

	_, ok := ex[lowerString(name)]

	return ok
}

// Names returns the sorted excluded names.
func (ex Exclude) Names() []string {
	names := make([]string, 0, len(ex))
	for n := range ex {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

// Casers are stateful, so each call gets its own.
func lowerString(s string) string {
	return cases.Lower(language.Und).String(s)
}
