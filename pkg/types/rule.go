package types

import (
	"fmt"
	"sort"
	"strings"
)

// Rule maps a set of file extensions to a destination folder.
type Rule struct {
	// ID is a stable identifier for the rule, assigned on creation
	ID string `toml:"id" yaml:"id"`

	// Name is the display name, defaulting to the destination's base name
	Name string `toml:"name" yaml:"name"`

	// Extensions is the normalized extension set: lowercase, leading dot,
	// no duplicates. Order is not significant within a rule.
	Extensions []string `toml:"extensions" yaml:"extensions"`

	// Destination is the folder matched files are moved into
	Destination string `toml:"destination" yaml:"destination"`
}

// Matches reports whether the rule claims the given extension.
// The extension is expected in normalized form (lowercase, leading dot).
func (r Rule) Matches(ext string) bool {
	for _, e := range r.Extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Label returns the list entry text for the rule, mirroring the
// destination name plus its bracketed extension list.
func (r Rule) Label() string {
	if len(r.Extensions) == 0 {
		return r.Name
	}
	exts := make([]string, len(r.Extensions))
	copy(exts, r.Extensions)
	sort.Strings(exts)
	return fmt.Sprintf("%s  [ %s ]", r.Name, strings.Join(exts, ", "))
}

// RuleSet is the ordered collection of rules. Order defines match
// precedence: the first rule claiming an extension wins.
type RuleSet []Rule

// FindByExtension returns the first rule matching ext, in precedence order.
func (rs RuleSet) FindByExtension(ext string) (Rule, bool) {
	for _, r := range rs {
		if r.Matches(ext) {
			return r, true
		}
	}
	return Rule{}, false
}

// FindByID returns the rule with the given id and its index.
func (rs RuleSet) FindByID(id string) (Rule, int, bool) {
	for i, r := range rs {
		if r.ID == id {
			return r, i, true
		}
	}
	return Rule{}, -1, false
}

// Overlaps returns the extensions of rule that are already claimed by an
// earlier rule in the set, i.e. extensions this rule can never win.
func (rs RuleSet) Overlaps(index int) []string {
	if index <= 0 || index >= len(rs) {
		return nil
	}
	var shadowed []string
	for _, ext := range rs[index].Extensions {
		if _, ok := rs[:index].FindByExtension(ext); ok {
			shadowed = append(shadowed, ext)
		}
	}
	return shadowed
}
