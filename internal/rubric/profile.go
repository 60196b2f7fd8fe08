package rubric

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownProfile is returned when a profile name is not compiled in.
var ErrUnknownProfile = errors.New("unknown rubric profile")

// Profile names.
const (
	ProfileMedia     = "media"
	ProfileStructure = "structure"

	// DefaultProfile is used when no profile is selected.
	DefaultProfile = ProfileMedia
)

// Profile is a fixed rubric: ordered checks, ordered warnings and a
// pass threshold.
type Profile struct {
	// Name is the identifier used on the command line.
	Name string

	// Title is the display title used in reports.
	Title string

	// Threshold is the minimum total that passes.
	Threshold int

	// Checks are evaluated in this order.
	Checks []Check

	// Warnings are evaluated in this order.
	Warnings []WarningRule
}

// Max returns the sum of the possible points of every check.
func (p *Profile) Max() int {
	total := 0
	for _, c := range p.Checks {
		total += c.Possible()
	}
	return total
}

// profiles builds a fresh registry so callers cannot mutate shared state.
func profiles() map[string]*Profile {
	return map[string]*Profile{
		ProfileMedia: {
			Name:      ProfileMedia,
			Title:     "CSS & Media",
			Threshold: 8,
			Checks:    mediaChecks(),
			Warnings:  defaultWarnings(),
		},
		ProfileStructure: {
			Name:      ProfileStructure,
			Title:     "HTML Structure",
			Threshold: 8,
			Checks:    structureChecks(),
		},
	}
}

// Lookup returns the profile with the given name. Names are matched
// case-insensitively; an empty name selects DefaultProfile.
func Lookup(name string) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultProfile
	}
	p, ok := profiles()[cases.Fold().String(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownProfile, name, strings.Join(Names(), ", "))
	}
	return p, nil
}

// Names returns the sorted profile names.
func Names() []string {
	names := make([]string, 0)
	for name := range profiles() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns every profile sorted by name.
func All() []*Profile {
	all := make([]*Profile, 0)
	for _, name := range Names() {
		p, _ := Lookup(name)
		all = append(all, p)
	}
	return all
}
