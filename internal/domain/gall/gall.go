package gall

import (
	"fmt"
	"regexp"
	"strings"
)

var idRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// Detachable labels.
const (
	DetachableYes = "yes"
	DetachableNo  = "no"
)

// Gall is a gall species record with its filterable characteristics.
// Empty strings and nil slices mean "no data".
type Gall struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Color       string   `json:"color,omitempty" yaml:"color,omitempty"`
	Shape       string   `json:"shape,omitempty" yaml:"shape,omitempty"`
	Alignment   string   `json:"alignment,omitempty" yaml:"alignment,omitempty"`
	Walls       string   `json:"walls,omitempty" yaml:"walls,omitempty"`
	Cells       string   `json:"cells,omitempty" yaml:"cells,omitempty"`
	Season      string   `json:"season,omitempty" yaml:"season,omitempty"`
	Form        string   `json:"form,omitempty" yaml:"form,omitempty"`
	Detachable  *int     `json:"detachable,omitempty" yaml:"detachable,omitempty"`
	Locations   []string `json:"locations,omitempty" yaml:"locations,omitempty"`
	Textures    []string `json:"textures,omitempty" yaml:"textures,omitempty"`
	Hosts       []string `json:"hosts,omitempty" yaml:"hosts,omitempty"`
	Undescribed bool     `json:"undescribed,omitempty" yaml:"undescribed,omitempty"`
}

// Validate checks the record for storage.
func (g *Gall) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("gall ID is required")
	}
	if len(g.ID) > 256 {
		return fmt.Errorf("gall ID too long (max 256)")
	}
	if !idRegex.MatchString(g.ID) {
		return fmt.Errorf("gall ID must be alphanumeric with underscores and hyphens")
	}
	if strings.TrimSpace(g.Name) == "" {
		return fmt.Errorf("gall name is required")
	}
	if g.Detachable != nil && *g.Detachable < 0 {
		return fmt.Errorf("detachable flag must be 0 or positive, got %d", *g.Detachable)
	}
	return nil
}

// DetachableLabel maps the detachable flag to "yes"/"no". ok is false when there is no data.
func (g *Gall) DetachableLabel() (string, bool) {
	if g.Detachable == nil {
		return "", false
	}
	if *g.Detachable == 0 {
		return DetachableNo, true
	}
	return DetachableYes, true
}

// Flag returns a pointer to v, for building Detachable values.
func Flag(v int) *int { return &v }
