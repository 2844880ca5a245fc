// Package filter matches gall records against faceted search queries.
package filter

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/gallformers/internal/domain/gall"
)

// LeafAnywhere is a pseudo-location matching any location mentioning "leaf".
const LeafAnywhere = "leaf (anywhere)"

// Query holds the requested value per facet. Empty values mean "don't care".
type Query struct {
	Color       string   `json:"color,omitempty"`
	Shape       string   `json:"shape,omitempty"`
	Alignment   string   `json:"alignment,omitempty"`
	Walls       string   `json:"walls,omitempty"`
	Cells       string   `json:"cells,omitempty"`
	Season      string   `json:"season,omitempty"`
	Form        string   `json:"form,omitempty"`
	Detachable  string   `json:"detachable,omitempty"` // "yes", "no"
	Locations   []string `json:"locations,omitempty"`
	Textures    []string `json:"textures,omitempty"`
	Hosts       []string `json:"hosts,omitempty"`
	Undescribed bool     `json:"undescribed,omitempty"`
}

// Validate rejects facet values the matcher can never satisfy.
func (q *Query) Validate() error {
	switch q.Detachable {
	case "", gall.DetachableYes, gall.DetachableNo:
	default:
		return fmt.Errorf("detachable must be %q or %q, got %q", gall.DetachableYes, gall.DetachableNo, q.Detachable)
	}
	return nil
}

// IsEmpty reports whether the query constrains nothing.
func (q *Query) IsEmpty() bool {
	return DontCare(q.Color) && DontCare(q.Shape) && DontCare(q.Alignment) &&
		DontCare(q.Walls) && DontCare(q.Cells) && DontCare(q.Season) &&
		DontCare(q.Form) && DontCare(q.Detachable) && DontCare(q.Locations) &&
		DontCare(q.Textures) && DontCare(q.Hosts) && !q.Undescribed
}

// NormalizeDetachable maps the accepted spellings onto "yes", "no" or don't care.
// Unknown values pass through so Validate can reject them.
func NormalizeDetachable(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unsure", "any":
		return ""
	case gall.DetachableYes, "1", "true":
		return gall.DetachableYes
	case gall.DetachableNo, "0", "false":
		return gall.DetachableNo
	default:
		return s
	}
}

// DontCare reports whether a query value imposes no constraint: empty string or empty slice.
func DontCare[T ~string | ~[]string](v T) bool {
	return len(v) == 0
}

// Matches reports whether g satisfies every facet of q.
// A candidate without data for a constrained facet does not match.
func Matches(g *gall.Gall, q *Query) bool {
	if q == nil {
		return true
	}
	if g == nil {
		g = &gall.Gall{}
	}

	return single(g.Color, q.Color) &&
		single(g.Shape, q.Shape) &&
		single(g.Alignment, q.Alignment) &&
		single(g.Walls, q.Walls) &&
		single(g.Cells, q.Cells) &&
		single(g.Season, q.Season) &&
		single(g.Form, q.Form) &&
		detachable(g, q.Detachable) &&
		locations(g.Locations, q.Locations) &&
		subset(g.Textures, q.Textures) &&
		subset(g.Hosts, q.Hosts) &&
		(!q.Undescribed || g.Undescribed)
}

// Apply returns the galls matching q, preserving order.
func Apply(galls []gall.Gall, q *Query) []gall.Gall {
	out := make([]gall.Gall, 0, len(galls))
	for i := range galls {
		if Matches(&galls[i], q) {
			out = append(out, galls[i])
		}
	}
	return out
}

func single(have, want string) bool {
	return DontCare(want) || (have != "" && have == want)
}

func detachable(g *gall.Gall, want string) bool {
	if DontCare(want) {
		return true
	}
	label, ok := g.DetachableLabel()
	return ok && label == want
}

// subset reports whether every wanted value is in have.
func subset(have, want []string) bool {
	if DontCare(want) {
		return true
	}
	for _, w := range want {
		if !containsValue(have, w) {
			return false
		}
	}
	return true
}

func locations(have, want []string) bool {
	if DontCare(want) {
		return true
	}
	rest := make([]string, 0, len(want))
	anyLeaf := false
	for _, w := range want {
		if w == LeafAnywhere {
			anyLeaf = true
			continue
		}
		rest = append(rest, w)
	}
	if anyLeaf && !hasLeaf(have) {
		return false
	}
	return subset(have, rest)
}

func hasLeaf(locs []string) bool {
	for _, l := range locs {
		if strings.Contains(l, "leaf") {
			return true
		}
	}
	return false
}

func containsValue(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
