package chi

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/gallformers/internal/domain/search/filter"
)

// searchBody is the POST /search payload: facets plus paging.
type searchBody struct {
	filter.Query
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// queryFromValues builds a facet query from URL parameters.
// Multi-valued facets accept repeated keys, a single scalar, or a JSON-encoded array.
func queryFromValues(v url.Values) (searchBody, error) {
	var b searchBody
	var err error

	b.Color = scalar(v, "color")
	b.Shape = scalar(v, "shape")
	b.Alignment = scalar(v, "alignment")
	b.Walls = scalar(v, "walls")
	b.Cells = scalar(v, "cells")
	b.Season = scalar(v, "season")
	b.Form = scalar(v, "form")
	b.Detachable = filter.NormalizeDetachable(scalar(v, "detachable"))

	if b.Locations, err = multi(v, "locations", "location"); err != nil {
		return searchBody{}, err
	}
	if b.Textures, err = multi(v, "textures", "texture"); err != nil {
		return searchBody{}, err
	}
	if b.Hosts, err = multi(v, "hosts", "host"); err != nil {
		return searchBody{}, err
	}

	if s := scalar(v, "undescribed"); s != "" {
		if b.Undescribed, err = strconv.ParseBool(s); err != nil {
			return searchBody{}, fmt.Errorf("undescribed must be a boolean, got %q", s)
		}
	}
	if b.Limit, err = intParam(v, "limit"); err != nil {
		return searchBody{}, err
	}
	if b.Offset, err = intParam(v, "offset"); err != nil {
		return searchBody{}, err
	}
	return b, nil
}

// normalizeBody applies the same value normalization to a decoded JSON body.
func normalizeBody(b *searchBody) {
	b.Detachable = filter.NormalizeDetachable(b.Detachable)
	b.Locations = compact(b.Locations)
	b.Textures = compact(b.Textures)
	b.Hosts = compact(b.Hosts)
}

func scalar(v url.Values, key string) string {
	return strings.TrimSpace(v.Get(key))
}

func multi(v url.Values, keys ...string) ([]string, error) {
	var out []string
	for _, key := range keys {
		for _, raw := range v[key] {
			raw = strings.TrimSpace(raw)
			if !strings.HasPrefix(raw, "[") {
				out = append(out, raw)
				continue
			}
			var arr []string
			if err := json.Unmarshal([]byte(raw), &arr); err != nil {
				return nil, fmt.Errorf("%s: invalid JSON array: %w", key, err)
			}
			out = append(out, arr...)
		}
	}
	return compact(out), nil
}

// compact trims values and drops empty ones. Nil in, nil out.
func compact(ss []string) []string {
	if ss == nil {
		return nil
	}
	out := make([]string, 0, len(ss))
	for _, s := range ss {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func intParam(v url.Values, key string) (int, error) {
	s := scalar(v, key)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, s)
	}
	return n, nil
}

func boolParam(v url.Values, key string) bool {
	b, _ := strconv.ParseBool(scalar(v, key))
	return b
}
