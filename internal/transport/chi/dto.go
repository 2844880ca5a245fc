package chi

import (
	"github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary/linker"
	glossaryuc "github.com/kailas-cloud/gallformers/internal/usecase/glossary"
)

// SegmentDTO is one piece of linked text.
type SegmentDTO struct {
	Kind   string   `json:"kind"`
	Value  string   `json:"value"`
	Href   string   `json:"href,omitempty"`
	Anchor string   `json:"anchor,omitempty"`
	Also   []string `json:"also,omitempty"`
}

// EntryList is the glossary listing response.
type EntryList struct {
	Items []glossary.Entry `json:"items"`
	Total int              `json:"total"`
}

// LinkedEntryDTO is a glossary entry with its definition linked in-page.
type LinkedEntryDTO struct {
	glossary.Entry
	Segments []SegmentDTO `json:"segments"`
}

// LinkRequest is the POST /link payload.
type LinkRequest struct {
	Text     string `json:"text"`
	SamePage bool   `json:"same_page"`
	Format   string `json:"format,omitempty"` // "segments" (default) or "html"
}

// LinkResponse carries linked segments.
type LinkResponse struct {
	Segments []SegmentDTO `json:"segments"`
}

// GallResponse is a gall, optionally with its description linked.
type GallResponse struct {
	gall.Gall
	DescriptionSegments []SegmentDTO `json:"description_segments,omitempty"`
}

// SearchResponse is one page of search matches.
type SearchResponse struct {
	Items   []gall.Gall `json:"items"`
	Total   int         `json:"total"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	HasMore bool        `json:"has_more"`
}

// HealthResponse reports component health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func segmentsToDTO(segs []linker.Segment) []SegmentDTO {
	out := make([]SegmentDTO, len(segs))
	for i, s := range segs {
		if !s.IsLink() {
			out[i] = SegmentDTO{Kind: "text", Value: s.Value()}
			continue
		}
		out[i] = SegmentDTO{
			Kind:   "link",
			Value:  s.Display(),
			Href:   s.Href(),
			Anchor: s.Anchor(),
			Also:   s.Also(),
		}
	}
	return out
}

func linkedEntriesToDTO(entries []glossaryuc.LinkedEntry) []LinkedEntryDTO {
	out := make([]LinkedEntryDTO, len(entries))
	for i, e := range entries {
		out[i] = LinkedEntryDTO{Entry: e.Entry, Segments: segmentsToDTO(e.Segments)}
	}
	return out
}
