package glossary

import (
	"strings"
	"testing"
)

func TestEntryValidate(t *testing.T) {
	tests := []struct {
		name    string
		entry   Entry
		wantErr string
	}{
		{"valid", Entry{Word: "gall", Definition: "an abnormal growth"}, ""},
		{"empty word", Entry{Word: "  ", Definition: "x"}, "word is required"},
		{"long word", Entry{Word: strings.Repeat("a", MaxWordLength+1), Definition: "x"}, "too long"},
		{"pattern chars", Entry{Word: "ga*ll", Definition: "x"}, "pattern characters"},
		{"no definition", Entry{Word: "gall"}, "definition is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.entry.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestKeyFor(t *testing.T) {
	e := Entry{Word: " Detachable "}
	if e.Key() != "detachable" {
		t.Errorf("Key() = %q", e.Key())
	}
}

func TestSortByWordAndFind(t *testing.T) {
	entries := []Entry{{Word: "walls"}, {Word: "alignment"}, {Word: "cells"}}
	SortByWord(entries)
	if entries[0].Word != "alignment" || entries[2].Word != "walls" {
		t.Errorf("unexpected order %v", entries)
	}
	if _, ok := Find(entries, "cells"); !ok {
		t.Error("expected to find cells")
	}
	if _, ok := Find(entries, "nope"); ok {
		t.Error("unexpected find")
	}
}
