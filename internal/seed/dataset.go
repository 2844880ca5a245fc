// Package seed loads glossary entries and galls from YAML into storage.
package seed

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/gallformers/internal/domain"
	"github.com/kailas-cloud/gallformers/internal/domain/gall"
	"github.com/kailas-cloud/gallformers/internal/domain/glossary"
)

// Dataset is the seed file layout.
type Dataset struct {
	Glossary []glossary.Entry `yaml:"glossary"`
	Galls    []gall.Gall      `yaml:"galls"`
}

// Parse decodes a YAML dataset. Unknown fields are rejected.
func Parse(r io.Reader) (Dataset, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var d Dataset
	if err := dec.Decode(&d); err != nil && !errors.Is(err, io.EOF) {
		return Dataset{}, fmt.Errorf("%w: parse seed: %w", domain.ErrInvalidInput, err)
	}
	return d, nil
}

// LoadFile reads and validates a dataset from path.
func LoadFile(path string) (Dataset, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Dataset{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	d, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Dataset{}, err
	}
	if err := d.Validate(); err != nil {
		return Dataset{}, err
	}
	return d, nil
}

// Validate checks every record and rejects duplicate keys.
func (d *Dataset) Validate() error {
	words := make(map[string]struct{}, len(d.Glossary))
	for i := range d.Glossary {
		e := &d.Glossary[i]
		if err := e.Validate(); err != nil {
			return fmt.Errorf("%w: glossary[%d]: %w", domain.ErrInvalidInput, i, err)
		}
		if _, dup := words[e.Key()]; dup {
			return fmt.Errorf("%w: glossary[%d]: duplicate word %q", domain.ErrInvalidInput, i, e.Word)
		}
		words[e.Key()] = struct{}{}
	}

	ids := make(map[string]struct{}, len(d.Galls))
	for i := range d.Galls {
		g := &d.Galls[i]
		if err := g.Validate(); err != nil {
			return fmt.Errorf("%w: galls[%d]: %w", domain.ErrInvalidInput, i, err)
		}
		if _, dup := ids[g.ID]; dup {
			return fmt.Errorf("%w: galls[%d]: duplicate id %q", domain.ErrInvalidInput, i, g.ID)
		}
		ids[g.ID] = struct{}{}
	}
	return nil
}

// Checksum identifies the dataset content.
func (d *Dataset) Checksum() (string, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("marshal dataset: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
