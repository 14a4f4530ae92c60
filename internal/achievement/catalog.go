// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package achievement

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// genrePrefix marks genre achievements; the remainder of the id names the genre.
const genrePrefix = "genre_"

//go:embed catalog.yaml
var embeddedCatalog []byte

// Catalog is an ordered, validated list of definitions.
type Catalog struct {
	definitions []Definition
}

type catalogFile struct {
	Achievements []Definition `yaml:"achievements"`
}

// DefaultCatalog returns the catalog embedded in the binary.
//
// The embedded file is validated by tests, so a decode failure here is a build defect.
func DefaultCatalog() *Catalog {
	catalog, err := LoadCatalog(bytes.NewReader(embeddedCatalog))
	if err != nil {
		panic("achievement: embedded catalog is invalid: " + err.Error())
	}
	return catalog
}

// LoadCatalog decodes and validates a YAML catalog.
func LoadCatalog(reader io.Reader) (*Catalog, error) {
	var file catalogFile

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("achievement: decode catalog: %w", err)
	}

	return NewCatalog(file.Achievements)
}

// NewCatalog validates definitions and returns them as a [Catalog].
//
// # Rules
//   - ids are non-empty and unique
//   - categories are known
//   - thresholds are positive
//   - genre achievements use the "genre_<name>" id form
func NewCatalog(definitions []Definition) (*Catalog, error) {
	seen := make(map[string]struct{}, len(definitions))

	for index, definition := range definitions {
		if definition.ID == "" {
			return nil, fmt.Errorf("achievement: entry %d has no id", index)
		}
		if _, duplicate := seen[definition.ID]; duplicate {
			return nil, fmt.Errorf("achievement: duplicate id %q", definition.ID)
		}
		seen[definition.ID] = struct{}{}

		if _, err := ParseCategory(string(definition.Category)); err != nil {
			return nil, fmt.Errorf("achievement: %q: %w", definition.ID, err)
		}
		if definition.Threshold <= 0 {
			return nil, fmt.Errorf("achievement: %q: threshold must be positive, got %d", definition.ID, definition.Threshold)
		}
		if definition.Category == CategoryGenre && GenreOf(definition) == "" {
			return nil, fmt.Errorf("achievement: %q: genre achievements need an id of the form %s<name>", definition.ID, genrePrefix)
		}
	}

	return &Catalog{definitions: append([]Definition(nil), definitions...)}, nil
}

// Definitions returns a copy of the catalog in order.
func (catalog *Catalog) Definitions() []Definition {
	return append([]Definition(nil), catalog.definitions...)
}

// Len returns the number of definitions.
func (catalog *Catalog) Len() int {
	return len(catalog.definitions)
}

// GenreOf returns the genre a genre achievement tracks, or "" for other categories.
func GenreOf(definition Definition) string {
	if definition.Category != CategoryGenre {
		return ""
	}
	genre, found := strings.CutPrefix(definition.ID, genrePrefix)
	if !found {
		return ""
	}
	return genre
}
