// Copyright (c) 2026 Animetrack. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package anime

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// importFile is the on-disk layout of a catalog import.
//
//	anime:
//	  - title: Sousou no Frieren
//	    genres: [adventure, fantasy]
//	    rating: 9.3
//	    release_date: 2023-09-29
type importFile struct {
	Anime []importRecord `yaml:"anime"`
}

type importRecord struct {
	ID          string   `yaml:"id"`
	Slug        string   `yaml:"slug"`
	Title       string   `yaml:"title"`
	ImageURL    string   `yaml:"image_url"`
	Genres      []string `yaml:"genres"`
	Rating      *float64 `yaml:"rating"`
	Description string   `yaml:"description"`
	ReleaseDate string   `yaml:"release_date"`
}

// releaseDateLayout is the accepted release_date format.
const releaseDateLayout = "2006-01-02"

// DecodeImport parses a YAML catalog file into titles ready for [Service.Upsert].
func DecodeImport(reader io.Reader) ([]*Anime, error) {
	var file importFile

	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return []*Anime{}, nil
		}
		return nil, fmt.Errorf("anime_import_decode_failed: %w", err)
	}

	titles := make([]*Anime, 0, len(file.Anime))
	for index, record := range file.Anime {
		anime := &Anime{
			ID:          record.ID,
			Slug:        record.Slug,
			Title:       record.Title,
			ImageURL:    record.ImageURL,
			Genres:      record.Genres,
			Rating:      record.Rating,
			Description: record.Description,
		}

		if record.ReleaseDate != "" {
			releaseDate, err := time.Parse(releaseDateLayout, record.ReleaseDate)
			if err != nil {
				return nil, fmt.Errorf("anime_import_entry_%d_release_date: %w", index, err)
			}
			anime.ReleaseDate = &releaseDate
		}

		titles = append(titles, anime)
	}

	return titles, nil
}
