package pipeline

import (
	"context"
	"fmt"

	"sparkify_etl/internal/engine"
	"sparkify_etl/internal/storage"
)

func loadCatalog(ctx context.Context, s *engine.Session, input storage.Store) (engine.Dataset[CatalogRecord], error) {
	catalog, err := engine.ReadJSON[CatalogRecord](ctx, s, input, songDataGlob, catalogSchema)
	if err != nil {
		return engine.Dataset[CatalogRecord]{}, fmt.Errorf("failed to load song data: %w", err)
	}
	return catalog, nil
}

// ProcessSongData builds the songs and artists tables from the song catalog.
func ProcessSongData(ctx context.Context, s *engine.Session, input, output storage.Store) error {
	s.Logger().WithField("input", input.String()).Info("Processing song data")

	catalog, err := loadCatalog(ctx, s, input)
	if err != nil {
		return err
	}

	if err := engine.Write(ctx, s, output, SongsFromCatalog(catalog), songsTable); err != nil {
		return err
	}
	return engine.Write(ctx, s, output, ArtistsFromCatalog(catalog), artistsTable)
}

// SongsFromCatalog projects the catalog onto distinct songs.
func SongsFromCatalog(catalog engine.Dataset[CatalogRecord]) engine.Dataset[Song] {
	return engine.Distinct(engine.Map(catalog, func(r CatalogRecord) Song {
		return Song{
			SongID:   r.SongID,
			Title:    r.Title,
			ArtistID: r.ArtistID,
			Year:     r.Year,
			Duration: r.Duration,
		}
	}))
}

// ArtistsFromCatalog projects the catalog onto distinct artists. Two catalog entries for
// the same artist_id with different coordinates or location stay two rows.
func ArtistsFromCatalog(catalog engine.Dataset[CatalogRecord]) engine.Dataset[Artist] {
	return engine.Distinct(engine.Map(catalog, func(r CatalogRecord) Artist {
		return Artist{
			ArtistID:  r.ArtistID,
			Name:      r.ArtistName,
			Latitude:  r.ArtistLatitude,
			Longitude: r.ArtistLongitude,
			Location:  r.ArtistLocation,
		}
	}))
}
