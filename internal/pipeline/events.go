package pipeline

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"sparkify_etl/internal/engine"
	"sparkify_etl/internal/storage"
)

// ProcessLogData builds the users, time and songplays tables from the activity log. The
// song catalog is read again for the songplays join.
func ProcessLogData(ctx context.Context, s *engine.Session, input, output storage.Store) error {
	logger := s.Logger()
	logger.WithField("input", input.String()).Info("Processing log data")

	events, err := engine.ReadJSON[EventRecord](ctx, s, input, logDataGlob, eventSchema)
	if err != nil {
		return fmt.Errorf("failed to load log data: %w", err)
	}

	plays := PlayEvents(events)
	logger.WithFields(logrus.Fields{
		"events": events.Count(),
		"plays":  plays.Count(),
	}).Info("Filtered song plays")

	if err := engine.Write(ctx, s, output, UsersFromPlays(plays), usersTable); err != nil {
		return err
	}
	if err := engine.Write(ctx, s, output, TimeFromPlays(plays), timeTable); err != nil {
		return err
	}

	catalog, err := loadCatalog(ctx, s, input)
	if err != nil {
		return err
	}
	songplays, err := SongplaysFromPlays(plays, catalog)
	if err != nil {
		return err
	}
	return engine.Write(ctx, s, output, songplays, songplaysTable)
}

// PlayEvents drops exact duplicate log rows and keeps only NextSong actions.
func PlayEvents(events engine.Dataset[EventRecord]) engine.Dataset[EventRecord] {
	return engine.Filter(engine.Distinct(events), func(e EventRecord) bool {
		return e.Page == nextSongPage
	})
}

// UsersFromPlays projects plays onto distinct user rows. The grain is the full row, so a
// user seen at two levels yields two rows.
func UsersFromPlays(plays engine.Dataset[EventRecord]) engine.Dataset[User] {
	return engine.Distinct(engine.Map(plays, func(e EventRecord) User {
		return User{
			UserID:    e.UserID,
			FirstName: e.FirstName,
			LastName:  e.LastName,
			Gender:    e.Gender,
			Level:     e.Level,
		}
	}))
}

// TimeFromPlays breaks down every distinct play timestamp.
func TimeFromPlays(plays engine.Dataset[EventRecord]) engine.Dataset[TimeRow] {
	return engine.Distinct(engine.Map(plays, func(e EventRecord) TimeRow {
		return TimeParts(e.Ts)
	}))
}

type songKey struct {
	title  string
	artist string
}

// SongplaysFromPlays left-joins plays to the catalog on exact (title, artist name) equality
// and assigns songplay ids. A null on either side never matches.
func SongplaysFromPlays(plays engine.Dataset[EventRecord], catalog engine.Dataset[CatalogRecord]) (engine.Dataset[Songplay], error) {
	joined := engine.LeftJoin(plays, catalog,
		func(e EventRecord) (songKey, bool) {
			return songKey{title: e.Song.Value, artist: e.Artist.Value}, e.Song.Valid && e.Artist.Valid
		},
		func(c CatalogRecord) (songKey, bool) {
			return songKey{title: c.Title.Value, artist: c.ArtistName.Value}, c.Title.Valid && c.ArtistName.Valid
		},
		func(e EventRecord, c *CatalogRecord) Songplay {
			tr := TimeParts(e.Ts)
			p := Songplay{
				StartTime: tr.StartTime,
				UserID:    e.UserID,
				Level:     e.Level,
				SessionID: e.SessionID,
				Location:  e.Location,
				UserAgent: e.UserAgent,
				Year:      tr.Year,
				Month:     tr.Month,
			}
			if c != nil {
				p.SongID = engine.NullableOf(c.SongID)
				p.ArtistID = engine.NullableOf(c.ArtistID)
			}
			return p
		})

	songplays, err := engine.WithMonotonicID(joined, func(p Songplay, id int64) Songplay {
		p.SongplayID = id
		return p
	})
	if err != nil {
		return engine.Dataset[Songplay]{}, fmt.Errorf("failed to assign songplay ids: %w", err)
	}
	return songplays, nil
}
