// Package pipeline turns the raw song catalog and activity log into the songplays star
// schema: songs, artists, users and time dimensions around a songplays fact table.
package pipeline

import (
	"context"
	"time"

	"sparkify_etl/internal/engine"
	"sparkify_etl/internal/storage"
)

// Run executes the song stage and then the log stage. Either failing aborts the run.
func Run(ctx context.Context, s *engine.Session, input, output storage.Store) error {
	start := time.Now()

	if err := ProcessSongData(ctx, s, input, output); err != nil {
		return err
	}
	if err := ProcessLogData(ctx, s, input, output); err != nil {
		return err
	}

	s.Logger().WithField("duration", time.Since(start).String()).Info("ETL pipeline completed")
	return nil
}
