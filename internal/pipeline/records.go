package pipeline

import "sparkify_etl/internal/engine"

const (
	songDataGlob = "song-data/*/*/*/*.json"
	logDataGlob  = "log_data/*.json"

	// nextSongPage marks the log entries that are song plays.
	nextSongPage = "NextSong"
)

// CatalogRecord is one song/artist entry of the song dataset.
type CatalogRecord struct {
	NumSongs        int64                    `json:"num_songs"`
	SongID          string                   `json:"song_id"`
	Title           engine.Nullable[string]  `json:"title"`
	ArtistID        string                   `json:"artist_id"`
	ArtistName      engine.Nullable[string]  `json:"artist_name"`
	ArtistLatitude  engine.Nullable[float64] `json:"artist_latitude"`
	ArtistLongitude engine.Nullable[float64] `json:"artist_longitude"`
	ArtistLocation  engine.Nullable[string]  `json:"artist_location"`
	Year            int64                    `json:"year"`
	Duration        float64                  `json:"duration"`
}

var catalogSchema = engine.Schema{
	Name: "song",
	Required: []string{
		"song_id", "title", "artist_id", "artist_name",
		"artist_latitude", "artist_longitude", "artist_location",
		"year", "duration",
	},
}

// EventRecord is one client action from the activity log.
type EventRecord struct {
	Artist        engine.Nullable[string]  `json:"artist"`
	Auth          engine.Nullable[string]  `json:"auth"`
	FirstName     engine.Nullable[string]  `json:"firstName"`
	Gender        engine.Nullable[string]  `json:"gender"`
	ItemInSession engine.Nullable[int64]   `json:"itemInSession"`
	LastName      engine.Nullable[string]  `json:"lastName"`
	Length        engine.Nullable[float64] `json:"length"`
	Level         engine.Nullable[string]  `json:"level"`
	Location      engine.Nullable[string]  `json:"location"`
	Method        engine.Nullable[string]  `json:"method"`
	Page          string                   `json:"page"`
	Registration  engine.Nullable[float64] `json:"registration"`
	SessionID     engine.Nullable[int64]   `json:"sessionId"`
	Song          engine.Nullable[string]  `json:"song"`
	Status        engine.Nullable[int64]   `json:"status"`
	Ts            int64                    `json:"ts"`
	UserAgent     engine.Nullable[string]  `json:"userAgent"`
	UserID        engine.Nullable[string]  `json:"userId"`
}

var eventSchema = engine.Schema{
	Name: "log",
	Required: []string{
		"userId", "firstName", "lastName", "gender", "level",
		"page", "song", "artist", "ts", "sessionId", "location", "userAgent",
	},
}
