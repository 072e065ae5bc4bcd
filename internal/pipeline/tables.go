package pipeline

import (
	"strconv"

	"sparkify_etl/internal/engine"
)

// Song is a row of the songs dimension.
type Song struct {
	SongID   string
	Title    engine.Nullable[string]
	ArtistID string
	Year     int64
	Duration float64
}

// Artist is a row of the artists dimension.
type Artist struct {
	ArtistID  string
	Name      engine.Nullable[string]
	Latitude  engine.Nullable[float64]
	Longitude engine.Nullable[float64]
	Location  engine.Nullable[string]
}

// User is a row of the users dimension. One user may appear once per distinct level.
type User struct {
	UserID    engine.Nullable[string]
	FirstName engine.Nullable[string]
	LastName  engine.Nullable[string]
	Gender    engine.Nullable[string]
	Level     engine.Nullable[string]
}

// Songplay is a row of the songplays fact table. SongID and ArtistID are null when the
// play matched nothing in the catalog.
type Songplay struct {
	SongplayID int64
	StartTime  int64 // epoch millis
	UserID     engine.Nullable[string]
	Level      engine.Nullable[string]
	SongID     engine.Nullable[string]
	ArtistID   engine.Nullable[string]
	SessionID  engine.Nullable[int64]
	Location   engine.Nullable[string]
	UserAgent  engine.Nullable[string]
	Year       int
	Month      int
}

// Parquet file records. Partition columns live in the directory path, not here.

type SongFile struct {
	SongID   string  `parquet:"name=song_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Title    *string `parquet:"name=title, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Duration float64 `parquet:"name=duration, type=DOUBLE"`
}

type ArtistFile struct {
	ArtistID  string   `parquet:"name=artist_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Name      *string  `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Latitude  *float64 `parquet:"name=latitude, type=DOUBLE, repetitiontype=OPTIONAL"`
	Longitude *float64 `parquet:"name=longitude, type=DOUBLE, repetitiontype=OPTIONAL"`
	Location  *string  `parquet:"name=location, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type UserFile struct {
	UserID    *string `parquet:"name=userId, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	FirstName *string `parquet:"name=firstName, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	LastName  *string `parquet:"name=lastName, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Gender    *string `parquet:"name=gender, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Level     *string `parquet:"name=level, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

type TimeFile struct {
	StartTime int64 `parquet:"name=start_time, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	Hour      int32 `parquet:"name=hour, type=INT32"`
	Day       int32 `parquet:"name=day, type=INT32"`
	Week      int32 `parquet:"name=week, type=INT32"`
}

type SongplayFile struct {
	SongplayID int64   `parquet:"name=songplay_id, type=INT64"`
	StartTime  int64   `parquet:"name=start_time, type=INT64, convertedtype=TIMESTAMP_MILLIS"`
	UserID     *string `parquet:"name=userId, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	Level      *string `parquet:"name=level, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	SongID     *string `parquet:"name=song_id, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	ArtistID   *string `parquet:"name=artist_id, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	SessionID  *int64  `parquet:"name=sessionId, type=INT64, repetitiontype=OPTIONAL"`
	Location   *string `parquet:"name=location, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
	UserAgent  *string `parquet:"name=userAgent, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL"`
}

var songsTable = engine.Table[Song, SongFile]{
	Name: "songs",
	PartitionBy: func(s Song) []engine.Partition {
		return []engine.Partition{
			{Column: "year", Value: strconv.FormatInt(s.Year, 10)},
			{Column: "artist_id", Value: s.ArtistID},
		}
	},
	Record: func(s Song) SongFile {
		return SongFile{SongID: s.SongID, Title: s.Title.Ptr(), Duration: s.Duration}
	},
}

var artistsTable = engine.Table[Artist, ArtistFile]{
	Name: "artists",
	Record: func(a Artist) ArtistFile {
		return ArtistFile{
			ArtistID:  a.ArtistID,
			Name:      a.Name.Ptr(),
			Latitude:  a.Latitude.Ptr(),
			Longitude: a.Longitude.Ptr(),
			Location:  a.Location.Ptr(),
		}
	},
}

var usersTable = engine.Table[User, UserFile]{
	Name: "users",
	Record: func(u User) UserFile {
		return UserFile{
			UserID:    u.UserID.Ptr(),
			FirstName: u.FirstName.Ptr(),
			LastName:  u.LastName.Ptr(),
			Gender:    u.Gender.Ptr(),
			Level:     u.Level.Ptr(),
		}
	},
}

var timeTable = engine.Table[TimeRow, TimeFile]{
	Name: "time",
	PartitionBy: func(r TimeRow) []engine.Partition {
		return yearMonth(r.Year, r.Month)
	},
	Record: func(r TimeRow) TimeFile {
		return TimeFile{
			StartTime: r.StartTime,
			Hour:      int32(r.Hour),
			Day:       int32(r.Day),
			Week:      int32(r.Week),
		}
	},
}

var songplaysTable = engine.Table[Songplay, SongplayFile]{
	Name: "songplays",
	PartitionBy: func(p Songplay) []engine.Partition {
		return yearMonth(p.Year, p.Month)
	},
	Record: func(p Songplay) SongplayFile {
		return SongplayFile{
			SongplayID: p.SongplayID,
			StartTime:  p.StartTime,
			UserID:     p.UserID.Ptr(),
			Level:      p.Level.Ptr(),
			SongID:     p.SongID.Ptr(),
			ArtistID:   p.ArtistID.Ptr(),
			SessionID:  p.SessionID.Ptr(),
			Location:   p.Location.Ptr(),
			UserAgent:  p.UserAgent.Ptr(),
		}
	},
}

func yearMonth(year, month int) []engine.Partition {
	return []engine.Partition{
		{Column: "year", Value: strconv.Itoa(year)},
		{Column: "month", Value: strconv.Itoa(month)},
	}
}
