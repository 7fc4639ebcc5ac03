package db

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/miqat-labs/minaret/internal/model"
)

// timetableRow is the flattened storage shape of one day's timetable.
type timetableRow struct {
	BoardID    int        `db:"board_id"`
	Day        time.Time  `db:"day"`
	Fajr       time.Time  `db:"fajr"`
	Sunrise    time.Time  `db:"sunrise"`
	Dhuhr      time.Time  `db:"dhuhr"`
	Asr        time.Time  `db:"asr"`
	Maghrib    time.Time  `db:"maghrib"`
	Sunset     time.Time  `db:"sunset"`
	Isha       time.Time  `db:"isha"`
	Imsak      *time.Time `db:"imsak"`
	Midnight   *time.Time `db:"midnight"`
	FirstThird *time.Time `db:"first_third"`
	LastThird  *time.Time `db:"last_third"`
}

func (r timetableRow) toModel(date time.Time) model.DailyPrayerTimes {
	return model.DailyPrayerTimes{
		Date:       date,
		Fajr:       r.Fajr,
		Sunrise:    r.Sunrise,
		Dhuhr:      r.Dhuhr,
		Asr:        r.Asr,
		Maghrib:    r.Maghrib,
		Sunset:     r.Sunset,
		Isha:       r.Isha,
		Imsak:      r.Imsak,
		Midnight:   r.Midnight,
		FirstThird: r.FirstThird,
		LastThird:  r.LastThird,
	}
}

// UpsertTimetable stores one day's timetable for a board, replacing any
// previously cached row for the same day.
func (s *pgStore) UpsertTimetable(boardID int, day time.Time, times model.DailyPrayerTimes) error {
	query := `
	INSERT INTO timetables (board_id, day, fajr, sunrise, dhuhr, asr, maghrib, sunset, isha,
		imsak, midnight, first_third, last_third, created_at)
	VALUES ($1, $2::date, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, now())
	ON CONFLICT (board_id, day) DO UPDATE
	SET fajr = EXCLUDED.fajr,
	sunrise = EXCLUDED.sunrise,
	dhuhr = EXCLUDED.dhuhr,
	asr = EXCLUDED.asr,
	maghrib = EXCLUDED.maghrib,
	sunset = EXCLUDED.sunset,
	isha = EXCLUDED.isha,
	imsak = EXCLUDED.imsak,
	midnight = EXCLUDED.midnight,
	first_third = EXCLUDED.first_third,
	last_third = EXCLUDED.last_third;`
	_, err := s.db.Exec(query,
		boardID, day.Format("2006-01-02"),
		times.Fajr, times.Sunrise, times.Dhuhr, times.Asr, times.Maghrib,
		times.Sunset, times.Isha,
		times.Imsak, times.Midnight, times.FirstThird, times.LastThird)
	if err != nil {
		log.Error().Err(err).Int("board_id", boardID).Str("day", day.Format("2006-01-02")).Msg("UpsertTimetable failed")
	}
	return err
}

// GetTimetable loads a cached day. Returns sql.ErrNoRows on a miss.
func (s *pgStore) GetTimetable(boardID int, day time.Time) (model.DailyPrayerTimes, error) {
	var row timetableRow
	query := `
	SELECT board_id, day, fajr, sunrise, dhuhr, asr, maghrib, sunset, isha,
		imsak, midnight, first_third, last_third
	FROM timetables
	WHERE board_id = $1 AND day = $2::date;`
	if err := s.db.Get(&row, query, boardID, day.Format("2006-01-02")); err != nil {
		return model.DailyPrayerTimes{}, err
	}
	return row.toModel(day), nil
}
