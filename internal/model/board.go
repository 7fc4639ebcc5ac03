package model

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Board represents a registered athan display board: a named location plus
// the calculation parameters the prayer-time service needs for it.
type Board struct {
	ID        int       `db:"id"         json:"id"`
	Name      string    `db:"name"       json:"name"`
	City      string    `db:"city"       json:"city"`
	Latitude  float64   `db:"latitude"   json:"latitude"`
	Longitude float64   `db:"longitude"  json:"longitude"`
	Timezone  string    `db:"timezone"   json:"timezone"`
	Method    int       `db:"method"     json:"method"` // calculation method id, passed through to the upstream service
	School    int       `db:"school"     json:"school"` // 0 = Shafi, 1 = Hanafi (asr timing)
	CreatedBy int       `db:"created_by" json:"created_by"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Location resolves the board's IANA timezone, falling back to UTC when the
// stored name doesn't resolve on this host.
func (b Board) Location() *time.Location {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		log.Warn().Err(err).Str("timezone", b.Timezone).Int("board_id", b.ID).Msg("unknown board timezone, using UTC")
		return time.UTC
	}
	return loc
}
