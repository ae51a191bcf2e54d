package models

import "time"

type Club struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"nama_klub" db:"nama_klub"`
	FoundedOn Date      `json:"tgl_berdiri" db:"tgl_berdiri"`
	City      *string   `json:"kota" db:"kota"`
	LeagueID  int       `json:"id_liga" db:"id_liga"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	League *League `json:"liga,omitempty" db:"-"`
}
