package models

import "time"

// League is a football competition (liga).
type League struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"nama_liga" db:"nama_liga"`
	Country   string    `json:"negara" db:"negara"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
