package models

import "time"

type PlayerPosition string

const (
	PositionGoalkeeper PlayerPosition = "gk"
	PositionDefender   PlayerPosition = "df"
	PositionMidfielder PlayerPosition = "mf"
	PositionForward    PlayerPosition = "fw"
)

func (p PlayerPosition) IsValid() bool {
	switch p {
	case PositionGoalkeeper, PositionDefender, PositionMidfielder, PositionForward:
		return true
	}
	return false
}

type Player struct {
	ID          int            `json:"id" db:"id"`
	Name        string         `json:"nama_pemain" db:"nama_pemain"`
	BirthDate   Date           `json:"tgl_lahir" db:"tgl_lahir"`
	MarketPrice float64        `json:"harga_pasar" db:"harga_pasar"`
	Position    PlayerPosition `json:"posisi" db:"posisi"`
	Country     string         `json:"negara" db:"negara"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at" db:"updated_at"`

	// PhotoKey is the storage path of the photo, e.g. "fotos/<uuid>.png".
	PhotoKey string  `json:"foto" db:"foto"`
	PhotoURL *string `json:"foto_url,omitempty" db:"-"`
}
