package models

import "time"

// Fan is a supporter linked to any number of clubs through the fan_klub table.
type Fan struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"nama_fan" db:"nama_fan"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	Clubs []Club `json:"klub" db:"-"`
}
