package domain

import (
	"time"
)

// Vehicle is a registered vehicle. Plates are stored uppercased and are
// unique across the whole table.
type Vehicle struct {
	ID           int64     `json:"id" db:"id"`
	Plate        string    `json:"plate" db:"plate"`
	Brand        *string   `json:"brand,omitempty" db:"brand"`
	Model        string    `json:"model" db:"model"`
	Year         *int      `json:"year,omitempty" db:"year"`
	Owner        string    `json:"owner" db:"owner"`
	RegisteredAt time.Time `json:"registered_at" db:"registered_at"`
}

type CreateVehicleInput struct {
	Plate string  `json:"plate" validate:"required"`
	Brand *string `json:"brand,omitempty"`
	Model string  `json:"model" validate:"required"`
	Year  *int    `json:"year,omitempty"`
	Owner string  `json:"owner" validate:"required"`
}

// UpdateVehicleInput is a partial update: nil means the field is left
// unchanged. There is no way to clear a field to empty.
type UpdateVehicleInput struct {
	Plate *string `json:"plate,omitempty"`
	Brand *string `json:"brand,omitempty"`
	Model *string `json:"model,omitempty"`
	Year  *int    `json:"year,omitempty"`
	Owner *string `json:"owner,omitempty"`
}

func (in UpdateVehicleInput) Empty() bool {
	return in.Plate == nil && in.Brand == nil && in.Model == nil &&
		in.Year == nil && in.Owner == nil
}
