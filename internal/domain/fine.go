package domain

import (
	"strings"
	"time"
)

// Severity levels as defined by the Brazilian traffic code. The data layer
// does not enforce these values; unknown strings are stored as-is.
const (
	SeverityVerySevere = "Gravíssima"
	SeveritySevere     = "Grave"
	SeverityMedium     = "Média"
	SeverityLight      = "Leve"
)

// Fine is a traffic-violation record. Fines are always presented together
// with the identifying fields of the vehicle they belong to.
type Fine struct {
	ID         int64     `json:"id" db:"id"`
	VehicleID  int64     `json:"vehicle_id" db:"vehicle_id"`
	OccurredAt time.Time `json:"occurred_at" db:"occurred_at"`
	Location   string    `json:"location" db:"location"`
	Severity   string    `json:"severity" db:"severity"`
	Amount     float64   `json:"amount" db:"amount"`

	// joined vehicle columns
	Plate        string  `json:"plate" db:"plate"`
	VehicleModel string  `json:"model" db:"model"`
	VehicleBrand *string `json:"brand,omitempty" db:"brand"`
	Owner        string  `json:"owner" db:"owner"`
}

type CreateFineInput struct {
	VehicleID  int64      `json:"vehicle_id" validate:"required"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Location   string     `json:"location" validate:"required"`
	Severity   string     `json:"severity,omitempty"`
	Amount     float64    `json:"amount" validate:"required"`
}

// UpdateFineInput is a partial update with the same nil-means-unchanged
// semantics as UpdateVehicleInput.
type UpdateFineInput struct {
	VehicleID  *int64     `json:"vehicle_id,omitempty"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
	Location   *string    `json:"location,omitempty"`
	Severity   *string    `json:"severity,omitempty"`
	Amount     *float64   `json:"amount,omitempty"`
}

func (in UpdateFineInput) Empty() bool {
	return in.VehicleID == nil && in.OccurredAt == nil && in.Location == nil &&
		in.Severity == nil && in.Amount == nil
}

// FineSearchCriteria is the flexible fine query. Plate matches exactly
// (case-insensitive), owner and model match as case-insensitive substrings.
// Criteria compose with AND; at least one must be present, which the caller
// enforces before reaching the repository.
type FineSearchCriteria struct {
	Plate string `json:"plate,omitempty"`
	Owner string `json:"owner,omitempty"`
	Model string `json:"model,omitempty"`
}

// Trimmed returns a copy with surrounding whitespace removed from every
// criterion.
func (c FineSearchCriteria) Trimmed() FineSearchCriteria {
	return FineSearchCriteria{
		Plate: strings.TrimSpace(c.Plate),
		Owner: strings.TrimSpace(c.Owner),
		Model: strings.TrimSpace(c.Model),
	}
}

func (c FineSearchCriteria) Empty() bool {
	t := c.Trimmed()
	return t.Plate == "" && t.Owner == "" && t.Model == ""
}
