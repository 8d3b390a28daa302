package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"autofine/internal/domain"
)

// Postgres SQLSTATE codes we translate into domain errors.
const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

type VehicleRepository struct {
	db *sqlx.DB
}

func NewVehicleRepository(db *sqlx.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `id, plate, brand, model, year, owner, registered_at`

func (r *VehicleRepository) List(ctx context.Context) ([]domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY plate`

	vehicles := []domain.Vehicle{}
	if err := r.db.SelectContext(ctx, &vehicles, query); err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}

	return vehicles, nil
}

func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	var vehicle domain.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	return &vehicle, nil
}

// GetByPlate looks a vehicle up by its plate. The lookup is case-insensitive:
// plates are uppercased before comparison, matching how they are stored.
func (r *VehicleRepository) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE plate = $1`

	var vehicle domain.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, NormalizePlate(plate))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle by plate: %w", err)
	}

	return &vehicle, nil
}

// IsPlateTaken reports whether any vehicle other than excludeID already holds
// the plate. Pass excludeID 0 to check against the whole table.
func (r *VehicleRepository) IsPlateTaken(ctx context.Context, plate string, excludeID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM vehicles WHERE plate = $1 AND ($2 = 0 OR id <> $2))`

	var taken bool
	if err := r.db.GetContext(ctx, &taken, query, NormalizePlate(plate), excludeID); err != nil {
		return false, fmt.Errorf("failed to check plate: %w", err)
	}

	return taken, nil
}

// Create inserts the vehicle and relies on the unique index on plate for
// uniqueness: a violation is translated into DuplicatePlateError instead of
// being pre-checked, so concurrent creates cannot race past the rule.
func (r *VehicleRepository) Create(ctx context.Context, in domain.CreateVehicleInput) (*domain.Vehicle, error) {
	plate := NormalizePlate(in.Plate)

	query := `
        INSERT INTO vehicles (plate, brand, model, year, owner)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, registered_at`

	vehicle := domain.Vehicle{
		Plate: plate,
		Brand: in.Brand,
		Model: in.Model,
		Year:  in.Year,
		Owner: in.Owner,
	}

	err := r.db.QueryRowContext(ctx, query, plate, in.Brand, in.Model, in.Year, in.Owner).
		Scan(&vehicle.ID, &vehicle.RegisteredAt)
	if isUniqueViolation(err) {
		return nil, &domain.DuplicatePlateError{Plate: plate}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	return &vehicle, nil
}

// Update applies a partial update: nil fields keep their stored value.
// A plate change colliding with another vehicle surfaces as
// DuplicatePlateError via the unique index; updating to the vehicle's own
// plate is a no-op and succeeds.
func (r *VehicleRepository) Update(ctx context.Context, id int64, in domain.UpdateVehicleInput) (*domain.Vehicle, error) {
	if in.Plate != nil {
		plate := NormalizePlate(*in.Plate)
		in.Plate = &plate
	}

	query := `
        UPDATE vehicles
        SET plate = COALESCE($1, plate),
            brand = COALESCE($2, brand),
            model = COALESCE($3, model),
            year  = COALESCE($4, year),
            owner = COALESCE($5, owner)
        WHERE id = $6
        RETURNING ` + vehicleColumns

	var vehicle domain.Vehicle
	err := r.db.GetContext(ctx, &vehicle, query, in.Plate, in.Brand, in.Model, in.Year, in.Owner, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if isUniqueViolation(err) {
		plate := ""
		if in.Plate != nil {
			plate = *in.Plate
		}
		return nil, &domain.DuplicatePlateError{Plate: plate}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	return &vehicle, nil
}

// Delete removes the vehicle; the ON DELETE CASCADE on fines.vehicle_id
// removes its fines in the same statement. Returns false when no row matched.
func (r *VehicleRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete vehicle: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// NormalizePlate trims surrounding whitespace and uppercases a plate. Every
// path that stores or compares plates goes through this.
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pqForeignKeyViolation
}
