package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"autofine/internal/domain"
)

type FineRepository struct {
	db *sqlx.DB
}

func NewFineRepository(db *sqlx.DB) *FineRepository {
	return &FineRepository{db: db}
}

// Fines are never presented without their vehicle's identity, so every read
// goes through this join.
const fineSelect = `
    SELECT
        f.id, f.vehicle_id, f.occurred_at, f.location, f.severity, f.amount,
        v.plate, v.model, v.brand, v.owner
    FROM fines f
    INNER JOIN vehicles v ON f.vehicle_id = v.id`

func (r *FineRepository) List(ctx context.Context) ([]domain.Fine, error) {
	query := fineSelect + ` ORDER BY f.occurred_at DESC`

	fines := []domain.Fine{}
	if err := r.db.SelectContext(ctx, &fines, query); err != nil {
		return nil, fmt.Errorf("failed to list fines: %w", err)
	}

	return fines, nil
}

func (r *FineRepository) GetByID(ctx context.Context, id int64) (*domain.Fine, error) {
	query := fineSelect + ` WHERE f.id = $1`

	var fine domain.Fine
	err := r.db.GetContext(ctx, &fine, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fine: %w", err)
	}

	return &fine, nil
}

// Search runs the flexible fine query. Supplied criteria compose with AND;
// an empty result is a normal outcome and returns an empty slice. The caller
// guarantees at least one criterion is present.
func (r *FineRepository) Search(ctx context.Context, criteria domain.FineSearchCriteria) ([]domain.Fine, error) {
	query, args := buildFineSearchQuery(criteria)

	fines := []domain.Fine{}
	if err := r.db.SelectContext(ctx, &fines, query, args...); err != nil {
		return nil, fmt.Errorf("failed to search fines: %w", err)
	}

	return fines, nil
}

// buildFineSearchQuery assembles the dynamic WHERE clause: exact
// case-insensitive match on plate, case-insensitive substring match on owner
// and model, each trimmed before use.
func buildFineSearchQuery(criteria domain.FineSearchCriteria) (string, []interface{}) {
	criteria = criteria.Trimmed()

	var sb strings.Builder
	sb.WriteString(fineSelect)
	sb.WriteString(` WHERE 1=1`)

	args := []interface{}{}
	if criteria.Plate != "" {
		args = append(args, NormalizePlate(criteria.Plate))
		fmt.Fprintf(&sb, ` AND v.plate = $%d`, len(args))
	}
	if criteria.Owner != "" {
		args = append(args, "%"+criteria.Owner+"%")
		fmt.Fprintf(&sb, ` AND v.owner ILIKE $%d`, len(args))
	}
	if criteria.Model != "" {
		args = append(args, "%"+criteria.Model+"%")
		fmt.Fprintf(&sb, ` AND v.model ILIKE $%d`, len(args))
	}

	sb.WriteString(` ORDER BY f.occurred_at DESC`)

	return sb.String(), args
}

// Create inserts the fine and re-fetches it with its joined vehicle fields.
// The vehicle's existence is checked upstream; the foreign key is the
// storage-level backstop and surfaces as InvalidReferenceError.
func (r *FineRepository) Create(ctx context.Context, in domain.CreateFineInput) (*domain.Fine, error) {
	query := `
        INSERT INTO fines (vehicle_id, occurred_at, location, severity, amount)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id`

	var id int64
	err := r.db.QueryRowContext(ctx, query, in.VehicleID, in.OccurredAt, in.Location, in.Severity, in.Amount).
		Scan(&id)
	if isForeignKeyViolation(err) {
		return nil, &domain.InvalidReferenceError{VehicleID: in.VehicleID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create fine: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Update applies a partial update and returns the updated, enriched fine.
// Zero matched rows means the fine does not exist.
func (r *FineRepository) Update(ctx context.Context, id int64, in domain.UpdateFineInput) (*domain.Fine, error) {
	query := `
        UPDATE fines
        SET vehicle_id  = COALESCE($1, vehicle_id),
            occurred_at = COALESCE($2, occurred_at),
            location    = COALESCE($3, location),
            severity    = COALESCE($4, severity),
            amount      = COALESCE($5, amount)
        WHERE id = $6
        RETURNING id`

	var updated int64
	err := r.db.QueryRowContext(ctx, query, in.VehicleID, in.OccurredAt, in.Location, in.Severity, in.Amount, id).
		Scan(&updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if isForeignKeyViolation(err) {
		vehicleID := int64(0)
		if in.VehicleID != nil {
			vehicleID = *in.VehicleID
		}
		return nil, &domain.InvalidReferenceError{VehicleID: vehicleID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update fine: %w", err)
	}

	return r.GetByID(ctx, updated)
}

func (r *FineRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM fines WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete fine: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}
