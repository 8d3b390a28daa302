package service

import (
	"context"
	"strings"
	"time"

	"autofine/internal/domain"
)

// FineStore is the persistence contract the fine service depends on,
// implemented by repository.FineRepository.
type FineStore interface {
	List(ctx context.Context) ([]domain.Fine, error)
	GetByID(ctx context.Context, id int64) (*domain.Fine, error)
	Search(ctx context.Context, criteria domain.FineSearchCriteria) ([]domain.Fine, error)
	Create(ctx context.Context, in domain.CreateFineInput) (*domain.Fine, error)
	Update(ctx context.Context, id int64, in domain.UpdateFineInput) (*domain.Fine, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type FineService struct {
	fines    FineStore
	vehicles VehicleStore
}

func NewFineService(fines FineStore, vehicles VehicleStore) *FineService {
	return &FineService{fines: fines, vehicles: vehicles}
}

func (s *FineService) List(ctx context.Context) ([]domain.Fine, error) {
	return s.fines.List(ctx)
}

func (s *FineService) GetByID(ctx context.Context, id int64) (*domain.Fine, error) {
	return s.fines.GetByID(ctx, id)
}

// Search runs the flexible query. When the plate criterion is present the
// matching vehicle (or nil) is returned alongside the fines so the caller
// can report whose record was consulted. The at-least-one-criterion rule is
// the caller's responsibility.
func (s *FineService) Search(ctx context.Context, criteria domain.FineSearchCriteria) (*domain.Vehicle, []domain.Fine, error) {
	criteria = criteria.Trimmed()

	fines, err := s.fines.Search(ctx, criteria)
	if err != nil {
		return nil, nil, err
	}

	var vehicle *domain.Vehicle
	if criteria.Plate != "" {
		vehicle, err = s.vehicles.GetByPlate(ctx, criteria.Plate)
		if err != nil {
			return nil, nil, err
		}
	}

	return vehicle, fines, nil
}

// Create validates the input, fills the occurrence-time and severity
// defaults, and confirms the referenced vehicle exists before inserting.
// The foreign key at the storage layer remains the backstop.
func (s *FineService) Create(ctx context.Context, in domain.CreateFineInput) (*domain.Fine, error) {
	in.Location = strings.TrimSpace(in.Location)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	if in.OccurredAt == nil {
		now := time.Now()
		in.OccurredAt = &now
	}
	if strings.TrimSpace(in.Severity) == "" {
		in.Severity = domain.SeverityMedium
	}

	vehicle, err := s.vehicles.GetByID(ctx, in.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, &domain.InvalidReferenceError{VehicleID: in.VehicleID}
	}

	return s.fines.Create(ctx, in)
}

// Update applies a partial update. A reassignment to another vehicle is
// checked for existence the same way create is.
func (s *FineService) Update(ctx context.Context, id int64, in domain.UpdateFineInput) (*domain.Fine, error) {
	if in.Empty() {
		return nil, &domain.ValidationError{Field: "payload", Reason: "must not be empty"}
	}

	if in.Location != nil {
		location := strings.TrimSpace(*in.Location)
		if location == "" {
			return nil, &domain.ValidationError{Field: "location", Reason: "must not be empty"}
		}
		in.Location = &location
	}

	if in.VehicleID != nil {
		vehicle, err := s.vehicles.GetByID(ctx, *in.VehicleID)
		if err != nil {
			return nil, err
		}
		if vehicle == nil {
			return nil, &domain.InvalidReferenceError{VehicleID: *in.VehicleID}
		}
	}

	return s.fines.Update(ctx, id, in)
}

func (s *FineService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.fines.Delete(ctx, id)
}
