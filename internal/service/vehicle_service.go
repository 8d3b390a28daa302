package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"autofine/internal/domain"
	"autofine/internal/repository"
)

// VehicleStore is the persistence contract the vehicle service depends on,
// implemented by repository.VehicleRepository.
type VehicleStore interface {
	List(ctx context.Context) ([]domain.Vehicle, error)
	GetByID(ctx context.Context, id int64) (*domain.Vehicle, error)
	GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error)
	IsPlateTaken(ctx context.Context, plate string, excludeID int64) (bool, error)
	Create(ctx context.Context, in domain.CreateVehicleInput) (*domain.Vehicle, error)
	Update(ctx context.Context, id int64, in domain.UpdateVehicleInput) (*domain.Vehicle, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

var validate = validator.New()

// validateInput runs tag validation and converts the first failure into a
// domain.ValidationError the handlers know how to map.
func validateInput(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		fieldErrors = validationErrs
	}
	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			return &domain.ValidationError{Field: strings.ToLower(fe.Field()), Reason: "is required"}
		}
		return &domain.ValidationError{Field: strings.ToLower(fe.Field()), Reason: "is invalid"}
	}

	return &domain.ValidationError{Field: "payload", Reason: "is invalid"}
}

type VehicleService struct {
	vehicles VehicleStore
}

func NewVehicleService(vehicles VehicleStore) *VehicleService {
	return &VehicleService{vehicles: vehicles}
}

func (s *VehicleService) List(ctx context.Context) ([]domain.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *VehicleService) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	return s.vehicles.GetByID(ctx, id)
}

func (s *VehicleService) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	return s.vehicles.GetByPlate(ctx, plate)
}

// Create validates the input, normalizes the plate and delegates. Required
// string fields must be non-empty after trimming.
func (s *VehicleService) Create(ctx context.Context, in domain.CreateVehicleInput) (*domain.Vehicle, error) {
	in.Plate = repository.NormalizePlate(in.Plate)
	in.Model = strings.TrimSpace(in.Model)
	in.Owner = strings.TrimSpace(in.Owner)

	if err := validateInput(in); err != nil {
		return nil, err
	}

	return s.vehicles.Create(ctx, in)
}

// Update rejects empty payloads and required fields explicitly set to blank,
// then delegates. nil fields are left unchanged.
func (s *VehicleService) Update(ctx context.Context, id int64, in domain.UpdateVehicleInput) (*domain.Vehicle, error) {
	if in.Empty() {
		return nil, &domain.ValidationError{Field: "payload", Reason: "must not be empty"}
	}

	if in.Plate != nil {
		plate := repository.NormalizePlate(*in.Plate)
		if plate == "" {
			return nil, &domain.ValidationError{Field: "plate", Reason: "must not be empty"}
		}
		in.Plate = &plate
	}
	if in.Model != nil {
		model := strings.TrimSpace(*in.Model)
		if model == "" {
			return nil, &domain.ValidationError{Field: "model", Reason: "must not be empty"}
		}
		in.Model = &model
	}
	if in.Owner != nil {
		owner := strings.TrimSpace(*in.Owner)
		if owner == "" {
			return nil, &domain.ValidationError{Field: "owner", Reason: "must not be empty"}
		}
		in.Owner = &owner
	}

	return s.vehicles.Update(ctx, id, in)
}

func (s *VehicleService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.vehicles.Delete(ctx, id)
}
