package handler

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"autofine/internal/domain"
	"autofine/internal/repository"
	"autofine/internal/service"
)

// memStore is an in-memory stand-in for both repositories, including the
// storage-level rules the real schema enforces: plate uniqueness and fine
// cascade on vehicle delete.
type memStore struct {
	nextVehicleID int64
	nextFineID    int64
	vehicles      map[int64]*domain.Vehicle
	fines         map[int64]*domain.Fine
}

func newMemStore() *memStore {
	return &memStore{
		vehicles: map[int64]*domain.Vehicle{},
		fines:    map[int64]*domain.Fine{},
	}
}

func (m *memStore) List(ctx context.Context) ([]domain.Vehicle, error) {
	out := []domain.Vehicle{}
	for _, v := range m.vehicles {
		out = append(out, *v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Plate < out[j].Plate })
	return out, nil
}

func (m *memStore) GetByID(ctx context.Context, id int64) (*domain.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, nil
	}
	copied := *v
	return &copied, nil
}

func (m *memStore) GetByPlate(ctx context.Context, plate string) (*domain.Vehicle, error) {
	plate = repository.NormalizePlate(plate)
	for _, v := range m.vehicles {
		if v.Plate == plate {
			copied := *v
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) IsPlateTaken(ctx context.Context, plate string, excludeID int64) (bool, error) {
	plate = repository.NormalizePlate(plate)
	for id, v := range m.vehicles {
		if v.Plate == plate && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(ctx context.Context, in domain.CreateVehicleInput) (*domain.Vehicle, error) {
	plate := repository.NormalizePlate(in.Plate)
	if taken, _ := m.IsPlateTaken(ctx, plate, 0); taken {
		return nil, &domain.DuplicatePlateError{Plate: plate}
	}

	m.nextVehicleID++
	v := &domain.Vehicle{
		ID:           m.nextVehicleID,
		Plate:        plate,
		Brand:        in.Brand,
		Model:        in.Model,
		Year:         in.Year,
		Owner:        in.Owner,
		RegisteredAt: time.Now(),
	}
	m.vehicles[v.ID] = v
	copied := *v
	return &copied, nil
}

func (m *memStore) Update(ctx context.Context, id int64, in domain.UpdateVehicleInput) (*domain.Vehicle, error) {
	v, ok := m.vehicles[id]
	if !ok {
		return nil, nil
	}

	if in.Plate != nil {
		plate := repository.NormalizePlate(*in.Plate)
		if taken, _ := m.IsPlateTaken(ctx, plate, id); taken {
			return nil, &domain.DuplicatePlateError{Plate: plate}
		}
		v.Plate = plate
	}
	if in.Brand != nil {
		v.Brand = in.Brand
	}
	if in.Model != nil {
		v.Model = *in.Model
	}
	if in.Year != nil {
		v.Year = in.Year
	}
	if in.Owner != nil {
		v.Owner = *in.Owner
	}

	copied := *v
	return &copied, nil
}

// Delete removes the vehicle and cascades to its fines, like the schema's
// ON DELETE CASCADE.
func (m *memStore) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := m.vehicles[id]; !ok {
		return false, nil
	}
	delete(m.vehicles, id)
	for fineID, fine := range m.fines {
		if fine.VehicleID == id {
			delete(m.fines, fineID)
		}
	}
	return true, nil
}

// fineStore adapts memStore to the fine side of the contract. A separate
// type keeps the overlapping method names (List, GetByID, ...) apart.
type fineStore struct {
	m *memStore
}

func (s fineStore) enrich(fine *domain.Fine) {
	if v, ok := s.m.vehicles[fine.VehicleID]; ok {
		fine.Plate = v.Plate
		fine.VehicleModel = v.Model
		fine.VehicleBrand = v.Brand
		fine.Owner = v.Owner
	}
}

func (s fineStore) List(ctx context.Context) ([]domain.Fine, error) {
	out := []domain.Fine{}
	for _, fine := range s.m.fines {
		copied := *fine
		s.enrich(&copied)
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

func (s fineStore) GetByID(ctx context.Context, id int64) (*domain.Fine, error) {
	fine, ok := s.m.fines[id]
	if !ok {
		return nil, nil
	}
	copied := *fine
	s.enrich(&copied)
	return &copied, nil
}

func (s fineStore) Search(ctx context.Context, criteria domain.FineSearchCriteria) ([]domain.Fine, error) {
	criteria = criteria.Trimmed()

	all, _ := s.List(ctx)
	out := []domain.Fine{}
	for _, fine := range all {
		if criteria.Plate != "" && fine.Plate != repository.NormalizePlate(criteria.Plate) {
			continue
		}
		if criteria.Owner != "" && !strings.Contains(strings.ToLower(fine.Owner), strings.ToLower(criteria.Owner)) {
			continue
		}
		if criteria.Model != "" && !strings.Contains(strings.ToLower(fine.VehicleModel), strings.ToLower(criteria.Model)) {
			continue
		}
		out = append(out, fine)
	}
	return out, nil
}

func (s fineStore) Create(ctx context.Context, in domain.CreateFineInput) (*domain.Fine, error) {
	if _, ok := s.m.vehicles[in.VehicleID]; !ok {
		return nil, &domain.InvalidReferenceError{VehicleID: in.VehicleID}
	}

	s.m.nextFineID++
	fine := &domain.Fine{
		ID:         s.m.nextFineID,
		VehicleID:  in.VehicleID,
		OccurredAt: *in.OccurredAt,
		Location:   in.Location,
		Severity:   in.Severity,
		Amount:     in.Amount,
	}
	s.m.fines[fine.ID] = fine
	return s.GetByID(ctx, fine.ID)
}

func (s fineStore) Update(ctx context.Context, id int64, in domain.UpdateFineInput) (*domain.Fine, error) {
	fine, ok := s.m.fines[id]
	if !ok {
		return nil, nil
	}

	if in.VehicleID != nil {
		if _, ok := s.m.vehicles[*in.VehicleID]; !ok {
			return nil, &domain.InvalidReferenceError{VehicleID: *in.VehicleID}
		}
		fine.VehicleID = *in.VehicleID
	}
	if in.OccurredAt != nil {
		fine.OccurredAt = *in.OccurredAt
	}
	if in.Location != nil {
		fine.Location = *in.Location
	}
	if in.Severity != nil {
		fine.Severity = *in.Severity
	}
	if in.Amount != nil {
		fine.Amount = *in.Amount
	}

	return s.GetByID(ctx, id)
}

func (s fineStore) Delete(ctx context.Context, id int64) (bool, error) {
	if _, ok := s.m.fines[id]; !ok {
		return false, nil
	}
	delete(s.m.fines, id)
	return true, nil
}

// newTestRouter wires the full stack over the in-memory store, with the same
// routes main registers.
func newTestRouter() *chi.Mux {
	store := newMemStore()
	vehicleService := service.NewVehicleService(store)
	fineService := service.NewFineService(fineStore{m: store}, store)
	vehicleHandler := NewVehicleHandler(vehicleService)
	fineHandler := NewFineHandler(fineService)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Route("/api", func(r chi.Router) {
		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", vehicleHandler.ListVehicles)
			r.Post("/", vehicleHandler.CreateVehicle)
			r.Get("/{id}", vehicleHandler.GetVehicle)
			r.Put("/{id}", vehicleHandler.UpdateVehicle)
			r.Delete("/{id}", vehicleHandler.DeleteVehicle)
		})
		r.Route("/fines", func(r chi.Router) {
			r.Get("/search", fineHandler.SearchFines)
			r.Get("/", fineHandler.ListFines)
			r.Post("/", fineHandler.CreateFine)
			r.Get("/{id}", fineHandler.GetFine)
			r.Put("/{id}", fineHandler.UpdateFine)
			r.Delete("/{id}", fineHandler.DeleteFine)
		})
	})
	return r
}
