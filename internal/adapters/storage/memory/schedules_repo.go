package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-feeding-engine/internal/domain/schedules"
)

type scheduleRepo struct {
	mu   sync.RWMutex
	byID map[string]schedules.Schedule
}

func NewScheduleRepo() schedules.Repository {
	return &scheduleRepo{
		byID: make(map[string]schedules.Schedule),
	}
}

func (r *scheduleRepo) Create(ctx context.Context, sch schedules.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sch.ID) == "" {
		return errors.New("schedule id required")
	}
	if _, exists := r.byID[sch.ID]; exists {
		return errors.New("schedule already exists")
	}
	r.byID[sch.ID] = sch
	return nil
}

func (r *scheduleRepo) Update(ctx context.Context, sch schedules.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(sch.ID) == "" {
		return errors.New("schedule id required")
	}
	if _, exists := r.byID[sch.ID]; !exists {
		return schedules.ErrNotFound
	}
	r.byID[sch.ID] = sch
	return nil
}

func (r *scheduleRepo) GetByID(ctx context.Context, id string) (schedules.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// El contrato del puerto pide el sentinel del dominio.
	sch, ok := r.byID[id]
	if !ok {
		return schedules.Schedule{}, schedules.ErrNotFound
	}
	return sch, nil
}

func (r *scheduleRepo) ListByPet(ctx context.Context, petID string) ([]schedules.Schedule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schedules.Schedule, 0)
	for _, sch := range r.byID {
		if sch.PetID == petID {
			out = append(out, sch)
		}
	}

	// Orden estable para que la precedencia entre horarios sea reproducible.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})

	return out, nil
}
