package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-feeding-engine/internal/domain/feedings"
)

type feedingRepo struct {
	mu   sync.RWMutex
	byID map[string]feedings.FeedingEvent
}

func NewFeedingRepo() feedings.Repository {
	return &feedingRepo{
		byID: make(map[string]feedings.FeedingEvent),
	}
}

func (r *feedingRepo) Create(ctx context.Context, ev feedings.FeedingEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(ev.ID) == "" {
		return errors.New("feeding id required")
	}
	if _, exists := r.byID[ev.ID]; exists {
		return errors.New("feeding already exists")
	}
	r.byID[ev.ID] = ev
	return nil
}

func (r *feedingRepo) LastByPet(ctx context.Context, petID string) (*feedings.FeedingEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var last *feedings.FeedingEvent
	for _, ev := range r.byID {
		if ev.PetID != petID {
			continue
		}
		ev := ev
		if last == nil || ev.FedAt.After(last.FedAt) {
			last = &ev
		}
	}
	// nil sin historial: ausencia no es error.
	return last, nil
}

func (r *feedingRepo) ListByPet(ctx context.Context, petID string, limit int) ([]feedings.FeedingEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 {
		limit = 50
	}

	out := make([]feedings.FeedingEvent, 0)
	for _, ev := range r.byID {
		if ev.PetID == petID {
			out = append(out, ev)
		}
	}

	// Más reciente primero, como el timeline de la app.
	sort.Slice(out, func(i, j int) bool {
		return out[i].FedAt.After(out[j].FedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
