package schedules

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	Kind          Kind
	Times         []string
	IntervalHours float64
}

// Create valida estricto al escribir: toda entrada "HH:MM" tiene que parsear
// y el intervalo ser positivo. La evaluación (NextAt) es tolerante porque
// también recibe data escrita por otros sistemas; acá no hay excusa.
func (s *Service) Create(ctx context.Context, petID string, in CreateInput) (Schedule, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return Schedule{}, ErrInvalidInput
	}

	times, err := normalizeInput(in.Kind, in.Times, in.IntervalHours)
	if err != nil {
		return Schedule{}, err
	}

	now := s.now()
	sch := Schedule{
		ID:            uuid.NewString(),
		PetID:         petID,
		Kind:          in.Kind,
		Times:         times,
		IntervalHours: in.IntervalHours,
		Enabled:       true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Create(ctx, sch); err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

func (s *Service) Update(ctx context.Context, id string, in CreateInput) (Schedule, error) {
	sch, err := s.get(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	times, err := normalizeInput(in.Kind, in.Times, in.IntervalHours)
	if err != nil {
		return Schedule{}, err
	}

	sch.Kind = in.Kind
	sch.Times = times
	sch.IntervalHours = in.IntervalHours
	sch.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, sch); err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

func (s *Service) SetEnabled(ctx context.Context, id string, enabled bool) (Schedule, error) {
	sch, err := s.get(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	sch.Enabled = enabled
	sch.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, sch); err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

// SetOverride suprime el horario hasta `until`. nil levanta el override.
func (s *Service) SetOverride(ctx context.Context, id string, until *time.Time) (Schedule, error) {
	sch, err := s.get(ctx, id)
	if err != nil {
		return Schedule{}, err
	}

	now := s.now()
	if until != nil && !until.After(now) {
		return Schedule{}, ErrInvalidInput
	}

	sch.OverrideUntil = until
	sch.UpdatedAt = now

	if err := s.repo.Update(ctx, sch); err != nil {
		return Schedule{}, err
	}
	return sch, nil
}

func (s *Service) ListByPet(ctx context.Context, petID string) ([]Schedule, error) {
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) get(ctx context.Context, id string) (Schedule, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Schedule{}, ErrInvalidInput
	}
	sch, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Schedule{}, ErrNotFound
		}
		// Una falla real del repositorio no es un "no existe".
		return Schedule{}, err
	}
	return sch, nil
}

func normalizeInput(kind Kind, times []string, intervalHours float64) ([]string, error) {
	switch kind {
	case KindFixedTime:
		if len(times) == 0 {
			return nil, ErrInvalidInput
		}
		out := make([]string, 0, len(times))
		for _, entry := range times {
			if _, _, err := ParseClock(entry); err != nil {
				return nil, ErrInvalidInput
			}
			out = append(out, strings.TrimSpace(entry))
		}
		return out, nil
	case KindInterval:
		if intervalHours <= 0 {
			return nil, ErrInvalidInput
		}
		return nil, nil
	default:
		return nil, ErrInvalidInput
	}
}
