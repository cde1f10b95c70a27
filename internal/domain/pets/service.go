package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
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
	Name    string
	Species Species

	FeedingIntervalHours *float64
}

func (s *Service) Create(ctx context.Context, householdID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(householdID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	if in.Species != "" && in.Species != SpeciesDog && in.Species != SpeciesCat {
		return Pet{}, ErrInvalidInput
	}
	// El intervalo de respaldo es opcional, pero si viene tiene que ser positivo.
	if in.FeedingIntervalHours != nil && *in.FeedingIntervalHours <= 0 {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:                   uuid.NewString(),
		HouseholdID:          strings.TrimSpace(householdID),
		Name:                 strings.TrimSpace(in.Name),
		Species:              in.Species,
		FeedingIntervalHours: in.FeedingIntervalHours,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByHousehold(ctx context.Context, householdID string) ([]Pet, error) {
	return s.repo.ListByHousehold(ctx, householdID)
}
