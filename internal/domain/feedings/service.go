package feedings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrDuplicateFeeding: el intento cayó dentro de la ventana de duplicados
	// del último registro. El caller decide si además notifica (ver el
	// generador de notificaciones).
	ErrDuplicateFeeding = errors.New("duplicate feeding")
)

type Service struct {
	repo       Repository
	thresholds Thresholds
	now        func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo:       repo,
		thresholds: DefaultThresholds(),
		now:        time.Now,
	}
}

type LogInput struct {
	UserID string

	// FedAt vacío = ahora. Permite cargar alimentaciones viejas a mano.
	FedAt       time.Time
	PortionSize *float64
	Notes       string
}

// Log registra una alimentación, rechazando duplicados contra el último
// registro de la mascota.
func (s *Service) Log(ctx context.Context, petID string, in LogInput) (FeedingEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" || strings.TrimSpace(in.UserID) == "" {
		return FeedingEvent{}, ErrInvalidInput
	}
	if in.PortionSize != nil && *in.PortionSize <= 0 {
		return FeedingEvent{}, ErrInvalidInput
	}

	now := s.now()
	fedAt := in.FedAt
	if fedAt.IsZero() {
		fedAt = now
	}

	last, err := s.repo.LastByPet(ctx, petID)
	if err != nil {
		return FeedingEvent{}, err
	}
	if last != nil && s.thresholds.IsDuplicate(last.FedAt, fedAt) {
		return FeedingEvent{}, ErrDuplicateFeeding
	}

	ev := FeedingEvent{
		ID:          uuid.NewString(),
		PetID:       petID,
		UserID:      strings.TrimSpace(in.UserID),
		FedAt:       fedAt,
		RecordedAt:  now,
		PortionSize: in.PortionSize,
		Notes:       strings.TrimSpace(in.Notes),
	}

	if err := s.repo.Create(ctx, ev); err != nil {
		return FeedingEvent{}, err
	}
	return ev, nil
}

func (s *Service) LastForPet(ctx context.Context, petID string) (*FeedingEvent, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.LastByPet(ctx, petID)
}

func (s *Service) ListByPet(ctx context.Context, petID string, limit int) ([]FeedingEvent, error) {
	return s.repo.ListByPet(ctx, petID, limit)
}
