package feedcheck

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"pet-feeding-engine/internal/domain/feedings"
	"pet-feeding-engine/internal/domain/notifications"
	"pet-feeding-engine/internal/domain/pets"
	"pet-feeding-engine/internal/domain/schedules"
	"pet-feeding-engine/internal/platform/logger"
	"pet-feeding-engine/internal/platform/timezone"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// DefaultLimit acota el widget de "próximas alimentaciones" del hogar.
const DefaultLimit = 5

// Service orquesta la evaluación sobre todas las mascotas de un hogar:
// trae la data por los puertos, corre la lógica pura y entrega las
// notificaciones al Sink. Es la única pieza de este core que loguea.
type Service struct {
	pets      pets.Repository
	schedules schedules.Repository
	feedings  feedings.Repository
	sink      notifications.Sink

	resolver *timezone.Resolver
	gen      *notifications.Generator

	log logger.Logger
	now func() time.Time
}

type Deps struct {
	Pets      pets.Repository
	Schedules schedules.Repository
	Feedings  feedings.Repository
	Sink      notifications.Sink

	// Opcionales; nil aplica los defaults de negocio.
	Resolver  *timezone.Resolver
	Generator *notifications.Generator
	Log       logger.Logger
}

func NewService(d Deps) *Service {
	resolver := d.Resolver
	if resolver == nil {
		resolver = timezone.NewResolver("")
	}
	gen := d.Generator
	if gen == nil {
		gen = notifications.NewGenerator(feedings.DefaultThresholds())
	}
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}

	return &Service{
		pets:      d.Pets,
		schedules: d.Schedules,
		feedings:  d.Feedings,
		sink:      d.Sink,
		resolver:  resolver,
		gen:       gen,
		log:       log,
		now:       time.Now,
	}
}

// Upcoming devuelve las próximas alimentaciones del hogar, ordenadas
// ascendente y acotadas a limit (<= 0 aplica DefaultLimit). Una mascota con
// data rota se loguea y se salta: nunca tumba la agregación completa.
func (s *Service) Upcoming(ctx context.Context, householdID, tz string, limit int) ([]schedules.NextFeeding, error) {
	if strings.TrimSpace(householdID) == "" {
		return nil, ErrInvalidInput
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	loc := s.resolveLocation(tz)

	household, err := s.pets.ListByHousehold(ctx, householdID)
	if err != nil {
		return nil, err
	}

	now := s.now()

	// La evaluación por mascota es pura y no comparte estado: un goroutine
	// por mascota, sin locks más allá del slice de resultados.
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		out []schedules.NextFeeding
	)

	for _, p := range household {
		wg.Add(1)
		go func(p pets.Pet) {
			defer wg.Done()

			nf, _, err := s.evaluatePet(ctx, p, now, loc)
			if err != nil {
				s.log.Warn("se salta mascota en la agregación", map[string]any{
					"pet_id": p.ID,
					"error":  err.Error(),
				})
				return
			}
			if nf == nil {
				return
			}

			nf.Overdue = nf.At.Before(now)

			mu.Lock()
			out = append(out, *nf)
			mu.Unlock()
		}(p)
	}
	wg.Wait()

	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Equal(out[j].At) {
			return out[i].PetID < out[j].PetID
		}
		return out[i].At.Before(out[j].At)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// CheckAndNotify corre la pasada periódica del hogar: por cada mascota con
// próxima alimentación resoluble genera las notificaciones que correspondan
// y las publica en el Sink. Devuelve cuántas publicó. El generador no
// deduplica; si el producto no quiere avisos repetidos, eso se resuelve en
// el sink.
func (s *Service) CheckAndNotify(ctx context.Context, householdID, userID, tz string) (int, error) {
	if strings.TrimSpace(householdID) == "" || strings.TrimSpace(userID) == "" {
		return 0, ErrInvalidInput
	}

	loc := s.resolveLocation(tz)

	household, err := s.pets.ListByHousehold(ctx, householdID)
	if err != nil {
		return 0, err
	}

	now := s.now()
	published := 0

	for _, p := range household {
		nf, lastFedAt, err := s.evaluatePet(ctx, p, now, loc)
		if err != nil {
			s.log.Warn("se salta mascota en el chequeo", map[string]any{
				"pet_id": p.ID,
				"error":  err.Error(),
			})
			continue
		}
		if nf == nil {
			continue
		}

		ns := s.gen.Generate(p, nf.At, userID, lastFedAt, now, loc)
		if len(ns) == 0 {
			continue
		}
		if err := s.sink.Publish(ctx, ns...); err != nil {
			s.log.Error("no se pudieron publicar notificaciones", map[string]any{
				"pet_id": p.ID,
				"error":  err.Error(),
			})
			continue
		}
		published += len(ns)
	}

	return published, nil
}

// NotifyScheduleChanged re-evalúa a la mascota después de un cambio de
// horario y publica el aviso con el nuevo próximo instante. Si nada
// resuelve no hay aviso y no es un error.
func (s *Service) NotifyScheduleChanged(ctx context.Context, petID, userID, tz string) (*schedules.NextFeeding, error) {
	if strings.TrimSpace(petID) == "" || strings.TrimSpace(userID) == "" {
		return nil, ErrInvalidInput
	}

	loc := s.resolveLocation(tz)

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	nf, _, err := s.evaluatePet(ctx, p, now, loc)
	if err != nil || nf == nil {
		return nil, err
	}

	n := s.gen.ScheduleChanged(p, nf.At, userID, now, loc)
	if err := s.sink.Publish(ctx, n); err != nil {
		return nil, err
	}
	return nf, nil
}

// NextForPet expone la consulta puntual que usan los handlers: próxima
// alimentación de una sola mascota, nil si no hay nada agendado.
func (s *Service) NextForPet(ctx context.Context, petID, tz string) (*schedules.NextFeeding, error) {
	if strings.TrimSpace(petID) == "" {
		return nil, ErrInvalidInput
	}

	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}
	nf, _, err := s.evaluatePet(ctx, p, s.now(), s.resolveLocation(tz))
	return nf, err
}

// evaluatePet trae los horarios y el último registro una sola vez y devuelve
// ambos: el último también le sirve al caller para el chequeo de duplicados.
func (s *Service) evaluatePet(ctx context.Context, p pets.Pet, now time.Time, loc *time.Location) (*schedules.NextFeeding, *time.Time, error) {
	scheds, err := s.schedules.ListByPet(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}

	last, err := s.feedings.LastByPet(ctx, p.ID)
	if err != nil {
		return nil, nil, err
	}
	var lastFedAt *time.Time
	if last != nil {
		lastFedAt = &last.FedAt
	}

	nf, diags := schedules.NextAt(p, scheds, lastFedAt, now, loc)
	for _, d := range diags {
		s.log.Warn("fallback en la evaluación de horarios", map[string]any{
			"pet_id":      p.ID,
			"schedule_id": d.ScheduleID,
			"code":        string(d.Code),
			"detail":      d.Message,
		})
	}
	return nf, lastFedAt, nil
}

func (s *Service) resolveLocation(tz string) *time.Location {
	name, loc, fellBack := s.resolver.Resolve(tz)
	if fellBack {
		s.log.Warn("timezone inválida o ausente, se usa el default", map[string]any{
			"candidate": tz,
			"resolved":  name,
		})
	}
	return loc
}
