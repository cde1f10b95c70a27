package schedules

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"pet-feeding-engine/internal/domain/pets"
)

// FallbackIntervalHours se sustituye cuando un horario de intervalo trae
// un valor <= 0 (data sucia de clientes viejos).
const FallbackIntervalHours = 8.0

// NextAt calcula el único próximo instante de alimentación de la mascota.
//
// Precedencia consolidada (el sistema original la calculaba en tres lugares
// con reglas sutilmente distintas):
//  1. horarios fijos habilitados y sin override: cada "HH:MM" en hora local
//     de hoy, o mañana si ya pasó; gana el más temprano.
//  2. horarios por intervalo: última alimentación + N*intervalo hasta quedar
//     estrictamente en el futuro; sin historial, now + intervalo.
//  3. el intervalo de respaldo de la mascota, con la misma regla de avance.
//
// Devuelve nil cuando nada resuelve: eso es un resultado válido ("no hay
// nada agendado"), no un error. El Overdue de un resultado fresco siempre
// es false; clasificarlo contra un "now" posterior es trabajo del caller.
func NextAt(pet pets.Pet, scheds []Schedule, lastFeeding *time.Time, now time.Time, loc *time.Location) (*NextFeeding, []Diagnostic) {
	if loc == nil {
		loc = time.UTC
	}

	var diags []Diagnostic

	// 1. Horarios fijos primero.
	if nf, ds := nextFixed(pet.ID, scheds, now, loc); nf != nil || len(ds) > 0 {
		diags = append(diags, ds...)
		if nf != nil {
			return nf, diags
		}
	}

	// 2. Horarios por intervalo.
	if nf, ds := nextInterval(pet.ID, scheds, lastFeeding, now); nf != nil || len(ds) > 0 {
		diags = append(diags, ds...)
		if nf != nil {
			return nf, diags
		}
	}

	// 3. Intervalo de respaldo de la mascota.
	if pet.FeedingIntervalHours != nil && *pet.FeedingIntervalHours > 0 {
		return &NextFeeding{
			PetID: pet.ID,
			At:    advance(lastFeeding, *pet.FeedingIntervalHours, now),
		}, diags
	}

	return nil, diags
}

func nextFixed(petID string, scheds []Schedule, now time.Time, loc *time.Location) (*NextFeeding, []Diagnostic) {
	var diags []Diagnostic
	var best *NextFeeding

	localNow := now.In(loc)
	y, mo, d := localNow.Date()

	for _, sch := range scheds {
		if sch.Kind != KindFixedTime || !sch.activeAt(now) {
			continue
		}

		for _, entry := range sch.Times {
			h, m, err := ParseClock(entry)
			if err != nil {
				// Se salta solo esta entrada: el resto del horario y los
				// demás horarios siguen evaluándose.
				diags = append(diags, Diagnostic{
					Code:       DiagUnparseableTime,
					ScheduleID: sch.ID,
					Message:    fmt.Sprintf("entrada %q ilegible: %v", entry, err),
				})
				continue
			}

			candidate := time.Date(y, mo, d, h, m, 0, 0, loc)
			if !candidate.After(now) {
				candidate = candidate.AddDate(0, 0, 1)
			}

			if best == nil || candidate.Before(best.At) {
				best = &NextFeeding{
					PetID:            petID,
					At:               candidate,
					SourceScheduleID: sch.ID,
				}
			}
		}
	}

	return best, diags
}

func nextInterval(petID string, scheds []Schedule, lastFeeding *time.Time, now time.Time) (*NextFeeding, []Diagnostic) {
	var diags []Diagnostic
	var best *NextFeeding

	for _, sch := range scheds {
		if sch.Kind != KindInterval || !sch.activeAt(now) {
			continue
		}

		hours := sch.IntervalHours
		if hours <= 0 {
			diags = append(diags, Diagnostic{
				Code:       DiagInvalidInterval,
				ScheduleID: sch.ID,
				Message:    fmt.Sprintf("intervalo %v inválido, se usa %v", sch.IntervalHours, FallbackIntervalHours),
			})
			hours = FallbackIntervalHours
		}

		candidate := advance(lastFeeding, hours, now)
		if best == nil || candidate.Before(best.At) {
			best = &NextFeeding{
				PetID:            petID,
				At:               candidate,
				SourceScheduleID: sch.ID,
			}
		}
	}

	return best, diags
}

// advance devuelve last + n*hours para el menor n que quede estrictamente
// después de now. Sin historial, arranca desde now.
func advance(lastFeeding *time.Time, hours float64, now time.Time) time.Time {
	step := time.Duration(hours * float64(time.Hour))

	if lastFeeding == nil {
		return now.Add(step)
	}

	next := lastFeeding.Add(step)
	for !next.After(now) {
		next = next.Add(step)
	}
	return next
}

// ParseClock valida una entrada "HH:MM" (00-23 / 00-59).
func ParseClock(entry string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(entry), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("se esperaba HH:MM, vino %q", entry)
	}

	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("hora no numérica en %q", entry)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("minuto no numérico en %q", entry)
	}

	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("hora fuera de rango en %q", entry)
	}
	return hour, minute, nil
}
