package schedules

import "fmt"

// Describe arma el texto corto que la UI muestra junto a la mascota.
func Describe(s Schedule) string {
	if !s.Enabled {
		return "sin horario activo"
	}

	switch s.Kind {
	case KindInterval:
		if s.IntervalHours == 1 {
			return "cada hora"
		}
		if s.IntervalHours > 0 {
			return fmt.Sprintf("cada %g horas", s.IntervalHours)
		}
	case KindFixedTime:
		if len(s.Times) == 1 {
			return fmt.Sprintf("todos los días a las %s", s.Times[0])
		}
		if len(s.Times) > 1 {
			return fmt.Sprintf("%d veces al día", len(s.Times))
		}
	}

	return "sin horario activo"
}
