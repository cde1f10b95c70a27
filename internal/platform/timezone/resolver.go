package timezone

import (
	"strings"
	"time"

	// tzdb embebida: los contenedores pelados no traen /usr/share/zoneinfo.
	_ "time/tzdata"
)

// Default es la timezone de negocio cuando el usuario no configuró una
// (o configuró una inválida). "UTC" cuenta como no configurada: los
// clientes viejos mandaban "UTC" como placeholder.
const Default = "America/Sao_Paulo"

// Resolver valida identificadores IANA contra la tzdb de la plataforma.
// Nunca falla: siempre devuelve una location usable.
type Resolver struct {
	def string
}

func NewResolver(def string) *Resolver {
	def = strings.TrimSpace(def)
	if def == "" {
		def = Default
	}
	return &Resolver{def: def}
}

// Resolve normaliza el identificador del usuario. fellBack indica que se
// aplicó el default (candidato vacío, "UTC" o inválido); el caller decide
// si lo loguea, acá no hay I/O.
func (r *Resolver) Resolve(candidate string) (name string, loc *time.Location, fellBack bool) {
	c := strings.TrimSpace(candidate)
	if c == "" || c == "UTC" {
		name, loc = r.fallback()
		return name, loc, true
	}

	l, err := time.LoadLocation(c)
	if err != nil {
		name, loc = r.fallback()
		return name, loc, true
	}
	return c, l, false
}

func (r *Resolver) fallback() (string, *time.Location) {
	l, err := time.LoadLocation(r.def)
	if err != nil {
		// Solo posible con una tzdb rota o un default mal configurado.
		return "UTC", time.UTC
	}
	return r.def, l
}
