package entity

import "time"

// Feriado es un día no laborable del calendario.
type Feriado struct {
	ID          string
	Fecha       time.Time // solo la parte fecha es significativa
	Descripcion string
	CreatedAt   time.Time
}
