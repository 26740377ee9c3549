package entity

import "time"

// Guardia es una asignación de guardia: un titular para una fecha.
// (Fecha, Usuario) es único.
type Guardia struct {
	ID        string
	Fecha     time.Time // solo la parte fecha es significativa
	Usuario   string    // titular de la guardia
	Notas     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
