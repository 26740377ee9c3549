package dto

// CreateGuardiaRequest alta de una guardia (fecha YYYY-MM-DD, titular libre).
type CreateGuardiaRequest struct {
	Fecha   string `json:"fecha" validate:"required"`
	Usuario string `json:"usuario" validate:"required"`
	Notas   string `json:"notas,omitempty"`
}

// UpdateGuardiaRequest edición parcial de una guardia.
type UpdateGuardiaRequest struct {
	Usuario *string `json:"usuario,omitempty"`
	Notas   *string `json:"notas,omitempty"`
}

// GuardiaResponse representación de salida de una guardia.
type GuardiaResponse struct {
	ID      string `json:"id"`
	Fecha   string `json:"fecha"`
	Usuario string `json:"usuario"`
	Notas   string `json:"notas,omitempty"`
}
