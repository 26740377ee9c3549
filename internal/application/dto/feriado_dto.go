package dto

// CreateFeriadoRequest alta de un feriado del calendario (fecha YYYY-MM-DD).
type CreateFeriadoRequest struct {
	Fecha       string `json:"fecha" validate:"required"`
	Descripcion string `json:"descripcion,omitempty"`
}

// FeriadoResponse representación de salida de un feriado.
type FeriadoResponse struct {
	ID          string `json:"id"`
	Fecha       string `json:"fecha"`
	Descripcion string `json:"descripcion,omitempty"`
}
