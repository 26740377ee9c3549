package dto

import "github.com/shopspring/decimal"

// CreateCodigoRequest alta de un código del nomenclador.
// Franjas en formato HH:MM; DiasAplicables con letras L M X J V S D y F.
type CreateCodigoRequest struct {
	Codigo         string          `json:"codigo" validate:"required"`
	Descripcion    string          `json:"descripcion"`
	Tipo           string          `json:"tipo" validate:"required,oneof=guardia_pasiva guardia_activa hora_nocturna feriado fin_semana adicional"`
	DiasAplicables []string        `json:"dias_aplicables" validate:"required,min=1,dive,oneof=L M X J V S D F"`
	FranjaInicio   *string         `json:"franja_inicio,omitempty"`
	FranjaFin      *string         `json:"franja_fin,omitempty"`
	Factor         decimal.Decimal `json:"factor"`
	VigenciaDesde  string          `json:"vigencia_desde" validate:"required"`
	VigenciaHasta  *string         `json:"vigencia_hasta,omitempty"`
	Modalidad      string          `json:"modalidad" validate:"required,oneof=dentro_convenio fuera_convenio"`
}

// UpdateCodigoRequest edición parcial de un código.
type UpdateCodigoRequest struct {
	Descripcion    *string          `json:"descripcion,omitempty"`
	DiasAplicables []string         `json:"dias_aplicables,omitempty" validate:"omitempty,dive,oneof=L M X J V S D F"`
	FranjaInicio   *string          `json:"franja_inicio,omitempty"`
	FranjaFin      *string          `json:"franja_fin,omitempty"`
	Factor         *decimal.Decimal `json:"factor,omitempty"`
	VigenciaHasta  *string          `json:"vigencia_hasta,omitempty"`
}

// CodigoResponse representación de salida de un código.
type CodigoResponse struct {
	ID             string          `json:"id"`
	Codigo         string          `json:"codigo"`
	Descripcion    string          `json:"descripcion"`
	Tipo           string          `json:"tipo"`
	DiasAplicables []string        `json:"dias_aplicables"`
	FranjaInicio   *string         `json:"franja_inicio,omitempty"`
	FranjaFin      *string         `json:"franja_fin,omitempty"`
	Factor         decimal.Decimal `json:"factor"`
	VigenciaDesde  string          `json:"vigencia_desde"`
	VigenciaHasta  *string         `json:"vigencia_hasta,omitempty"`
	Activo         bool            `json:"activo"`
	Modalidad      string          `json:"modalidad"`
}

// BuscarAplicablesRequest consulta de códigos aplicables para una fecha y franja.
type BuscarAplicablesRequest struct {
	Fecha      string `query:"fecha" validate:"required"`
	HoraInicio string `query:"hora_inicio" validate:"required"`
	HoraFin    string `query:"hora_fin" validate:"required"`
	Modalidad  string `query:"modalidad" validate:"required,oneof=dentro_convenio fuera_convenio"`
}
