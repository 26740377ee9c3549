package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/guslozua/bitacora-api/internal/application/codigos"
	"github.com/guslozua/bitacora-api/internal/application/feriados"
	"github.com/guslozua/bitacora-api/internal/application/guardias"
	"github.com/guslozua/bitacora-api/internal/application/incidentes"
	"github.com/guslozua/bitacora-api/internal/application/liquidaciones"
	"github.com/guslozua/bitacora-api/internal/application/tarifas"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TarifaUC      *tarifas.UseCase
	CodigoUC      *codigos.UseCase
	GuardiaUC     *guardias.UseCase
	IncidenteUC   *incidentes.UseCase
	LiquidacionUC *liquidaciones.UseCase
	FeriadoUC     *feriados.UseCase
	JWTSecret     string
}

// Router registra las rutas de la API. Todo el dominio va detrás del Bearer
// Token; la administración del nomenclador, tarifas y feriados exige además
// rol admin o supervisor, y las liquidaciones rol admin.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	administracion := RequireRol("admin", "supervisor")

	tarifasGroup := protected.Group("/tarifas")
	tarifaHandler := NewTarifaHandler(deps.TarifaUC)
	tarifasGroup.Get("/", tarifaHandler.List)
	tarifasGroup.Get("/vigente", tarifaHandler.Vigente)
	tarifasGroup.Get("/:id", tarifaHandler.GetByID)
	tarifasGroup.Post("/", administracion, tarifaHandler.Create)
	tarifasGroup.Put("/:id", administracion, tarifaHandler.Update)
	tarifasGroup.Delete("/:id", administracion, tarifaHandler.Desactivar)

	codigosGroup := protected.Group("/codigos")
	codigoHandler := NewCodigoHandler(deps.CodigoUC)
	codigosGroup.Get("/", codigoHandler.List)
	codigosGroup.Get("/aplicables", codigoHandler.Aplicables)
	codigosGroup.Get("/:id", codigoHandler.GetByID)
	codigosGroup.Post("/", administracion, codigoHandler.Create)
	codigosGroup.Put("/:id", administracion, codigoHandler.Update)
	codigosGroup.Delete("/:id", administracion, codigoHandler.Desactivar)

	guardiasGroup := protected.Group("/guardias")
	guardiaHandler := NewGuardiaHandler(deps.GuardiaUC)
	guardiasGroup.Post("/", guardiaHandler.Create)
	guardiasGroup.Get("/", guardiaHandler.List)
	guardiasGroup.Get("/:id", guardiaHandler.GetByID)
	guardiasGroup.Put("/:id", guardiaHandler.Update)
	guardiasGroup.Delete("/:id", guardiaHandler.Delete)

	incidentesGroup := protected.Group("/incidentes")
	incidenteHandler := NewIncidenteHandler(deps.IncidenteUC)
	incidentesGroup.Post("/", incidenteHandler.Create)
	incidentesGroup.Get("/:id", incidenteHandler.GetByID)
	incidentesGroup.Put("/:id", incidenteHandler.Update)
	incidentesGroup.Post("/:id/transicion", incidenteHandler.Transicion)
	incidentesGroup.Post("/:id/calculo", incidenteHandler.Calculo)
	incidentesGroup.Get("/:id/historial", incidenteHandler.Historial)

	liquidacionesGroup := protected.Group("/liquidaciones")
	liquidacionHandler := NewLiquidacionHandler(deps.LiquidacionUC)
	liquidacionesGroup.Get("/", liquidacionHandler.List)
	liquidacionesGroup.Get("/periodo/:periodo", liquidacionHandler.PorPeriodo)
	liquidacionesGroup.Get("/:id", liquidacionHandler.GetByID)
	liquidacionesGroup.Post("/generar", RequireRol("admin"), liquidacionHandler.Generar)
	liquidacionesGroup.Post("/:id/estado", RequireRol("admin"), liquidacionHandler.CambiarEstado)

	feriadosGroup := protected.Group("/feriados")
	feriadoHandler := NewFeriadoHandler(deps.FeriadoUC)
	feriadosGroup.Get("/", feriadoHandler.List)
	feriadosGroup.Post("/", administracion, feriadoHandler.Create)
	feriadosGroup.Delete("/:id", administracion, feriadoHandler.Delete)
}
