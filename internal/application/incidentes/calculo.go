package incidentes

import (
	"context"
	"fmt"

	"github.com/guslozua/bitacora-api/internal/domain"
	"github.com/guslozua/bitacora-api/internal/domain/entity"
	"github.com/guslozua/bitacora-api/internal/domain/facturacion"
	"github.com/guslozua/bitacora-api/internal/domain/repository"
)

// CalcularFacturacion computa el desglose de facturación de un incidente:
// resuelve la tarifa vigente para la fecha del incidente (corte duro si no
// hay ninguna), consulta el calendario de feriados y ejecuta la calculadora
// pura. Si el incidente no está liquidado, los importes por código se
// persisten como snapshot en la misma transacción; un incidente liquidado se
// recalcula en memoria pero nunca se toca lo persistido.
func (uc *UseCase) CalcularFacturacion(ctx context.Context, id string) (*facturacion.Desglose, error) {
	incidente, err := uc.incRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if incidente == nil {
		return nil, fmt.Errorf("incidente %s: %w", id, domain.ErrNotFound)
	}
	if incidente.Codigos == nil {
		codigos, err := uc.incRepo.ListCodigos(id)
		if err != nil {
			return nil, err
		}
		incidente.Codigos = codigos
	}

	catalogo := make([]*entity.CodigoFacturacion, 0, len(incidente.Codigos))
	for _, ca := range incidente.Codigos {
		cod, err := uc.codigoRepo.GetByID(ca.CodigoID)
		if err != nil {
			return nil, err
		}
		if cod == nil {
			return nil, fmt.Errorf("codigo %s del incidente: %w", ca.CodigoID, domain.ErrNotFound)
		}
		catalogo = append(catalogo, cod)
	}

	tarifa, err := uc.tarifas.Resolver(incidente.Inicio)
	if err != nil {
		return nil, err
	}
	esFeriado, err := uc.feriados.EsFeriado(incidente.Inicio)
	if err != nil {
		return nil, err
	}

	desglose, err := facturacion.Calcular(facturacion.Parametros{
		Inicio:    incidente.Inicio,
		Fin:       incidente.Fin,
		EsFeriado: esFeriado,
		Codigos:   catalogo,
		Tarifa:    tarifa,
	})
	if err != nil {
		return nil, err
	}

	if incidente.Bloqueado() {
		return desglose, nil
	}

	// clave por ID de catálogo: dos versiones de un mismo código comparten la
	// cadena pero nunca el ID.
	importes := make(map[string]int) // codigo_id -> índice de línea
	for i, linea := range desglose.Lineas {
		importes[linea.CodigoID] = i
	}
	err = uc.txRunner.Run(ctx, func(incRepo repository.IncidenteRepository) error {
		for _, ca := range incidente.Codigos {
			idx, ok := importes[ca.CodigoID]
			if !ok {
				continue
			}
			if err := incRepo.UpdateCodigoImporte(ca.ID, desglose.Lineas[idx].Importe); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return desglose, nil
}
