package product

import (
	"context"

	"github.com/ngtrphuong/ioe/internal/application/dto"
)

// BarcodeLookupService consulta metadatos de un código de barras en un servicio
// externo. Best-effort: (nil, nil) significa código no encontrado o servicio no
// configurado; el alta de producto nunca depende de esta consulta.
type BarcodeLookupService interface {
	Lookup(ctx context.Context, barcode string) (*dto.BarcodeLookupResponse, error)
}
