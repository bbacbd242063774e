package audit

import (
	"context"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// Service consulta del log de operaciones. Las filas las escriben los casos de uso
// de negocio dentro de sus propias transacciones; aquí solo se listan.
type Service struct {
	logRepo repository.OperationLogRepository
}

// NewService construye el servicio.
func NewService(logRepo repository.OperationLogRepository) *Service {
	return &Service{logRepo: logRepo}
}

// List devuelve el log de operaciones, opcionalmente filtrado por tipo.
func (s *Service) List(ctx context.Context, operationType string, page dto.PageRequest) ([]*entity.OperationLog, error) {
	page.DefaultPage()
	return s.logRepo.List(operationType, page.Limit, page.Offset)
}
