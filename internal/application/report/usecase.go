package report

import (
	"context"
	"time"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// ReportUseCase reportes de gestión: resumen de ventas, productos más vendidos y
// valorización del inventario. Los agregados viven en SQL; aquí solo se da forma.
type ReportUseCase struct {
	reportRepo  repository.ReportRepository
	invRepo     repository.InventoryRepository
	productRepo repository.ProductRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	invRepo repository.InventoryRepository,
	productRepo repository.ProductRepository,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, invRepo: invRepo, productRepo: productRepo}
}

// SalesSummary resumen diario de ventas completadas en [from, to].
func (uc *ReportUseCase) SalesSummary(ctx context.Context, from, to time.Time) ([]dto.SalesSummaryResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.reportRepo.SalesSummary(from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesSummaryResponse{
			Day:          r.Day.Format("2006-01-02"),
			SalesCount:   r.SalesCount,
			TotalAmount:  r.TotalAmount,
			FinalAmount:  r.FinalAmount,
			PointsEarned: r.PointsEarned,
		})
	}
	return out, nil
}

// TopProducts productos más vendidos por cantidad en [from, to].
func (uc *ReportUseCase) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]dto.TopProductResponse, error) {
	if to.Before(from) {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	rows, err := uc.reportRepo.TopProducts(from, to, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TopProductResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductResponse{
			ProductID:   r.ProductID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Revenue:     r.Revenue,
		})
	}
	return out, nil
}

// InventoryValue valorización del stock a costo más el detalle de stock bajo.
func (uc *ReportUseCase) InventoryValue(ctx context.Context) (*dto.InventoryValueResponse, error) {
	total, err := uc.reportRepo.InventoryValue()
	if err != nil {
		return nil, err
	}
	low, err := uc.invRepo.ListLowStock()
	if err != nil {
		return nil, err
	}

	resp := &dto.InventoryValueResponse{TotalValue: total, LowStock: make([]dto.InventoryResponse, 0, len(low))}
	for _, inv := range low {
		item := dto.InventoryResponse{
			ProductID:    inv.ProductID,
			Quantity:     inv.Quantity,
			WarningLevel: inv.WarningLevel,
			LowStock:     true,
		}
		if p, err := uc.productRepo.GetByID(inv.ProductID); err == nil && p != nil {
			item.ProductName = p.Name
		}
		resp.LowStock = append(resp.LowStock, item)
	}
	return resp, nil
}
