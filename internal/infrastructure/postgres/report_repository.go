package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes de gestión.
type ReportRepo struct {
	pool *pgxpool.Pool
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// SalesSummary agrupa las ventas completadas por día: cantidad, totales y puntos.
func (r *ReportRepo) SalesSummary(from, to time.Time) ([]*repository.SalesSummaryRow, error) {
	const query = `
		SELECT
		    date_trunc('day', created_at)        AS day,
		    COUNT(*)                             AS sales_count,
		    COALESCE(SUM(total_amount), 0)       AS total_amount,
		    COALESCE(SUM(final_amount), 0)       AS final_amount,
		    COALESCE(SUM(points_earned), 0)      AS points_earned
		FROM sales
		WHERE status = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.pool.Query(context.Background(), query, entity.SaleStatusCompleted, from, to)
	if err != nil {
		return nil, fmt.Errorf("report.SalesSummary: %w", err)
	}
	defer rows.Close()

	var results []*repository.SalesSummaryRow
	for rows.Next() {
		var row repository.SalesSummaryRow
		if err := rows.Scan(&row.Day, &row.SalesCount, &row.TotalAmount, &row.FinalAmount, &row.PointsEarned); err != nil {
			return nil, fmt.Errorf("report.SalesSummary scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}

// TopProducts ordena los productos por unidades vendidas en ventas completadas del rango.
func (r *ReportRepo) TopProducts(from, to time.Time, limit int) ([]*repository.TopProductRow, error) {
	const query = `
		SELECT
		    i.product_id,
		    i.product_name,
		    SUM(i.quantity)                 AS quantity,
		    COALESCE(SUM(i.subtotal), 0)    AS revenue
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.status = $1 AND s.created_at >= $2 AND s.created_at <= $3
		GROUP BY i.product_id, i.product_name
		ORDER BY quantity DESC
		LIMIT $4`

	rows, err := r.pool.Query(context.Background(), query, entity.SaleStatusCompleted, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("report.TopProducts: %w", err)
	}
	defer rows.Close()

	var results []*repository.TopProductRow
	for rows.Next() {
		var row repository.TopProductRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("report.TopProducts scan: %w", err)
		}
		results = append(results, &row)
	}
	return results, rows.Err()
}

// InventoryValue calcula Σ(cantidad × costo) del stock de productos activos.
func (r *ReportRepo) InventoryValue() (decimal.Decimal, error) {
	const query = `
		SELECT COALESCE(SUM(i.quantity * p.cost), 0)
		FROM inventory i
		JOIN products p ON p.id = i.product_id AND p.is_active`

	var total decimal.Decimal
	err := r.pool.QueryRow(context.Background(), query).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, fmt.Errorf("report.InventoryValue: %w", err)
	}
	return total, nil
}
