package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngtrphuong/ioe/internal/application/inventory"
	"github.com/ngtrphuong/ioe/internal/application/member"
	"github.com/ngtrphuong/ioe/internal/application/sales"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// Ensure TxRunner implements the transaction ports of every use case.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ inventory.CheckTxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)
var _ member.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
	logRepo repository.OperationLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryRepository(tx), NewInventoryTransactionRepository(tx), NewOperationLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCheck transacción para las operaciones de conteo físico (snapshot al crear,
// ajustes al aprobar).
func (r *TxRunner) RunCheck(ctx context.Context, fn func(
	checkRepo repository.InventoryCheckRepository,
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
	logRepo repository.OperationLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewInventoryCheckRepository(tx), NewInventoryRepository(tx), NewInventoryTransactionRepository(tx), NewOperationLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale transacción de venta: línea, stock, totales y acreditación al miembro.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	saleRepo repository.SaleRepository,
	invRepo repository.InventoryRepository,
	txnRepo repository.InventoryTransactionRepository,
	memberRepo repository.MemberRepository,
	mtxRepo repository.MemberTransactionRepository,
	logRepo repository.OperationLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(
		NewSaleRepository(tx),
		NewInventoryRepository(tx),
		NewInventoryTransactionRepository(tx),
		NewMemberRepository(tx),
		NewMemberTransactionRepository(tx),
		NewOperationLogRepository(tx),
	); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunMember transacción de operaciones de miembro (recargas, ajustes de puntos).
func (r *TxRunner) RunMember(ctx context.Context, fn func(
	memberRepo repository.MemberRepository,
	mtxRepo repository.MemberTransactionRepository,
	rechargeRepo repository.RechargeRecordRepository,
	logRepo repository.OperationLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewMemberRepository(tx), NewMemberTransactionRepository(tx), NewRechargeRecordRepository(tx), NewOperationLogRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
