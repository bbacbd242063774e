package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberLevel define un nivel de fidelización con su descuento y umbral de puntos.
// Discount es un multiplicador 0–1 sobre el precio estándar (0.90 = 10% de descuento).
type MemberLevel struct {
	ID              string
	Name            string // único
	Discount        decimal.Decimal
	PointsThreshold int64 // puntos mínimos para calificar
	Priority        int   // a mayor prioridad, mejor nivel; desempata entre elegibles
	IsDefault       bool
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Member es una cuenta de fidelización con puntos, saldo y estadísticas de consumo.
type Member struct {
	ID            string
	LevelID       string
	Name          string
	Phone         string // único
	Gender        string // M, F, O
	Birthday      *time.Time
	Points        int64
	Balance       decimal.Decimal
	TotalSpend    decimal.Decimal
	PurchaseCount int64
	Email         string
	Address       string
	Notes         string
	IsActive      bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Tipos de transacción de miembro.
const (
	MemberTxPurchase       = "PURCHASE"
	MemberTxRecharge       = "RECHARGE"
	MemberTxPointsEarn     = "POINTS_EARN"
	MemberTxPointsAdjust   = "POINTS_ADJUST"
	MemberTxLevelUpgrade   = "LEVEL_UPGRADE"
	MemberTxLevelDowngrade = "LEVEL_DOWNGRADE"
)

// MemberTransaction audita cambios de puntos, saldo y nivel de un miembro.
type MemberTransaction struct {
	ID            string
	MemberID      string
	Type          string
	PointsChange  int64
	BalanceChange decimal.Decimal
	Description   string
	CreatedBy     string
	CreatedAt     time.Time
}

// RechargeRecord registra una recarga de saldo.
type RechargeRecord struct {
	ID            string
	MemberID      string
	Amount        decimal.Decimal // monto acreditado al saldo
	ActualAmount  decimal.Decimal // monto realmente pagado (promociones)
	PaymentMethod string
	OperatorID    string
	Remark        string
	CreatedAt     time.Time
}
