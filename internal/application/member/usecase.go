package member

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// MemberUseCase gestiona altas, recargas de saldo y ajustes de puntos. Toda operación
// que toca puntos o saldo corre en una transacción y reevalúa el nivel del miembro.
type MemberUseCase struct {
	txRunner   TxRunner
	memberRepo repository.MemberRepository
	levelRepo  repository.MemberLevelRepository
	mtxRepo    repository.MemberTransactionRepository
	evaluator  *Evaluator
}

// NewMemberUseCase construye el caso de uso.
func NewMemberUseCase(
	txRunner TxRunner,
	memberRepo repository.MemberRepository,
	levelRepo repository.MemberLevelRepository,
	mtxRepo repository.MemberTransactionRepository,
	evaluator *Evaluator,
) *MemberUseCase {
	return &MemberUseCase{
		txRunner:   txRunner,
		memberRepo: memberRepo,
		levelRepo:  levelRepo,
		mtxRepo:    mtxRepo,
		evaluator:  evaluator,
	}
}

// Create da de alta un miembro. El teléfono es único; si ya existe devuelve
// ErrPhoneAlreadyExists. Sin level_id se asigna el nivel por defecto.
func (uc *MemberUseCase) Create(ctx context.Context, req dto.CreateMemberRequest, operatorID string) (*entity.Member, error) {
	existing, err := uc.memberRepo.GetByPhone(req.Phone)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrPhoneAlreadyExists
	}

	levelID := req.LevelID
	if levelID == "" {
		lv, err := uc.defaultLevel()
		if err != nil {
			return nil, err
		}
		levelID = lv.ID
	} else if _, err := uc.levelRepo.GetByID(levelID); err != nil {
		return nil, err
	}

	var birthday *time.Time
	if req.Birthday != "" {
		t, err := time.Parse("2006-01-02", req.Birthday)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		birthday = &t
	}

	now := time.Now()
	m := &entity.Member{
		ID:         uuid.New().String(),
		LevelID:    levelID,
		Name:       req.Name,
		Phone:      req.Phone,
		Gender:     req.Gender,
		Birthday:   birthday,
		Balance:    decimal.Zero,
		TotalSpend: decimal.Zero,
		Email:      req.Email,
		Address:    req.Address,
		Notes:      req.Notes,
		IsActive:   true,
		CreatedBy:  operatorID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.memberRepo.Create(m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetByID devuelve un miembro por id.
func (uc *MemberUseCase) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	m, err := uc.memberRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// GetByPhone busca un miembro por teléfono exacto (selector de miembro en caja).
func (uc *MemberUseCase) GetByPhone(ctx context.Context, phone string) (*entity.Member, error) {
	m, err := uc.memberRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, domain.ErrNotFound
	}
	return m, nil
}

// Search busca miembros por nombre o teléfono parcial.
func (uc *MemberUseCase) Search(ctx context.Context, query string, page dto.PageRequest) ([]*entity.Member, error) {
	page.DefaultPage()
	if query == "" {
		return uc.memberRepo.List(page.Limit, page.Offset)
	}
	return uc.memberRepo.Search(query, page.Limit, page.Offset)
}

// Recharge acredita saldo al miembro en una transacción: bloquea la fila, suma el
// monto, escribe el RechargeRecord, la transacción RECHARGE y el log de operación.
// ActualAmount vacío equivale a Amount.
func (uc *MemberUseCase) Recharge(ctx context.Context, memberID string, req dto.RechargeRequest, operatorID string) (*entity.RechargeRecord, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	actual := req.ActualAmount
	if actual.IsZero() {
		actual = req.Amount
	}
	method := req.PaymentMethod
	if method == "" {
		method = entity.PaymentCash
	}

	var record *entity.RechargeRecord
	err := uc.txRunner.RunMember(ctx, func(
		memberRepo repository.MemberRepository,
		mtxRepo repository.MemberTransactionRepository,
		rechargeRepo repository.RechargeRecordRepository,
		logRepo repository.OperationLogRepository,
	) error {
		m, err := memberRepo.GetByIDForUpdate(memberID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		m.Balance = m.Balance.Add(req.Amount)
		m.UpdatedAt = now
		if err := memberRepo.Update(m); err != nil {
			return err
		}

		record = &entity.RechargeRecord{
			ID:            uuid.New().String(),
			MemberID:      m.ID,
			Amount:        req.Amount,
			ActualAmount:  actual,
			PaymentMethod: method,
			OperatorID:    operatorID,
			Remark:        req.Remark,
			CreatedAt:     now,
		}
		if err := rechargeRepo.Create(record); err != nil {
			return err
		}

		if err := mtxRepo.Create(&entity.MemberTransaction{
			ID:            uuid.New().String(),
			MemberID:      m.ID,
			Type:          entity.MemberTxRecharge,
			BalanceChange: req.Amount,
			Description:   fmt.Sprintf("Recarga de %s (%s)", req.Amount.StringFixed(2), method),
			CreatedBy:     operatorID,
			CreatedAt:     now,
		}); err != nil {
			return err
		}

		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    operatorID,
			OperationType: entity.OpTypeMember,
			Details:       fmt.Sprintf("Recarga a %s: %s", m.Name, req.Amount.StringFixed(2)),
			RelatedID:     record.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// AdjustPoints ajusta puntos manualmente (positivo o negativo), registra la transacción
// POINTS_ADJUST y reevalúa el nivel dentro de la misma transacción. Los puntos nunca
// quedan negativos.
func (uc *MemberUseCase) AdjustPoints(ctx context.Context, memberID string, req dto.AdjustPointsRequest, operatorID string) (*entity.Member, error) {
	if req.PointsChange == 0 {
		return nil, domain.ErrInvalidInput
	}

	var result *entity.Member
	err := uc.txRunner.RunMember(ctx, func(
		memberRepo repository.MemberRepository,
		mtxRepo repository.MemberTransactionRepository,
		_ repository.RechargeRecordRepository,
		logRepo repository.OperationLogRepository,
	) error {
		m, err := memberRepo.GetByIDForUpdate(memberID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.ErrNotFound
		}
		if m.Points+req.PointsChange < 0 {
			return domain.ErrInvalidInput
		}

		now := time.Now()
		m.Points += req.PointsChange
		m.UpdatedAt = now

		if err := mtxRepo.Create(&entity.MemberTransaction{
			ID:           uuid.New().String(),
			MemberID:     m.ID,
			Type:         entity.MemberTxPointsAdjust,
			PointsChange: req.PointsChange,
			Description:  req.Description,
			CreatedBy:    operatorID,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		if _, err := uc.evaluator.ReevaluateInTx(mtxRepo, m, operatorID); err != nil {
			return err
		}
		if err := memberRepo.Update(m); err != nil {
			return err
		}
		result = m

		return logRepo.Create(&entity.OperationLog{
			ID:            uuid.New().String(),
			OperatorID:    operatorID,
			OperationType: entity.OpTypeMember,
			Details:       fmt.Sprintf("Ajuste de puntos a %s: %+d", m.Name, req.PointsChange),
			RelatedID:     m.ID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListLevels devuelve los niveles activos.
func (uc *MemberUseCase) ListLevels(ctx context.Context) ([]*entity.MemberLevel, error) {
	return uc.levelRepo.ListActive()
}

// ListTransactions devuelve el historial de un miembro.
func (uc *MemberUseCase) ListTransactions(ctx context.Context, memberID string, page dto.PageRequest) ([]*entity.MemberTransaction, error) {
	page.DefaultPage()
	return uc.mtxRepo.ListByMember(memberID, page.Limit, page.Offset)
}

// LevelOf resuelve el nivel actual de un miembro (descuento en caja).
func (uc *MemberUseCase) LevelOf(ctx context.Context, m *entity.Member) (*entity.MemberLevel, error) {
	return uc.levelRepo.GetByID(m.LevelID)
}

func (uc *MemberUseCase) defaultLevel() (*entity.MemberLevel, error) {
	levels, err := uc.levelRepo.ListActive()
	if err != nil {
		return nil, err
	}
	for _, lv := range levels {
		if lv.IsDefault {
			return lv, nil
		}
	}
	return nil, domain.ErrNotFound
}
