package member_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngtrphuong/ioe/internal/application/dto"
	"github.com/ngtrphuong/ioe/internal/application/member"
	"github.com/ngtrphuong/ioe/internal/domain"
	"github.com/ngtrphuong/ioe/internal/domain/entity"
)

const testOperator = "op-1"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newMemberUC(s *memberStore) *member.MemberUseCase {
	levelRepo := &stLevelRepo{s}
	return member.NewMemberUseCase(s, &stMemberRepo{s}, levelRepo, &stMtxRepo{s}, member.NewEvaluator(levelRepo))
}

func TestMember_CreateAsignaNivelPorDefecto(t *testing.T) {
	s := newMemberStore()
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	uc := newMemberUC(s)

	m, err := uc.Create(context.Background(), dto.CreateMemberRequest{
		Name: "Ana", Phone: "3001112233", Birthday: "1990-05-20",
	}, testOperator)
	require.NoError(t, err)
	assert.Equal(t, "bronce", m.LevelID)
	require.NotNil(t, m.Birthday)
	assert.Equal(t, "1990-05-20", m.Birthday.Format("2006-01-02"))
	assert.True(t, m.IsActive)
}

func TestMember_CreateTelefonoDuplicado(t *testing.T) {
	s := newMemberStore()
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addMember("m-1", "bronce", "3001112233", 0)
	uc := newMemberUC(s)

	_, err := uc.Create(context.Background(), dto.CreateMemberRequest{
		Name: "Otra", Phone: "3001112233",
	}, testOperator)
	assert.ErrorIs(t, err, domain.ErrPhoneAlreadyExists)
}

func TestMember_RechargeAcreditaSaldo(t *testing.T) {
	s := newMemberStore()
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addMember("m-1", "bronce", "300111", 0)
	uc := newMemberUC(s)

	record, err := uc.Recharge(context.Background(), "m-1", dto.RechargeRequest{
		Amount: dec("100.00"),
	}, testOperator)
	require.NoError(t, err)

	// ActualAmount vacío = Amount; método por defecto efectivo.
	assert.True(t, dec("100.00").Equal(record.ActualAmount))
	assert.Equal(t, entity.PaymentCash, record.PaymentMethod)
	assert.True(t, dec("100.00").Equal(s.members["m-1"].Balance))

	require.Len(t, s.mtxs, 1)
	assert.Equal(t, entity.MemberTxRecharge, s.mtxs[0].Type)
	assert.True(t, dec("100.00").Equal(s.mtxs[0].BalanceChange))
	require.Len(t, s.logs, 1)
	assert.Equal(t, entity.OpTypeMember, s.logs[0].OperationType)
}

// Recarga promocional: se paga 90 pero se acreditan 100.
func TestMember_RechargePromocional(t *testing.T) {
	s := newMemberStore()
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addMember("m-1", "bronce", "300111", 0)
	uc := newMemberUC(s)

	record, err := uc.Recharge(context.Background(), "m-1", dto.RechargeRequest{
		Amount: dec("100.00"), ActualAmount: dec("90.00"), PaymentMethod: entity.PaymentWeChat,
	}, testOperator)
	require.NoError(t, err)
	assert.True(t, dec("100.00").Equal(record.Amount))
	assert.True(t, dec("90.00").Equal(record.ActualAmount))
	assert.True(t, dec("100.00").Equal(s.members["m-1"].Balance))
}

func TestMember_RechargeMontoInvalido(t *testing.T) {
	s := newMemberStore()
	s.addMember("m-1", "", "300111", 0)
	uc := newMemberUC(s)

	for _, amount := range []string{"0", "-10.00"} {
		_, err := uc.Recharge(context.Background(), "m-1", dto.RechargeRequest{Amount: dec(amount)}, testOperator)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "monto %s", amount)
	}
}

// El ajuste de puntos reevalúa el nivel en ambas direcciones.
func TestMember_AdjustPointsSubeYBajaNivel(t *testing.T) {
	s := newMemberStore()
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addLevel("plata", "Plata", "0.95", 500, 2, false)
	s.addMember("m-1", "bronce", "300111", 400)
	uc := newMemberUC(s)
	ctx := context.Background()

	m, err := uc.AdjustPoints(ctx, "m-1", dto.AdjustPointsRequest{PointsChange: 200, Description: "bono"}, testOperator)
	require.NoError(t, err)
	assert.Equal(t, int64(600), m.Points)
	assert.Equal(t, "plata", m.LevelID)

	m, err = uc.AdjustPoints(ctx, "m-1", dto.AdjustPointsRequest{PointsChange: -300, Description: "corrección"}, testOperator)
	require.NoError(t, err)
	assert.Equal(t, int64(300), m.Points)
	assert.Equal(t, "bronce", m.LevelID, "al bajar de 500 puntos el nivel se degrada")

	var types []string
	for _, tx := range s.mtxs {
		types = append(types, tx.Type)
	}
	assert.Contains(t, types, entity.MemberTxLevelUpgrade)
	assert.Contains(t, types, entity.MemberTxLevelDowngrade)
}

// Los puntos nunca quedan negativos.
func TestMember_AdjustPointsNoPermiteNegativos(t *testing.T) {
	s := newMemberStore()
	s.addLevel("bronce", "Bronce", "1.00", 0, 1, true)
	s.addMember("m-1", "bronce", "300111", 50)
	uc := newMemberUC(s)

	_, err := uc.AdjustPoints(context.Background(), "m-1", dto.AdjustPointsRequest{PointsChange: -80}, testOperator)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, int64(50), s.members["m-1"].Points)

	_, err = uc.AdjustPoints(context.Background(), "m-1", dto.AdjustPointsRequest{PointsChange: 0}, testOperator)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMember_GetByPhone(t *testing.T) {
	s := newMemberStore()
	s.addMember("m-1", "", "3001112233", 0)
	uc := newMemberUC(s)

	m, err := uc.GetByPhone(context.Background(), "3001112233")
	require.NoError(t, err)
	assert.Equal(t, "m-1", m.ID)

	_, err = uc.GetByPhone(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
