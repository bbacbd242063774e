package member_test

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// Fakes en memoria. El store actúa de TxRunner ejecutando la función directamente.

type memberStore struct {
	members   map[string]*entity.Member
	levels    map[string]*entity.MemberLevel
	mtxs      []*entity.MemberTransaction
	recharges []*entity.RechargeRecord
	logs      []*entity.OperationLog
}

func newMemberStore() *memberStore {
	return &memberStore{
		members: map[string]*entity.Member{},
		levels:  map[string]*entity.MemberLevel{},
	}
}

func (s *memberStore) addLevel(id, name, discount string, threshold int64, priority int, isDefault bool) {
	s.levels[id] = &entity.MemberLevel{
		ID:              id,
		Name:            name,
		Discount:        decimal.RequireFromString(discount),
		PointsThreshold: threshold,
		Priority:        priority,
		IsDefault:       isDefault,
		IsActive:        true,
	}
}

func (s *memberStore) addMember(id, levelID, phone string, points int64) *entity.Member {
	m := &entity.Member{
		ID:       id,
		LevelID:  levelID,
		Name:     "Miembro " + id,
		Phone:    phone,
		Points:   points,
		Balance:  decimal.Zero,
		IsActive: true,
	}
	s.members[id] = m
	return m
}

func (s *memberStore) RunMember(_ context.Context, fn func(
	repository.MemberRepository,
	repository.MemberTransactionRepository,
	repository.RechargeRecordRepository,
	repository.OperationLogRepository,
) error) error {
	return fn(&stMemberRepo{s}, &stMtxRepo{s}, &stRechargeRepo{s}, &stLogRepo{s})
}

type stMemberRepo struct{ s *memberStore }

func (r *stMemberRepo) Create(m *entity.Member) error { cp := *m; r.s.members[m.ID] = &cp; return nil }
func (r *stMemberRepo) Update(m *entity.Member) error { cp := *m; r.s.members[m.ID] = &cp; return nil }

func (r *stMemberRepo) GetByID(id string) (*entity.Member, error) {
	if m, ok := r.s.members[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *stMemberRepo) GetByIDForUpdate(id string) (*entity.Member, error) { return r.GetByID(id) }

func (r *stMemberRepo) GetByPhone(phone string) (*entity.Member, error) {
	for _, m := range r.s.members {
		if m.Phone == phone {
			cp := *m
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *stMemberRepo) Search(query string, limit, offset int) ([]*entity.Member, error) {
	var out []*entity.Member
	for _, m := range r.s.members {
		out = append(out, m)
	}
	return out, nil
}

func (r *stMemberRepo) List(limit, offset int) ([]*entity.Member, error) {
	return r.Search("", limit, offset)
}

type stLevelRepo struct{ s *memberStore }

func (r *stLevelRepo) Create(lv *entity.MemberLevel) error { r.s.levels[lv.ID] = lv; return nil }
func (r *stLevelRepo) Update(lv *entity.MemberLevel) error { r.s.levels[lv.ID] = lv; return nil }
func (r *stLevelRepo) GetByID(id string) (*entity.MemberLevel, error) {
	return r.s.levels[id], nil
}

func (r *stLevelRepo) GetByName(name string) (*entity.MemberLevel, error) {
	for _, lv := range r.s.levels {
		if lv.Name == name {
			return lv, nil
		}
	}
	return nil, nil
}

func (r *stLevelRepo) ListActive() ([]*entity.MemberLevel, error) {
	var out []*entity.MemberLevel
	for _, lv := range r.s.levels {
		if lv.IsActive {
			out = append(out, lv)
		}
	}
	return out, nil
}

type stMtxRepo struct{ s *memberStore }

func (r *stMtxRepo) Create(tx *entity.MemberTransaction) error {
	r.s.mtxs = append(r.s.mtxs, tx)
	return nil
}

func (r *stMtxRepo) ListByMember(string, int, int) ([]*entity.MemberTransaction, error) {
	return r.s.mtxs, nil
}

type stRechargeRepo struct{ s *memberStore }

func (r *stRechargeRepo) Create(rec *entity.RechargeRecord) error {
	r.s.recharges = append(r.s.recharges, rec)
	return nil
}

func (r *stRechargeRepo) ListByMember(string, int, int) ([]*entity.RechargeRecord, error) {
	return r.s.recharges, nil
}

type stLogRepo struct{ s *memberStore }

func (r *stLogRepo) Create(l *entity.OperationLog) error { r.s.logs = append(r.s.logs, l); return nil }
func (r *stLogRepo) List(string, int, int) ([]*entity.OperationLog, error) {
	return r.s.logs, nil
}
