package member

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	dommember "github.com/ngtrphuong/ioe/internal/domain/member"
	"github.com/ngtrphuong/ioe/internal/domain/repository"
)

// Evaluator reevalúa el nivel de un miembro tras cada cambio de puntos: el nivel
// pasa a ser el de mayor prioridad entre los que tienen umbral ≤ puntos. Sube y
// también baja; cada cambio escribe una transacción LEVEL_UPGRADE/LEVEL_DOWNGRADE
// con los nombres de ambos niveles.
type Evaluator struct {
	levelRepo repository.MemberLevelRepository
}

// NewEvaluator construye el evaluador.
func NewEvaluator(levelRepo repository.MemberLevelRepository) *Evaluator {
	return &Evaluator{levelRepo: levelRepo}
}

// ReevaluateInTx ajusta m.LevelID al nivel elegible y registra la auditoría con los
// repositorios del caller. Muta el miembro; el caller lo persiste en su transacción.
func (e *Evaluator) ReevaluateInTx(
	mtxRepo repository.MemberTransactionRepository,
	m *entity.Member,
	operatorID string,
) (bool, error) {
	levels, err := e.levelRepo.ListActive()
	if err != nil {
		return false, err
	}
	target := dommember.HighestEligibleLevel(levels, m.Points)
	if target == nil || target.ID == m.LevelID {
		return false, nil
	}

	oldName := m.LevelID
	txType := entity.MemberTxLevelUpgrade
	for _, lv := range levels {
		if lv.ID == m.LevelID {
			oldName = lv.Name
			if lv.Priority > target.Priority {
				txType = entity.MemberTxLevelDowngrade
			}
			break
		}
	}

	m.LevelID = target.ID
	m.UpdatedAt = time.Now()

	return true, mtxRepo.Create(&entity.MemberTransaction{
		ID:          uuid.New().String(),
		MemberID:    m.ID,
		Type:        txType,
		Description: fmt.Sprintf("Nivel cambiado de %s a %s (%d puntos)", oldName, target.Name, m.Points),
		CreatedBy:   operatorID,
		CreatedAt:   time.Now(),
	})
}
