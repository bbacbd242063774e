// Package member contiene la selección pura de nivel de fidelización.
package member

import "github.com/ngtrphuong/ioe/internal/domain/entity"

// HighestEligibleLevel elige el nivel que corresponde a un saldo de puntos:
// entre los niveles activos con PointsThreshold <= points gana el de mayor
// Priority; a igual prioridad, el de umbral más alto. Si ninguno califica se
// devuelve el nivel por defecto (o nil si tampoco hay).
func HighestEligibleLevel(levels []*entity.MemberLevel, points int64) *entity.MemberLevel {
	var best *entity.MemberLevel
	var def *entity.MemberLevel
	for _, lv := range levels {
		if lv == nil || !lv.IsActive {
			continue
		}
		if lv.IsDefault && def == nil {
			def = lv
		}
		if lv.PointsThreshold > points {
			continue
		}
		if best == nil || better(lv, best) {
			best = lv
		}
	}
	if best == nil {
		return def
	}
	return best
}

// better indica si a supera a b como nivel elegible.
func better(a, b *entity.MemberLevel) bool {
	if a.Priority != b.Priority {
		return a.Priority > b.Priority
	}
	return a.PointsThreshold > b.PointsThreshold
}
