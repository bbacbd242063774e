package member_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngtrphuong/ioe/internal/domain/entity"
	"github.com/ngtrphuong/ioe/internal/domain/member"
)

func levels() []*entity.MemberLevel {
	return []*entity.MemberLevel{
		{ID: "bronce", Name: "Bronce", PointsThreshold: 0, Priority: 1, IsDefault: true, IsActive: true},
		{ID: "plata", Name: "Plata", PointsThreshold: 500, Priority: 2, IsActive: true},
		{ID: "oro", Name: "Oro", PointsThreshold: 2000, Priority: 3, IsActive: true},
	}
}

func TestHighestEligibleLevel_EligeElMejorAlcanzado(t *testing.T) {
	casos := []struct {
		points int64
		want   string
	}{
		{0, "bronce"},
		{499, "bronce"},
		{500, "plata"},
		{1999, "plata"},
		{2000, "oro"},
		{99999, "oro"},
	}
	for _, c := range casos {
		got := member.HighestEligibleLevel(levels(), c.points)
		require.NotNil(t, got, "points=%d", c.points)
		assert.Equal(t, c.want, got.ID, "points=%d", c.points)
	}
}

// Al bajar los puntos el nivel también baja: la selección no tiene memoria.
func TestHighestEligibleLevel_Degradacion(t *testing.T) {
	lv := member.HighestEligibleLevel(levels(), 2500)
	require.NotNil(t, lv)
	assert.Equal(t, "oro", lv.ID)

	lv = member.HighestEligibleLevel(levels(), 300)
	require.NotNil(t, lv)
	assert.Equal(t, "bronce", lv.ID)
}

func TestHighestEligibleLevel_IgnoraInactivos(t *testing.T) {
	lvls := levels()
	lvls[2].IsActive = false // Oro desactivado

	lv := member.HighestEligibleLevel(lvls, 5000)
	require.NotNil(t, lv)
	assert.Equal(t, "plata", lv.ID)
}

// A igual prioridad gana el umbral más alto.
func TestHighestEligibleLevel_DesempatePorUmbral(t *testing.T) {
	lvls := []*entity.MemberLevel{
		{ID: "a", PointsThreshold: 100, Priority: 2, IsActive: true},
		{ID: "b", PointsThreshold: 300, Priority: 2, IsActive: true},
	}
	lv := member.HighestEligibleLevel(lvls, 400)
	require.NotNil(t, lv)
	assert.Equal(t, "b", lv.ID)
}

// Sin ningún nivel alcanzado se devuelve el nivel por defecto.
func TestHighestEligibleLevel_FallbackAlDefault(t *testing.T) {
	lvls := []*entity.MemberLevel{
		{ID: "vip", PointsThreshold: 1000, Priority: 5, IsActive: true},
		{ID: "base", PointsThreshold: 0, Priority: 0, IsDefault: true, IsActive: false},
	}
	// El default está inactivo y nada califica: nil.
	assert.Nil(t, member.HighestEligibleLevel(lvls, 10))

	lvls[1].IsActive = true
	lv := member.HighestEligibleLevel(lvls, 10)
	require.NotNil(t, lv)
	assert.Equal(t, "base", lv.ID)
}

func TestHighestEligibleLevel_ListaVacia(t *testing.T) {
	assert.Nil(t, member.HighestEligibleLevel(nil, 100))
}
