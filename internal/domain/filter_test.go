package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vendormap-service/internal/domain"
)

func TestStringSet_EmptyAllowsEverything(t *testing.T) {
	empty := domain.NewStringSet(nil)
	assert.True(t, empty.Allows("anything"))
	assert.True(t, empty.Allows(""))
	assert.True(t, empty.Empty())

	set := domain.NewStringSet([]string{"food", "pharmacy"})
	assert.True(t, set.Allows("food"))
	assert.False(t, set.Allows("flowers"))
	assert.False(t, set.Empty())
}

func TestTriState_Allows(t *testing.T) {
	yes := true
	no := false

	assert.True(t, domain.TriAny.Allows(nil))
	assert.True(t, domain.TriAny.Allows(&yes))
	assert.True(t, domain.TriAny.Allows(&no))

	assert.True(t, domain.TriYes.Allows(&yes))
	assert.False(t, domain.TriYes.Allows(&no))
	// Неизвестное значение не проходит ограничение
	assert.False(t, domain.TriYes.Allows(nil))

	assert.True(t, domain.TriNo.Allows(&no))
	assert.False(t, domain.TriNo.Allows(&yes))
	assert.False(t, domain.TriNo.Allows(nil))
}

func TestFilter_DisplayRadius(t *testing.T) {
	percentage := &domain.Filter{
		RadiusMode:     domain.RadiusPercentage,
		RadiusModifier: 0.5,
		RadiusFixedKm:  3.0,
	}
	assert.InDelta(t, 2.0, percentage.DisplayRadius(4.0), 1e-9)

	// Fixed режим полностью игнорирует базовый радиус
	fixed := &domain.Filter{
		RadiusMode:     domain.RadiusFixed,
		RadiusModifier: 0.5,
		RadiusFixedKm:  3.0,
	}
	assert.InDelta(t, 3.0, fixed.DisplayRadius(4.0), 1e-9)
	assert.InDelta(t, 3.0, fixed.DisplayRadius(0.1), 1e-9)
}

func TestFilter_InDateRange(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)

	f := &domain.Filter{DateFrom: &from, DateTo: &to}
	assert.True(t, f.InDateRange(time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)))
	assert.True(t, f.InDateRange(from))
	assert.False(t, f.InDateRange(from.Add(-time.Second)))
	assert.False(t, f.InDateRange(to.Add(time.Second)))

	open := &domain.Filter{}
	assert.True(t, open.InDateRange(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestVendor_EffectiveGrade(t *testing.T) {
	graded := domain.Vendor{Grade: "A"}
	assert.Equal(t, "A", graded.EffectiveGrade())

	ungraded := domain.Vendor{}
	assert.Equal(t, domain.GradeUnknown, ungraded.EffectiveGrade())
}
