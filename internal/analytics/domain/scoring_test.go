package domain_test

import (
	"testing"

	"github.com/felixgeelhaar/cadence/internal/analytics/domain"
	"github.com/stretchr/testify/assert"
)

func TestFocusScore(t *testing.T) {
	tests := []struct {
		name    string
		minutes int
		want    float64
	}{
		{"zero minutes", 0, 0},
		{"half the optimum", 120, 50},
		{"optimum scores perfect", 240, 100},
		{"between optimum and ceiling", 300, 90},
		{"healthy ceiling", 360, 80},
		{"one hour of overwork", 420, 60},
		{"extreme overwork clamps to zero", 700, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, domain.FocusScore(tt.minutes), 0.001)
		})
	}
}

func TestFocusScore_ContinuousAtBoundaries(t *testing.T) {
	// The piecewise curve must not jump at the segment edges.
	assert.InDelta(t, domain.FocusScore(240), domain.FocusScore(241), 0.2)
	assert.InDelta(t, domain.FocusScore(360), domain.FocusScore(361), 0.4)
}

func TestProductivityScore(t *testing.T) {
	t.Run("typical day without breaks", func(t *testing.T) {
		// 80% completion rate and 150 focus minutes: 32 + 25 + 0.
		got := domain.ProductivityScore(80, 150, 0)
		assert.InDelta(t, 57.0, got, 0.001)
	})

	t.Run("perfect day", func(t *testing.T) {
		got := domain.ProductivityScore(100, 240, 48)
		assert.InDelta(t, 100.0, got, 0.001)
	})

	t.Run("no activity scores zero", func(t *testing.T) {
		assert.Zero(t, domain.ProductivityScore(0, 0, 0))
	})

	t.Run("overwork keeps focus component floored", func(t *testing.T) {
		// 600 focus minutes: 40 - 360/30 = 28, above the 25 floor.
		got := domain.ProductivityScore(0, 600, 0)
		assert.InDelta(t, 28.0, got, 0.001)

		// 1000 minutes hits the floor.
		got = domain.ProductivityScore(0, 1000, 0)
		assert.InDelta(t, 25.0, got, 0.001)
	})

	t.Run("balance bands", func(t *testing.T) {
		base := domain.ProductivityScore(0, 200, 0)
		assert.InDelta(t, base+20, domain.ProductivityScore(0, 200, 40), 0.001)  // 0.20
		assert.InDelta(t, base+15, domain.ProductivityScore(0, 200, 24), 0.001)  // 0.12
		assert.InDelta(t, base+10, domain.ProductivityScore(0, 200, 66), 0.001)  // 0.33
		assert.InDelta(t, base+5, domain.ProductivityScore(0, 200, 100), 0.001)  // 0.50
	})
}

func TestBurnoutRiskScore(t *testing.T) {
	t.Run("healthy day carries no risk", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			CompletedSessions:   6,
			ProductivityScore:   75,
			ConsecutiveWorkDays: 3,
		})
		assert.Zero(t, got)
	})

	t.Run("overwork contributes proportionally", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			OverworkMinutes:   120,
			ProductivityScore: 75,
		})
		assert.InDelta(t, 20.0, got, 0.001)
	})

	t.Run("overwork caps at forty", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			OverworkMinutes:   600,
			ProductivityScore: 75,
		})
		assert.InDelta(t, 40.0, got, 0.001)
	})

	t.Run("single late night session is ignored", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			LateNightSessions: 1,
			ProductivityScore: 75,
		})
		assert.Zero(t, got)
	})

	t.Run("late night sessions cap at thirty", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			LateNightSessions: 10,
			ProductivityScore: 75,
		})
		assert.InDelta(t, 30.0, got, 0.001)
	})

	t.Run("high interruption rate adds risk", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			InterruptedSessions: 3,
			CompletedSessions:   1,
			ProductivityScore:   75,
		})
		// rate 0.75: (0.75-0.5)*40 = 10.
		assert.InDelta(t, 10.0, got, 0.001)
	})

	t.Run("low productivity adds a flat ten", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			ProductivityScore: 20,
		})
		assert.InDelta(t, 10.0, got, 0.001)
	})

	t.Run("long streak adds risk", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			ProductivityScore:   75,
			ConsecutiveWorkDays: 8,
		})
		assert.InDelta(t, 4.0, got, 0.001)

		got = domain.BurnoutRiskScore(domain.BurnoutFactors{
			ProductivityScore:   75,
			ConsecutiveWorkDays: 20,
		})
		assert.InDelta(t, 10.0, got, 0.001)
	})

	t.Run("combined factors cap at one hundred", func(t *testing.T) {
		got := domain.BurnoutRiskScore(domain.BurnoutFactors{
			OverworkMinutes:     600,
			LateNightSessions:   5,
			InterruptedSessions: 9,
			CompletedSessions:   1,
			ProductivityScore:   10,
			ConsecutiveWorkDays: 14,
		})
		assert.InDelta(t, 100.0, got, 0.001)
	})
}

func TestBurnoutFactors_InterruptionRate(t *testing.T) {
	assert.Zero(t, domain.BurnoutFactors{}.InterruptionRate())
	assert.InDelta(t, 0.5, domain.BurnoutFactors{InterruptedSessions: 2, CompletedSessions: 2}.InterruptionRate(), 0.001)
}
