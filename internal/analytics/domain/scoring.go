package domain

const (
	// OptimalFocusMinutes is the daily focus time that scores a perfect 100.
	OptimalFocusMinutes = 240

	// HealthyFocusCeiling is the daily focus time beyond which minutes count
	// as overwork.
	HealthyFocusCeiling = 360

	// ProductiveFocusMinutes is the minimum focus time for a day to count as
	// productive when no task was completed.
	ProductiveFocusMinutes = 30

	// StreakLookbackDays caps the backward walk when deriving consecutive
	// work days from persisted metrics.
	StreakLookbackDays = 30
)

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// FocusScore maps daily focus minutes to [0,100]. The curve rises linearly
// to 100 at the optimum, eases down to 80 at the healthy ceiling, and falls
// off steeply beyond it.
func FocusScore(focusMinutes int) float64 {
	m := float64(focusMinutes)
	var score float64
	switch {
	case focusMinutes <= OptimalFocusMinutes:
		score = m / OptimalFocusMinutes * 100
	case focusMinutes <= HealthyFocusCeiling:
		score = 100 - (m-OptimalFocusMinutes)/(HealthyFocusCeiling-OptimalFocusMinutes)*20
	default:
		score = 80 - ((m-HealthyFocusCeiling)/60)*20
	}
	return clampScore(score)
}

// ProductivityScore combines task completion (40%), focus time (40%), and
// work/break balance (20%) into a [0,100] composite. completionRate is the
// already-derived 0..100 same-day completion percentage.
func ProductivityScore(completionRate float64, focusMinutes, breakMinutes int) float64 {
	taskComponent := completionRate * 0.4
	if taskComponent > 40 {
		taskComponent = 40
	}

	var focusComponent float64
	switch {
	case focusMinutes == 0:
		focusComponent = 0
	case focusMinutes <= OptimalFocusMinutes:
		focusComponent = float64(focusMinutes) / OptimalFocusMinutes * 40
	default:
		focusComponent = 40 - float64(focusMinutes-OptimalFocusMinutes)/30
		if focusComponent < 25 {
			// Floor rewards any sustained work
			focusComponent = 25
		}
	}

	return clampScore(taskComponent + focusComponent + balanceComponent(focusMinutes, breakMinutes))
}

// balanceComponent scores the break-to-focus ratio. Days without focus time
// or without any recorded breaks carry no balance signal and score 0.
func balanceComponent(focusMinutes, breakMinutes int) float64 {
	if focusMinutes == 0 || breakMinutes == 0 {
		return 0
	}

	ratio := float64(breakMinutes) / float64(focusMinutes)
	switch {
	case ratio >= 0.15 && ratio <= 0.25:
		return 20
	case ratio >= 0.10 && ratio <= 0.30:
		return 15
	case ratio >= 0.05 && ratio <= 0.35:
		return 10
	default:
		return 5
	}
}

// BurnoutFactors holds the inputs to the burnout risk score.
type BurnoutFactors struct {
	OverworkMinutes     int
	LateNightSessions   int
	InterruptedSessions int
	CompletedSessions   int
	ProductivityScore   float64
	ConsecutiveWorkDays int
}

// InterruptionRate returns the share of work sessions ended early, 0 when
// no sessions were recorded.
func (f BurnoutFactors) InterruptionRate() float64 {
	total := f.InterruptedSessions + f.CompletedSessions
	if total == 0 {
		return 0
	}
	return float64(f.InterruptedSessions) / float64(total)
}

// BurnoutRiskScore adds up overwork, late-night work, interruptions, low
// productivity, and long streaks, capped at 100.
func BurnoutRiskScore(f BurnoutFactors) float64 {
	var score float64

	if f.OverworkMinutes > 60 {
		overwork := float64(f.OverworkMinutes) / 6
		if overwork > 40 {
			overwork = 40
		}
		score += overwork
	}

	if f.LateNightSessions >= 2 {
		lateNight := float64(f.LateNightSessions-1) * 10
		if lateNight > 30 {
			lateNight = 30
		}
		score += lateNight
	}

	if rate := f.InterruptionRate(); rate > 0.5 {
		score += (rate - 0.5) * 40
	}

	if f.ProductivityScore < 30 {
		score += 10
	}

	if f.ConsecutiveWorkDays >= 7 {
		streak := float64(f.ConsecutiveWorkDays-6) * 2
		if streak > 10 {
			streak = 10
		}
		score += streak
	}

	return clampScore(score)
}
