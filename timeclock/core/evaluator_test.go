package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shiftguard.com/shiftguard/timeclock/model"
)

func activeEntry(clockIn time.Time) *model.ShiftEntry {
	return &model.ShiftEntry{
		ID:        1,
		CompanyID: "acme",
		WorkerID:  7,
		ClockIn:   clockIn,
		Status:    model.ShiftStatusActive,
	}
}

func completedBreak(breakType string, start, end time.Time) model.Break {
	return model.Break{
		ShiftEntryID: 1,
		WorkerID:     7,
		BreakType:    breakType,
		BreakStart:   start,
		BreakEnd:     &end,
	}
}

func waivedMeal(at time.Time) model.Break {
	return model.Break{
		ShiftEntryID: 1,
		WorkerID:     7,
		BreakType:    model.BreakTypeMeal,
		BreakStart:   at,
		BreakEnd:     &at,
		Waived:       true,
	}
}

func alertTypes(candidates []Candidate) []model.AlertType {
	types := make([]model.AlertType, len(candidates))
	for i, c := range candidates {
		types[i] = c.Type
	}
	return types
}

func TestEvaluateMealRules(t *testing.T) {
	rules := CaliforniaRules()
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		breaks   []model.Break
		now      time.Time
		expected []model.AlertType
		excluded []model.AlertType
	}{
		{
			name:     "under four hours, nothing due",
			now:      nineAM.Add(3*time.Hour + 59*time.Minute),
			expected: nil,
		},
		{
			name:     "four hours, meal due warning",
			now:      nineAM.Add(4 * time.Hour),
			expected: []model.AlertType{model.AlertMealBreakDue},
			excluded: []model.AlertType{model.AlertMealBreakMissed},
		},
		{
			// Scenario A: in at 9:00, no breaks, evaluated at 14:00.
			name:     "five hours without meal is a violation, not a warning",
			now:      nineAM.Add(5 * time.Hour),
			expected: []model.AlertType{model.AlertMealBreakMissed},
			excluded: []model.AlertType{model.AlertMealBreakDue},
		},
		{
			// Scenario B: 30-minute meal 13:00-13:30, evaluated at 15:00.
			name: "qualifying meal clears meal alerts",
			breaks: []model.Break{
				completedBreak(model.BreakTypeMeal, nineAM.Add(4*time.Hour), nineAM.Add(4*time.Hour+30*time.Minute)),
			},
			now:      nineAM.Add(6 * time.Hour),
			expected: []model.AlertType{model.AlertRestBreakDue},
			excluded: []model.AlertType{model.AlertMealBreakDue, model.AlertMealBreakMissed},
		},
		{
			name: "short meal does not satisfy the rule",
			breaks: []model.Break{
				completedBreak(model.BreakTypeMeal, nineAM.Add(4*time.Hour), nineAM.Add(4*time.Hour+20*time.Minute)),
			},
			now:      nineAM.Add(6 * time.Hour),
			expected: []model.AlertType{model.AlertMealBreakMissed},
		},
		{
			name: "second meal missed at ten hours",
			breaks: []model.Break{
				completedBreak(model.BreakTypeMeal, nineAM.Add(4*time.Hour), nineAM.Add(4*time.Hour+30*time.Minute)),
			},
			now:      nineAM.Add(10*time.Hour + 30*time.Minute),
			expected: []model.AlertType{model.AlertSecondMealBreakMissed},
			excluded: []model.AlertType{model.AlertMealBreakMissed},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alertTypes(Evaluate(rules, activeEntry(nineAM), tt.breaks, tt.now))
			for _, want := range tt.expected {
				assert.Contains(t, got, want)
			}
			for _, not := range tt.excluded {
				assert.NotContains(t, got, not)
			}
			if tt.expected == nil && tt.excluded == nil {
				assert.Empty(t, got)
			}
		})
	}
}

func TestEvaluateWaiver(t *testing.T) {
	rules := CaliforniaRules()
	eightAM := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	entry := activeEntry(eightAM)
	breaks := []model.Break{waivedMeal(eightAM.Add(2 * time.Hour))}

	// Scenario C: waiver signed at hour two, shift stays at 5.5 hours.
	t.Run("waiver holds under the ceiling", func(t *testing.T) {
		got := alertTypes(Evaluate(rules, entry, breaks, eightAM.Add(5*time.Hour+30*time.Minute)))
		assert.NotContains(t, got, model.AlertMealBreakMissed)
		assert.NotContains(t, got, model.AlertMealBreakDue)
	})

	// Scenario D: same waiver, but the shift runs to 7 hours.
	t.Run("waiver stops qualifying past the ceiling", func(t *testing.T) {
		got := alertTypes(Evaluate(rules, entry, breaks, eightAM.Add(7*time.Hour)))
		assert.Contains(t, got, model.AlertMealBreakMissed)
	})
}

func TestEvaluateRestBreaks(t *testing.T) {
	rules := CaliforniaRules()
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	entry := activeEntry(nineAM)

	t.Run("one rest break owed after four hours", func(t *testing.T) {
		got := alertTypes(Evaluate(rules, entry, nil, nineAM.Add(4*time.Hour)))
		assert.Contains(t, got, model.AlertRestBreakDue)
	})

	t.Run("taken rest break clears the warning", func(t *testing.T) {
		breaks := []model.Break{
			completedBreak(model.BreakTypeRest, nineAM.Add(2*time.Hour), nineAM.Add(2*time.Hour+10*time.Minute)),
		}
		got := alertTypes(Evaluate(rules, entry, breaks, nineAM.Add(4*time.Hour+30*time.Minute)))
		assert.NotContains(t, got, model.AlertRestBreakDue)
	})

	t.Run("two rest breaks owed after eight hours", func(t *testing.T) {
		breaks := []model.Break{
			completedBreak(model.BreakTypeRest, nineAM.Add(2*time.Hour), nineAM.Add(2*time.Hour+10*time.Minute)),
		}
		got := alertTypes(Evaluate(rules, entry, breaks, nineAM.Add(8*time.Hour+30*time.Minute)))
		assert.Contains(t, got, model.AlertRestBreakDue)
	})
}

func TestEvaluateOvertime(t *testing.T) {
	rules := CaliforniaRules()
	sixAM := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)
	entry := activeEntry(sixAM)

	tests := []struct {
		name       string
		now        time.Time
		overtime   bool
		doubleTime bool
	}{
		{"before eight hours", sixAM.Add(7*time.Hour + 59*time.Minute), false, false},
		{"at eight hours", sixAM.Add(8 * time.Hour), true, false},
		{"just under twelve", sixAM.Add(11*time.Hour + 59*time.Minute), true, false},
		{"at twelve hours", sixAM.Add(12 * time.Hour), false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := alertTypes(Evaluate(rules, entry, nil, tt.now))
			assert.Equal(t, tt.overtime, containsType(got, model.AlertOvertimeWarning))
			assert.Equal(t, tt.doubleTime, containsType(got, model.AlertDoubleTimeWarning))
		})
	}
}

func TestEvaluateIsDeterministic(t *testing.T) {
	rules := CaliforniaRules()
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	entry := activeEntry(nineAM)
	now := nineAM.Add(9 * time.Hour)

	first := Evaluate(rules, entry, nil, now)
	second := Evaluate(rules, entry, nil, now)
	assert.Equal(t, first, second)

	// No alert type may appear twice in a single evaluation.
	seen := map[model.AlertType]bool{}
	for _, c := range first {
		assert.False(t, seen[c.Type], "duplicate candidate %s", c.Type)
		seen[c.Type] = true
	}
}

func TestEvaluateCompletedShiftUsesClockOut(t *testing.T) {
	rules := CaliforniaRules()
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	out := nineAM.Add(4 * time.Hour)
	entry := activeEntry(nineAM)
	entry.ClockOut = &out
	entry.Status = model.ShiftStatusCompleted

	// Evaluating long after clock-out must not grow worked hours.
	got := alertTypes(Evaluate(rules, entry, nil, out.Add(6*time.Hour)))
	assert.NotContains(t, got, model.AlertMealBreakMissed)
	assert.Contains(t, got, model.AlertMealBreakDue)
}

func containsType(types []model.AlertType, want model.AlertType) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
