package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"shiftguard.com/shiftguard/timeclock/model"
)

func TestStartBreakPreconditions(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("no active shift", func(t *testing.T) {
		_, err := StartBreak(nil, nil, nil, model.BreakTypeMeal, nineAM)
		assert.ErrorIs(t, err, ErrNoActiveShift)
	})

	t.Run("already on break", func(t *testing.T) {
		breaks := []model.Break{{BreakType: model.BreakTypeRest, BreakStart: nineAM.Add(time.Hour)}}
		_, err := StartBreak(nil, activeEntry(nineAM), breaks, model.BreakTypeMeal, nineAM.Add(2*time.Hour))
		assert.ErrorIs(t, err, ErrAlreadyOnBreak)
	})

	t.Run("unknown break type", func(t *testing.T) {
		_, err := StartBreak(nil, activeEntry(nineAM), nil, "nap", nineAM.Add(time.Hour))
		assert.Error(t, err)
	})
}

func TestEndBreakRequiresOpenBreak(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("no breaks at all", func(t *testing.T) {
		_, err := EndBreak(nil, nil, nineAM)
		assert.ErrorIs(t, err, ErrNoOpenBreak)
	})

	t.Run("retry against a closed break fails cleanly", func(t *testing.T) {
		closed := completedBreak(model.BreakTypeRest, nineAM.Add(time.Hour), nineAM.Add(time.Hour+10*time.Minute))
		_, err := EndBreak(nil, []model.Break{closed}, nineAM.Add(2*time.Hour))
		assert.ErrorIs(t, err, ErrNoOpenBreak)
	})
}

func TestWaiveMealBreakEligibility(t *testing.T) {
	eightAM := time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)
	rules := CaliforniaRules()

	t.Run("no active shift", func(t *testing.T) {
		_, err := WaiveMealBreak(nil, rules, nil, nil, eightAM)
		assert.ErrorIs(t, err, ErrNoActiveShift)
	})

	t.Run("past six worked hours is not eligible", func(t *testing.T) {
		_, err := WaiveMealBreak(nil, rules, activeEntry(eightAM), nil, eightAM.Add(6*time.Hour+1*time.Minute))
		var eligibility *WaiverNotEligibleError
		assert.ErrorAs(t, err, &eligibility)
		assert.InDelta(t, 6.02, eligibility.HoursWorked, 0.01)
	})

	t.Run("exactly six hours is still eligible", func(t *testing.T) {
		worked, ok := WaiverEligible(rules, activeEntry(eightAM), nil, eightAM.Add(6*time.Hour))
		assert.True(t, ok)
		assert.Equal(t, 6*time.Hour, worked)
	})

	t.Run("break time extends eligibility", func(t *testing.T) {
		// 6.5 elapsed hours but only 6 worked after a 30-minute rest.
		breaks := []model.Break{
			completedBreak(model.BreakTypeRest, eightAM.Add(2*time.Hour), eightAM.Add(2*time.Hour+30*time.Minute)),
		}
		_, ok := WaiverEligible(rules, activeEntry(eightAM), breaks, eightAM.Add(6*time.Hour+30*time.Minute))
		assert.True(t, ok)
	})
}
