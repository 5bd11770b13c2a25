package core

import (
	"fmt"
	"time"

	"shiftguard.com/shiftguard/timeclock/model"
)

// Candidate is a rule match produced by Evaluate. The caller decides which
// candidates are new for the shift before persisting anything.
type Candidate struct {
	Type        model.AlertType
	Severity    model.Severity
	Title       string
	Description string
	HoursWorked float64
}

// Evaluate runs the rule table against a shift. It is pure and total: it
// never errors, never touches storage, and identical input always yields the
// same candidates in the same order.
func Evaluate(rules RuleSet, entry *model.ShiftEntry, breaks []model.Break, now time.Time) []Candidate {
	worked := HoursWorked(entry, breaks, now)
	hours := worked.Hours()

	meals := qualifyingMealBreaks(rules, breaks, worked)
	rests := completedRestBreaks(breaks)

	var out []Candidate

	if meals == 0 && worked >= rules.MealBreakDueAfter && worked < rules.MealBreakDeadline {
		out = append(out, Candidate{
			Type:        model.AlertMealBreakDue,
			Severity:    model.SeverityWarning,
			Title:       "Meal break due",
			Description: fmt.Sprintf("%.1f hours worked without a meal break; one must start before the %.0f hour mark.", hours, rules.MealBreakDeadline.Hours()),
			HoursWorked: hours,
		})
	}

	if meals == 0 && worked >= rules.MealBreakDeadline {
		out = append(out, Candidate{
			Type:        model.AlertMealBreakMissed,
			Severity:    model.SeverityViolation,
			Title:       "Meal break missed",
			Description: fmt.Sprintf("%.1f hours worked with no qualifying meal break.", hours),
			HoursWorked: hours,
		})
	}

	if meals == 1 && worked >= rules.SecondMealDeadline {
		out = append(out, Candidate{
			Type:        model.AlertSecondMealBreakMissed,
			Severity:    model.SeverityViolation,
			Title:       "Second meal break missed",
			Description: fmt.Sprintf("%.1f hours worked with only one qualifying meal break.", hours),
			HoursWorked: hours,
		})
	}

	if owed := int(worked / rules.RestBreakInterval); owed > rests {
		out = append(out, Candidate{
			Type:        model.AlertRestBreakDue,
			Severity:    model.SeverityWarning,
			Title:       "Rest break due",
			Description: fmt.Sprintf("%d rest break(s) owed after %.1f hours, %d taken.", owed, hours, rests),
			HoursWorked: hours,
		})
	}

	if worked >= rules.OvertimeAfter && worked < rules.DoubleTimeAfter {
		out = append(out, Candidate{
			Type:        model.AlertOvertimeWarning,
			Severity:    model.SeverityInfo,
			Title:       "Overtime",
			Description: fmt.Sprintf("Shift has reached %.1f hours; overtime rates apply past %.0f hours.", hours, rules.OvertimeAfter.Hours()),
			HoursWorked: hours,
		})
	}

	if worked >= rules.DoubleTimeAfter {
		out = append(out, Candidate{
			Type:        model.AlertDoubleTimeWarning,
			Severity:    model.SeverityWarning,
			Title:       "Double time",
			Description: fmt.Sprintf("Shift has reached %.1f hours; double-time rates apply past %.0f hours.", hours, rules.DoubleTimeAfter.Hours()),
			HoursWorked: hours,
		})
	}

	return out
}

// qualifyingMealBreaks counts meal breaks that satisfy the rule: completed
// with at least the minimum duration, or waived while total worked time is
// still at or under the waiver ceiling. A waiver that was legal when signed
// stops qualifying once the shift outgrows the ceiling.
func qualifyingMealBreaks(rules RuleSet, breaks []model.Break, worked time.Duration) int {
	count := 0
	for i := range breaks {
		b := &breaks[i]
		if b.BreakType != model.BreakTypeMeal {
			continue
		}
		if b.Waived {
			if worked <= rules.WaiverMaxShift {
				count++
			}
			continue
		}
		if b.BreakEnd != nil && b.Duration() >= rules.MinMealDuration {
			count++
		}
	}
	return count
}

// completedRestBreaks counts completed rest breaks; rest breaks cannot be
// waived in this model.
func completedRestBreaks(breaks []model.Break) int {
	count := 0
	for i := range breaks {
		b := &breaks[i]
		if b.BreakType == model.BreakTypeRest && !b.Waived && b.BreakEnd != nil {
			count++
		}
	}
	return count
}
