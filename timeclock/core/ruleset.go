package core

import "time"

// RuleSet parameterizes the compliance rules so a jurisdiction is a value,
// not a code path. All thresholds compare with inclusive lower bounds: the
// boundary hour itself counts as already late.
type RuleSet struct {
	// A meal break becomes due once this much time has been worked.
	MealBreakDueAfter time.Duration
	// Working past this point without a qualifying meal break is a violation.
	MealBreakDeadline time.Duration
	// Working past this point with only one qualifying meal break is a violation.
	SecondMealDeadline time.Duration
	// One rest break is owed per interval of worked time.
	RestBreakInterval time.Duration
	// A meal break shorter than this does not satisfy the meal rule.
	MinMealDuration time.Duration
	// A meal waiver only holds while total worked time stays at or under this.
	WaiverMaxShift time.Duration

	OvertimeAfter   time.Duration
	DoubleTimeAfter time.Duration
}

// CaliforniaRules is the default CA-style rule set.
func CaliforniaRules() RuleSet {
	return RuleSet{
		MealBreakDueAfter:  4 * time.Hour,
		MealBreakDeadline:  5 * time.Hour,
		SecondMealDeadline: 10 * time.Hour,
		RestBreakInterval:  4 * time.Hour,
		MinMealDuration:    30 * time.Minute,
		WaiverMaxShift:     6 * time.Hour,
		OvertimeAfter:      8 * time.Hour,
		DoubleTimeAfter:    12 * time.Hour,
	}
}
