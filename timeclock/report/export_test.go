package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"shiftguard.com/shiftguard/timeclock/model"
)

func TestWriteXLSX(t *testing.T) {
	clockIn := time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	clockOut := clockIn.Add(9 * time.Hour)

	entry := model.ShiftEntry{
		ID:           42,
		WorkerID:     7,
		ClockIn:      clockIn,
		ClockOut:     &clockOut,
		BreakMinutes: 30,
		Status:       model.ShiftStatusCompleted,
		Attested:     true,
	}
	breakEnd := clockIn.Add(4*time.Hour + 30*time.Minute)
	rep := &ComplianceReport{
		CompanyID: "acme",
		StartDate: clockIn.Truncate(24 * time.Hour),
		EndDate:   clockIn.Truncate(24 * time.Hour).AddDate(0, 0, 1),
		Shifts:    []model.ShiftEntry{entry},
		Breaks: map[uint][]model.Break{
			42: {{
				ShiftEntryID: 42,
				WorkerID:     7,
				BreakType:    model.BreakTypeMeal,
				BreakStart:   clockIn.Add(4 * time.Hour),
				BreakEnd:     &breakEnd,
			}},
		},
		Alerts: []model.ComplianceAlert{{
			ShiftEntryID:         42,
			WorkerID:             7,
			AlertType:            model.AlertOvertimeWarning,
			Severity:             model.SeverityWarning,
			Title:                "Overtime started",
			HoursWorkedAtTrigger: 8,
			CreatedAt:            clockIn.Add(8 * time.Hour),
		}},
	}

	buf, err := WriteXLSX(rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	shiftRows, err := f.GetRows(sheetShifts)
	require.NoError(t, err)
	require.Len(t, shiftRows, 2)
	assert.Equal(t, "Shift ID", shiftRows[0][0])
	assert.Equal(t, "42", shiftRows[1][0])
	assert.Equal(t, "8.50", shiftRows[1][5]) // 9h on the clock less 30m meal
	assert.Equal(t, "1", shiftRows[1][7])

	alertRows, err := f.GetRows(sheetAlerts)
	require.NoError(t, err)
	require.Len(t, alertRows, 2)
	assert.Equal(t, "overtime_warning", alertRows[1][3])
	assert.Equal(t, "Overtime started", alertRows[1][5])
}

func TestWriteXLSXEmptyWindow(t *testing.T) {
	rep := &ComplianceReport{
		CompanyID: "acme",
		StartDate: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC),
	}

	buf, err := WriteXLSX(rep)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	shiftRows, err := f.GetRows(sheetShifts)
	require.NoError(t, err)
	assert.Len(t, shiftRows, 1)
}
