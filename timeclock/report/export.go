package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	tc "shiftguard.com/shiftguard/timeclock/core"
	"shiftguard.com/shiftguard/timeclock/model"
	"shiftguard.com/shiftguard/utils"
)

// ComplianceReport is the input for one export: the shifts of the reporting
// window with their breaks and alerts already loaded.
type ComplianceReport struct {
	CompanyID string
	StartDate time.Time
	EndDate   time.Time
	Shifts    []model.ShiftEntry
	Breaks    map[uint][]model.Break
	Alerts    []model.ComplianceAlert
}

const (
	sheetShifts = "Shifts"
	sheetAlerts = "Alerts"
)

// WriteXLSX renders the report as a two-sheet workbook, one row per shift and
// one row per alert.
func WriteXLSX(rep *ComplianceReport) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetShifts)
	if _, err := f.NewSheet(sheetAlerts); err != nil {
		return nil, fmt.Errorf("failed to create alerts sheet: %w", err)
	}

	if err := writeShiftSheet(f, rep); err != nil {
		return nil, err
	}
	if err := writeAlertSheet(f, rep.Alerts); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize workbook: %w", err)
	}
	return buf, nil
}

func writeShiftSheet(f *excelize.File, rep *ComplianceReport) error {
	headers := []string{
		"Shift ID", "Worker ID", "Job ID", "Clock In", "Clock Out",
		"Hours Worked", "Break Minutes", "Meal Breaks", "Rest Breaks",
		"Meal Waived", "Attested", "Missed Meal", "Missed Rest",
	}
	if err := writeRow(f, sheetShifts, 1, headerRow(headers)); err != nil {
		return err
	}

	for i, entry := range rep.Shifts {
		breaks := rep.Breaks[entry.ID]
		meal := len(utils.Filter(breaks, func(b model.Break) bool {
			return !b.Waived && b.BreakType == model.BreakTypeMeal
		}))
		rest := len(utils.Filter(breaks, func(b model.Break) bool {
			return b.BreakType == model.BreakTypeRest
		}))
		waived := utils.Find(breaks, func(b model.Break) bool { return b.Waived }) != nil

		clockOut := ""
		if entry.ClockOut != nil {
			clockOut = entry.ClockOut.Format(time.RFC3339)
		}

		asOf := rep.EndDate
		if entry.ClockOut != nil {
			asOf = *entry.ClockOut
		}
		row := []interface{}{
			entry.ID,
			entry.WorkerID,
			utils.Format(entry.JobID),
			entry.ClockIn.Format(time.RFC3339),
			clockOut,
			fmt.Sprintf("%.2f", tc.HoursWorked(&entry, breaks, asOf).Hours()),
			entry.BreakMinutes,
			meal,
			rest,
			utils.FormatBoolean(waived, "yes", "no"),
			utils.FormatBoolean(entry.Attested, "yes", "no"),
			utils.FormatBoolean(entry.Attestation.MissedMealBreak, "yes", "no"),
			utils.FormatBoolean(entry.Attestation.MissedRestBreak, "yes", "no"),
		}
		if err := writeRow(f, sheetShifts, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeAlertSheet(f *excelize.File, alerts []model.ComplianceAlert) error {
	headers := []string{
		"Alert ID", "Shift ID", "Worker ID", "Type", "Severity",
		"Title", "Hours At Trigger", "Created", "Acknowledged", "Acknowledged By",
	}
	if err := writeRow(f, sheetAlerts, 1, headerRow(headers)); err != nil {
		return err
	}

	for i, alert := range alerts {
		row := []interface{}{
			alert.ID.String(),
			alert.ShiftEntryID,
			alert.WorkerID,
			string(alert.AlertType),
			string(alert.Severity),
			alert.Title,
			alert.HoursWorkedAtTrigger,
			alert.CreatedAt.Format(time.RFC3339),
			alert.Acknowledged,
			alert.AcknowledgedBy,
		}
		if err := writeRow(f, sheetAlerts, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", rowNum, sheet, err)
	}
	return nil
}

func headerRow(names []string) []interface{} {
	row := make([]interface{}, len(names))
	for i, name := range names {
		row[i] = name
	}
	return row
}
