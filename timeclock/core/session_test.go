package core

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"shiftguard.com/shiftguard/timeclock/model"
)

type captureNotifier struct {
	alerts chan model.ComplianceAlert
}

func newCaptureNotifier() *captureNotifier {
	return &captureNotifier{alerts: make(chan model.ComplianceAlert, 16)}
}

func (n *captureNotifier) PublishAlert(alert *model.ComplianceAlert) error {
	n.alerts <- *alert
	return nil
}

func (n *captureNotifier) wait(t *testing.T) model.ComplianceAlert {
	t.Helper()
	select {
	case a := <-n.alerts:
		return a
	case <-time.After(2 * time.Second):
		t.Fatal("expected an alert to be published")
		return model.ComplianceAlert{}
	}
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, sqlDB
}

func newTestController(notifier Notifier, now time.Time) *Controller {
	ctl := NewController(CaliforniaRules(), notifier, nil, nil, nil)
	ctl.SetClock(func() time.Time { return now })
	return ctl
}

func shiftRow(id uint, workerID uint, clockIn time.Time) *sqlmock.Rows {
	key := "7"
	return sqlmock.NewRows([]string{"id", "company_id", "worker_id", "active_key", "clock_in", "status", "break_minutes"}).
		AddRow(id, "acme", workerID, key, clockIn, model.ShiftStatusActive, 0)
}

func TestClockInRejectsSecondShift(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT .* FROM `shift_entries`").
		WillReturnRows(shiftRow(41, 7, nineAM))

	ctl := newTestController(nil, nineAM.Add(2*time.Hour))
	_, err := ctl.ClockIn(db, "acme", 7, nil, nil)

	var clocked *AlreadyClockedInError
	require.ErrorAs(t, err, &clocked)
	assert.Equal(t, uint(41), clocked.ShiftEntryID)
	assert.Equal(t, nineAM, clocked.Since.UTC())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClockOutAutoClosesOpenBreak(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	now := nineAM.Add(time.Hour)
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	breakID := uuid.New()
	mock.ExpectQuery("SELECT .* FROM `shift_entries`").
		WillReturnRows(shiftRow(41, 7, nineAM))
	mock.ExpectQuery("SELECT .* FROM `breaks`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "shift_entry_id", "worker_id", "break_type", "break_start", "break_end", "waived"}).
			AddRow(breakID.String(), 41, 7, model.BreakTypeRest, nineAM.Add(30*time.Minute), nil, false))

	// auto-close of the open break, then the shift close
	mock.ExpectExec("UPDATE `breaks`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE `shift_entries`").WillReturnResult(sqlmock.NewResult(0, 1))

	ctl := newTestController(nil, now)
	att := &model.Attestation{CompletedAt: now}
	entry, err := ctl.ClockOut(db, "acme", 7, att, nil)

	require.NoError(t, err)
	assert.Equal(t, model.ShiftStatusCompleted, entry.Status)
	require.NotNil(t, entry.ClockOut)
	assert.Equal(t, now, entry.ClockOut.UTC())
	assert.Nil(t, entry.ActiveKey)
	// Open break was force-closed at "now": 30 minutes of break time.
	assert.Equal(t, 30, entry.BreakMinutes)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClockOutRequiresAttestation(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT .* FROM `shift_entries`").
		WillReturnRows(shiftRow(41, 7, nineAM))
	mock.ExpectQuery("SELECT .* FROM `breaks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ctl := newTestController(nil, nineAM.Add(8*time.Hour))
	_, err := ctl.ClockOut(db, "acme", 7, nil, nil)
	assert.ErrorIs(t, err, ErrAttestationRequired)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSweepEmitsOnlyNewAlerts(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	db, mock, sqlDB := newMockDB(t)
	defer sqlDB.Close()

	mock.ExpectQuery("SELECT .* FROM `shift_entries`").
		WillReturnRows(shiftRow(41, 7, nineAM))
	mock.ExpectQuery("SELECT .* FROM `breaks`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	// Five hours, no breaks: meal_break_missed then rest_break_due. The
	// second insert hits the unique index (already emitted earlier).
	mock.ExpectExec("INSERT INTO `compliance_alerts`").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `compliance_alerts`").WillReturnResult(sqlmock.NewResult(0, 0))

	notifier := newCaptureNotifier()
	ctl := newTestController(notifier, nineAM.Add(5*time.Hour))

	emitted, err := ctl.Sweep(db)
	require.NoError(t, err)
	assert.Equal(t, 1, emitted)

	published := notifier.wait(t)
	assert.Equal(t, model.AlertMealBreakMissed, published.AlertType)
	assert.Equal(t, model.SeverityViolation, published.Severity)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAcknowledgeAlert(t *testing.T) {
	nineAM := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	t.Run("marks the row", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec("UPDATE `compliance_alerts`").WillReturnResult(sqlmock.NewResult(0, 1))

		ctl := newTestController(nil, nineAM)
		assert.NoError(t, ctl.AcknowledgeAlert(db, uuid.New(), "ops@acme"))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown or already acknowledged", func(t *testing.T) {
		db, mock, sqlDB := newMockDB(t)
		defer sqlDB.Close()

		mock.ExpectExec("UPDATE `compliance_alerts`").WillReturnResult(sqlmock.NewResult(0, 0))

		ctl := newTestController(nil, nineAM)
		err := ctl.AcknowledgeAlert(db, uuid.New(), "ops@acme")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLockForIsPerWorker(t *testing.T) {
	ctl := NewController(CaliforniaRules(), nil, nil, nil, nil)

	a := ctl.lockFor("acme", 7)
	b := ctl.lockFor("acme", 7)
	c := ctl.lockFor("acme", 8)
	d := ctl.lockFor("other", 7)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.NotSame(t, a, d)
}
