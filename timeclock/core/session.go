package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"shiftguard.com/shiftguard/timeclock/model"
)

const geocodeTimeout = 10 * time.Second

// Notifier publishes alerts to operators. Delivery is fire-and-forget;
// failures never affect ledger state.
type Notifier interface {
	PublishAlert(alert *model.ComplianceAlert) error
}

// Geocoder resolves coordinates to a street address, best effort.
type Geocoder interface {
	Resolve(ctx context.Context, lat, lng float64) (string, error)
}

// TenantDBFunc opens a connection bound to a company's schema. The returned
// release func must be called when done. Used by background work that
// outlives the request-scoped connection.
type TenantDBFunc func(ctx context.Context, companyID string) (*gorm.DB, func(), error)

// Controller is the shift session state machine. It is the only component
// with write authority over shifts and breaks, and the only alert emitter.
// Operations for one worker are serialized through a per-worker mutex; the
// ledger's ActiveKey unique index backs this up across processes.
type Controller struct {
	rules    RuleSet
	notifier Notifier
	geocoder Geocoder
	tenantDB TenantDBFunc
	logger   *zap.Logger
	now      func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewController(rules RuleSet, notifier Notifier, geocoder Geocoder, tenantDB TenantDBFunc, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		rules:    rules,
		notifier: notifier,
		geocoder: geocoder,
		tenantDB: tenantDB,
		logger:   logger,
		now:      time.Now,
		locks:    map[string]*sync.Mutex{},
	}
}

// SetClock overrides the time source, for tests.
func (ctl *Controller) SetClock(now func() time.Time) {
	ctl.now = now
}

func (ctl *Controller) lockFor(companyID string, workerID uint) *sync.Mutex {
	key := fmt.Sprintf("%s/%d", companyID, workerID)
	ctl.mu.Lock()
	defer ctl.mu.Unlock()
	if l, ok := ctl.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	ctl.locks[key] = l
	return l
}

// ClockIn opens a shift for the worker. The geolocation address is resolved
// in the background and can never block or fail the transition.
func (ctl *Controller) ClockIn(db *gorm.DB, companyID string, workerID uint, jobID *uint, loc *model.Location) (*model.ShiftEntry, error) {
	l := ctl.lockFor(companyID, workerID)
	l.Lock()
	defer l.Unlock()

	entry, err := OpenShift(db, companyID, workerID, jobID, loc, ctl.now())
	if err != nil {
		return nil, err
	}

	if _, err := ctl.evaluateAndEmit(db, entry, nil, ctl.now()); err != nil {
		return nil, err
	}

	if loc != nil {
		ctl.resolveAddress(companyID, entry.ID, "clock_in_address", loc)
	}
	return entry, nil
}

// StartBreak opens a meal or rest break on the worker's active shift.
func (ctl *Controller) StartBreak(db *gorm.DB, companyID string, workerID uint, breakType string) (*model.Break, error) {
	l := ctl.lockFor(companyID, workerID)
	l.Lock()
	defer l.Unlock()

	entry, breaks, err := ctl.activeShiftWithBreaks(db, workerID)
	if err != nil {
		return nil, err
	}

	brk, err := StartBreak(db, entry, breaks, breakType, ctl.now())
	if err != nil {
		return nil, err
	}

	breaks = append(breaks, *brk)
	if _, err := ctl.evaluateAndEmit(db, entry, breaks, ctl.now()); err != nil {
		return nil, err
	}
	return brk, nil
}

// EndBreak closes the worker's open break.
func (ctl *Controller) EndBreak(db *gorm.DB, companyID string, workerID uint) (*model.Break, error) {
	l := ctl.lockFor(companyID, workerID)
	l.Lock()
	defer l.Unlock()

	entry, breaks, err := ctl.activeShiftWithBreaks(db, workerID)
	if err != nil {
		return nil, err
	}

	brk, err := EndBreak(db, breaks, ctl.now())
	if err != nil {
		return nil, err
	}

	if _, err := ctl.evaluateAndEmit(db, entry, breaks, ctl.now()); err != nil {
		return nil, err
	}
	return brk, nil
}

// WaiveMealBreak records a waived meal break when the worker is still
// eligible (worked hours at or under the waiver ceiling).
func (ctl *Controller) WaiveMealBreak(db *gorm.DB, companyID string, workerID uint) (*model.Break, error) {
	l := ctl.lockFor(companyID, workerID)
	l.Lock()
	defer l.Unlock()

	entry, breaks, err := ctl.activeShiftWithBreaks(db, workerID)
	if err != nil {
		return nil, err
	}

	brk, err := WaiveMealBreak(db, ctl.rules, entry, breaks, ctl.now())
	if err != nil {
		return nil, err
	}

	breaks = append(breaks, *brk)
	if _, err := ctl.evaluateAndEmit(db, entry, breaks, ctl.now()); err != nil {
		return nil, err
	}
	return brk, nil
}

// ClockOut completes the worker's shift. A still-open break is force-closed
// at "now" first. Self-reported misses in the attestation always surface as
// violation alerts, whether or not the evaluator's own rules re-trigger.
func (ctl *Controller) ClockOut(db *gorm.DB, companyID string, workerID uint, att *model.Attestation, loc *model.Location) (*model.ShiftEntry, error) {
	l := ctl.lockFor(companyID, workerID)
	l.Lock()
	defer l.Unlock()

	entry, breaks, err := ctl.activeShiftWithBreaks(db, workerID)
	if err != nil {
		return nil, err
	}
	if att == nil {
		return nil, ErrAttestationRequired
	}

	if OpenBreakOf(breaks) != nil {
		if _, err := EndBreak(db, breaks, ctl.now()); err != nil {
			return nil, err
		}
	}

	entry, err = CloseShift(db, entry, breaks, att, loc, ctl.now())
	if err != nil {
		return nil, err
	}

	if _, err := ctl.evaluateAndEmit(db, entry, breaks, ctl.now()); err != nil {
		return nil, err
	}
	if err := ctl.emitAttestedMisses(db, entry, breaks); err != nil {
		return nil, err
	}

	if loc != nil {
		ctl.resolveAddress(companyID, entry.ID, "clock_out_address", loc)
	}
	return entry, nil
}

// Status is a read-only snapshot of a worker's current session.
type Status struct {
	Entry        *model.ShiftEntry       `json:"entry"`
	Breaks       []model.Break           `json:"breaks"`
	OnBreak      bool                    `json:"onBreak"`
	HoursWorked  float64                 `json:"hoursWorked"`
	ActiveAlerts []model.ComplianceAlert `json:"activeAlerts"`
}

// CurrentStatus reports the worker's active shift, if any, with worked hours
// and the unacknowledged alerts for that shift.
func (ctl *Controller) CurrentStatus(db *gorm.DB, workerID uint) (*Status, error) {
	entry, err := FindActiveShift(db, workerID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return &Status{Breaks: []model.Break{}, ActiveAlerts: []model.ComplianceAlert{}}, nil
	}

	breaks, err := ListBreaks(db, entry.ID)
	if err != nil {
		return nil, err
	}

	var alerts []model.ComplianceAlert
	if err := db.Where("shift_entry_id = ? AND acknowledged = ?", entry.ID, false).
		Order("created_at ASC").
		Find(&alerts).Error; err != nil {
		return nil, fmt.Errorf("failed to load alerts: %w", err)
	}

	return &Status{
		Entry:        entry,
		Breaks:       breaks,
		OnBreak:      OpenBreakOf(breaks) != nil,
		HoursWorked:  HoursWorked(entry, breaks, ctl.now()).Hours(),
		ActiveAlerts: alerts,
	}, nil
}

// AcknowledgeAlert marks an alert acknowledged by an operator. The flag is
// the only mutable field on an alert row.
func (ctl *Controller) AcknowledgeAlert(db *gorm.DB, alertID uuid.UUID, operator string) error {
	now := ctl.now()
	res := db.Model(&model.ComplianceAlert{}).
		Where("id = ? AND acknowledged = ?", alertID, false).
		Updates(map[string]interface{}{
			"acknowledged":    true,
			"acknowledged_at": now,
			"acknowledged_by": operator,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to acknowledge alert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Sweep re-evaluates every active shift in the schema. It only reads shifts
// and appends alerts, so a late or concurrent sweep can never corrupt ledger
// state. Returns the number of newly emitted alerts.
func (ctl *Controller) Sweep(db *gorm.DB) (int, error) {
	var entries []model.ShiftEntry
	if err := db.Where("status = ?", model.ShiftStatusActive).Find(&entries).Error; err != nil {
		return 0, fmt.Errorf("failed to list active shifts: %w", err)
	}

	emitted := 0
	for i := range entries {
		entry := &entries[i]
		breaks, err := ListBreaks(db, entry.ID)
		if err != nil {
			ctl.logger.Error("sweep: failed to load breaks",
				zap.Uint("shift_entry_id", entry.ID), zap.Error(err))
			continue
		}
		created, err := ctl.evaluateAndEmit(db, entry, breaks, ctl.now())
		if err != nil {
			ctl.logger.Error("sweep: failed to emit alerts",
				zap.Uint("shift_entry_id", entry.ID), zap.Error(err))
			continue
		}
		emitted += len(created)
	}
	return emitted, nil
}

func (ctl *Controller) activeShiftWithBreaks(db *gorm.DB, workerID uint) (*model.ShiftEntry, []model.Break, error) {
	entry, err := FindActiveShift(db, workerID)
	if err != nil {
		return nil, nil, err
	}
	if entry == nil {
		return nil, nil, ErrNoActiveShift
	}
	breaks, err := ListBreaks(db, entry.ID)
	if err != nil {
		return nil, nil, err
	}
	return entry, breaks, nil
}

// evaluateAndEmit runs the evaluator and persists only alert types not yet
// present for the shift. The unique index plus OnConflict DoNothing makes
// emission idempotent even when an event and the sweep race.
func (ctl *Controller) evaluateAndEmit(db *gorm.DB, entry *model.ShiftEntry, breaks []model.Break, now time.Time) ([]model.ComplianceAlert, error) {
	candidates := Evaluate(ctl.rules, entry, breaks, now)
	return ctl.persistCandidates(db, entry, candidates)
}

// emitAttestedMisses unconditionally surfaces self-reported break misses
// from the clock-out attestation.
func (ctl *Controller) emitAttestedMisses(db *gorm.DB, entry *model.ShiftEntry, breaks []model.Break) error {
	hours := HoursWorked(entry, breaks, ctl.now()).Hours()

	var candidates []Candidate
	if entry.Attestation.MissedMealBreak {
		candidates = append(candidates, Candidate{
			Type:        model.AlertAttestedMissedMeal,
			Severity:    model.SeverityViolation,
			Title:       "Worker reported a missed meal break",
			Description: entry.Attestation.MissedMealNotes,
			HoursWorked: hours,
		})
	}
	if entry.Attestation.MissedRestBreak {
		candidates = append(candidates, Candidate{
			Type:        model.AlertAttestedMissedRest,
			Severity:    model.SeverityViolation,
			Title:       "Worker reported a missed rest break",
			Description: entry.Attestation.MissedRestNotes,
			HoursWorked: hours,
		})
	}

	_, err := ctl.persistCandidates(db, entry, candidates)
	return err
}

func (ctl *Controller) persistCandidates(db *gorm.DB, entry *model.ShiftEntry, candidates []Candidate) ([]model.ComplianceAlert, error) {
	var created []model.ComplianceAlert
	for _, cand := range candidates {
		alert := model.ComplianceAlert{
			CompanyID:            entry.CompanyID,
			WorkerID:             entry.WorkerID,
			ShiftEntryID:         entry.ID,
			AlertType:            cand.Type,
			Severity:             cand.Severity,
			Title:                cand.Title,
			Description:          cand.Description,
			HoursWorkedAtTrigger: cand.HoursWorked,
		}
		res := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "shift_entry_id"}, {Name: "alert_type"}},
			DoNothing: true,
		}).Create(&alert)
		if res.Error != nil {
			return created, fmt.Errorf("failed to create alert %s: %w", cand.Type, res.Error)
		}
		if res.RowsAffected == 0 {
			// Already emitted for this shift.
			continue
		}
		created = append(created, alert)
		ctl.publish(&alert)
	}
	return created, nil
}

// publish hands an alert to the notifier without letting delivery problems
// reach the caller.
func (ctl *Controller) publish(alert *model.ComplianceAlert) {
	if ctl.notifier == nil {
		return
	}
	a := *alert
	go func() {
		if err := ctl.notifier.PublishAlert(&a); err != nil {
			ctl.logger.Warn("alert publish failed",
				zap.String("alert_type", string(a.AlertType)),
				zap.Uint("shift_entry_id", a.ShiftEntryID),
				zap.Error(err))
		}
	}()
}

// resolveAddress looks up the street address for a captured location in the
// background and stores it on the shift row. Lookup failures degrade to "no
// address".
func (ctl *Controller) resolveAddress(companyID string, shiftEntryID uint, column string, loc *model.Location) {
	if ctl.geocoder == nil || ctl.tenantDB == nil {
		return
	}
	lat, lng := loc.Latitude, loc.Longitude
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), geocodeTimeout)
		defer cancel()

		address, err := ctl.geocoder.Resolve(ctx, lat, lng)
		if err != nil || address == "" {
			ctl.logger.Debug("geocode lookup failed",
				zap.Uint("shift_entry_id", shiftEntryID), zap.Error(err))
			return
		}

		db, release, err := ctl.tenantDB(ctx, companyID)
		if err != nil {
			ctl.logger.Debug("geocode: tenant db unavailable", zap.Error(err))
			return
		}
		defer release()

		if err := db.Model(&model.ShiftEntry{}).
			Where("id = ?", shiftEntryID).
			Update(column, address).Error; err != nil {
			ctl.logger.Debug("geocode: address update failed",
				zap.Uint("shift_entry_id", shiftEntryID), zap.Error(err))
		}
	}()
}
