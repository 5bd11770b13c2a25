package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	tc "shiftguard.com/shiftguard/timeclock/core"
	"shiftguard.com/shiftguard/timeclock/model"
	"shiftguard.com/shiftguard/utils"
	web "shiftguard.com/shiftguard/web/common"
	"shiftguard.com/shiftguard/web/middlewares"
)

func (ep *Endpoint) Status(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	status, err := ep.ctl.CurrentStatus(db, identity.WorkerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(status))
}

// Roster lists every worker currently on the clock for the tenant, ordered by
// clock-in time. Operator dashboards poll this.
func (ep *Endpoint) Roster(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var entries []model.ShiftEntry
	if err := db.Where("status = ?", model.ShiftStatusActive).
		Order("clock_in ASC").
		Find(&entries).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	entryIDs := utils.Map(entries, func(e model.ShiftEntry) uint { return e.ID })

	breaksByEntry := map[uint][]model.Break{}
	alertsByEntry := map[uint]int64{}
	if len(entryIDs) > 0 {
		var breaks []model.Break
		if err := db.Where("shift_entry_id IN ?", entryIDs).
			Order("break_start ASC").
			Find(&breaks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}
		breaksByEntry = utils.GroupBy(breaks, func(b model.Break) uint { return b.ShiftEntryID })

		type alertCount struct {
			ShiftEntryID uint
			Count        int64
		}
		var counts []alertCount
		if err := db.Model(&model.ComplianceAlert{}).
			Select("shift_entry_id, COUNT(*) AS count").
			Where("shift_entry_id IN ? AND acknowledged = ?", entryIDs, false).
			Group("shift_entry_id").
			Scan(&counts).Error; err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}
		for _, ac := range counts {
			alertsByEntry[ac.ShiftEntryID] = ac.Count
		}
	}

	now := time.Now()
	rows := make([]RosterRowDTO, len(entries))
	for i, entry := range entries {
		breaks := breaksByEntry[entry.ID]
		row := RosterRowDTO{
			ShiftEntryID: entry.ID,
			WorkerID:     entry.WorkerID,
			JobID:        entry.JobID,
			ClockIn:      entry.ClockIn,
			HoursWorked:  tc.HoursWorked(&entry, breaks, now).Hours(),
			OpenAlerts:   alertsByEntry[entry.ID],
		}
		if open := tc.OpenBreakOf(breaks); open != nil {
			row.OnBreak = true
			row.BreakType = open.BreakType
			row.BreakStart = &open.BreakStart
		}
		rows[i] = row
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(rows))
}
