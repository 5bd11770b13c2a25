package alerts

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftguard.com/shiftguard/timeclock/model"
	"shiftguard.com/shiftguard/timeclock/report"
	"shiftguard.com/shiftguard/utils"
	web "shiftguard.com/shiftguard/web/common"
	"shiftguard.com/shiftguard/web/middlewares"
)

type ReportParams struct {
	StartDate *web.DateOnly `json:"startDate" binding:"required"`
	EndDate   *web.DateOnly `json:"endDate" binding:"required"`
	Workers   []uint        `json:"workers"`
}

// ExportCompliance streams an XLSX workbook of the window's shifts and alerts.
func (ep *Endpoint) ExportCompliance(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	var params ReportParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	windowEnd := params.EndDate.AddDate(0, 0, 1)

	shiftQuery := db.Where("clock_in >= ? AND clock_in < ?", params.StartDate.Time, windowEnd)
	alertQuery := db.Where("created_at >= ? AND created_at < ?", params.StartDate.Time, windowEnd)
	if len(params.Workers) > 0 {
		shiftQuery = shiftQuery.Where("worker_id IN ?", params.Workers)
		alertQuery = alertQuery.Where("worker_id IN ?", params.Workers)
	}

	var shifts []model.ShiftEntry
	if err := shiftQuery.Order("clock_in ASC").Find(&shifts).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	breaksByEntry := map[uint][]model.Break{}
	if len(shifts) > 0 {
		entryIDs := utils.Map(shifts, func(e model.ShiftEntry) uint { return e.ID })
		var breaks []model.Break
		if err := db.Where("shift_entry_id IN ?", entryIDs).
			Order("break_start ASC").
			Find(&breaks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
			return
		}
		breaksByEntry = utils.GroupBy(breaks, func(b model.Break) uint { return b.ShiftEntryID })
	}

	var alertRows []model.ComplianceAlert
	if err := alertQuery.Order("created_at ASC").Find(&alertRows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	buf, err := report.WriteXLSX(&report.ComplianceReport{
		CompanyID: identity.CompanyID,
		StartDate: params.StartDate.Time,
		EndDate:   windowEnd,
		Shifts:    shifts,
		Breaks:    breaksByEntry,
		Alerts:    alertRows,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	filename := fmt.Sprintf("compliance-%s-%s.xlsx",
		params.StartDate.Format("2006-01-02"), params.EndDate.Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		buf.Bytes())
}
