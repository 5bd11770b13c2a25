package session

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftguard.com/shiftguard/core"
	tc "shiftguard.com/shiftguard/timeclock/core"
	common "shiftguard.com/shiftguard/timeclock/web/common"
	web "shiftguard.com/shiftguard/web/common"
)

// Endpoint serves the worker-facing clock lifecycle: clock in, breaks,
// waiver, clock out, and the current-session snapshot.
type Endpoint struct {
	base common.Handler
	ctl  *tc.Controller
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, ctl *tc.Controller) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, ctl: ctl}
	r.POST("/clock-in", endpoint.ClockIn)
	r.POST("/clock-out", endpoint.ClockOut)
	r.POST("/breaks", endpoint.StartBreak)
	r.PUT("/breaks/end", endpoint.EndBreak)
	r.POST("/breaks/waive-meal", endpoint.WaiveMealBreak)
	r.GET("/status", endpoint.Status)
	r.GET("/roster", endpoint.Roster)
}

// respondError maps the core's typed errors onto status codes. Precondition
// failures carry enough detail for the client to explain the conflict.
func respondError(c *gin.Context, err error) {
	var clockedIn *tc.AlreadyClockedInError
	if errors.As(err, &clockedIn) {
		c.JSON(http.StatusConflict, web.NewErrorResponseWithDetail(clockedIn.Error(), gin.H{
			"shiftEntryId": clockedIn.ShiftEntryID,
			"since":        clockedIn.Since,
		}))
		return
	}

	var waiver *tc.WaiverNotEligibleError
	if errors.As(err, &waiver) {
		c.JSON(http.StatusConflict, web.NewErrorResponseWithDetail(waiver.Error(), gin.H{
			"hoursWorked": waiver.HoursWorked,
			"maxHours":    waiver.MaxHours,
		}))
		return
	}

	switch {
	case errors.Is(err, tc.ErrNoActiveShift), errors.Is(err, tc.ErrNoOpenBreak):
		c.JSON(http.StatusNotFound, web.NewErrorResponse(err.Error()))
	case errors.Is(err, tc.ErrAlreadyOnBreak), errors.Is(err, tc.ErrOpenBreakPending):
		c.JSON(http.StatusConflict, web.NewErrorResponse(err.Error()))
	case errors.Is(err, tc.ErrAttestationRequired):
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(err.Error()))
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, web.NewErrorResponse(err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
	}
}
