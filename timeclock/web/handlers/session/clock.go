package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shiftguard.com/shiftguard/web/middlewares"
	web "shiftguard.com/shiftguard/web/common"
)

func (ep *Endpoint) ClockIn(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	var dto ClockInDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	entry, err := ep.ctl.ClockIn(db, identity.CompanyID, identity.WorkerID, dto.JobID, dto.Location.toModel(time.Now()))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(entry))
}

func (ep *Endpoint) ClockOut(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	var dto ClockOutDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	now := time.Now()
	entry, err := ep.ctl.ClockOut(db, identity.CompanyID, identity.WorkerID, dto.Attestation.toModel(now), dto.Location.toModel(now))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(entry))
}
