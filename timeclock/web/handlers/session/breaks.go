package session

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"shiftguard.com/shiftguard/web/middlewares"
	web "shiftguard.com/shiftguard/web/common"
)

func (ep *Endpoint) StartBreak(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	var dto StartBreakDTO
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

	brk, err := ep.ctl.StartBreak(db, identity.CompanyID, identity.WorkerID, dto.BreakType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(brk))
}

func (ep *Endpoint) EndBreak(c *gin.Context) {
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

	brk, err := ep.ctl.EndBreak(db, identity.CompanyID, identity.WorkerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(brk))
}

func (ep *Endpoint) WaiveMealBreak(c *gin.Context) {
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

	brk, err := ep.ctl.WaiveMealBreak(db, identity.CompanyID, identity.WorkerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, web.NewSuccessResponse(brk))
}
