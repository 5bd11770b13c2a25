package alerts

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	web "shiftguard.com/shiftguard/web/common"
	"shiftguard.com/shiftguard/web/middlewares"
)

func (ep *Endpoint) Acknowledge(c *gin.Context) {
	identity := middlewares.CurrentIdentity(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, web.NewErrorResponse("Not authenticated"))
		return
	}

	alertID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse("Invalid id"))
		return
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	if err := ep.ctl.AcknowledgeAlert(db, alertID, identity.Email); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, web.NewErrorResponse("Alert not found or already acknowledged"))
			return
		}
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSuccessResponse(gin.H{}))
}
