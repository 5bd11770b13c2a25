package alerts

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftguard.com/shiftguard/timeclock/model"
	web "shiftguard.com/shiftguard/web/common"
)

type SearchParams struct {
	StartDate    *web.DateOnly `json:"startDate" binding:"required"`
	EndDate      *web.DateOnly `json:"endDate" binding:"required"`
	Workers      []uint        `json:"workers"`
	AlertTypes   []string      `json:"alertTypes"`
	Severities   []string      `json:"severities"`
	Acknowledged *bool         `json:"acknowledged,omitempty"`
}

func (params *SearchParams) apply(db *gorm.DB) *gorm.DB {
	q := db.Model(&model.ComplianceAlert{}).
		Where("created_at >= ? AND created_at < ?",
			params.StartDate.Time, params.EndDate.AddDate(0, 0, 1))
	if len(params.Workers) > 0 {
		q = q.Where("worker_id IN ?", params.Workers)
	}
	if len(params.AlertTypes) > 0 {
		q = q.Where("alert_type IN ?", params.AlertTypes)
	}
	if len(params.Severities) > 0 {
		q = q.Where("severity IN ?", params.Severities)
	}
	if params.Acknowledged != nil {
		q = q.Where("acknowledged = ?", *params.Acknowledged)
	}
	return q
}

func (ep *Endpoint) Search(c *gin.Context) {
	var params SearchParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, web.NewErrorResponse(web.FormatBindingError(err)))
		return
	}

	limit := 1000
	offset := 0
	if val, err := strconv.Atoi(c.Query("limit")); err == nil {
		limit = val
	}
	if val, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = val
	}

	db, conn, err := ep.base.GetDB(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}
	defer conn.Close()

	var total int64
	if err := params.apply(db).Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	var results []model.ComplianceAlert
	if err := params.apply(db).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&results).Error; err != nil {
		c.JSON(http.StatusInternalServerError, web.NewErrorResponse(err.Error()))
		return
	}

	c.JSON(http.StatusOK, web.NewSearchResponse(results, total))
}
