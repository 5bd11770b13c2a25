package alerts

import (
	"github.com/gin-gonic/gin"

	"shiftguard.com/shiftguard/core"
	tc "shiftguard.com/shiftguard/timeclock/core"
	common "shiftguard.com/shiftguard/timeclock/web/common"
)

// Endpoint serves the operator-facing alert workflow: search, acknowledge,
// and the compliance report export.
type Endpoint struct {
	base common.Handler
	ctl  *tc.Controller
}

func Register(r *gin.RouterGroup, dm *core.DatabaseManager, ctl *tc.Controller) {
	endpoint := &Endpoint{base: common.Handler{Dm: dm}, ctl: ctl}
	r.POST("/alerts/search", endpoint.Search)
	r.PUT("/alerts/:id/acknowledge", endpoint.Acknowledge)
	r.POST("/reports/compliance", endpoint.ExportCompliance)
}
