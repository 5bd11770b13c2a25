package common

import (
	"database/sql"
	"net"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"shiftguard.com/shiftguard/core"
)

// Handler resolves the tenant schema from the request host and hands out a
// connection bound to it.
type Handler struct {
	Dm *core.DatabaseManager
}

func GetHostname(host string) string {
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}

func (h *Handler) GetDB(r *gin.Context) (*gorm.DB, *sql.Conn, error) {
	schema := core.SchemaFromHost(GetHostname(r.Request.Host))
	return h.Dm.GetDB(r.Request.Context(), schema)
}
