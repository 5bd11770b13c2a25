package main

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shiftguard.com/shiftguard/core"
	"shiftguard.com/shiftguard/infrastructure/communication"
	"shiftguard.com/shiftguard/infrastructure/geocode"
	"shiftguard.com/shiftguard/infrastructure/logging"
	tc "shiftguard.com/shiftguard/timeclock/core"
	"shiftguard.com/shiftguard/timeclock/web/handlers/alerts"
	"shiftguard.com/shiftguard/timeclock/web/handlers/session"
	"shiftguard.com/shiftguard/web/handlers"
	"shiftguard.com/shiftguard/web/middlewares"
)

func main() {
	logger, err := logging.FromEnv("shiftguard-web")
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dsn := os.Getenv("DSN")
	dm, err := core.New(dsn, 10)
	if err != nil {
		log.Fatal(err)
	}
	defer dm.Close()

	base64Secret := os.Getenv("SHIFTGUARD_SIGNING_SECRET")
	jwtSecret, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		log.Fatal("Failed to decode JWT secret:", err)
	}

	notifier := &communication.Fanout{Sinks: []communication.Sink{
		communication.ConnectSlack(),
		communication.ConnectEmail(),
	}}

	tenantDB := func(ctx context.Context, companyID string) (*gorm.DB, func(), error) {
		db, conn, err := dm.GetDB(ctx, companyID)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { conn.Close() }, nil
	}

	ctl := tc.NewController(tc.CaliforniaRules(), notifier, geocode.NewClient(), tenantDB, logger)

	sweepInterval := time.Minute
	if val, err := time.ParseDuration(os.Getenv("SWEEP_INTERVAL")); err == nil {
		sweepInterval = val
	}
	sweeper := &tc.Sweeper{
		Dm:         dm,
		Controller: ctl,
		Interval:   sweepInterval,
		Logger:     logger,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.Run(ctx)

	r := gin.Default()
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
		})
	})

	protected := r.Group("/api/timeclock/v1.0")
	protected.Use(middlewares.Authentication(jwtSecret))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"identity": middlewares.CurrentIdentity(c)})
		})

		session.Register(protected, dm, ctl)
		alerts.Register(protected, dm, ctl)

		protected.POST("/signatures", handlers.UploadSignatureHandler(os.Getenv("SIGNATURE_BUCKET")))
	}

	addr := fmt.Sprintf("0.0.0.0:%s", port())
	logger.Info("listening", zap.String("addr", addr))
	r.Run(addr)
}

func port() string {
	if p := os.Getenv("PORT"); p != "" {
		return p
	}
	return "8090"
}
