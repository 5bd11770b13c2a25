package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/lambda"

	"shiftguard.com/shiftguard/console"
	"shiftguard.com/shiftguard/core"
	"shiftguard.com/shiftguard/infrastructure/communication"
	"shiftguard.com/shiftguard/infrastructure/devops"
	"shiftguard.com/shiftguard/infrastructure/logging"
	tc "shiftguard.com/shiftguard/timeclock/core"
)

type SweepEvent struct {
	Databases *[]string `json:"databases"`
	Env       string    `json:"env"`
}

type SweepStats struct {
	Schemas int `json:"schemas"`
}

// RunSweep re-evaluates every active shift across tenant schemas once. It is
// scheduled every minute; the web process runs the same sweep in-process, so
// overlap is harmless thanks to the alert unique index.
func RunSweep(ctx context.Context, dsn string, databases *[]string) (*SweepStats, error) {
	logger, err := logging.FromEnv("compliance-sweep")
	if err != nil {
		return nil, err
	}
	defer logger.Sync()

	dm, err := core.New(dsn, 10)
	if err != nil {
		return nil, fmt.Errorf("failed to create database manager: %w", err)
	}
	dm.LogLevel = core.LogLevelError
	defer dm.Close()

	notifier := &communication.Fanout{Sinks: []communication.Sink{
		communication.ConnectSlack(),
		communication.ConnectEmail(),
	}}
	ctl := tc.NewController(tc.CaliforniaRules(), notifier, nil, nil, logger)

	var schemas []string
	if databases != nil {
		schemas = *databases
	} else {
		schemas, err = activeTenantSchemas(ctx)
		if err != nil {
			return nil, err
		}
	}

	sweeper := &tc.Sweeper{
		Dm:         dm,
		Controller: ctl,
		Logger:     logger,
		Schemas: func(ctx context.Context) ([]string, error) {
			return schemas, nil
		},
	}
	sweeper.SweepAll(ctx, logger)
	return &SweepStats{Schemas: len(schemas)}, nil
}

// activeTenantSchemas asks the console for live subscriptions rather than
// walking every schema on the server.
func activeTenantSchemas(ctx context.Context) ([]string, error) {
	db, err := console.Connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to console: %w", err)
	}

	subs, err := console.ActiveSubscriptions(db, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	schemas := make([]string, 0, len(subs))
	for _, sub := range subs {
		schemas = append(schemas, sub.SchemaName())
	}
	return schemas, nil
}

func HandleRequest(ctx context.Context, event SweepEvent) (*SweepStats, error) {
	eventJson, _ := json.Marshal(event)
	fmt.Printf("[INFO] Event: %s\n", string(eventJson))

	env := strings.ToLower(event.Env)
	if env == "" {
		return nil, fmt.Errorf("environment (env) is required")
	}

	dbs, err := devops.LoadDatabases(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load databases from SSM: %w", err)
	}
	entry, ok := dbs[env]
	if !ok {
		return nil, fmt.Errorf("environment '%s' not found in parameter store", env)
	}

	return RunSweep(ctx, entry.GetDSN(""), event.Databases)
}

func main() {
	if os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "" {
		lambda.Start(HandleRequest)
	} else {
		stats, err := RunSweep(context.Background(), os.Getenv("DSN"), nil)
		if err != nil {
			fmt.Printf("[ERROR] %v\n", err)
			os.Exit(1)
		}
		resJson, _ := json.MarshalIndent(stats, "", "  ")
		fmt.Printf("[SUCCESS] Results:\n%s\n", string(resJson))
	}
}
