package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"shiftguard.com/shiftguard/cmd/importshifts/helper"
	"shiftguard.com/shiftguard/core"
	"shiftguard.com/shiftguard/infrastructure/filesystem"
	"shiftguard.com/shiftguard/timeclock/model"
	"shiftguard.com/shiftguard/utils"
)

func openSource(bucket, key, path string) (io.Reader, error) {
	if bucket != "" {
		var buf bytes.Buffer
		if err := filesystem.ReadFile(bucket, key, context.Background(), &buf); err != nil {
			return nil, fmt.Errorf("failed to read s3://%s/%s: %w", bucket, key, err)
		}
		return &buf, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}
	return file, nil
}

func main() {
	path := flag.String("file", "", "local punch CSV export")
	bucket := flag.String("bucket", "", "S3 bucket holding the export")
	key := flag.String("key", "", "S3 object key")
	_, pacificOffset := time.Now().In(utils.PacificTZ).Zone()
	offset := flag.Int("offset", pacificOffset, "site UTC offset in seconds")
	company := flag.String("company", "", "company schema the shifts belong to")
	dryRun := flag.Bool("dry-run", false, "parse and report without writing")
	flag.Parse()

	if (*path == "" && *bucket == "") || *company == "" {
		flag.Usage()
		os.Exit(1)
	}

	stream, err := openSource(*bucket, *key, *path)
	if err != nil {
		log.Fatal(err)
	}
	if closer, ok := stream.(io.Closer); ok {
		defer closer.Close()
	}

	punches, err := helper.ParsePunchCSV(stream, *offset)
	if err != nil {
		log.Fatalf("failed to parse CSV: %v", err)
	}
	fmt.Printf("Parsed %d punches\n", len(punches))

	spans := helper.GroupPunches(punches)
	fmt.Printf("Grouped into %d worker-days\n", len(spans))

	db := core.ConnectDB(os.Getenv("DSN"))

	imported, skipped := 0, 0
	for _, span := range spans {
		worker, err := core.FindWorkerByCode(db, span.WorkerCode)
		if err != nil {
			log.Fatalf("failed to look up worker %s: %v", span.WorkerCode, err)
		}
		if worker == nil {
			fmt.Printf("  skipping %s on %s: unknown worker code\n", span.WorkerCode, span.Date)
			skipped++
			continue
		}
		if span.To.Sub(span.From) < time.Minute {
			fmt.Printf("  skipping %s on %s: single punch\n", span.WorkerCode, span.Date)
			skipped++
			continue
		}

		var existing int64
		if err := db.Model(&model.ShiftEntry{}).
			Where("worker_id = ? AND clock_in = ?", worker.WorkerID, span.From).
			Count(&existing).Error; err != nil {
			log.Fatalf("failed to check for existing shift: %v", err)
		}
		if existing > 0 {
			skipped++
			continue
		}

		if *dryRun {
			fmt.Printf("  would import %s %s: %s to %s\n",
				span.WorkerCode, span.Date,
				span.From.Format(time.RFC3339), span.To.Format(time.RFC3339))
			imported++
			continue
		}

		entry := model.ShiftEntry{
			CompanyID: *company,
			WorkerID:  worker.WorkerID,
			ClockIn:   span.From,
			ClockOut:  utils.Ptr(span.To),
			Status:    model.ShiftStatusCompleted,
		}
		if err := db.Create(&entry).Error; err != nil {
			log.Fatalf("failed to create shift for %s on %s: %v", span.WorkerCode, span.Date, err)
		}
		imported++
	}

	fmt.Printf("Completed: %d imported, %d skipped\n", imported, skipped)
}
