package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	v1 "shiftguard.com/shiftguard/client/v1"
	"shiftguard.com/shiftguard/utils"
)

func usage() {
	fmt.Fprintln(os.Stderr, `usage: timeclockctl <command> [flags]

commands:
  clock-in     open a shift
  clock-out    close the shift with an attestation
  break        start a break (-type meal|rest)
  end-break    end the open break
  waive        waive the meal break
  status       show the current session
  alerts       search alerts (-from, -to)
  ack          acknowledge an alert (-id)

environment:
  SHIFTGUARD_URL    API base URL
  SHIFTGUARD_TOKEN  bearer token (see createtoken)`)
	os.Exit(1)
}

func printJSON(v interface{}) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}

func main() {
	if len(os.Args) < 2 {
		usage()
	}

	baseURL := os.Getenv("SHIFTGUARD_URL")
	token := os.Getenv("SHIFTGUARD_TOKEN")
	if baseURL == "" {
		log.Fatal("SHIFTGUARD_URL is required")
	}
	client := v1.NewShiftGuardClient(baseURL, token)

	cmd := os.Args[1]
	args := os.Args[2:]

	switch cmd {
	case "clock-in":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		jobID := fs.Uint("job", 0, "job id")
		fs.Parse(args)
		var job *uint
		if *jobID != 0 {
			job = jobID
		}
		entry, err := client.Sessions.ClockIn(job, nil)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(entry)

	case "clock-out":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		missedMeal := fs.Bool("missed-meal", false, "report a missed meal break")
		missedRest := fs.Bool("missed-rest", false, "report a missed rest break")
		notes := fs.String("notes", "", "notes for reported misses")
		fs.Parse(args)
		entry, err := client.Sessions.ClockOut(&v1.AttestationDTO{
			MissedMealBreak: *missedMeal,
			MissedMealNotes: *notes,
			MissedRestBreak: *missedRest,
			MissedRestNotes: *notes,
		}, nil)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(entry)

	case "break":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		breakType := fs.String("type", "meal", "meal or rest")
		fs.Parse(args)
		brk, err := client.Sessions.StartBreak(*breakType)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(brk)

	case "end-break":
		brk, err := client.Sessions.EndBreak()
		if err != nil {
			log.Fatal(err)
		}
		printJSON(brk)

	case "waive":
		brk, err := client.Sessions.WaiveMealBreak()
		if err != nil {
			log.Fatal(err)
		}
		printJSON(brk)

	case "status":
		status, err := client.Sessions.Status()
		if err != nil {
			log.Fatal(err)
		}
		printJSON(status)

	case "alerts":
		now := utils.PacificNow()
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		from := fs.String("from", now.AddDate(0, 0, -7).Format("2006-01-02"), "start date yyyy-MM-dd")
		to := fs.String("to", now.Format("2006-01-02"), "end date yyyy-MM-dd")
		fs.Parse(args)
		alerts, total, err := client.Alerts.Search(&v1.AlertSearchParams{
			StartDate: *from,
			EndDate:   *to,
		}, 100, 0)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%d alerts (of %d)\n", len(alerts), total)
		printJSON(alerts)

	case "ack":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		id := fs.String("id", "", "alert id")
		fs.Parse(args)
		if *id == "" {
			fs.Usage()
			os.Exit(1)
		}
		if err := client.Alerts.Acknowledge(*id); err != nil {
			log.Fatal(err)
		}
		fmt.Println("acknowledged")

	default:
		usage()
	}
}
