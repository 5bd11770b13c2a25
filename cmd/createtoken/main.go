package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"shiftguard.com/shiftguard/security"
)

func main() {
	workerID := flag.Uint("worker", 0, "worker id")
	company := flag.String("company", "", "company schema")
	name := flag.String("name", "", "display name")
	email := flag.String("email", "", "email address")
	role := flag.String("role", security.RoleWorker, "worker or operator")
	ttl := flag.Int64("ttl", 8*3600, "token lifetime in seconds")
	flag.Parse()

	if *workerID == 0 || *company == "" {
		flag.Usage()
		os.Exit(1)
	}

	secret := os.Getenv("SHIFTGUARD_SIGNING_SECRET")
	if secret == "" {
		log.Fatal("SHIFTGUARD_SIGNING_SECRET is required")
	}

	token, err := security.CreateIdentityToken(&security.Identity{
		WorkerID:  *workerID,
		CompanyID: *company,
		Name:      *name,
		Email:     *email,
		Role:      *role,
	}, secret, *ttl)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(token)
}
