package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	godotenv.Load(".env.local")
	flag.Parse()

	districts := flag.Args()
	if len(districts) == 0 {
		fmt.Fprintln(os.Stderr, "usage: check-district <district_id> [district_id...]")
		os.Exit(2)
	}

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{})
	if err != nil {
		log.Fatalf("DB connection error: %v", err)
	}

	type Result struct {
		DistrictID string
		Year       int
		Counties   string
	}

	var results []Result
	query := `
		SELECT district_id, year, counties
		FROM lookback.compositions
		WHERE district_id = ANY($1)
		ORDER BY district_id, year
	`
	if err := db.Raw(query, pq.Array(districts)).Scan(&results).Error; err != nil {
		log.Fatalf("query error: %v", err)
	}

	if len(results) == 0 {
		fmt.Println("no compositions found for those districts")
		return
	}

	for _, r := range results {
		fmt.Printf("district %s  %d: %s\n", r.DistrictID, r.Year, r.Counties)
	}
}
