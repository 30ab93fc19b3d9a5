package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/agrc/lookback/internal/composition"
	"github.com/agrc/lookback/internal/config"
	"github.com/agrc/lookback/internal/county"
	"github.com/agrc/lookback/internal/district"
	"github.com/agrc/lookback/internal/export"
	"github.com/agrc/lookback/internal/report"
	"github.com/agrc/lookback/internal/sink"
)

var (
	countiesPath  = flag.String("counties", "", "path to historic county boundaries shapefile (required)")
	districtsPath = flag.String("districts", "", "path to county-to-district assignments CSV (required)")
	configPath    = flag.String("config", "", "optional YAML run profile (field/column mappings)")
	outCSV        = flag.String("out-csv", "", "write composition summary CSV here")
	outGeoJSON    = flag.String("out-geojson", "", "write composition GeoJSON here")
	timelineFor   = flag.String("timeline", "", "print the change timeline for one county and exit")
	noUnion       = flag.Bool("no-union", false, "skip dissolving county geometries per district-year")
	dryRun        = flag.Bool("dry-run", false, "build + validate only; no files or DB writes")

	dsn         = flag.String("dsn", "", "Postgres DSN (default: env DATABASE_URL); empty skips the DB load")
	namespace   = flag.String("namespace", "", "UUID namespace for deterministic row IDs (required with -dsn, stable forever)")
	wipe        = flag.Bool("wipe", false, "DANGER: truncates lookback tables before loading")
	confirm     = flag.Bool("confirm", false, "required to perform a wiping load")
	advisoryKey = flag.Int64("advisory-lock", 0, "optional Postgres advisory lock key. 0 = disabled")
)

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	if *countiesPath == "" || *districtsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	// Missing inputs are fatal before any processing begins.
	for _, path := range []string{*countiesPath, *districtsPath} {
		if _, err := os.Stat(path); err != nil {
			log.Fatalf("input file: %v", err)
		}
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if *noUnion {
		cfg.Union = false
	}

	boundaries, countyWarnings, err := county.LoadShapefile(*countiesPath, cfg.Counties)
	if err != nil {
		log.Fatal(err)
	}
	report.LogWarnings(countyWarnings)
	report.LogLoad("counties", boundaries.Len(), len(countyWarnings))

	assignments, districtWarnings, err := district.LoadCSV(*districtsPath, cfg.Districts)
	if err != nil {
		log.Fatal(err)
	}
	report.LogWarnings(districtWarnings)
	report.LogLoad("districts", len(assignments), len(districtWarnings))

	if *timelineFor != "" {
		printTimeline(boundaries, assignments, *timelineFor)
		return
	}

	comps, buildWarnings := composition.Build(boundaries, assignments, composition.Options{
		Union: cfg.Union,
	})
	report.LogWarnings(buildWarnings)
	report.LogBuild(len(comps), len(buildWarnings))

	if *dryRun {
		fmt.Println("Dry run complete. No changes made.")
		return
	}

	if *outCSV != "" {
		if err := export.WriteCSV(*outCSV, comps); err != nil {
			log.Fatal(err)
		}
		log.Printf("[export] wrote %s", *outCSV)
	}

	if *outGeoJSON != "" {
		if err := export.WriteGeoJSON(*outGeoJSON, comps); err != nil {
			log.Fatal(err)
		}
		log.Printf("[export] wrote %s", *outGeoJSON)
	}

	dbURL := resolveDSN(*dsn)
	if dbURL == "" {
		return
	}

	if *namespace == "" {
		log.Fatal("-namespace is required with -dsn")
	}
	if *wipe && !*confirm {
		log.Fatal("refusing a wiping load without -confirm")
	}

	if err := sink.Run(sink.Config{
		DatabaseURL: dbURL,
		Namespace:   *namespace,
		Wipe:        *wipe,
		AdvisoryKey: *advisoryKey,
	}, comps); err != nil {
		log.Fatal(err)
	}
	log.Printf("[sink] loaded %d compositions", len(comps))

	verifyLoad(dbURL)
}

// resolveDSN falls back to DATABASE_URL. The env read has to happen here,
// after .env.local is loaded, not in the flag default, which is evaluated
// before main runs.
func resolveDSN(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv("DATABASE_URL")
}

func printTimeline(boundaries county.Set, assignments []district.Assignment, countyID string) {
	entries := composition.Timeline(boundaries, assignments, countyID)
	if len(entries) == 0 {
		fmt.Printf("no history for county %q\n", countyID)
		return
	}
	for _, e := range entries {
		fmt.Printf("%d  shape=%s  district=%s\n", e.Year, e.BoundaryKey, e.DistrictID)
	}
}

func verifyLoad(dsn string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("verify connect: %v", err)
	}

	summaries, err := sink.Verify(ctx, db, nil)
	if err != nil {
		log.Fatalf("verify: %v", err)
	}
	for _, s := range summaries {
		log.Printf("[verify] district=%s years=%d county_rows=%d", s.DistrictID, s.Years, s.Counties)
	}
}
