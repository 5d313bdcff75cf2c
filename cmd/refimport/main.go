// Command refimport builds a reference-table YAML file from USDA FoodData Central.
//
//	refimport -out reference.yaml mela="apples raw" latte="milk whole"
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nutrimatch/backend/config"
	"github.com/nutrimatch/backend/internal/infrastructure/usda"
	"github.com/nutrimatch/backend/internal/reference"
)

var (
	outPath = flag.String("out", "reference.yaml", "Output file (- for stdout)")
	debug   = flag.Bool("debug", false, "Log every USDA request")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] key=query...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	queries := make([]reference.FoodQuery, 0, flag.NArg())
	for _, arg := range flag.Args() {
		q, err := reference.ParseFoodQuery(arg)
		if err != nil {
			log.Fatalf("Invalid argument: %v", err)
		}
		queries = append(queries, q)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.USDA.APIKey == "" {
		log.Fatalf("USDA API key is required (set NUTRIMATCH_USDA_API_KEY)")
	}

	client := usda.NewClient(cfg.USDA.APIKey, cfg.USDA.BaseURL, cfg.RateLimit.USDA)
	client.SetDebug(*debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables, err := reference.NewImporter(client).Import(ctx, queries)
	if tables == nil {
		log.Fatalf("Import failed: %v", err)
	}
	if err != nil {
		log.Printf("[IMPORT] Some foods were skipped: %v", err)
	}

	out := os.Stdout
	if *outPath != "-" {
		f, err := os.Create(*outPath)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *outPath, err)
		}
		defer f.Close()
		out = f
	}

	if err := reference.WriteYAML(out, tables); err != nil {
		log.Fatalf("Failed to write reference tables: %v", err)
	}

	log.Printf("[IMPORT] Wrote %d foods and %d activities to %s", len(tables.Foods), len(tables.Activities), *outPath)
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stderr)
}
