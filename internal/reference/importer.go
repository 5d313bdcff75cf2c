package reference

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nutrimatch/backend/internal/domain"
	"github.com/nutrimatch/backend/internal/infrastructure/usda"
)

// FoodQuery asks USDA for the food to store under Key
type FoodQuery struct {
	Key   string
	Query string
}

// ParseFoodQuery parses "key=search terms"
func ParseFoodQuery(arg string) (FoodQuery, error) {
	key, query, ok := strings.Cut(arg, "=")
	key = strings.ToLower(strings.TrimSpace(key))
	query = strings.TrimSpace(query)
	if !ok || key == "" || query == "" {
		return FoodQuery{}, fmt.Errorf("%w: expected key=query, got %q", domain.ErrInvalidRequest, arg)
	}
	return FoodQuery{Key: key, Query: query}, nil
}

// Importer builds reference tables from USDA FoodData Central
type Importer struct {
	client domain.USDAClient
}

// NewImporter creates an importer over a USDA client
func NewImporter(client domain.USDAClient) *Importer {
	return &Importer{client: client}
}

// Import looks up every query and returns tables holding the foods found.
// Activities and messages come from the built-in tables, and so do the
// portions of imported keys the built-in tables know. Queries that fail
// are skipped and reported in the joined error.
func (i *Importer) Import(ctx context.Context, queries []FoodQuery) (*domain.ReferenceTables, error) {
	defaults := Default()
	tables := &domain.ReferenceTables{
		Portions:   map[string]float64{},
		Activities: defaults.Activities,
		Messages:   defaults.Messages,
	}

	var errs []error
	seen := make(map[string]bool)
	for _, q := range queries {
		if seen[q.Key] {
			errs = append(errs, fmt.Errorf("%s: duplicate key", q.Key))
			continue
		}

		resp, err := i.client.SearchFoods(ctx, q.Query)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Printf("[IMPORT] %s: search %q failed: %v", q.Key, q.Query, err)
			errs = append(errs, fmt.Errorf("%s: %w", q.Key, err))
			continue
		}

		food, ok := usda.FirstWithEnergy(resp.Foods)
		if !ok {
			log.Printf("[IMPORT] %s: no result for %q reports energy", q.Key, q.Query)
			errs = append(errs, fmt.Errorf("%s: %w", q.Key, domain.ErrProductNotFound))
			continue
		}

		seen[q.Key] = true
		tables.Foods = append(tables.Foods, usda.MapToReferenceFood(q.Key, food))
		if grams, ok := defaults.Portions[q.Key]; ok {
			tables.Portions[q.Key] = grams
		}
		log.Printf("[IMPORT] %s: %q (fdcId %d)", q.Key, food.Description, food.FdcID)
	}

	if len(tables.Foods) == 0 {
		errs = append(errs, fmt.Errorf("%w: no food could be imported", domain.ErrInvalidReference))
		return nil, errors.Join(errs...)
	}
	if err := Validate(tables); err != nil {
		errs = append(errs, err)
		return nil, errors.Join(errs...)
	}

	return tables, errors.Join(errs...)
}

// WriteYAML encodes tables in the format Load reads
func WriteYAML(w io.Writer, tables *domain.ReferenceTables) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tables); err != nil {
		return fmt.Errorf("failed to encode reference tables: %w", err)
	}
	return enc.Close()
}
