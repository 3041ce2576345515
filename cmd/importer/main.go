package main

import (
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"drone-delivery-api/internal/config"
	"drone-delivery-api/internal/db"
	"drone-delivery-api/internal/models"

	"github.com/jackc/pgx/v5"
)

// Expected header: name,street,city,region,postcode,lat,lng
var columns = []string{"name", "street", "city", "region", "postcode", "lat", "lng"}

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	truncate := flag.Bool("truncate", false, "Remove existing places before importing")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	if err := run(context.Background(), *file, *truncate); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, file string, truncate bool) error {
	fmt.Printf("Starting import from file: %s\n", file)

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	places, err := parseCSV(f)
	if err != nil {
		return fmt.Errorf("parsing CSV: %w", err)
	}

	fmt.Printf("Parsed %d places\n", len(places))

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.DBSource == "" {
		return errors.New("DB_SOURCE is not set")
	}

	// Ensure the schema is current
	if err := db.RunMigrations(cfg.DBSource); err != nil {
		return err
	}

	conn, err := pgx.Connect(ctx, cfg.DBSource)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer conn.Close(ctx)

	before := 0
	if truncate {
		if _, err := conn.Exec(ctx, "TRUNCATE places RESTART IDENTITY"); err != nil {
			return fmt.Errorf("truncating places: %w", err)
		}
	} else if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM places").Scan(&before); err != nil {
		return fmt.Errorf("counting places: %w", err)
	}

	if err := insertPlaces(ctx, conn, places); err != nil {
		return fmt.Errorf("inserting places: %w", err)
	}

	if err := verifyImport(ctx, conn, before+len(places)); err != nil {
		return fmt.Errorf("verifying import: %w", err)
	}

	fmt.Printf("Successfully imported %d places\n", len(places))
	return nil
}

func parseCSV(r io.Reader) ([]models.Place, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range columns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing column %q", col)
		}
	}

	var places []models.Place
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		line++

		field := func(name string) string {
			if i := index[name]; i < len(record) {
				return strings.TrimSpace(record[i])
			}
			return ""
		}

		lat, err := strconv.ParseFloat(field("lat"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid latitude: %q", line, field("lat"))
		}

		lng, err := strconv.ParseFloat(field("lng"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid longitude: %q", line, field("lng"))
		}

		if err := (models.Coordinates{Lat: lat, Lng: lng}).Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		places = append(places, models.Place{
			Name:      field("name"),
			Street:    field("street"),
			City:      field("city"),
			Region:    field("region"),
			Postcode:  field("postcode"),
			Latitude:  lat,
			Longitude: lng,
		})
	}

	return places, nil
}

func insertPlaces(ctx context.Context, conn *pgx.Conn, places []models.Place) error {
	// Use CopyFrom for bulk insert
	_, err := conn.CopyFrom(
		ctx,
		pgx.Identifier{"places"},
		[]string{"name", "street", "city", "region", "postcode", "geom"},
		pgx.CopyFromSlice(len(places), func(i int) ([]any, error) {
			p := places[i]
			geom := fmt.Sprintf("SRID=4326;POINT(%f %f)", p.Longitude, p.Latitude) // PostGIS format: lng lat
			return []any{p.Name, p.Street, p.City, p.Region, p.Postcode, geom}, nil
		}),
	)
	return err
}

func verifyImport(ctx context.Context, conn *pgx.Conn, expectedCount int) error {
	var count int
	if err := conn.QueryRow(ctx, "SELECT COUNT(*) FROM places").Scan(&count); err != nil {
		return fmt.Errorf("failed to count places: %w", err)
	}

	if count != expectedCount {
		return fmt.Errorf("place count mismatch: expected %d, got %d", expectedCount, count)
	}

	// Check a sample geom
	var geom string
	err := conn.QueryRow(ctx, "SELECT ST_AsText(geom) FROM places ORDER BY id DESC LIMIT 1").Scan(&geom)
	if err != nil {
		return fmt.Errorf("failed to check geom: %w", err)
	}

	fmt.Printf("Sample geom: %s\n", geom)
	return nil
}
