package main

import (
	"compress/gzip"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"ota-rewards/internal/seed"
)

// Writes the built-in demo state as a gzipped JSON seed fixture, ready to be
// uploaded under S3_PREFIX or listed in SEED_FILES, and checks that it
// decodes back into an equivalent fixture.
func main() {
	dataDir := flag.String("dir", "data/seed", "output directory")
	name := flag.String("name", "demo.json.gz", "output file name")
	flag.Parse()

	if err := os.MkdirAll(*dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	filePath := filepath.Join(*dataDir, *name)
	fixture := seed.Default()

	if err := writeFixture(filePath, fixture); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	file, err := os.Open(filePath)
	if err != nil {
		log.Fatalf("Failed to reopen %s: %v", filePath, err)
	}
	defer file.Close()

	decoded, err := seed.Decode(file, filePath)
	if err != nil {
		log.Fatalf("Failed to decode %s: %v", filePath, err)
	}
	decoded.Resolve()
	if err := decoded.Validate(); err != nil {
		log.Fatalf("Generated fixture is invalid: %v", err)
	}

	fmt.Printf("Created %s with %d rewards, %d add-ons, %d user rewards and %d purchases\n",
		filePath, len(decoded.Rewards), len(decoded.AddOns), len(decoded.UserRewards), len(decoded.Purchases))
}

func writeFixture(filePath string, fixture *seed.Fixture) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzWriter := gzip.NewWriter(file)

	enc := json.NewEncoder(gzWriter)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fixture); err != nil {
		gzWriter.Close()
		return fmt.Errorf("failed to encode fixture: %w", err)
	}

	if err := gzWriter.Close(); err != nil {
		return fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return nil
}
