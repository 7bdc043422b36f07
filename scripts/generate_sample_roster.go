package main

import (
	"compress/gzip"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"
)

// Writes a gzip-compressed roster for local imports:
// POST /api/admin/employees/import {"path": "data/rosters/sample.csv.gz"}
func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	dataDir := "data/rosters"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		logger.Fatal().Err(err).Msg("failed to create directory")
	}

	employees := []struct {
		code   int64
		name   string
		mobile string
	}{
		{101, "Asha", "9876543210"},
		{102, "Ravi Kumar", "9876543211"},
		{103, "Meena", ""},
		{104, "Joseph D'Souza", "9876543213"},
		{105, "Fatima", "9876543214"},
	}

	path := filepath.Join(dataDir, "sample.csv.gz")
	f, err := os.Create(path)
	if err != nil {
		logger.Fatal().Err(err).Str("path", path).Msg("failed to create roster")
	}
	defer f.Close()

	gz := gzip.NewWriter(f)
	w := csv.NewWriter(gz)

	records := [][]string{{"employee_code", "name", "mobile"}}
	for _, e := range employees {
		records = append(records, []string{strconv.FormatInt(e.code, 10), e.name, e.mobile})
	}
	if err := w.WriteAll(records); err != nil {
		logger.Fatal().Err(err).Msg("failed to write roster")
	}
	if err := gz.Close(); err != nil {
		logger.Fatal().Err(err).Msg("failed to finish gzip stream")
	}

	fmt.Printf("Wrote %d employees to %s\n", len(employees), path)
}
