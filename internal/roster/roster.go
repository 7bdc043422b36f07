// Package roster imports employee directories from gzip-compressed CSV files.
package roster

import (
	"compress/gzip"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"canteen/internal/model"
)

// Loader reads an employee roster from a named source.
type Loader interface {
	// Load reads a gzipped CSV roster with the columns
	// employee_code,employee_name,mobile and an optional header row.
	Load(ctx context.Context, path string) ([]model.Employee, error)
}

// checkEvery is how many rows are parsed between context checks.
const checkEvery = 1000

// Parse decodes a gzip-compressed roster. Rows with a repeated employee code
// replace the earlier row. Any malformed row fails the whole roster.
func Parse(ctx context.Context, r io.Reader) ([]model.Employee, error) {
	gzipReader, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	reader := csv.NewReader(gzipReader)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var (
		employees []model.Employee
		index     = map[int64]int{}
		rows      = 0
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		rows++
		line, _ := reader.FieldPos(0)

		if rows%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}

		if isBlank(record) {
			continue
		}
		if rows == 1 && isHeader(record) {
			continue
		}

		employee, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if i, seen := index[employee.ID]; seen {
			employees[i] = employee
			continue
		}
		index[employee.ID] = len(employees)
		employees = append(employees, employee)
	}

	return employees, nil
}

func parseRecord(record []string) (model.Employee, error) {
	if len(record) < 2 {
		return model.Employee{}, fmt.Errorf("expected at least 2 columns, got %d", len(record))
	}

	id, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	if err != nil || id <= 0 {
		return model.Employee{}, fmt.Errorf("invalid employee code %q", record[0])
	}

	name := strings.TrimSpace(record[1])
	if name == "" {
		return model.Employee{}, fmt.Errorf("employee %d has no name", id)
	}

	var mobile string
	if len(record) > 2 {
		mobile = strings.TrimSpace(record[2])
	}

	return model.Employee{ID: id, Name: name, Mobile: mobile}, nil
}

func isHeader(record []string) bool {
	_, err := strconv.ParseInt(strings.TrimSpace(record[0]), 10, 64)
	return err != nil
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
