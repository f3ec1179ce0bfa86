package report

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/eugenenazirov/license-counter/internal/installation"
)

const requiredFields = 4

var fieldNames = [requiredFields]string{"ComputerID", "UserID", "ApplicationID", "ComputerType"}

// Row is one data line of a report. Err is set when the line could not be
// turned into an installation.
type Row struct {
	Line         int
	Installation installation.Installation
	Err          error
}

// Valid reports whether the row parsed cleanly.
func (r Row) Valid() bool {
	return r.Err == nil
}

// Loader parses CSV installation reports: comma separated, first line is a
// header.
type Loader struct{}

// NewLoader creates a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadFile opens path and parses it. A missing file yields an error wrapping fs.ErrNotExist.
func (l *Loader) LoadFile(ctx context.Context, path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open report: %w", err)
	}
	defer f.Close()

	return l.Load(ctx, f)
}

// Load parses every data line of r. Lines with malformed fields are returned
// as invalid rows; only read failures and cancellation abort the load.
func (l *Loader) Load(ctx context.Context, r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	var rows []Row
	first := true
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			if first {
				first = false
				continue
			}
			rows = append(rows, Row{Line: parseErr.Line, Err: fmt.Errorf("%w: %v", ErrInvalidField, parseErr.Err)})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read report: %w", err)
		}

		if first {
			first = false
			continue
		}

		line, _ := reader.FieldPos(0)
		inst, rowErr := parseRecord(record)
		rows = append(rows, Row{Line: line, Installation: inst, Err: rowErr})
	}

	return rows, nil
}

func parseRecord(record []string) (installation.Installation, error) {
	if len(record) < requiredFields {
		return installation.Installation{}, fmt.Errorf("%w: got %d, want at least %d", ErrMissingFields, len(record), requiredFields)
	}

	var ids [3]int
	for i := range ids {
		value, err := strconv.Atoi(strings.TrimSpace(record[i]))
		if err != nil {
			return installation.Installation{}, fmt.Errorf("%w %s: %q", ErrInvalidField, fieldNames[i], record[i])
		}
		ids[i] = value
	}

	computerType, err := installation.ParseComputerType(record[3])
	if err != nil {
		return installation.Installation{}, fmt.Errorf("%w %s: %w", ErrInvalidField, fieldNames[3], err)
	}

	return installation.Installation{
		ComputerID:    ids[0],
		UserID:        ids[1],
		ApplicationID: ids[2],
		ComputerType:  computerType,
	}, nil
}

// Convert keeps the installations of valid rows and reports how many rows were dropped.
func Convert(rows []Row) ([]installation.Installation, int) {
	installations := make([]installation.Installation, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		if !row.Valid() {
			dropped++
			continue
		}
		installations = append(installations, row.Installation)
	}
	return installations, dropped
}
