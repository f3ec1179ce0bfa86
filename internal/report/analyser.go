package report

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/eugenenazirov/license-counter/internal/installation"
)

// Result summarises one analysed report.
type Result struct {
	Licenses  int
	Records   int
	Skipped   int
	Users     int
	Conflicts []Conflict
}

// Analyser loads a report, catalogs its installations by user and counts the
// licenses they require.
type Analyser struct {
	loader   *Loader
	assessor installation.Assessor
	logger   *zap.Logger
}

// NewAnalyser wires an Analyser. A nil loader falls back to NewLoader() and a
// nil logger discards output.
func NewAnalyser(loader *Loader, assessor installation.Assessor, logger *zap.Logger) *Analyser {
	if loader == nil {
		loader = NewLoader()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyser{
		loader:   loader,
		assessor: assessor,
		logger:   logger,
	}
}

// AnalyseFile analyses the report stored at path.
func (a *Analyser) AnalyseFile(ctx context.Context, path string, filter installation.Filter) (Result, error) {
	rows, err := a.loader.LoadFile(ctx, path)
	if err != nil {
		return Result{}, err
	}
	return a.analyseRows(rows, filter)
}

// Analyse analyses a report read from r.
func (a *Analyser) Analyse(ctx context.Context, r io.Reader, filter installation.Filter) (Result, error) {
	rows, err := a.loader.Load(ctx, r)
	if err != nil {
		return Result{}, err
	}
	return a.analyseRows(rows, filter)
}

func (a *Analyser) analyseRows(rows []Row, filter installation.Filter) (Result, error) {
	installations, skipped := Convert(rows)
	if skipped > 0 {
		a.logger.Warn("skipped malformed report rows",
			zap.Int("skipped", skipped),
			zap.Int("rows", len(rows)),
		)
		for _, row := range rows {
			if !row.Valid() {
				a.logger.Debug("malformed row", zap.Int("line", row.Line), zap.Error(row.Err))
			}
		}
	}

	conflicts := FindConflicts(installations)
	if len(conflicts) > 0 {
		a.logger.Warn("computers reported with conflicting types", zap.Int("computers", len(conflicts)))
	}

	catalog := installation.NewCatalog(installation.NewIndexMap[installation.Installation]())
	catalog.AddAll(installations)

	licenses, err := catalog.CountLicenses(filter, a.assessor)
	if err != nil {
		return Result{}, fmt.Errorf("count licenses: %w", err)
	}

	result := Result{
		Licenses:  licenses,
		Records:   len(installations),
		Skipped:   skipped,
		Users:     catalog.Users(),
		Conflicts: conflicts,
	}
	a.logger.Debug("report analysed",
		zap.Int("licenses", result.Licenses),
		zap.Int("records", result.Records),
		zap.Int("users", result.Users),
	)
	return result, nil
}
