package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/luabelo/automacao-simplesvet/internal/config"
	"github.com/luabelo/automacao-simplesvet/internal/exports"
	"github.com/luabelo/automacao-simplesvet/internal/pdfreport"
	"github.com/luabelo/automacao-simplesvet/internal/period"
	"github.com/luabelo/automacao-simplesvet/internal/sales"
	"github.com/luabelo/automacao-simplesvet/internal/workbook"
)

func main() {
	cfg, err := config.LoadFromFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	logger.Info("starting export run", "config", cfg.String())

	r := &runner{
		cfg:          cfg,
		log:          logger,
		appointments: pdfreport.NewConverter(logger.With("path", "agendamentos")),
		sales:        sales.NewConverter(logger.With("path", "vendas")),
	}

	failures := 0
	for _, month := range cfg.Months {
		if err := r.processMonth(month); err != nil {
			logger.Error("month failed", "month", month, "error", err)
			failures++
		}
	}

	if failures > 0 {
		logger.Error("export run finished with failures", "failed", failures, "total", len(cfg.Months))
		os.Exit(1)
	}
	logger.Info("export run finished", "months", len(cfg.Months))
}

// runner processes one configured month at a time. Months are independent:
// a failure in one is reported and the run moves on to the next.
type runner struct {
	cfg          *config.Config
	log          *slog.Logger
	appointments *pdfreport.Converter
	sales        *sales.Converter
}

func (r *runner) processMonth(month string) error {
	start, end, err := period.Range(month)
	if err != nil {
		return err
	}
	r.log.Info("processing month", "month", month,
		"from", start.Format("2006-01-02"), "to", end.Format("2006-01-02"))

	r.convertAppointments(month)
	r.convertSales(month)
	r.renameProcedures(month)
	return nil
}

// convertAppointments runs the PDF path on the month's agenda report.
func (r *runner) convertAppointments(month string) {
	pdfPath := filepath.Join(r.cfg.DownloadsDir, month+"-"+string(workbook.CategoryAppointments)+".pdf")
	blob, err := r.readInput(pdfPath)
	if err != nil {
		r.log.Warn("appointments report not available", "month", month, "error", err)
		return
	}

	artifact, count, err := r.appointments.Convert(blob, month, r.cfg.OutputDir, workbook.CategoryAppointments)
	switch {
	case errors.Is(err, workbook.ErrNoRecords):
		r.log.Info("no appointments in period", "month", month)
	case err != nil:
		r.log.Error("appointments conversion failed", "month", month, "error", err)
	default:
		r.log.Info("appointments extracted", "month", month, "artifact", artifact, "records", count)
	}
}

// convertSales runs the delimited-text path on the newest exported CSV and
// removes the vendor's raw file afterwards.
func (r *runner) convertSales(month string) {
	csvPath, err := exports.LatestByExt(r.cfg.DownloadsDir, ".csv")
	if err != nil {
		r.log.Error("cannot scan downloads for sales export", "error", err)
		return
	}
	if csvPath == "" {
		r.log.Warn("no sales export found", "month", month)
		return
	}

	blob, err := r.readInput(csvPath)
	if err != nil {
		r.log.Error("cannot read sales export", "file", csvPath, "error", err)
		return
	}

	artifact, count, err := r.sales.Convert(blob, month, r.cfg.OutputDir)
	switch {
	case errors.Is(err, workbook.ErrNoRecords):
		r.log.Info("no sales in period", "month", month)
	case err != nil:
		r.log.Error("sales conversion failed", "month", month, "error", err)
		return
	default:
		r.log.Info("sales extracted", "month", month, "artifact", artifact, "records", count)
	}

	if err := exports.RemoveSalesCSV(csvPath); err != nil {
		r.log.Warn("could not remove raw sales export", "file", csvPath, "error", err)
	}
}

// renameProcedures applies the naming contract to downloaded atendimento
// exports. The vendor exports vaccines first and exams second, so files are
// assigned to categories in modification-time order.
func (r *runner) renameProcedures(month string) {
	files, err := procedureExports(r.cfg.DownloadsDir)
	if err != nil {
		r.log.Error("cannot scan downloads for procedure exports", "error", err)
		return
	}
	if len(files) == 0 {
		r.log.Warn("no procedure exports found", "month", month)
		return
	}

	categories := []workbook.Category{workbook.CategoryVaccines, workbook.CategoryExams}
	if len(files) != len(categories) {
		r.log.Warn("unexpected number of procedure exports", "month", month, "found", len(files))
	}

	for i, file := range files {
		if i >= len(categories) {
			break
		}
		renamed, err := exports.RenameProcedureExport(file, month, categories[i])
		if err != nil {
			r.log.Error("procedure export rename failed", "file", file, "error", err)
			continue
		}
		r.log.Info("procedure export renamed", "month", month, "artifact", renamed)
	}

	// Anything still carrying the vendor's name was not matched to this
	// month and would poison the next pickup.
	if err := exports.CleanupProcedureExports(r.cfg.DownloadsDir); err != nil {
		r.log.Warn("could not clean stale procedure exports", "error", err)
	}
}

// readInput loads an input blob, enforcing the configured size limit.
func (r *runner) readInput(path string) ([]byte, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() > r.cfg.MaxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)", info.Size(), r.cfg.MaxFileSize)
	}
	return os.ReadFile(path)
}

// procedureExports lists the vendor's atendimento spreadsheets oldest
// first, matching the order they were exported in.
func procedureExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	type export struct {
		path  string
		mtime int64
	}
	var found []export
	for _, entry := range entries {
		name := strings.ToLower(entry.Name())
		if entry.IsDir() || !strings.Contains(name, "atendimento") {
			continue
		}
		if !strings.HasSuffix(name, ".xls") && !strings.HasSuffix(name, ".xlsx") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, export{path: filepath.Join(dir, entry.Name()), mtime: info.ModTime().UnixNano()})
	}

	sort.Slice(found, func(i, j int) bool { return found[i].mtime < found[j].mtime })
	paths := make([]string, len(found))
	for i, f := range found {
		paths[i] = f.path
	}
	return paths, nil
}
