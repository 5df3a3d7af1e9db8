package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/model"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/reference"
	"github.com/Tsathyapriya80/fwfps-field-work-planning-system/internal/repository"
)

// ErrExportGenerateFail is returned when the workbook cannot be written.
var ErrExportGenerateFail = errors.New("failed to generate Excel file")

const (
	workplanSheet = "Workplans"
	taskSheet     = "Tasks"
	programSheet  = "PPS Programs"
)

// ExportService renders workbooks for download. Workbooks are returned as
// a buffer plus a suggested file name; the handler sets the headers.
type ExportService interface {
	ExportWorkplans(ctx context.Context) (*bytes.Buffer, string, error)
	ExportPrograms(year int) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo    *repository.Repository
	catalog *reference.Catalog
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService creates an ExportService.
func NewExportService(repo *repository.Repository, catalog *reference.Catalog, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, catalog: catalog, logger: logger, now: utcNow}
}

// ═══════════════════════════════════════════════════════════
// ExportWorkplans: one sheet of workplans, one of their tasks
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportWorkplans(ctx context.Context) (*bytes.Buffer, string, error) {
	wps, err := s.repo.Workplan.List(ctx, repository.WorkplanFilter{})
	if err != nil {
		s.logger.Error("failed to list workplans for export", zap.Error(err))
		return nil, "", err
	}
	tasks, err := s.repo.Task.ListByWorkplanIDs(ctx, workplanIDs(wps))
	if err != nil {
		s.logger.Error("failed to list tasks for export", zap.Error(err))
		return nil, "", err
	}
	titles := make(map[int64]string, len(wps))
	counts := make(map[int64]int, len(wps))
	for _, wp := range wps {
		titles[wp.ID] = wp.Title
	}
	for _, t := range tasks {
		counts[t.WorkplanID]++
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(workplanSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")
	f.NewSheet(taskSheet)

	header, _ := headerStyle(f)

	writeRow(f, workplanSheet, 1, []interface{}{
		"ID", "Title", "Status", "Priority", "Start Date", "End Date",
		"Assigned To", "Progress", "Tasks", "Created At", "Updated At",
	})
	f.SetCellStyle(workplanSheet, "A1", cell(colName(10), 1), header)
	for i, wp := range wps {
		writeRow(f, workplanSheet, i+2, []interface{}{
			wp.ID, wp.Title, wp.Status, wp.Priority, dateText(wp.StartDate), dateText(wp.EndDate),
			strText(wp.AssignedTo), intValue(wp.Progress), counts[wp.ID],
			wp.CreatedAt.Format(time.RFC3339), wp.UpdatedAt.Format(time.RFC3339),
		})
	}
	f.SetColWidth(workplanSheet, "B", "B", 32)
	f.SetColWidth(workplanSheet, "G", "G", 20)

	writeRow(f, taskSheet, 1, []interface{}{
		"ID", "Workplan ID", "Workplan", "Title", "Status", "Priority",
		"Due Date", "Assigned To", "Progress", "Completed At",
	})
	f.SetCellStyle(taskSheet, "A1", cell(colName(9), 1), header)
	for i, t := range tasks {
		completed := ""
		if t.CompletedAt != nil {
			completed = t.CompletedAt.Format(time.RFC3339)
		}
		writeRow(f, taskSheet, i+2, []interface{}{
			t.ID, t.WorkplanID, titles[t.WorkplanID], t.Title, t.Status, t.Priority,
			dateText(t.DueDate), strText(t.AssignedTo), intValue(t.Progress), completed,
		})
	}
	f.SetColWidth(taskSheet, "C", "D", 28)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write workplan workbook", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("workplans_%s.xlsx", s.now().Format("20060102")), nil
}

// ═══════════════════════════════════════════════════════════
// ExportPrograms: PPS program table for one fiscal year
// ═══════════════════════════════════════════════════════════

func (s *exportService) ExportPrograms(year int) (*bytes.Buffer, string, error) {
	if year <= 0 {
		year = s.catalog.FiscalYears.Current
	}
	programs := s.catalog.ProgramsForYear(year)
	hours, ftes := reference.ProgramTotals(programs)

	f := excelize.NewFile()
	defer f.Close()

	idx, _ := f.NewSheet(programSheet)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	header, _ := headerStyle(f)

	f.SetCellValue(programSheet, "A1", fmt.Sprintf("%s - Program Planning Summary", reference.WorkplanName(year)))
	f.MergeCell(programSheet, "A1", "D1")
	f.SetCellStyle(programSheet, "A1", "A1", header)

	writeRow(f, programSheet, 2, []interface{}{"Program", "Title", "Hours", "Planned FTEs"})
	f.SetCellStyle(programSheet, "A2", "D2", header)

	row := 3
	for _, p := range programs {
		writeRow(f, programSheet, row, []interface{}{p.Code, p.Title, p.Hours, p.PlannedFTEs})
		row++
	}
	writeRow(f, programSheet, row, []interface{}{"Total", "", hours, ftes})
	f.SetCellStyle(programSheet, cell("A", row), cell("D", row), header)

	f.SetColWidth(programSheet, "A", "A", 10)
	f.SetColWidth(programSheet, "B", "B", 48)
	f.SetColWidth(programSheet, "C", "D", 14)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write program workbook", zap.Int("year", year), zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}
	return buf, fmt.Sprintf("pps_programs_%d.xlsx", year), nil
}

// ── helpers ──

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) {
	for i, v := range values {
		f.SetCellValue(sheet, cell(colName(i), row), v)
	}
}

func colName(idx int) string {
	name, _ := excelize.ColumnNumberToName(idx + 1)
	return name
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

func dateText(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}

func strText(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func intValue(p *int) interface{} {
	if p == nil {
		return ""
	}
	return *p
}
