package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Giovannytrotta/Programa-SENTYA/internal/model"
	"github.com/Giovannytrotta/Programa-SENTYA/internal/repository"
)

// ── Export module business errors ──

var (
	ErrExportNoSessions   = errors.New("workshop has no sessions to export")
	ErrExportGenerateFail = errors.New("failed to generate export file")
)

// ExportService renders derived data as downloadable files.
//
// Both exports return a bytes.Buffer plus a suggested filename; the
// handler layer sets the HTTP headers and streams the buffer.
type ExportService interface {
	// WorkshopReportXLSX renders the workshop attendance report as an
	// Excel workbook.
	WorkshopReportXLSX(ctx context.Context, workshopID string) (*bytes.Buffer, string, error)
	// WorkshopCalendarICS renders the workshop's non-cancelled sessions
	// as an iCalendar feed.
	WorkshopCalendarICS(ctx context.Context, workshopID string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo       *repository.Repository
	attendance AttendanceService
	logger     *zap.Logger
}

// NewExportService creates an ExportService instance.
func NewExportService(repo *repository.Repository, attendance AttendanceService, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, attendance: attendance, logger: logger}
}

// ═══════════════════════════════════════════════════════════
// WorkshopReportXLSX — attendance report as Excel
// ═══════════════════════════════════════════════════════════
//
// Layout:
//   - Title row with the workshop name
//   - Header: Student | Sessions | Present | Absent | Rate (%)
//   - One row per enrolled student, ranking order preserved

func (s *exportService) WorkshopReportXLSX(ctx context.Context, workshopID string) (*bytes.Buffer, string, error) {
	report, err := s.attendance.WorkshopReport(ctx, workshopID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Attendance"
	idx, _ := f.NewSheet(sheetName)
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(sheetName, "A", "A", 30)
	f.SetColWidth(sheetName, "B", "E", 12)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	f.SetCellValue(sheetName, "A1", fmt.Sprintf("%s — Attendance Report", report.WorkshopName))
	f.MergeCell(sheetName, "A1", "E1")
	f.SetCellStyle(sheetName, "A1", "A1", headerStyle)

	row := 2
	f.SetCellValue(sheetName, cell("A", row), "Student")
	f.SetCellValue(sheetName, cell("B", row), "Sessions")
	f.SetCellValue(sheetName, cell("C", row), "Present")
	f.SetCellValue(sheetName, cell("D", row), "Absent")
	f.SetCellValue(sheetName, cell("E", row), "Rate (%)")
	f.SetCellStyle(sheetName, cell("A", row), cell("E", row), headerStyle)

	row = 3
	for _, student := range report.Students {
		f.SetCellValue(sheetName, cell("A", row), student.UserName)
		f.SetCellValue(sheetName, cell("B", row), student.TotalSessions)
		f.SetCellValue(sheetName, cell("C", row), student.Present)
		f.SetCellValue(sheetName, cell("D", row), student.Absent)
		f.SetCellValue(sheetName, cell("E", row), student.AttendanceRate)
		row++
	}

	row++
	f.SetCellValue(sheetName, cell("A", row), "Total sessions")
	f.SetCellValue(sheetName, cell("B", row), report.TotalSessions)
	row++
	f.SetCellValue(sheetName, cell("A", row), "Total students")
	f.SetCellValue(sheetName, cell("B", row), report.TotalStudents)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("failed to write xlsx", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("attendance_%s.xlsx", slugify(report.WorkshopName))
	return buf, filename, nil
}

// ═══════════════════════════════════════════════════════════
// WorkshopCalendarICS — session calendar as iCalendar
// ═══════════════════════════════════════════════════════════

func (s *exportService) WorkshopCalendarICS(ctx context.Context, workshopID string) (*bytes.Buffer, string, error) {
	workshop, err := s.repo.Workshop.GetByID(ctx, workshopID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrWorkshopNotFound
		}
		s.logger.Error("failed to load workshop", zap.String("id", workshopID), zap.Error(err))
		return nil, "", err
	}

	sessions, err := s.repo.Session.ListByWorkshop(ctx, workshopID)
	if err != nil {
		return nil, "", err
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//SENTYA//Workshops//ES")

	now := time.Now().UTC()
	count := 0
	for i := range sessions {
		session := &sessions[i]
		if session.Status == model.SessionCancelled {
			continue
		}

		start, err := combineDateTime(session.Date, session.StartTime)
		if err != nil {
			continue
		}
		end, err := combineDateTime(session.Date, session.EndTime)
		if err != nil {
			continue
		}

		event := cal.AddEvent(session.SessionID + "@sentya")
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		summary := workshop.Name
		if session.Topic != "" {
			summary += ": " + session.Topic
		}
		event.SetSummary(summary)
		if workshop.Location != "" {
			event.SetLocation(workshop.Location)
		}
		if session.Observations != "" {
			event.SetDescription(session.Observations)
		}
		count++
	}

	if count == 0 {
		return nil, "", ErrExportNoSessions
	}

	buf := bytes.NewBufferString(cal.Serialize())
	filename := fmt.Sprintf("sessions_%s.ics", slugify(workshop.Name))
	return buf, filename, nil
}

// ── helpers ──

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// combineDateTime merges a date-only value with an "HH:MM" clock string.
func combineDateTime(date time.Time, clock string) (time.Time, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC), nil
}

func slugify(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		}
		return -1
	}, name)
}
