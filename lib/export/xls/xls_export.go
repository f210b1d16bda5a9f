package xlsexport

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	dbmodels "timetrack-backend/models/db"
)

type Provider interface {
	ExportTimesheet(rec dbmodels.Timesheet, projectNames map[string]string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var entryHeaders = []string{"Date", "Project", "Hours", "Rate", "Amount", "Note"}

func (i impl) ExportTimesheet(rec dbmodels.Timesheet, projectNames map[string]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("xlsx close error")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeSummary(f, sheet, rec, row)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx summary block error")
	}
	row, err = writeHeader(f, sheet, row, entryHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "xlsx header error")
	}
	if len(rec.Entries) != 0 {
		row, err = writeEntryData(f, sheet, rec.Entries, projectNames, row)
		if err != nil {
			return nil, errors.Wrap(err, "xlsx data table error")
		}
	}
	f.SetSheetName(sheet, "Timesheet")
	return f.WriteToBuffer()
}

func writeSummary(f *excelize.File, sheet string, rec dbmodels.Timesheet, row int) (int, error) {
	owner := ""
	if rec.User != nil {
		owner = rec.User.GetFullName()
	}
	totalHours := 0.0
	for _, entry := range rec.Entries {
		totalHours += entry.Hours
	}
	lines := [][2]interface{}{
		{"Employee", owner},
		{"Week starting", rec.WeekStart.Format("2006-01-02")},
		{"Status", rec.Status.ToHuman()},
		{"Total hours", totalHours},
	}
	for _, line := range lines {
		row++
		if err := writeColumn(f, sheet, 1, row, line[0]); err != nil {
			return row, err
		}
		if err := writeColumn(f, sheet, 2, row, line[1]); err != nil {
			return row, err
		}
	}
	// blank separator before the entry table
	row++
	return row, nil
}

func writeEntryData(f *excelize.File, sheet string, list []dbmodels.TimeEntry, projectNames map[string]string, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(entryHeaders), row+len(list)); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Date"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.EntryDate.Format("2006-01-02")); err != nil {
			return row, err
		}

		// "Project"
		col++
		name := projectNames[item.ProjectID]
		if name == "" {
			name = item.ProjectID
		}
		if err := writeColumn(f, sheet, col, row, name); err != nil {
			return row, err
		}

		// "Hours"
		col++
		if err := writeColumn(f, sheet, col, row, item.Hours); err != nil {
			return row, err
		}

		// "Rate"
		col++
		if err := writeColumn(f, sheet, col, row, fmt.Sprintf("%.2f (%s)", item.HourlyRate, item.RateSource)); err != nil {
			return row, err
		}

		// "Amount"
		col++
		if err := writeColumn(f, sheet, col, row, item.Hours*item.HourlyRate); err != nil {
			return row, err
		}

		// "Note"
		col++
		if err := writeColumn(f, sheet, col, row, item.Note); err != nil {
			return row, err
		}
	}
	return row, nil
}
