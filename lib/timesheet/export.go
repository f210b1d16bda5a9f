package timesheethandler

import (
	"bytes"
	"fmt"

	xlsexport "timetrack-backend/lib/export/xls"
	dbmodels "timetrack-backend/models/db"
)

// ExportXLS renders the timesheet as an xlsx workbook for anyone allowed
// to view it. Returns the file content and a suggested file name.
func ExportXLS(exporter xlsexport.Provider, actorID, id string) (*bytes.Buffer, string, error) {
	rec, projectNames, err := Instance.ExportData(actorID, id)
	if err != nil {
		return nil, "", err
	}
	buf, err := exporter.ExportTimesheet(*rec, projectNames)
	if err != nil {
		return nil, "", err
	}
	fileName := fmt.Sprintf("timesheet_%s.xlsx", rec.WeekStart.Format("2006-01-02"))
	return buf, fileName, nil
}

func (i impl) ExportData(actorID, id string) (*dbmodels.Timesheet, map[string]string, error) {
	actor, rec, err := i.load(actorID, id)
	if err != nil {
		return nil, nil, err
	}
	allowed, err := i.canView(actor, rec)
	if err != nil {
		return nil, nil, err
	}
	if !allowed {
		return nil, nil, ErrAccessDenied
	}
	ids := make([]string, 0, len(rec.Entries))
	seen := map[string]bool{}
	for _, entry := range rec.Entries {
		if !seen[entry.ProjectID] {
			seen[entry.ProjectID] = true
			ids = append(ids, entry.ProjectID)
		}
	}
	projectNames, err := i.store.ProjectNames(ids)
	if err != nil {
		return nil, nil, err
	}
	return rec, projectNames, nil
}
