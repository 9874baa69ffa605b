package xlsexport

import (
	"bytes"

	dbmodels "talentflow-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

type Provider interface {
	ExportCandidateList(list []dbmodels.Candidate, jobTitles map[string]string) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var candidateHeaders = []string{"Name", "Email", "Stage", "Job", "Applied", "Last updated", "Notes"}

func (i impl) ExportCandidateList(list []dbmodels.Candidate, jobTitles map[string]string) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("failed to close xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, candidateHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "failed to write xlsx header")
	}
	if len(list) != 0 {
		row, err = writeCandidateData(f, sheet, list, jobTitles, row)
		if err != nil {
			return nil, errors.Wrap(err, "failed to write xlsx data rows")
		}
	}
	f.SetSheetName(sheet, "Candidates")
	return f.WriteToBuffer()
}

func writeCandidateData(f *excelize.File, sheet string, list []dbmodels.Candidate, jobTitles map[string]string, row int) (int, error) {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(candidateHeaders), len(list)+1); err != nil {
		return row, err
	}
	for _, item := range list {
		row++
		// "Name"
		col := 1
		if err := writeColumn(f, sheet, col, row, item.Name); err != nil {
			return row, err
		}

		// "Email"
		col++
		if err := writeColumn(f, sheet, col, row, item.Email); err != nil {
			return row, err
		}

		// "Stage"
		col++
		if err := writeColumn(f, sheet, col, row, string(item.Stage)); err != nil {
			return row, err
		}

		// "Job"
		col++
		if err := writeColumn(f, sheet, col, row, jobTitles[item.JobID]); err != nil {
			return row, err
		}

		// "Applied"
		col++
		if !item.AppliedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.AppliedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Last updated"
		col++
		if !item.UpdatedAt.IsZero() {
			if err := writeColumn(f, sheet, col, row, item.UpdatedAt.Format("02.01.2006")); err != nil {
				return row, err
			}
		}

		// "Notes"
		col++
		if err := writeColumn(f, sheet, col, row, len(item.Notes)); err != nil {
			return row, err
		}
	}
	return row, nil
}
