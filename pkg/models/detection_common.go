package models

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

// DetectionListReq is the common filter surface of the result listings.
type DetectionListReq struct {
	PrimaryAnalyticID uint64 `query:"primary_analytic_id" validate:"omitempty,min=1"`
	CctvID            uint64 `query:"cctv_id" validate:"omitempty,min=1"`
	Category          string `query:"category" validate:"omitempty,max=50"`
	StartDate         string `query:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate           string `query:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

var detectionSortFields = []string{"id", "category", "detected_at", "created_at"}

func (r *DetectionListReq) filter() (*dbservice.DetectionFilter, error) {
	f := &dbservice.DetectionFilter{
		PrimaryAnalyticID: r.PrimaryAnalyticID,
		CctvID:            r.CctvID,
		Category:          r.Category,
	}

	if r.StartDate != "" {
		d, err := utils.ParseReportDate(r.StartDate)
		if err != nil {
			return nil, fmt.Errorf("start_date: %w", err)
		}
		start, _ := utils.ReportDayBounds(d)
		f.From = &start
	}
	if r.EndDate != "" {
		d, err := utils.ParseReportDate(r.EndDate)
		if err != nil {
			return nil, fmt.Errorf("end_date: %w", err)
		}
		_, end := utils.ReportDayBounds(d)
		f.To = &end
	}

	return f, nil
}

func categoryAllowed(category string, allowed []string) bool {
	for _, a := range allowed {
		if a == category {
			return true
		}
	}
	return false
}

// parseDetectedAt accepts RFC3339 or a plain report-timezone timestamp
// and defaults to now when empty, for edge devices that do not stamp
// their payloads.
func parseDetectedAt(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04:05", s, config.ReportLocation)
	if err != nil {
		return time.Time{}, fmt.Errorf("detected_at: %w: %v", ErrInvalidInput, err)
	}
	return t, nil
}

// verifyDetectionRefs checks that the ingest payload points at an
// existing analytic job and camera.
func verifyDetectionRefs(ds *dbservice.DatabaseService, paId, cctvId uint64) error {
	pa, err := ds.GetPrimaryAnalyticByID(paId)
	if err != nil {
		return err
	}
	if pa == nil {
		return fmt.Errorf("primary analytic %d: %w", paId, ErrNotFound)
	}

	cctv, err := ds.GetCctvByID(cctvId)
	if err != nil {
		return err
	}
	if cctv == nil {
		return fmt.Errorf("cctv %d: %w", cctvId, ErrNotFound)
	}

	return nil
}

// exportXlsx renders headers plus rows into a single-sheet workbook.
func exportXlsx(sheet string, headers []string, rows [][]interface{}) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, err
		}
	}

	for ri, row := range rows {
		for ci, v := range row {
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f.WriteToBuffer()
}

// exportRange turns a report period into the half-open query window and
// the filename stem shared by the export endpoints.
func exportRange(req *ChartReq) (*dbservice.DetectionFilter, string, error) {
	startDay, err := utils.ParseReportDate(req.StartDate)
	if err != nil {
		return nil, "", fmt.Errorf("start_date: %w", err)
	}
	endDay, err := utils.ParseReportDate(req.EndDate)
	if err != nil {
		return nil, "", fmt.Errorf("end_date: %w", err)
	}
	if endDay.Before(startDay) {
		startDay, endDay = endDay, startDay
	}

	start, _ := utils.ReportDayBounds(startDay)
	_, end := utils.ReportDayBounds(endDay)

	stem := fmt.Sprintf("%s_%s", utils.FormatReportDate(startDay), utils.FormatReportDate(endDay))
	return &dbservice.DetectionFilter{From: &start, To: &end}, stem, nil
}

func formatExportTime(t time.Time) string {
	return t.In(config.ReportLocation).Format("2006-01-02 15:04:05")
}
