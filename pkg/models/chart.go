package models

import (
	"fmt"

	"github.com/IvanM63/backend-abb-analytic/pkg/services/dbservice"
	"github.com/IvanM63/backend-abb-analytic/pkg/utils"
)

type ChartReq struct {
	StartDate string `json:"start_date" query:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" query:"end_date" validate:"required,datetime=2006-01-02"`
}

type ChartDataset struct {
	Category string  `json:"category"`
	Data     []int64 `json:"data"`
}

// ChartData is the chart payload shape shared by all result types: one
// label per day and one dataset per category, dense with zeroes so the
// frontend can plot it directly.
type ChartData struct {
	Labels   []string       `json:"labels"`
	Datasets []ChartDataset `json:"datasets"`
}

func buildChartData(rows []dbservice.DailyCategoryCount, labels, categories []string) *ChartData {
	labelIdx := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIdx[l] = i
	}

	datasets := make([]ChartDataset, len(categories))
	byCategory := make(map[string]int, len(categories))
	for i, cat := range categories {
		datasets[i] = ChartDataset{Category: cat, Data: make([]int64, len(labels))}
		byCategory[cat] = i
	}

	for _, row := range rows {
		di, ok := byCategory[row.Category]
		if !ok {
			// unknown categories should not break the chart
			continue
		}
		li, ok := labelIdx[row.Date]
		if !ok {
			continue
		}
		datasets[di].Data[li] = row.Total
	}

	return &ChartData{Labels: labels, Datasets: datasets}
}

// dailyCategoryChart builds a per-day chart over the inclusive date
// range of req for one result table.
func dailyCategoryChart(ds *dbservice.DatabaseService, model interface{}, req *ChartReq, categories []string) (*ChartData, error) {
	startDay, err := utils.ParseReportDate(req.StartDate)
	if err != nil {
		return nil, fmt.Errorf("start_date: %w", err)
	}
	endDay, err := utils.ParseReportDate(req.EndDate)
	if err != nil {
		return nil, fmt.Errorf("end_date: %w", err)
	}
	if endDay.Before(startDay) {
		startDay, endDay = endDay, startDay
	}

	start, _ := utils.ReportDayBounds(startDay)
	_, end := utils.ReportDayBounds(endDay)

	rows, err := ds.GetDailyCategoryCounts(model, start, end)
	if err != nil {
		return nil, err
	}

	return buildChartData(rows, utils.ReportDateLabels(startDay, endDay), categories), nil
}

// latestDayChart builds the chart of the day that holds the newest
// detection. An empty table yields a chart with no labels.
func latestDayChart(ds *dbservice.DatabaseService, model interface{}, categories []string) (*ChartData, error) {
	latest, err := ds.GetLatestDetectionTime(model)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return buildChartData(nil, []string{}, categories), nil
	}

	start, end := utils.ReportDayBounds(*latest)
	rows, err := ds.GetDailyCategoryCounts(model, start, end)
	if err != nil {
		return nil, err
	}

	return buildChartData(rows, []string{utils.FormatReportDate(*latest)}, categories), nil
}
