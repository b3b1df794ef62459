package dbservice

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

// DailyCategoryCount is one cell of a chart aggregation: the number of
// detections of one category on one day.
type DailyCategoryCount struct {
	Date     string `gorm:"column:date"`
	Category string `gorm:"column:category"`
	Total    int64  `gorm:"column:total"`
}

// reportDateExpr renders detected_at as a calendar date in the report
// timezone. Timestamps are stored in UTC, so a plain DATE() would
// bucket the first hours of a report-zone day under the previous date.
func (s *DatabaseService) reportDateExpr() string {
	_, offset := time.Now().In(config.ReportLocation).Zone()
	minutes := offset / 60

	if s.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("DATE(detected_at, '%+d minutes')", minutes)
	}
	return fmt.Sprintf("DATE(DATE_ADD(detected_at, INTERVAL %d MINUTE))", minutes)
}

// GetDailyCategoryCounts aggregates any of the result tables into
// per-day per-category counts with a single grouped query. Days are
// report-timezone days and the range is half-open [start, end).
func (s *DatabaseService) GetDailyCategoryCounts(model interface{}, start, end time.Time) ([]DailyCategoryCount, error) {
	var rows []DailyCategoryCount

	dateExpr := s.reportDateExpr()
	err := s.db.Model(model).
		Select(dateExpr + " AS date, category, COUNT(*) AS total").
		Where("detected_at >= ? AND detected_at < ?", start.UTC(), end.UTC()).
		Group(dateExpr + ", category").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	return rows, nil
}

// GetLatestDetectionTime returns the newest detected_at of the result
// table, or nil when the table is empty.
func (s *DatabaseService) GetLatestDetectionTime(model interface{}) (*time.Time, error) {
	row := struct {
		Latest *time.Time `gorm:"column:latest"`
	}{}

	result := s.db.Model(model).Select("MAX(detected_at) AS latest").Scan(&row)
	switch {
	case errors.Is(result.Error, gorm.ErrRecordNotFound):
		return nil, nil
	case result.Error != nil:
		return nil, result.Error
	}

	return row.Latest, nil
}
