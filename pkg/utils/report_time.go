package utils

import (
	"time"

	"github.com/IvanM63/backend-abb-analytic/pkg/config"
)

const reportDateLayout = "2006-01-02"

// ParseReportDate parses a YYYY-MM-DD value in the report timezone.
func ParseReportDate(s string) (time.Time, error) {
	return time.ParseInLocation(reportDateLayout, s, config.ReportLocation)
}

// FormatReportDate renders a timestamp as a YYYY-MM-DD label in the
// report timezone.
func FormatReportDate(t time.Time) string {
	return t.In(config.ReportLocation).Format(reportDateLayout)
}

// ReportDayBounds returns the half-open [00:00, next day 00:00) range
// of the report-timezone day containing t.
func ReportDayBounds(t time.Time) (time.Time, time.Time) {
	lt := t.In(config.ReportLocation)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, config.ReportLocation)
	return start, start.AddDate(0, 0, 1)
}

// ReportDateLabels returns the inclusive list of day labels between
// start and end. An inverted range yields a single start label.
func ReportDateLabels(start, end time.Time) []string {
	startDay, _ := ReportDayBounds(start)
	endDay, _ := ReportDayBounds(end)

	labels := []string{startDay.Format(reportDateLayout)}
	for d := startDay.AddDate(0, 0, 1); !d.After(endDay); d = d.AddDate(0, 0, 1) {
		labels = append(labels, d.Format(reportDateLayout))
	}
	return labels
}
