// Package reporter turns the trigger history into per-period reports.
package reporter

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hotcorners/hotcorners/internal/database"
	"github.com/hotcorners/hotcorners/internal/models"
)

// Reporter builds corner trigger reports from the store.
type Reporter struct {
	repo *database.Repository
}

// New creates a new reporter.
func New(repo *database.Repository) *Reporter {
	return &Reporter{repo: repo}
}

// GenerateReport summarizes the triggers of the given period ("day",
// "week" or "month").
func (r *Reporter) GenerateReport(periodType string) (*models.Report, error) {
	period, err := r.getPeriod(periodType)
	if err != nil {
		return nil, err
	}

	summaries, err := r.repo.GetCornerSummarySince(period.Start)
	if err != nil {
		return nil, fmt.Errorf("failed to get corner summary: %w", err)
	}

	total := 0
	for _, s := range summaries {
		total += s.TriggerCount
	}
	if total > 0 {
		for i := range summaries {
			summaries[i].Percentage = (float64(summaries[i].TriggerCount) / float64(total)) * 100.0
		}
	}

	return &models.Report{
		Period:        *period,
		Corners:       summaries,
		TotalTriggers: total,
		GeneratedAt:   time.Now(),
	}, nil
}

// getPeriod calculates the time range for the report
func (r *Reporter) getPeriod(periodType string) (*models.ReportPeriod, error) {
	now := time.Now()
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.Add(24 * time.Hour)

	case "week":
		// Start of week (Monday)
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)

	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)

	default:
		return nil, fmt.Errorf("invalid period type: %s (valid: day, week, month)", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

// FormatReportText formats the report as human-readable text
func (r *Reporter) FormatReportText(report *models.Report) string {
	output := fmt.Sprintf("Corner Trigger Report - %s\n", report.Period.Type)
	output += fmt.Sprintf("Period: %s to %s\n",
		report.Period.Start.Format("2006-01-02 15:04"),
		report.Period.End.Format("2006-01-02 15:04"))
	output += fmt.Sprintf("Total Triggers: %d\n\n", report.TotalTriggers)

	if len(report.Corners) == 0 {
		output += "No triggers recorded for this period.\n"
		return output
	}

	output += fmt.Sprintf("%-14s %-28s %10s %9s  %s\n", "Corner", "Application", "Triggers", "Percent", "Last")
	output += fmt.Sprintf("%s\n", "--------------------------------------------------------------------------------")

	for _, c := range report.Corners {
		output += fmt.Sprintf("%-14s %-28s %10d %8.1f%%  %s\n",
			c.Corner,
			truncate(c.AppName, 28),
			c.TriggerCount,
			c.Percentage,
			c.LastTriggered.Format("2006-01-02 15:04"))
	}

	return output
}

// FormatReportJSON formats the report as JSON
func (r *Reporter) FormatReportJSON(report *models.Report) (string, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

// truncate truncates a string to the specified length
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
