package commandlog

import (
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/botpanel/botpanel/internal/db/models"
)

const (
	topCommands   = 10
	histogramDays = 14
	dayLayout     = "2006-01-02"
)

// CommandCount is the number of invocations of one command.
type CommandCount struct {
	Command string `json:"command"`
	Count   int    `json:"count"`
}

// DayCount is the number of invocations on one UTC day.
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserCount is the number of invocations by one user.
type UserCount struct {
	UserID   string `json:"userId"`
	Username string `json:"username"`
	Count    int    `json:"count"`
}

// Report aggregates a sample of the newest log rows.
type Report struct {
	Total       int            `json:"total"`
	Errors      int            `json:"errors"`
	Warnings    int            `json:"warnings"`
	ErrorRate   float64        `json:"errorRate"`
	TopCommands []CommandCount `json:"topCommands"`
	Daily       []DayCount     `json:"daily"`
	Users       []UserCount    `json:"users"`
}

// Analytics aggregates the newest limit rows. A limit <= 0 selects DefaultAnalyticsLimit.
// The daily histogram covers the 14 UTC days ending with now, empty days included.
func Analytics(db *gorm.DB, now time.Time, limit int) (*Report, error) {
	if limit <= 0 {
		limit = DefaultAnalyticsLimit
	}

	logs, err := List(db, limit)
	if err != nil {
		return nil, err
	}

	return aggregate(logs, now), nil
}

func aggregate(logs []models.CommandLog, now time.Time) *Report {
	report := &Report{
		Total:       len(logs),
		TopCommands: []CommandCount{},
		Users:       []UserCount{},
	}

	today := now.UTC().Truncate(24 * time.Hour)
	days := make(map[string]int, histogramDays)
	report.Daily = make([]DayCount, histogramDays)

	for i := range histogramDays {
		date := today.AddDate(0, 0, i-histogramDays+1).Format(dayLayout)
		report.Daily[i] = DayCount{Date: date}
		days[date] = i
	}

	commands := map[string]int{}
	users := map[string]*UserCount{}

	for _, l := range logs {
		if l.IsError {
			report.Errors++
		}

		if l.IsWarning {
			report.Warnings++
		}

		commands[l.Command]++

		if u, ok := users[l.UserID]; ok {
			u.Count++
		} else {
			users[l.UserID] = &UserCount{UserID: l.UserID, Username: l.Username, Count: 1}
		}

		if i, ok := days[l.Timestamp.UTC().Format(dayLayout)]; ok {
			report.Daily[i].Count++
		}
	}

	if report.Total > 0 {
		report.ErrorRate = float64(report.Errors) / float64(report.Total)
	}

	for name, count := range commands {
		report.TopCommands = append(report.TopCommands, CommandCount{Command: name, Count: count})
	}

	sort.Slice(report.TopCommands, func(i, j int) bool {
		a, b := report.TopCommands[i], report.TopCommands[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}

		return a.Command < b.Command
	})

	if len(report.TopCommands) > topCommands {
		report.TopCommands = report.TopCommands[:topCommands]
	}

	for _, u := range users {
		report.Users = append(report.Users, *u)
	}

	sort.Slice(report.Users, func(i, j int) bool {
		a, b := report.Users[i], report.Users[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}

		return a.UserID < b.UserID
	})

	return report
}
