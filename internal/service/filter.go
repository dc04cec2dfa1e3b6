package service

import (
	"strings"
	"time"

	"todoapp/internal/domain/models"
)

// Filter keeps tasks whose text contains searchTerm (case-insensitive)
// and which match the selector. The selector is a single value that
// aliases over three fields: "all", "completed", "pending", "today", a
// priority value or a category value. Two priorities or categories are
// never combinable.
func Filter(tasks []models.Task, selector, searchTerm string) []models.Task {
	searchTerm = strings.ToLower(strings.TrimSpace(searchTerm))
	now := time.Now()

	out := make([]models.Task, 0, len(tasks))
	for _, task := range tasks {
		if searchTerm != "" && !strings.Contains(strings.ToLower(task.Text), searchTerm) {
			continue
		}
		if !matchesSelector(task, selector, now) {
			continue
		}
		out = append(out, task)
	}
	return out
}

func matchesSelector(task models.Task, selector string, now time.Time) bool {
	switch selector {
	case "", "all":
		return true
	case "completed":
		return task.Completed
	case "pending":
		return !task.Completed
	case "today":
		return sameLocalDay(task.CreatedAt, now)
	default:
		return selector == task.Priority || selector == task.Category
	}
}

// sameLocalDay compares calendar dates in local time.
func sameLocalDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

func Stats(tasks []models.Task) models.TaskStats {
	now := time.Now()
	stats := models.TaskStats{Total: len(tasks)}
	for _, task := range tasks {
		if task.Completed {
			stats.Completed++
		}
		if sameLocalDay(task.CreatedAt, now) {
			stats.Today++
		}
	}
	stats.Pending = stats.Total - stats.Completed
	if stats.Total > 0 {
		stats.ProgressPercent = float64(stats.Completed) / float64(stats.Total) * 100
	}
	return stats
}
