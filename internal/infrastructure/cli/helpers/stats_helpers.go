package helpers

import (
	"sort"
	"time"

	"github.com/doeshing/investigator-go/internal/domain"
)

// ActionStatistic represents usage statistics for one action kind
type ActionStatistic struct {
	Action     domain.Action
	Count      int
	Successful int
}

// TargetStatistic counts how often a target was investigated
type TargetStatistic struct {
	Target string
	Count  int
}

// CalculateActionStatistics groups records per action, most used first.
// Ties keep the declaration order of domain.Actions.
func CalculateActionStatistics(records []domain.ExecutionRecord) []ActionStatistic {
	byAction := make(map[domain.Action]*ActionStatistic)
	for _, rec := range records {
		stat, ok := byAction[rec.Action]
		if !ok {
			stat = &ActionStatistic{Action: rec.Action}
			byAction[rec.Action] = stat
		}
		stat.Count++
		if rec.Success {
			stat.Successful++
		}
	}

	stats := make([]ActionStatistic, 0, len(byAction))
	for _, action := range domain.Actions() {
		if stat, ok := byAction[action]; ok {
			stats = append(stats, *stat)
		}
	}
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Count > stats[j].Count })
	return stats
}

// CalculateTopTargets returns the top N most investigated targets
// If limit is 0 or negative, returns all targets
func CalculateTopTargets(records []domain.ExecutionRecord, limit int) []TargetStatistic {
	frequency := make(map[string]int)
	for _, rec := range records {
		frequency[rec.Target]++
	}

	stats := make([]TargetStatistic, 0, len(frequency))
	for target, count := range frequency {
		stats = append(stats, TargetStatistic{Target: target, Count: count})
	}
	sortTargetsByFrequency(stats)

	if shouldLimitResults(limit, len(stats)) {
		return stats[:limit]
	}
	return stats
}

// sortTargetsByFrequency sorts statistics by count (descending) then by target (ascending)
func sortTargetsByFrequency(stats []TargetStatistic) {
	sort.Slice(stats, func(i, j int) bool {
		if stats[i].Count == stats[j].Count {
			return stats[i].Target < stats[j].Target
		}
		return stats[i].Count > stats[j].Count
	})
}

// shouldLimitResults checks if we should limit the results based on the limit and actual length
func shouldLimitResults(limit int, actualLength int) bool {
	return limit > 0 && actualLength > limit
}

// CalculateSuccessRate calculates the success rate as a percentage
func CalculateSuccessRate(successfulCount int, executedCount int) float64 {
	if executedCount == 0 {
		return 0.0
	}
	return float64(successfulCount) / float64(executedCount) * 100.0
}

// AverageDuration returns the mean execution time, rounded to milliseconds.
func AverageDuration(records []domain.ExecutionRecord) time.Duration {
	if len(records) == 0 {
		return 0
	}
	var total int64
	for _, rec := range records {
		total += rec.DurationMS
	}
	return time.Duration(total/int64(len(records))) * time.Millisecond
}
