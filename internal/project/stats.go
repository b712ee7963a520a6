package project

import "math"

type Stats struct {
	Total       int `json:"total_projects"`
	Active      int `json:"active_projects"`
	Completed   int `json:"completed_projects"`
	AvgProgress int `json:"avg_progress"`
}

// ComputeStats counts projects by status and averages progress, rounded half
// away from zero. An empty collection averages to 0.
func ComputeStats(projects []*Project) Stats {
	var (
		stats Stats
		sum   int
	)
	for _, p := range projects {
		stats.Total++
		switch p.Status {
		case StatusActive:
			stats.Active++
		case StatusCompleted:
			stats.Completed++
		}
		sum += p.ProgressPercentage
	}
	if stats.Total > 0 {
		stats.AvgProgress = int(math.Round(float64(sum) / float64(stats.Total)))
	}
	return stats
}

// RecentProjects returns at most the first n projects.
func RecentProjects(projects []*Project, n int) []*Project {
	if n < 0 {
		n = 0
	}
	if len(projects) < n {
		n = len(projects)
	}
	return projects[:n]
}
