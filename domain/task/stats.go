package task

// Stats holds aggregate counts derived from a task list snapshot.
type Stats struct {
	Total        int `json:"total"`
	Completed    int `json:"completed"`
	Pending      int `json:"pending"`
	HighPriority int `json:"highPriority"`
}

// ComputeStats derives aggregate counts from a task list snapshot.
// HighPriority counts pending tasks with HIGH or URGENT priority;
// completed tasks never count as high priority.
func ComputeStats(tasks []Task) Stats {
	stats := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			stats.Completed++
			continue
		}
		stats.Pending++
		if t.Priority == PriorityHigh || t.Priority == PriorityUrgent {
			stats.HighPriority++
		}
	}
	return stats
}
