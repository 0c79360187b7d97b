package facade

// Stats summarizes facade-wide execution activity (spec §6 `GET
// /api/stats`).
type Stats struct {
	LoadedForms          int     `json:"loaded_forms"`
	TotalExecutions      int     `json:"total_executions"`
	SuccessfulExecutions int     `json:"successful_executions"`
	FailedExecutions     int     `json:"failed_executions"`
	AvgExecutionMS       float64 `json:"avg_execution_ms"`
}

// Stats aggregates loaded-graph and history counts across every
// document the facade currently tracks.
func (f *Facade) Stats() Stats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	stats := Stats{LoadedForms: len(f.graphs)}
	var totalMS float64
	for _, entries := range f.history {
		for _, e := range entries {
			stats.TotalExecutions++
			if e.Result.Success {
				stats.SuccessfulExecutions++
			} else {
				stats.FailedExecutions++
			}
			totalMS += e.Result.Metrics.ElapsedMS
		}
	}
	if stats.TotalExecutions > 0 {
		stats.AvgExecutionMS = totalMS / float64(stats.TotalExecutions)
	}
	return stats
}
