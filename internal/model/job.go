package model

// JobStatus is the lifecycle state of a match job.
type JobStatus string

// Job statuses.
const (
	JobIdle      JobStatus = "idle"
	JobRunning   JobStatus = "running"
	JobCompleted JobStatus = "completed"
	JobCancelled JobStatus = "cancelled"
)

// Progress counts scored recipes in the current run.
type Progress struct {
	Done  int `json:"done"`
	Total int `json:"total"`
}

// Complete reports whether every recipe in the run has been scored.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Done >= p.Total
}

// ResultKey addresses one result in a job's result map.
type ResultKey struct {
	RecipeID         string `json:"recipe_id"`
	InventoryVersion int64  `json:"inventory_version"`
}
