package entities

import "time"

type ImportRunStatus string

const (
	ImportRunQueued    ImportRunStatus = "queued"
	ImportRunRunning   ImportRunStatus = "running"
	ImportRunCompleted ImportRunStatus = "completed"
	ImportRunFailed    ImportRunStatus = "failed"
)

// ImportRun is the persisted summary of one seeding run.
type ImportRun struct {
	ID         string          `gorm:"primaryKey;size:36" json:"id"`
	Status     ImportRunStatus `gorm:"size:20;index" json:"status"`
	Readonly   bool            `json:"readonly"`
	DryRun     bool            `json:"dry_run"`
	Stages     []string        `gorm:"serializer:json;type:text" json:"stages"`
	Errors     int             `json:"errors"`
	Warnings   int             `json:"warnings"`
	Infos      int             `json:"infos"`
	Failure    string          `gorm:"size:1000" json:"failure,omitempty"`
	StartedAt  *time.Time      `json:"started_at,omitempty"`
	FinishedAt *time.Time      `json:"finished_at,omitempty"`
	CreatedAt  time.Time       `gorm:"index" json:"created_at"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
