package model

import "time"

// DeploymentJob tracks one lifecycle run of the Deployment Engine against
// a peer: a plan/preflight read, or a background apply/verify/revert.
type DeploymentJob struct {
	ID              string     `json:"id" gorm:"primaryKey"`
	PeerID          string     `json:"peer_id" gorm:"index;not null"`
	JobType         string     `json:"job_type" gorm:"not null" validate:"required,oneof=deploy-config rollback verify test-connection"`
	Status          string     `json:"status" gorm:"index;not null;default:pending" validate:"required,oneof=pending running completed failed cancelled"`
	ProgressPercent int        `json:"progress_percent" gorm:"default:0"`
	StartedAt       *time.Time `json:"started_at" gorm:""`
	CompletedAt     *time.Time `json:"completed_at" gorm:""`
	ErrorMessage    string     `json:"error_message" gorm:""`
	OperationsLog   string     `json:"operations_log" gorm:"type:text"`
	BackupConfig    string     `json:"backup_config" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	JobTypeDeployConfig   = "deploy-config"
	JobTypeRollback       = "rollback"
	JobTypeVerify         = "verify"
	JobTypeTestConnection = "test-connection"

	JobStatusPending   = "pending"
	JobStatusRunning   = "running"
	JobStatusCompleted = "completed"
	JobStatusFailed    = "failed"
	JobStatusCancelled = "cancelled"
)

// IsTerminal reports whether the job has reached a final status.
func (j *DeploymentJob) IsTerminal() bool {
	switch j.Status {
	case JobStatusCompleted, JobStatusFailed, JobStatusCancelled:
		return true
	default:
		return false
	}
}

// ApiCallLog is one audit record of a call the Router API Client made to
// a managed device, captured as a child of a DeploymentJob.
type ApiCallLog struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	JobID        string    `json:"job_id" gorm:"index;not null"`
	Method       string    `json:"method" gorm:"not null"`
	Endpoint     string    `json:"endpoint" gorm:"not null"`
	RequestBody  string    `json:"request_body" gorm:"type:text"`
	ResponseCode int       `json:"response_status" gorm:"column:response_status"`
	ResponseBody string    `json:"response_body" gorm:"type:text"`
	Error        string    `json:"error" gorm:""`
	Timestamp    time.Time `json:"timestamp"`
}
