package v1

import "time"

// JobResponse is the public representation of a deployment job.
// swagger:model
type JobResponse struct {
	ID              string     `json:"id"`
	PeerID          string     `json:"peer_id"`
	JobType         string     `json:"job_type"`
	Status          string     `json:"status"`
	ProgressPercent int        `json:"progress_percent"`
	StartedAt       *time.Time `json:"started_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
	ErrorMessage    string     `json:"error_message,omitempty"`
	OperationsLog   string     `json:"operations_log,omitempty"`
}

// ListJobsResponse is a paginated list of deployment jobs.
// swagger:model
type ListJobsResponse struct {
	Items []JobResponse `json:"items"`
	Total int64         `json:"total"`
}

// PlanResponse reports the read-only diff an apply would perform,
// family by family, without writing anything.
// swagger:model
type PlanResponse struct {
	Families map[string]FamilyDiffResponse `json:"families"`
}

// FamilyDiffResponse is the per-family create/delete set of a plan.
// swagger:model
type FamilyDiffResponse struct {
	ToCreate []map[string]any `json:"to_create"`
	ToDelete []map[string]any `json:"to_delete"`
}

// PreflightResponse reports non-fatal collisions found before an apply.
// swagger:model
type PreflightResponse struct {
	Success bool                      `json:"success"`
	Issues  []PreflightIssueResponse `json:"issues"`
}

// PreflightIssueResponse is one preflight finding.
// swagger:model
type PreflightIssueResponse struct {
	Family     string `json:"family"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

// VerifyResponse reports drift between a managed peer's router state and
// its freshly computed desired state.
// swagger:model
type VerifyResponse struct {
	InSync bool     `json:"in_sync"`
	Issues []string `json:"issues"`
}

// TestConnectionResponse reports a managed peer's reachability as read
// back from its router API.
// swagger:model
type TestConnectionResponse struct {
	RouterIdentity string `json:"router_identity"`
	RouterOSVer    string `json:"routeros_version"`
}

// ApiCallLogResponse is one audit record of a Router API Client call made
// during a deployment job.
// swagger:model
type ApiCallLogResponse struct {
	ID           string    `json:"id"`
	JobID        string    `json:"job_id"`
	Method       string    `json:"method"`
	Endpoint     string    `json:"endpoint"`
	ResponseCode int       `json:"response_status"`
	Error        string    `json:"error,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// ListApiCallLogsResponse is the ordered list of API calls made under a job.
// swagger:model
type ListApiCallLogsResponse struct {
	Items []ApiCallLogResponse `json:"items"`
}
