package store

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// DeploymentJobStore defines storage operations for deployment jobs.
type DeploymentJobStore interface {
	Create(ctx context.Context, job *model.DeploymentJob) error
	Get(ctx context.Context, id string) (*model.DeploymentJob, error)
	Update(ctx context.Context, job *model.DeploymentJob) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opt DeploymentJobListOptions) ([]*model.DeploymentJob, int64, error)
	// LatestForPeer returns the most recently created job for a peer, if any.
	LatestForPeer(ctx context.Context, peerID string) (*model.DeploymentJob, error)

	// AppendApiCallLog persists one Router API Client call record under a job.
	AppendApiCallLog(ctx context.Context, log *model.ApiCallLog) error
	// ListApiCallLogs returns every call log recorded under a job, in order.
	ListApiCallLogs(ctx context.Context, jobID string) ([]*model.ApiCallLog, error)
}

// DeploymentJobListOptions defines list filters and pagination for jobs.
type DeploymentJobListOptions struct {
	PeerID  string
	JobType string
	Status  string

	Offset int
	Limit  int
}
