package service

import (
	"context"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
)

// JobSrv manages deployment job records.
type JobSrv interface {
	GetJob(ctx context.Context, id string) (*model.DeploymentJob, error)
	ListJobs(ctx context.Context, opt store.DeploymentJobListOptions) ([]*model.DeploymentJob, int64, error)
	CancelJob(ctx context.Context, id string) error
	ListApiCallLogs(ctx context.Context, jobID string) ([]*model.ApiCallLog, error)

	// RetryJob creates and enqueues a fresh job against the same peer
	// as a previously failed one.
	RetryJob(ctx context.Context, id string) (*model.DeploymentJob, error)

	// DeleteJob removes a job record. Only jobs in a terminal state may
	// be deleted.
	DeleteJob(ctx context.Context, id string) error
}

type jobSrv struct {
	store store.Factory
}

var _ JobSrv = (*jobSrv)(nil)

func newJobs(s *service) *jobSrv {
	return &jobSrv{store: s.store}
}

func (j *jobSrv) GetJob(ctx context.Context, id string) (*model.DeploymentJob, error) {
	return j.store.Jobs().Get(ctx, id)
}

func (j *jobSrv) ListJobs(ctx context.Context, opt store.DeploymentJobListOptions) ([]*model.DeploymentJob, int64, error) {
	return j.store.Jobs().List(ctx, opt)
}

func (j *jobSrv) CancelJob(ctx context.Context, id string) error {
	return Engine.Cancel(ctx, id)
}

func (j *jobSrv) ListApiCallLogs(ctx context.Context, jobID string) ([]*model.ApiCallLog, error) {
	return j.store.Jobs().ListApiCallLogs(ctx, jobID)
}

func (j *jobSrv) RetryJob(ctx context.Context, id string) (*model.DeploymentJob, error) {
	return Engine.RetryJob(ctx, id)
}

func (j *jobSrv) DeleteJob(ctx context.Context, id string) error {
	job, err := j.store.Jobs().Get(ctx, id)
	if err != nil {
		return err
	}
	if !job.IsTerminal() {
		return errors.WithCode(code.ErrJobNotDeletable, "job %s has status %s, only terminal jobs may be deleted", id, job.Status)
	}
	return j.store.Jobs().Delete(ctx, id)
}
