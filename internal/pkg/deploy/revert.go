package deploy

import (
	"context"
	"time"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
	"k8s.io/klog/v2"
)

func latestMikrotikAPIHistory(ctx context.Context, factory store.Factory, peerID string) (*model.ConfigurationHistory, error) {
	history, _, err := factory.ConfigHistory().List(ctx, store.ConfigurationHistoryListOptions{
		PeerID:     peerID,
		ConfigType: model.ConfigTypeMikrotikAPI,
		Limit:      1,
	})
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return nil, errors.WithCode(code.ErrNoHistoryToRevert, "no mikrotik-api configuration history for peer %s", peerID)
	}
	return history[0], nil
}

// StartRevert locates the most recent mikrotik-api history record for
// the peer and enqueues a rollback job that pushes it via run_script.
// Absence of history is a distinct error, surfaced synchronously.
func (e *Engine) StartRevert(ctx context.Context, peerID string) (*model.DeploymentJob, error) {
	if _, err := latestMikrotikAPIHistory(ctx, e.store, peerID); err != nil {
		return nil, err
	}

	if !e.tryAcquire(peerID) {
		return nil, errors.WithCode(code.ErrJobAlreadyRunning, "a deployment job is already pending or running for peer %s", peerID)
	}
	job, err := e.createJob(ctx, peerID, model.JobTypeRollback)
	if err != nil {
		e.release(peerID)
		return nil, err
	}
	e.enqueue(job.ID)
	return job, nil
}

func (e *Engine) runRevert(ctx context.Context, job *model.DeploymentJob) {
	defer e.clearCancel(job.ID)

	now := time.Now()
	job.StartedAt = &now
	job.Status = model.JobStatusRunning
	_ = e.store.Jobs().Update(ctx, job)

	fail := func(err error) {
		job.ErrorMessage = err.Error()
		job.Status = model.JobStatusFailed
		completed := time.Now()
		job.CompletedAt = &completed
		if updErr := e.store.Jobs().Update(ctx, job); updErr != nil {
			klog.Errorf("deploy: persist failed revert job %s: %v", job.ID, updErr)
		}
	}

	entry, err := latestMikrotikAPIHistory(ctx, e.store, job.PeerID)
	if err != nil {
		fail(err)
		return
	}

	peer, err := e.store.Peers().Get(ctx, job.PeerID)
	if err != nil {
		fail(err)
		return
	}
	client, err := e.clientFor(ctx, peer, job)
	if err != nil {
		fail(err)
		return
	}

	if err := client.RunScript(ctx, entry.ConfigText); err != nil {
		fail(err)
		return
	}

	job.Status = model.JobStatusCompleted
	job.ProgressPercent = 100
	completed := time.Now()
	job.CompletedAt = &completed
	if err := e.store.Jobs().Update(ctx, job); err != nil {
		klog.Errorf("deploy: persist completed revert job %s: %v", job.ID, err)
	}
}

// Clear removes every managed resource from a peer's router and nothing
// else. Idempotent: removing an already-clean router succeeds.
func (e *Engine) Clear(ctx context.Context, peerID string) error {
	peer, err := e.store.Peers().Get(ctx, peerID)
	if err != nil {
		return err
	}
	client, err := e.clientFor(ctx, peer)
	if err != nil {
		return err
	}
	return client.RemoveManagedResources(ctx)
}
