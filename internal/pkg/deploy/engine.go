package deploy

import (
	"context"
	"sync"
	"time"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
	"github.com/wanoverlay/manager/internal/pkg/secret"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/utils/snowflake"
	"k8s.io/klog/v2"
)

// Engine is the Deployment Engine: a bounded worker pool that drives
// plan/preflight/apply/verify/revert/clear against managed peers. One
// Engine is shared process-wide.
type Engine struct {
	store     store.Factory
	envelope  *secret.Envelope
	timeout   time.Duration
	backupDir string

	jobCh chan string

	busyMu sync.Mutex
	busy   map[string]struct{} // peer IDs with a pending/running job in this process

	cancelMu sync.Mutex
	cancel   map[string]struct{} // job IDs flagged for cancellation
}

// NewEngine starts maxConcurrent worker goroutines reading deploy job IDs
// off a buffered channel. deploymentTimeout bounds each apply/revert run.
// backupDir, if non-empty, receives a local copy of every generated
// MikroTik script before it is pushed, one file per peer, serialized by a
// flock so concurrent applies to the same peer never interleave writes.
func NewEngine(factory store.Factory, envelope *secret.Envelope, maxConcurrent int, deploymentTimeout time.Duration, backupDir string) *Engine {
	if maxConcurrent <= 0 {
		maxConcurrent = 10
	}
	if deploymentTimeout <= 0 {
		deploymentTimeout = 300 * time.Second
	}
	e := &Engine{
		store:     factory,
		envelope:  envelope,
		timeout:   deploymentTimeout,
		backupDir: backupDir,
		jobCh:     make(chan string, maxConcurrent*4),
		busy:      make(map[string]struct{}),
		cancel:    make(map[string]struct{}),
	}
	for i := 0; i < maxConcurrent; i++ {
		go e.worker()
	}
	return e
}

func (e *Engine) worker() {
	for jobID := range e.jobCh {
		ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
		e.runJob(ctx, jobID)
		cancel()
	}
}

func (e *Engine) runJob(ctx context.Context, jobID string) {
	job, err := e.store.Jobs().Get(ctx, jobID)
	if err != nil {
		klog.Errorf("deploy: load job %s: %v", jobID, err)
		return
	}
	defer e.release(job.PeerID)

	switch job.JobType {
	case model.JobTypeDeployConfig:
		e.runApply(ctx, job)
	case model.JobTypeRollback:
		e.runRevert(ctx, job)
	default:
		klog.Errorf("deploy: job %s has unsupported background job_type %s", jobID, job.JobType)
	}
}

func (e *Engine) tryAcquire(peerID string) bool {
	e.busyMu.Lock()
	defer e.busyMu.Unlock()
	if _, ok := e.busy[peerID]; ok {
		return false
	}
	e.busy[peerID] = struct{}{}
	return true
}

func (e *Engine) release(peerID string) {
	e.busyMu.Lock()
	defer e.busyMu.Unlock()
	delete(e.busy, peerID)
}

func (e *Engine) flagCancel(jobID string) {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()
	e.cancel[jobID] = struct{}{}
}

func (e *Engine) isCancelled(jobID string) bool {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()
	_, ok := e.cancel[jobID]
	return ok
}

func (e *Engine) clearCancel(jobID string) {
	e.cancelMu.Lock()
	defer e.cancelMu.Unlock()
	delete(e.cancel, jobID)
}

// clientFor decrypts a managed peer's credentials and builds a Router
// API Client that persists an ApiCallLog row per call under job.
func (e *Engine) clientFor(ctx context.Context, peer *model.Peer, job ...*model.DeploymentJob) (*routerapi.Client, error) {
	params, err := connectionParams(peer, e.envelope)
	if err != nil {
		return nil, err
	}
	var recorder routerapi.Recorder
	if len(job) == 1 && job[0] != nil {
		recorder = &jobRecorder{store: e.store, jobID: job[0].ID}
	}
	return routerapi.NewClient(params, recorder), nil
}

// jobRecorder persists every Router API Client call as an ApiCallLog row
// under one deployment job.
type jobRecorder struct {
	store store.Factory
	jobID string
}

func (r *jobRecorder) Record(call routerapi.CallRecord) {
	log := &model.ApiCallLog{
		JobID:        r.jobID,
		Method:       call.Method,
		Endpoint:     call.Endpoint,
		RequestBody:  call.RequestBody,
		ResponseCode: call.ResponseCode,
		ResponseBody: call.ResponseBody,
		Error:        call.Error,
		Timestamp:    call.Timestamp,
	}
	id, err := snowflake.GenerateID()
	if err == nil {
		log.ID = id
	}
	if err := r.store.Jobs().AppendApiCallLog(context.Background(), log); err != nil {
		klog.Errorf("deploy: persist api call log for job %s: %v", r.jobID, err)
	}
}

// Cancel transitions a pending or running job to cancelled. The
// background worker observes this at the next milestone boundary and
// aborts cleanly, leaving backup_config intact.
func (e *Engine) Cancel(ctx context.Context, jobID string) error {
	job, err := e.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return err
	}
	if job.IsTerminal() {
		return errors.WithCode(code.ErrJobNotCancellable, "job %s is already %s", jobID, job.Status)
	}
	e.flagCancel(jobID)
	job.Status = model.JobStatusCancelled
	return e.store.Jobs().Update(ctx, job)
}
