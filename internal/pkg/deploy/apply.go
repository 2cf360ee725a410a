package deploy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/localbackup"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
	"github.com/wanoverlay/manager/pkg/utils/snowflake"
	"k8s.io/klog/v2"
)

// StartApply enqueues a deploy-config job for a managed peer. Rejects a
// second concurrent apply while one is pending|running for the same
// peer. Without approve=true, no job is created — the caller receives
// the current Plan instead so the engine performs no writes.
func (e *Engine) StartApply(ctx context.Context, peerID string, approve bool) (*model.DeploymentJob, *PlanResult, error) {
	if !approve {
		plan, err := e.Plan(ctx, peerID)
		if err != nil {
			return nil, nil, err
		}
		return nil, &plan, errors.WithCode(code.ErrDeployApprovalRequired, "apply requires approve=true")
	}

	if !e.tryAcquire(peerID) {
		return nil, nil, errors.WithCode(code.ErrJobAlreadyRunning, "a deployment job is already pending or running for peer %s", peerID)
	}

	job, err := e.createJob(ctx, peerID, model.JobTypeDeployConfig)
	if err != nil {
		e.release(peerID)
		return nil, nil, err
	}

	e.enqueue(job.ID)
	return job, nil, nil
}

// RetryJob re-enqueues a fresh deployment job of the same type against
// the same peer as a previously failed job, per §4.6: "a failed job may
// be retried, which creates a new job against the same peer."
func (e *Engine) RetryJob(ctx context.Context, jobID string) (*model.DeploymentJob, error) {
	failed, err := e.store.Jobs().Get(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if failed.Status != model.JobStatusFailed {
		return nil, errors.WithCode(code.ErrJobNotRetryable, "job %s has status %s, only failed jobs may be retried", jobID, failed.Status)
	}

	if !e.tryAcquire(failed.PeerID) {
		return nil, errors.WithCode(code.ErrJobAlreadyRunning, "a deployment job is already pending or running for peer %s", failed.PeerID)
	}

	job, err := e.createJob(ctx, failed.PeerID, failed.JobType)
	if err != nil {
		e.release(failed.PeerID)
		return nil, err
	}

	e.enqueue(job.ID)
	return job, nil
}

func (e *Engine) createJob(ctx context.Context, peerID, jobType string) (*model.DeploymentJob, error) {
	id, err := snowflake.GenerateID()
	if err != nil {
		return nil, err
	}
	job := &model.DeploymentJob{
		ID:      id,
		PeerID:  peerID,
		JobType: jobType,
		Status:  model.JobStatusPending,
	}
	if err := e.store.Jobs().Create(ctx, job); err != nil {
		return nil, err
	}
	return job, nil
}

func (e *Engine) enqueue(jobID string) {
	select {
	case e.jobCh <- jobID:
	default:
		// Channel saturated beyond its buffer; block rather than drop a job.
		go func() { e.jobCh <- jobID }()
	}
}

// runApply is the canonical convergent write path, §4.6. Progress is
// reported monotonically via the milestone table; a cancellation flagged
// at any boundary aborts cleanly, leaving backup_config intact.
func (e *Engine) runApply(ctx context.Context, job *model.DeploymentJob) {
	defer e.clearCancel(job.ID)

	now := time.Now()
	job.StartedAt = &now
	job.Status = model.JobStatusRunning
	var opsLog []string
	appendLog := func(format string, args ...any) {
		opsLog = append(opsLog, fmt.Sprintf(format, args...))
	}

	fail := func(err error) {
		appendLog("FAILED: %v", err)
		job.ErrorMessage = err.Error()
		job.Status = model.JobStatusFailed
		job.OperationsLog = strings.Join(opsLog, "\n")
		completed := time.Now()
		job.CompletedAt = &completed
		if updErr := e.store.Jobs().Update(ctx, job); updErr != nil {
			klog.Errorf("deploy: persist failed job %s: %v", job.ID, updErr)
		}
	}

	advance := func(percent int) bool {
		if e.isCancelled(job.ID) {
			appendLog("cancelled at %d%%", job.ProgressPercent)
			job.OperationsLog = strings.Join(opsLog, "\n")
			if updErr := e.store.Jobs().Update(ctx, job); updErr != nil {
				klog.Errorf("deploy: persist cancelled job %s: %v", job.ID, updErr)
			}
			return false
		}
		job.ProgressPercent = percent
		if updErr := e.store.Jobs().Update(ctx, job); updErr != nil {
			klog.Errorf("deploy: persist progress for job %s: %v", job.ID, updErr)
		}
		return true
	}

	if !advance(MilestoneAccepted) {
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

	if _, err := client.TestConnection(ctx); err != nil {
		fail(fmt.Errorf("connection verification failed: %w", err))
		return
	}
	appendLog("connection verified")
	if !advance(MilestoneConnectionVerified) {
		return
	}

	view, err := e.buildOverlayView(ctx, job.PeerID)
	if err != nil {
		fail(err)
		return
	}
	desired := configgen.GenerateDesiredState(view)
	appendLog("desired state computed")
	if !advance(MilestoneDesiredComputed) {
		return
	}

	if e.backupDir != "" {
		if err := e.writeLocalScriptBackup(job.PeerID, configgen.GenerateScript(desired)); err != nil {
			klog.Errorf("deploy: local script backup for peer %s: %v", job.PeerID, err)
		} else {
			appendLog("local script backup written")
		}
	}

	backup, err := client.GetManagedResources(ctx)
	if err != nil {
		fail(err)
		return
	}
	backupJSON, err := json.Marshal(backup)
	if err != nil {
		fail(fmt.Errorf("encode backup: %w", err))
		return
	}
	job.BackupConfig = string(backupJSON)
	appendLog("backup captured")
	if !advance(MilestoneBackupCaptured) {
		return
	}

	if err := applyInterface(ctx, client, desired.Interface); err != nil {
		fail(err)
		return
	}
	appendLog("interface present")
	if !advance(MilestoneInterfacePresent) {
		return
	}

	peerResources, err := toResources(desired.Peers)
	if err != nil {
		fail(err)
		return
	}
	if err := replaceManaged(ctx, client, routerapi.FamilyWireguardPeer, peerResources); err != nil {
		fail(err)
		return
	}
	appendLog("peers replaced")
	if !advance(MilestonePeersReplaced) {
		return
	}

	addrResources, err := toResources(desired.IPAddresses)
	if err != nil {
		fail(err)
		return
	}
	if err := replaceManaged(ctx, client, routerapi.FamilyIPAddress, addrResources); err != nil {
		fail(err)
		return
	}
	appendLog("addresses replaced")
	if !advance(MilestoneAddressesReplaced) {
		return
	}

	routeResources, err := toResources(desired.Routes)
	if err != nil {
		fail(err)
		return
	}
	if err := replaceManaged(ctx, client, routerapi.FamilyIPRoute, routeResources); err != nil {
		fail(err)
		return
	}
	appendLog("routes replaced")
	if !advance(MilestoneRoutesReplaced) {
		return
	}

	filterResources, err := toResources(desired.FirewallRules)
	if err != nil {
		fail(err)
		return
	}
	if err := replaceManaged(ctx, client, routerapi.FamilyFirewallFilter, filterResources); err != nil {
		fail(err)
		return
	}
	appendLog("firewall replaced")
	if !advance(MilestoneFirewallReplaced) {
		return
	}

	natResources, err := toResources(desired.NATRules)
	if err != nil {
		fail(err)
		return
	}
	if err := replaceManaged(ctx, client, routerapi.FamilyFirewallNAT, natResources); err != nil {
		fail(err)
		return
	}
	appendLog("NAT replaced")
	if !advance(MilestoneNATReplaced) {
		return
	}

	ifaces, err := client.List(ctx, routerapi.FamilyWireguardInterface, configgen.OwnershipPrefix)
	if err != nil {
		fail(err)
		return
	}
	if !interfaceRunning(ifaces, desired.Interface.Comment) {
		appendLog("warning: managed interface is not running after apply")
	}

	job.OperationsLog = strings.Join(opsLog, "\n")
	job.Status = model.JobStatusCompleted
	job.ProgressPercent = MilestoneVerificationRead
	completed := time.Now()
	job.CompletedAt = &completed
	if err := e.store.Jobs().Update(ctx, job); err != nil {
		klog.Errorf("deploy: persist completed job %s: %v", job.ID, err)
		return
	}

	peer.APIStatus = model.PeerAPIStatusConnected
	peer.IsOnline = true
	peer.LastSeen = &completed
	peer.LastAPICheck = &completed
	peer.Metadata.NeedsConfigRefresh = false
	if err := e.store.Peers().Update(ctx, peer); err != nil {
		klog.Errorf("deploy: persist peer status after apply for %s: %v", peer.ID, err)
	}
}

// writeLocalScriptBackup saves the script about to be pushed to a peer,
// one file per peer under e.backupDir.
func (e *Engine) writeLocalScriptBackup(peerID, script string) error {
	return localbackup.WritePeerScript(e.backupDir, peerID, script)
}

func applyInterface(ctx context.Context, client *routerapi.Client, iface configgen.Interface) error {
	existing, err := client.List(ctx, routerapi.FamilyWireguardInterface, iface.Comment)
	if err != nil {
		return err
	}
	resource, err := toResource(iface)
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		_, err := client.Add(ctx, routerapi.FamilyWireguardInterface, resource)
		return err
	}
	_, err = client.Update(ctx, routerapi.FamilyWireguardInterface, existing[0].ID(), resource)
	return err
}

// replaceManaged deletes every resource of family whose comment starts
// with the ownership prefix, then adds the desired set. Foreign
// resources are never touched.
func replaceManaged(ctx context.Context, client *routerapi.Client, family string, desired []routerapi.Resource) error {
	current, err := client.List(ctx, family, configgen.OwnershipPrefix)
	if err != nil {
		return err
	}
	for _, r := range current {
		if !isManagedComment(r.Comment()) {
			continue
		}
		if err := client.Delete(ctx, family, r.ID()); err != nil {
			return err
		}
	}
	for _, r := range desired {
		if _, err := client.Add(ctx, family, r); err != nil {
			return err
		}
	}
	return nil
}

func isManagedComment(comment string) bool {
	return strings.HasPrefix(comment, configgen.OwnershipPrefix)
}

func interfaceRunning(ifaces []routerapi.Resource, comment string) bool {
	for _, r := range ifaces {
		if r.Comment() != comment {
			continue
		}
		running, _ := r["running"].(bool)
		return running
	}
	return false
}
