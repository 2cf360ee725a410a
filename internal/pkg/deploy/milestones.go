package deploy

// Milestone percentages for an apply job, in step order. Progress is
// reported monotonically: a worker only ever writes a milestone >= the
// job's current progress_percent.
const (
	MilestoneAccepted           = 5
	MilestoneConnectionVerified = 10
	MilestoneDesiredComputed    = 15
	MilestoneBackupCaptured     = 20
	MilestoneInterfacePresent   = 30
	MilestonePeersReplaced      = 50
	MilestoneAddressesReplaced  = 60
	MilestoneRoutesReplaced     = 70
	MilestoneFirewallReplaced   = 80
	MilestoneNATReplaced        = 90
	MilestoneVerificationRead   = 100
)

// orderedMilestones lists every milestone in step order, used to assert
// monotonic progress in tests and to drive cancellation checkpoints.
var orderedMilestones = []int{
	MilestoneAccepted,
	MilestoneConnectionVerified,
	MilestoneDesiredComputed,
	MilestoneBackupCaptured,
	MilestoneInterfacePresent,
	MilestonePeersReplaced,
	MilestoneAddressesReplaced,
	MilestoneRoutesReplaced,
	MilestoneFirewallReplaced,
	MilestoneNATReplaced,
	MilestoneVerificationRead,
}
