package options

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// DeployOptions configures the Deployment Engine's worker pool and the
// approval gate in front of StartApply.
type DeployOptions struct {
	// MaxConcurrentDeployments bounds the Engine's background worker pool.
	MaxConcurrentDeployments int `json:"max-concurrent-deployments" mapstructure:"max-concurrent-deployments"`

	// DeploymentTimeout bounds a single apply/revert job; past this, the
	// job fails rather than being treated as cancelled.
	DeploymentTimeout time.Duration `json:"deployment-timeout" mapstructure:"deployment-timeout"`

	// RequireApproval, when true, makes StartApply refuse to create a job
	// unless the caller passes approve=true.
	RequireApproval bool `json:"require-approval" mapstructure:"require-approval"`

	// BackupDir is where the engine writes a local copy of every generated
	// MikroTik script before it applies, keyed by peer ID, so an operator
	// can recover the exact pushed script even if the DB's backup_config
	// column is unavailable. Empty disables local script backups.
	BackupDir string `json:"backup-dir" mapstructure:"backup-dir"`
}

func NewDeployOptions() *DeployOptions {
	return &DeployOptions{
		MaxConcurrentDeployments: 4,
		DeploymentTimeout:        2 * time.Minute,
		RequireApproval:          true,
		BackupDir:                "data/backups",
	}
}

func (d *DeployOptions) Validate() []error {
	var errs []error
	if d.MaxConcurrentDeployments <= 0 {
		errs = append(errs, fmt.Errorf("deploy.max-concurrent-deployments must be greater than 0"))
	}
	if d.DeploymentTimeout <= 0 {
		errs = append(errs, fmt.Errorf("deploy.deployment-timeout must be greater than 0"))
	}
	return errs
}

func (d *DeployOptions) AddFlags(fs *pflag.FlagSet) {
	fs.IntVar(&d.MaxConcurrentDeployments, "deploy.max-concurrent-deployments", d.MaxConcurrentDeployments, "Number of deployment jobs the engine will run concurrently")
	fs.DurationVar(&d.DeploymentTimeout, "deploy.deployment-timeout", d.DeploymentTimeout, "Per-job timeout for apply/revert operations, e.g. 2m")
	fs.BoolVar(&d.RequireApproval, "deploy.require-approval", d.RequireApproval, "Require explicit approval before StartApply writes to a router")
	fs.StringVar(&d.BackupDir, "deploy.backup-dir", d.BackupDir, "Directory for local per-peer script backups written before apply; empty disables")
}
