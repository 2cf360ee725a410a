package store

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// ConfigurationHistoryStore defines storage operations for generated
// configuration snapshots.
type ConfigurationHistoryStore interface {
	Create(ctx context.Context, entry *model.ConfigurationHistory) error
	Get(ctx context.Context, id string) (*model.ConfigurationHistory, error)
	// MarkApplied stamps an entry's AppliedAt once its configuration is
	// confirmed pushed to the peer.
	MarkApplied(ctx context.Context, id string) error
	List(ctx context.Context, opt ConfigurationHistoryListOptions) ([]*model.ConfigurationHistory, int64, error)
}

// ConfigurationHistoryListOptions defines list filters and pagination.
type ConfigurationHistoryListOptions struct {
	PeerID     string
	ConfigType string

	Offset int
	Limit  int
}
