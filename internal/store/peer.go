package store

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// PeerStore defines storage operations for overlay peers.
type PeerStore interface {
	Create(ctx context.Context, peer *model.Peer) error
	Get(ctx context.Context, id string) (*model.Peer, error)
	Update(ctx context.Context, peer *model.Peer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opt PeerListOptions) ([]*model.Peer, int64, error)
	// ListByWAN returns every peer on a WAN, unpaginated — used by the
	// config generator and deployment engine to build OverlayView.Others.
	ListByWAN(ctx context.Context, wanID string) ([]*model.Peer, error)
}

// PeerListOptions defines list filters and pagination for peers.
type PeerListOptions struct {
	WANID     string
	Type      string
	APIStatus string
	IsOnline  *bool

	Offset int
	Limit  int
}
