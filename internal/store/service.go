package store

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// PublishedServiceStore defines storage operations for published services.
type PublishedServiceStore interface {
	Create(ctx context.Context, svc *model.PublishedService) error
	Get(ctx context.Context, id string) (*model.PublishedService, error)
	Update(ctx context.Context, svc *model.PublishedService) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opt PublishedServiceListOptions) ([]*model.PublishedService, int64, error)
	// ListByPeer returns every service published on a peer, unpaginated.
	ListByPeer(ctx context.Context, peerID string) ([]*model.PublishedService, error)
	// ListByWAN returns every active service on a WAN, unpaginated — used
	// to collect used shared-service IPs/ports during allocation.
	ListByWAN(ctx context.Context, wanID string) ([]*model.PublishedService, error)
}

// PublishedServiceListOptions defines list filters and pagination for services.
type PublishedServiceListOptions struct {
	PeerID   string
	Protocol string
	IsActive *bool

	Offset int
	Limit  int
}
