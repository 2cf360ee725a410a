package store

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// LocalSubnetStore defines storage operations for locally-advertised subnets.
type LocalSubnetStore interface {
	Create(ctx context.Context, subnet *model.LocalSubnet) error
	Get(ctx context.Context, id string) (*model.LocalSubnet, error)
	Update(ctx context.Context, subnet *model.LocalSubnet) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opt LocalSubnetListOptions) ([]*model.LocalSubnet, int64, error)
	// ListByPeer returns every subnet a peer advertises, unpaginated.
	ListByPeer(ctx context.Context, peerID string) ([]*model.LocalSubnet, error)
	// ListSiblings returns every subnet advertised by peers other than
	// excludePeerID on the given WAN — used by the conflict detector.
	ListSiblings(ctx context.Context, wanID, excludePeerID string) ([]*model.LocalSubnet, error)
}

// LocalSubnetListOptions defines list filters and pagination for subnets.
type LocalSubnetListOptions struct {
	PeerID     string
	IsRouted   *bool
	NATEnabled *bool

	Offset int
	Limit  int
}
