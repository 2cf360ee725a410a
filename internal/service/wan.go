package service

import (
	"context"
	"net/netip"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/conflict"
	"github.com/wanoverlay/manager/internal/pkg/ipalloc"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/utils/snowflake"
)

// PoolInfo is the occupancy snapshot of a WAN's two address pools, per
// spec §4.2.
type PoolInfo struct {
	TunnelRange         ipalloc.Snapshot
	SharedServicesRange ipalloc.Snapshot
}

// WANSrv manages overlay networks.
type WANSrv interface {
	CreateWAN(ctx context.Context, wan *model.WAN) error
	GetWAN(ctx context.Context, id string) (*model.WAN, error)
	UpdateWAN(ctx context.Context, wan *model.WAN) error
	DeleteWAN(ctx context.Context, id string) error
	ListWANs(ctx context.Context, opt store.WANListOptions) ([]*model.WAN, int64, error)

	// PoolInfo reports occupancy of a WAN's tunnel and shared-services
	// address pools.
	PoolInfo(ctx context.Context, id string) (PoolInfo, error)

	// Conflicts aggregates the subnet conflicts of every peer on the
	// WAN, mirroring get_all_conflicts in the original implementation.
	Conflicts(ctx context.Context, id string) ([]conflict.SubnetConflict, error)

	// Topology returns the WAN's topology type and every peer's role
	// within it, for rendering an overlay diagram.
	Topology(ctx context.Context, id string) (*model.WAN, []*model.Peer, error)
}

type wanSrv struct {
	store store.Factory
}

var _ WANSrv = (*wanSrv)(nil)

func newWANs(s *service) *wanSrv {
	return &wanSrv{store: s.store}
}

func (w *wanSrv) CreateWAN(ctx context.Context, wan *model.WAN) error {
	if wan.TopologyType == "" {
		wan.TopologyType = model.TopologyHubSpoke
	}
	id, err := snowflake.GenerateID()
	if err != nil {
		return err
	}
	wan.ID = id
	return w.store.WANs().Create(ctx, wan)
}

func (w *wanSrv) GetWAN(ctx context.Context, id string) (*model.WAN, error) {
	return w.store.WANs().Get(ctx, id)
}

func (w *wanSrv) UpdateWAN(ctx context.Context, wan *model.WAN) error {
	return w.store.WANs().Update(ctx, wan)
}

func (w *wanSrv) DeleteWAN(ctx context.Context, id string) error {
	return w.store.WANs().Delete(ctx, id)
}

func (w *wanSrv) ListWANs(ctx context.Context, opt store.WANListOptions) ([]*model.WAN, int64, error) {
	return w.store.WANs().List(ctx, opt)
}

func (w *wanSrv) PoolInfo(ctx context.Context, id string) (PoolInfo, error) {
	wan, err := w.store.WANs().Get(ctx, id)
	if err != nil {
		return PoolInfo{}, err
	}
	peers, err := w.store.Peers().ListByWAN(ctx, id)
	if err != nil {
		return PoolInfo{}, err
	}
	services, err := w.store.Services().ListByWAN(ctx, id)
	if err != nil {
		return PoolInfo{}, err
	}

	tunnelPrefix, err := netip.ParsePrefix(wan.TunnelIPRange)
	if err != nil {
		return PoolInfo{}, errors.WithCode(code.ErrValidation, "wan tunnel_ip_range is invalid: %v", err)
	}
	sharedPrefix, err := netip.ParsePrefix(wan.SharedServicesRange)
	if err != nil {
		return PoolInfo{}, errors.WithCode(code.ErrValidation, "wan shared_services_range is invalid: %v", err)
	}

	tunnelAlloc := ipalloc.NewAllocator(tunnelPrefix, ipalloc.CollectUsedTunnelIPs(peers))
	sharedAlloc := ipalloc.NewAllocator(sharedPrefix, ipalloc.CollectUsedSharedIPs(services))

	return PoolInfo{
		TunnelRange:         tunnelAlloc.Snapshot(),
		SharedServicesRange: sharedAlloc.Snapshot(),
	}, nil
}

// Conflicts aggregates, for every peer on the WAN, the conflicts its own
// advertised subnets produce against the WAN's ranges and its siblings'
// subnets. Mirrors conflict_detection.py's get_all_conflicts.
func (w *wanSrv) Conflicts(ctx context.Context, id string) ([]conflict.SubnetConflict, error) {
	wan, err := w.store.WANs().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	peers, err := w.store.Peers().ListByWAN(ctx, id)
	if err != nil {
		return nil, err
	}

	var all []conflict.SubnetConflict
	for _, peer := range peers {
		ownSubnets, err := w.store.Subnets().ListByPeer(ctx, peer.ID)
		if err != nil {
			return nil, err
		}
		if len(ownSubnets) == 0 {
			continue
		}
		candidates := make([]string, len(ownSubnets))
		for i, s := range ownSubnets {
			candidates[i] = s.CIDR
		}

		siblingSubnets, err := w.store.Subnets().ListSiblings(ctx, id, peer.ID)
		if err != nil {
			return nil, err
		}
		named := make([]conflict.Named, 0, len(siblingSubnets))
		for _, sub := range siblingSubnets {
			named = append(named, conflict.Named{Label: peer.Name, CIDR: sub.CIDR})
		}

		all = append(all, conflict.DetectConflicts(candidates, wan.TunnelIPRange, wan.SharedServicesRange, named, nil)...)
	}

	return all, nil
}

func (w *wanSrv) Topology(ctx context.Context, id string) (*model.WAN, []*model.Peer, error) {
	wan, err := w.store.WANs().Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	peers, err := w.store.Peers().ListByWAN(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return wan, peers, nil
}
