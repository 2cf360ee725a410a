package service

import (
	"context"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/conflict"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/utils/snowflake"
)

// SubnetSrv manages local subnets advertised by peers into the overlay.
type SubnetSrv interface {
	CreateSubnet(ctx context.Context, subnet *model.LocalSubnet) error
	GetSubnet(ctx context.Context, id string) (*model.LocalSubnet, error)
	UpdateSubnet(ctx context.Context, subnet *model.LocalSubnet) error
	DeleteSubnet(ctx context.Context, id string) error
	ListSubnets(ctx context.Context, opt store.LocalSubnetListOptions) ([]*model.LocalSubnet, int64, error)

	// CheckConflicts previews the conflicts a candidate CIDR would
	// produce against the WAN and its peers' subnets, without persisting
	// anything.
	CheckConflicts(ctx context.Context, peerID, cidr string) ([]conflict.SubnetConflict, error)
}

type subnetSrv struct {
	store store.Factory
}

var _ SubnetSrv = (*subnetSrv)(nil)

func newSubnets(s *service) *subnetSrv {
	return &subnetSrv{store: s.store}
}

func (s *subnetSrv) CreateSubnet(ctx context.Context, subnet *model.LocalSubnet) error {
	conflicts, err := s.CheckConflicts(ctx, subnet.PeerID, subnet.CIDR)
	if err != nil {
		return err
	}
	if conflict.HasCritical(conflicts) {
		return errors.WithCode(code.ErrSubnetConflictCritical, "subnet %s conflicts with the WAN's own address ranges", subnet.CIDR)
	}

	id, err := snowflake.GenerateID()
	if err != nil {
		return err
	}
	subnet.ID = id

	if err := s.store.Subnets().Create(ctx, subnet); err != nil {
		return err
	}

	s.flagPeerAndSiblings(ctx, subnet.PeerID)
	return nil
}

func (s *subnetSrv) GetSubnet(ctx context.Context, id string) (*model.LocalSubnet, error) {
	return s.store.Subnets().Get(ctx, id)
}

func (s *subnetSrv) UpdateSubnet(ctx context.Context, subnet *model.LocalSubnet) error {
	if err := s.store.Subnets().Update(ctx, subnet); err != nil {
		return err
	}
	s.flagPeerAndSiblings(ctx, subnet.PeerID)
	return nil
}

func (s *subnetSrv) DeleteSubnet(ctx context.Context, id string) error {
	subnet, err := s.store.Subnets().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Subnets().Delete(ctx, id); err != nil {
		return err
	}
	s.flagPeerAndSiblings(ctx, subnet.PeerID)
	return nil
}

func (s *subnetSrv) ListSubnets(ctx context.Context, opt store.LocalSubnetListOptions) ([]*model.LocalSubnet, int64, error) {
	return s.store.Subnets().List(ctx, opt)
}

func (s *subnetSrv) CheckConflicts(ctx context.Context, peerID, cidr string) ([]conflict.SubnetConflict, error) {
	peer, err := s.store.Peers().Get(ctx, peerID)
	if err != nil {
		return nil, err
	}
	wan, err := s.store.WANs().Get(ctx, peer.WANID)
	if err != nil {
		return nil, err
	}

	siblingSubnets, err := s.store.Subnets().ListSiblings(ctx, wan.ID, peerID)
	if err != nil {
		return nil, err
	}
	siblingPeers, err := s.store.Peers().ListByWAN(ctx, wan.ID)
	if err != nil {
		return nil, err
	}
	peerNames := make(map[string]string, len(siblingPeers))
	for _, sp := range siblingPeers {
		peerNames[sp.ID] = sp.Name
	}

	named := make([]conflict.Named, 0, len(siblingSubnets))
	for _, sub := range siblingSubnets {
		label := peerNames[sub.PeerID]
		if label == "" {
			label = sub.PeerID
		}
		named = append(named, conflict.Named{Label: label, CIDR: sub.CIDR})
	}

	return conflict.DetectConflicts([]string{cidr}, wan.TunnelIPRange, wan.SharedServicesRange, named, nil), nil
}

// flagPeerAndSiblings marks the owning peer and every other peer on its
// WAN as needing a config refresh — advertised subnets change every
// peer's AllowedIPs/route table.
func (s *subnetSrv) flagPeerAndSiblings(ctx context.Context, peerID string) {
	peer, err := s.store.Peers().Get(ctx, peerID)
	if err != nil {
		return
	}
	if !peer.Metadata.NeedsConfigRefresh {
		peer.Metadata.NeedsConfigRefresh = true
		_ = s.store.Peers().Update(ctx, peer)
	}
	siblings, err := s.store.Peers().ListByWAN(ctx, peer.WANID)
	if err != nil {
		return
	}
	for _, sibling := range siblings {
		if sibling.ID == peerID || sibling.Metadata.NeedsConfigRefresh {
			continue
		}
		sibling.Metadata.NeedsConfigRefresh = true
		_ = s.store.Peers().Update(ctx, sibling)
	}
}
