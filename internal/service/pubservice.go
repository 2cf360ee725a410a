package service

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/core/ip"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/utils/snowflake"
)

// PublishedServiceSrv manages shared-address publication of peers' local
// services into the overlay.
type PublishedServiceSrv interface {
	CreateService(ctx context.Context, svc *model.PublishedService, preferredSharedIP string, autoDeploy bool) error
	GetService(ctx context.Context, id string) (*model.PublishedService, error)
	UpdateService(ctx context.Context, svc *model.PublishedService) error
	DeleteService(ctx context.Context, id string) error
	ListServices(ctx context.Context, opt store.PublishedServiceListOptions) ([]*model.PublishedService, int64, error)
}

type publishedServiceSrv struct {
	store     store.Factory
	allocator *ip.Allocator
}

var _ PublishedServiceSrv = (*publishedServiceSrv)(nil)

func newPublishedServices(s *service) *publishedServiceSrv {
	return &publishedServiceSrv{store: s.store, allocator: ip.NewAllocator(s.store)}
}

func (p *publishedServiceSrv) CreateService(ctx context.Context, svc *model.PublishedService, preferredSharedIP string, autoDeploy bool) error {
	peer, err := p.store.Peers().Get(ctx, svc.PeerID)
	if err != nil {
		return err
	}
	wan, err := p.store.WANs().Get(ctx, peer.WANID)
	if err != nil {
		return err
	}

	sharedIP, err := p.allocator.AllocateSharedIP(ctx, wan.ID, wan.SharedServicesRange, preferredSharedIP)
	if err != nil {
		return err
	}
	svc.SharedIP = sharedIP

	id, err := snowflake.GenerateID()
	if err != nil {
		return err
	}
	svc.ID = id
	svc.IsActive = true

	if err := p.store.Services().Create(ctx, svc); err != nil {
		return err
	}

	p.publishDNS(ctx, svc, wan)
	p.flagSiblingsForRefresh(ctx, wan.ID, peer.ID)
	if autoDeploy {
		p.maybeAutoDeploy(ctx, wan.ID)
	}

	return nil
}

func (p *publishedServiceSrv) GetService(ctx context.Context, id string) (*model.PublishedService, error) {
	return p.store.Services().Get(ctx, id)
}

func (p *publishedServiceSrv) UpdateService(ctx context.Context, svc *model.PublishedService) error {
	if err := p.store.Services().Update(ctx, svc); err != nil {
		return err
	}
	if peer, err := p.store.Peers().Get(ctx, svc.PeerID); err == nil {
		if wan, err := p.store.WANs().Get(ctx, peer.WANID); err == nil {
			p.publishDNS(ctx, svc, wan)
			p.flagSiblingsForRefresh(ctx, wan.ID, peer.ID)
		}
	}
	return nil
}

func (p *publishedServiceSrv) DeleteService(ctx context.Context, id string) error {
	svc, err := p.store.Services().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := p.store.Services().Delete(ctx, id); err != nil {
		return err
	}
	if peer, err := p.store.Peers().Get(ctx, svc.PeerID); err == nil {
		if wan, err := p.store.WANs().Get(ctx, peer.WANID); err == nil {
			hostname := DNS.BuildHostname(svc.Name, svc.ID, wan.Name)
			DNS.DeleteRecord(ctx, hostname, svc.SharedIP)
			p.flagSiblingsForRefresh(ctx, wan.ID, peer.ID)
		}
	}
	return nil
}

func (p *publishedServiceSrv) ListServices(ctx context.Context, opt store.PublishedServiceListOptions) ([]*model.PublishedService, int64, error) {
	return p.store.Services().List(ctx, opt)
}

func (p *publishedServiceSrv) publishDNS(ctx context.Context, svc *model.PublishedService, wan *model.WAN) {
	if !svc.IsActive {
		return
	}
	hostname := DNS.BuildHostname(svc.Name, svc.ID, wan.Name)
	DNS.AddRecord(ctx, hostname, svc.SharedIP)
}

// flagSiblingsForRefresh marks every peer on the WAN (including the
// owning peer, whose own Address= also changes) as needing a config
// refresh, except peers that will already get the new state pushed via
// an auto-deploy apply. Mirrors services.py's
// (Peer.type != MIKROTIK) | (auto_deploy is False) selection.
func (p *publishedServiceSrv) flagSiblingsForRefresh(ctx context.Context, wanID, ownerPeerID string) {
	siblings, err := p.store.Peers().ListByWAN(ctx, wanID)
	if err != nil {
		return
	}
	for _, sibling := range siblings {
		if sibling.Metadata.NeedsConfigRefresh {
			continue
		}
		if sibling.IsManaged() && sibling.AutoDeploy {
			continue
		}
		sibling.Metadata.NeedsConfigRefresh = true
		_ = p.store.Peers().Update(ctx, sibling)
	}
}

// maybeAutoDeploy re-applies every managed, auto-deploy-enabled peer on
// the WAN so a newly published service reaches them without an explicit
// deploy call.
func (p *publishedServiceSrv) maybeAutoDeploy(ctx context.Context, wanID string) {
	if Engine == nil {
		return
	}
	peers, err := p.store.Peers().ListByWAN(ctx, wanID)
	if err != nil {
		return
	}
	for _, peer := range peers {
		if !peer.IsManaged() || !peer.AutoDeploy {
			continue
		}
		_, _, _ = Engine.StartApply(ctx, peer.ID, true)
	}
}
