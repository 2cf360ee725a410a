package service

import (
	"github.com/wanoverlay/manager/internal/pkg/deploy"
	"github.com/wanoverlay/manager/internal/pkg/dnspublish"
	"github.com/wanoverlay/manager/internal/pkg/secret"
	"github.com/wanoverlay/manager/internal/store"
)

// Engine, Envelope and DNS are the shared, process-wide dependencies the
// peer/service layers need beyond the store itself. They are set once
// via Init, after router.Init() has built them from config — the same
// deferred-wiring pattern router.go uses for StoreIns.
var (
	Engine   *deploy.Engine
	Envelope *secret.Envelope
	DNS      *dnspublish.Client
)

// Init wires the shared deployment engine, secret envelope and DNS
// side-channel client into the service layer. Must run before any
// PeerSrv/PublishedServiceSrv method that touches credentials,
// deployment, or DNS publishing.
func Init(engine *deploy.Engine, envelope *secret.Envelope, dns *dnspublish.Client) {
	Engine = engine
	Envelope = envelope
	DNS = dns
}

type Service interface {
	Users() UserSrv
	Auth() AuthSrv
	WANs() WANSrv
	Peers() PeerSrv
	Subnets() SubnetSrv
	Services() PublishedServiceSrv
	Jobs() JobSrv
}

type service struct {
	store store.Factory
}

func NewService(store store.Factory) Service {
	return &service{store: store}
}

func (s *service) Users() UserSrv {
	return newUsers(s)
}

func (s *service) Auth() AuthSrv {
	return newAuth(s)
}

func (s *service) WANs() WANSrv {
	return newWANs(s)
}

func (s *service) Peers() PeerSrv {
	return newPeers(s)
}

func (s *service) Subnets() SubnetSrv {
	return newSubnets(s)
}

func (s *service) Services() PublishedServiceSrv {
	return newPublishedServices(s)
}

func (s *service) Jobs() JobSrv {
	return newJobs(s)
}
