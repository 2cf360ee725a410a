package service

import (
	"context"
	"net"
	"strconv"
	"time"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/core/ip"
	"github.com/wanoverlay/manager/internal/pkg/deploy"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
	"github.com/wanoverlay/manager/internal/pkg/wgkey"
	"github.com/wanoverlay/manager/internal/store"
	"github.com/wanoverlay/manager/pkg/utils/network"
	"github.com/wanoverlay/manager/pkg/utils/snowflake"
)

// CreatePeerParams carries everything PeerSrv.CreatePeer needs to
// materialize a peer, including plaintext credentials that are encrypted
// before they ever reach the store.
type CreatePeerParams struct {
	Peer       *model.Peer
	Password   string
	Token      string
	PreferTIP  string // preferred tunnel_ip, empty to auto-allocate
}

// PeerSrv manages overlay peers: identity, keys, credentials, and the
// deployment/configuration operations that act on them.
type PeerSrv interface {
	CreatePeer(ctx context.Context, params CreatePeerParams) (*model.Peer, error)
	GetPeer(ctx context.Context, id string) (*model.Peer, error)
	UpdatePeer(ctx context.Context, peer *model.Peer, password, token *string) error
	DeletePeer(ctx context.Context, id string) error
	ListPeers(ctx context.Context, opt store.PeerListOptions) ([]*model.Peer, int64, error)

	// GetConfig renders a peer's configuration in the requested format
	// and records it in the configuration history.
	GetConfig(ctx context.Context, id, configType string) (string, error)

	// RegenerateKeys rotates a peer's WireGuard keypair in place and
	// flags every sibling peer on the WAN for a config refresh.
	RegenerateKeys(ctx context.Context, id string) (string, error)

	// StartDeploy enqueues (or previews, when approve is false) an apply
	// against a managed peer.
	StartDeploy(ctx context.Context, id string, approve bool) (*model.DeploymentJob, *deploy.PlanResult, error)
	Plan(ctx context.Context, id string) (deploy.PlanResult, error)
	Preflight(ctx context.Context, id string) (deploy.PreflightResult, error)
	StartRevert(ctx context.Context, id string) (*model.DeploymentJob, error)
	ClearManaged(ctx context.Context, id string) error

	// Verify reports drift between the router's current state and the
	// freshly computed desired state, without writing anything.
	Verify(ctx context.Context, id string) (deploy.VerifyResult, error)

	// TestConnection reaches the peer's router API and records its
	// observed identity, RouterOS version, and reachability.
	TestConnection(ctx context.Context, id string) (routerapi.Identity, error)
}

type peerSrv struct {
	store     store.Factory
	allocator *ip.Allocator
}

var _ PeerSrv = (*peerSrv)(nil)

func newPeers(s *service) *peerSrv {
	return &peerSrv{store: s.store, allocator: ip.NewAllocator(s.store)}
}

func (p *peerSrv) CreatePeer(ctx context.Context, params CreatePeerParams) (*model.Peer, error) {
	peer := params.Peer

	wan, err := p.store.WANs().Get(ctx, peer.WANID)
	if err != nil {
		return nil, err
	}

	tunnelIP, err := p.allocator.AllocateTunnelIP(ctx, wan.ID, wan.TunnelIPRange, params.PreferTIP)
	if err != nil {
		return nil, err
	}
	peer.TunnelIP = tunnelIP

	if peer.Endpoint == "" && (peer.Type == model.PeerTypeHub || peer.Type == model.PeerTypeServer) {
		listenPort := peer.ListenPort
		if listenPort == 0 {
			listenPort = 51820
		}
		if publicIP, detErr := network.DetectPublicIP(ctx); detErr == nil && publicIP != "" {
			peer.Endpoint = net.JoinHostPort(publicIP, strconv.Itoa(listenPort))
		}
	}

	privateKey, publicKey, err := wgkey.GenerateKeyPair()
	if err != nil {
		return nil, errors.WithCode(code.ErrWGKeyGenerationFailed, "%s", err.Error())
	}
	peer.PublicKey = publicKey
	encryptedPrivate, err := Envelope.Encrypt(privateKey)
	if err != nil {
		return nil, errors.WithCode(code.ErrSecretDecryptFailed, "encrypt peer private key: %s", err.Error())
	}
	peer.PrivateKeyEncrypted = encryptedPrivate

	if peer.IsManaged() {
		if params.Password != "" {
			enc, err := Envelope.Encrypt(params.Password)
			if err != nil {
				return nil, err
			}
			peer.PasswordEncrypted = enc
		}
		if params.Token != "" {
			enc, err := Envelope.Encrypt(params.Token)
			if err != nil {
				return nil, err
			}
			peer.TokenEncrypted = enc
		}
		if peer.AuthMethod == model.PeerAuthMethodToken && params.Token == "" {
			return nil, errors.WithCode(code.ErrPeerCredentialMissing, "managed peer with auth_method=token requires a token")
		}
		if peer.AuthMethod == model.PeerAuthMethodPassword && params.Password == "" {
			return nil, errors.WithCode(code.ErrPeerCredentialMissing, "managed peer with auth_method=password requires a password")
		}
	}

	id, err := snowflake.GenerateID()
	if err != nil {
		return nil, err
	}
	peer.ID = id
	peer.APIStatus = model.PeerAPIStatusUnknown

	if err := p.store.Peers().Create(ctx, peer); err != nil {
		return nil, err
	}

	p.flagSiblingsForRefresh(ctx, wan.ID, peer.ID)

	if peer.IsManaged() && peer.AutoDeploy && Engine != nil {
		if _, _, err := Engine.StartApply(ctx, peer.ID, true); err != nil {
			// Auto-deploy is best-effort: the peer still exists and can be
			// deployed explicitly later.
			return peer, nil
		}
	}

	return peer, nil
}

func (p *peerSrv) GetPeer(ctx context.Context, id string) (*model.Peer, error) {
	return p.store.Peers().Get(ctx, id)
}

func (p *peerSrv) UpdatePeer(ctx context.Context, peer *model.Peer, password, token *string) error {
	if password != nil && *password != "" {
		enc, err := Envelope.Encrypt(*password)
		if err != nil {
			return err
		}
		peer.PasswordEncrypted = enc
	}
	if token != nil && *token != "" {
		enc, err := Envelope.Encrypt(*token)
		if err != nil {
			return err
		}
		peer.TokenEncrypted = enc
	}
	peer.Metadata.NeedsConfigRefresh = true
	return p.store.Peers().Update(ctx, peer)
}

func (p *peerSrv) DeletePeer(ctx context.Context, id string) error {
	peer, err := p.store.Peers().Get(ctx, id)
	if err != nil {
		return err
	}
	if err := p.store.Peers().Delete(ctx, id); err != nil {
		return err
	}
	p.flagSiblingsForRefresh(ctx, peer.WANID, id)
	return nil
}

func (p *peerSrv) ListPeers(ctx context.Context, opt store.PeerListOptions) ([]*model.Peer, int64, error) {
	return p.store.Peers().List(ctx, opt)
}

// flagSiblingsForRefresh marks every other peer on the WAN as needing a
// config refresh — their AllowedIPs/peer tables depend on every other
// peer's published state.
func (p *peerSrv) flagSiblingsForRefresh(ctx context.Context, wanID, excludePeerID string) {
	siblings, err := p.store.Peers().ListByWAN(ctx, wanID)
	if err != nil {
		return
	}
	for _, sibling := range siblings {
		if sibling.ID == excludePeerID || sibling.Metadata.NeedsConfigRefresh {
			continue
		}
		sibling.Metadata.NeedsConfigRefresh = true
		_ = p.store.Peers().Update(ctx, sibling)
	}
}

func (p *peerSrv) buildOverlayView(ctx context.Context, peerID string) (configgen.OverlayView, error) {
	peer, err := p.store.Peers().Get(ctx, peerID)
	if err != nil {
		return configgen.OverlayView{}, err
	}
	wan, err := p.store.WANs().Get(ctx, peer.WANID)
	if err != nil {
		return configgen.OverlayView{}, err
	}
	privateKey, err := Envelope.Decrypt(peer.PrivateKeyEncrypted)
	if err != nil {
		return configgen.OverlayView{}, errors.WithCode(code.ErrPeerSecretUnreadable, "decrypt peer private key: %v", err)
	}
	target, err := p.peerView(ctx, peer)
	if err != nil {
		return configgen.OverlayView{}, err
	}
	siblings, err := p.store.Peers().ListByWAN(ctx, wan.ID)
	if err != nil {
		return configgen.OverlayView{}, err
	}
	others := make([]configgen.PeerView, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == peer.ID {
			continue
		}
		view, err := p.peerView(ctx, sibling)
		if err != nil {
			return configgen.OverlayView{}, err
		}
		others = append(others, view)
	}
	return configgen.OverlayView{WAN: wan, PrivateKey: privateKey, Target: target, Others: others}, nil
}

func (p *peerSrv) peerView(ctx context.Context, peer *model.Peer) (configgen.PeerView, error) {
	subnets, err := p.store.Subnets().ListByPeer(ctx, peer.ID)
	if err != nil {
		return configgen.PeerView{}, err
	}
	services, err := p.store.Services().ListByPeer(ctx, peer.ID)
	if err != nil {
		return configgen.PeerView{}, err
	}
	return configgen.PeerView{Peer: peer, Subnets: subnets, Services: services}, nil
}

func (p *peerSrv) GetConfig(ctx context.Context, id, configType string) (string, error) {
	view, err := p.buildOverlayView(ctx, id)
	if err != nil {
		return "", err
	}

	var text string
	switch configType {
	case model.ConfigTypeWireGuard, "":
		configType = model.ConfigTypeWireGuard
		text, err = configgen.GenerateWireGuardConfig(view)
	case model.ConfigTypeMikrotikScript, model.ConfigTypeMikrotikAPI:
		text = configgen.GenerateScript(configgen.GenerateDesiredState(view))
	default:
		return "", errors.WithCode(code.ErrUnsupportedConfigType, "config_type %q is not supported", configType)
	}
	if err != nil {
		return "", errors.WithCode(code.ErrConfigGenerationFailed, "%s", err.Error())
	}

	historyID, idErr := snowflake.GenerateID()
	if idErr == nil {
		_ = p.store.ConfigHistory().Create(ctx, &model.ConfigurationHistory{
			ID:          historyID,
			PeerID:      id,
			ConfigType:  configType,
			ConfigText:  text,
			GeneratedAt: time.Now(),
		})
	}

	if peer, err := p.store.Peers().Get(ctx, id); err == nil && peer.Metadata.NeedsConfigRefresh {
		peer.Metadata.NeedsConfigRefresh = false
		_ = p.store.Peers().Update(ctx, peer)
	}

	return text, nil
}

func (p *peerSrv) RegenerateKeys(ctx context.Context, id string) (string, error) {
	peer, err := p.store.Peers().Get(ctx, id)
	if err != nil {
		return "", err
	}
	privateKey, publicKey, err := wgkey.GenerateKeyPair()
	if err != nil {
		return "", errors.WithCode(code.ErrWGKeyGenerationFailed, "%s", err.Error())
	}
	encrypted, err := Envelope.Encrypt(privateKey)
	if err != nil {
		return "", err
	}
	peer.PrivateKeyEncrypted = encrypted
	peer.PublicKey = publicKey
	peer.Metadata.NeedsConfigRefresh = true
	if err := p.store.Peers().Update(ctx, peer); err != nil {
		return "", err
	}
	p.flagSiblingsForRefresh(ctx, peer.WANID, peer.ID)
	return publicKey, nil
}

func (p *peerSrv) StartDeploy(ctx context.Context, id string, approve bool) (*model.DeploymentJob, *deploy.PlanResult, error) {
	return Engine.StartApply(ctx, id, approve)
}

func (p *peerSrv) Plan(ctx context.Context, id string) (deploy.PlanResult, error) {
	return Engine.Plan(ctx, id)
}

func (p *peerSrv) Preflight(ctx context.Context, id string) (deploy.PreflightResult, error) {
	return Engine.Preflight(ctx, id)
}

func (p *peerSrv) StartRevert(ctx context.Context, id string) (*model.DeploymentJob, error) {
	return Engine.StartRevert(ctx, id)
}

func (p *peerSrv) ClearManaged(ctx context.Context, id string) error {
	return Engine.Clear(ctx, id)
}

func (p *peerSrv) Verify(ctx context.Context, id string) (deploy.VerifyResult, error) {
	return Engine.Verify(ctx, id)
}

func (p *peerSrv) TestConnection(ctx context.Context, id string) (routerapi.Identity, error) {
	return Engine.TestConnection(ctx, id)
}
