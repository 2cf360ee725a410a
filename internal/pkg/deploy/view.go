package deploy

import (
	"context"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/model"
)

// buildOverlayView loads a peer, its WAN, every sibling peer on the WAN
// (each with its own subnets/services), and decrypts the target peer's
// private key, assembling the configgen.OverlayView the generator needs.
func (e *Engine) buildOverlayView(ctx context.Context, peerID string) (configgen.OverlayView, error) {
	peer, err := e.store.Peers().Get(ctx, peerID)
	if err != nil {
		return configgen.OverlayView{}, err
	}
	wan, err := e.store.WANs().Get(ctx, peer.WANID)
	if err != nil {
		return configgen.OverlayView{}, err
	}

	privateKey, err := e.envelope.Decrypt(peer.PrivateKeyEncrypted)
	if err != nil {
		return configgen.OverlayView{}, errors.WithCode(code.ErrPeerSecretUnreadable, "decrypt peer private key: %v", err)
	}

	target, err := e.peerView(ctx, peer)
	if err != nil {
		return configgen.OverlayView{}, err
	}

	siblings, err := e.store.Peers().ListByWAN(ctx, wan.ID)
	if err != nil {
		return configgen.OverlayView{}, err
	}
	others := make([]configgen.PeerView, 0, len(siblings))
	for _, sibling := range siblings {
		if sibling.ID == peer.ID {
			continue
		}
		view, err := e.peerView(ctx, sibling)
		if err != nil {
			return configgen.OverlayView{}, err
		}
		others = append(others, view)
	}

	return configgen.OverlayView{
		WAN:        wan,
		PrivateKey: privateKey,
		Target:     target,
		Others:     others,
	}, nil
}

func (e *Engine) peerView(ctx context.Context, peer *model.Peer) (configgen.PeerView, error) {
	subnets, err := e.store.Subnets().ListByPeer(ctx, peer.ID)
	if err != nil {
		return configgen.PeerView{}, err
	}
	services, err := e.store.Services().ListByPeer(ctx, peer.ID)
	if err != nil {
		return configgen.PeerView{}, err
	}
	return configgen.PeerView{Peer: peer, Subnets: subnets, Services: services}, nil
}
