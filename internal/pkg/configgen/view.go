package configgen

import "github.com/wanoverlay/manager/internal/pkg/model"

// PeerView bundles a peer with the subnets and services it advertises,
// the shape the generator needs to compute AllowedIPs and NAT rules.
type PeerView struct {
	Peer     *model.Peer
	Subnets  []*model.LocalSubnet
	Services []*model.PublishedService
}

// ActiveServices returns the peer's currently-published services.
func (v PeerView) ActiveServices() []*model.PublishedService {
	var out []*model.PublishedService
	for _, s := range v.Services {
		if s != nil && s.IsActive {
			out = append(out, s)
		}
	}
	return out
}

// RoutedSubnets returns the peer's subnets flagged for route
// advertisement.
func (v PeerView) RoutedSubnets() []*model.LocalSubnet {
	var out []*model.LocalSubnet
	for _, s := range v.Subnets {
		if s != nil && s.IsRouted {
			out = append(out, s)
		}
	}
	return out
}

// OverlayView is everything the Configuration Generator needs to derive
// one peer's configuration: the WAN it belongs to, the target peer (with
// its decrypted private key), and every other peer in the WAN.
type OverlayView struct {
	WAN        *model.WAN
	Target     PeerView
	PrivateKey string // decrypted for the duration of the call
	Others     []PeerView
}
