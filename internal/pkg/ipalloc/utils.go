package ipalloc

import (
	"net/netip"
	"strings"

	"github.com/wanoverlay/manager/internal/pkg/model"
	"k8s.io/klog/v2"
)

// CollectUsedTunnelIPs gathers the tunnel addresses already assigned to
// peers of a WAN, so a fresh Allocator can be built for the next
// allocation.
func CollectUsedTunnelIPs(peers []*model.Peer) map[netip.Addr]struct{} {
	used := make(map[netip.Addr]struct{}, len(peers))
	for _, p := range peers {
		if p == nil {
			continue
		}
		ip, err := netip.ParseAddr(strings.TrimSpace(p.TunnelIP))
		if err != nil || !ip.Is4() {
			if p.TunnelIP != "" {
				klog.V(2).InfoS("invalid tunnel IP on peer", "peer_id", p.ID, "tunnel_ip", p.TunnelIP, "error", err)
			}
			continue
		}
		used[ip] = struct{}{}
	}
	return used
}

// CollectUsedSharedIPs gathers the shared-service addresses already
// allocated within a WAN.
func CollectUsedSharedIPs(services []*model.PublishedService) map[netip.Addr]struct{} {
	used := make(map[netip.Addr]struct{}, len(services))
	for _, s := range services {
		if s == nil {
			continue
		}
		ip, err := netip.ParseAddr(strings.TrimSpace(s.SharedIP))
		if err != nil || !ip.Is4() {
			if s.SharedIP != "" {
				klog.V(2).InfoS("invalid shared IP on service", "service_id", s.ID, "shared_ip", s.SharedIP, "error", err)
			}
			continue
		}
		used[ip] = struct{}{}
	}
	return used
}
