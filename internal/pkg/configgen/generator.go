package configgen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

// allowedIPsFor computes the deduplicated AllowedIPs set for "other" as
// seen from the target peer P, per spec §4.4. includeRouteAll controls
// whether the 0.0.0.0/0 clause is appended (WireGuard text only — the
// RouterOS peer record omits it).
func allowedIPsFor(other PeerView, wan *model.WAN, target *model.Peer, includeRouteAll bool) []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(cidr string) {
		cidr = strings.TrimSpace(cidr)
		if cidr == "" {
			return
		}
		if _, ok := seen[cidr]; ok {
			return
		}
		seen[cidr] = struct{}{}
		out = append(out, cidr)
	}

	if other.Peer.TunnelIP != "" {
		add(other.Peer.TunnelIP + "/32")
	}
	for _, s := range other.RoutedSubnets() {
		if s.NATEnabled && s.NATTranslatedCIDR != "" {
			add(s.NATTranslatedCIDR)
		} else {
			add(s.CIDR)
		}
	}
	for _, svc := range other.ActiveServices() {
		if svc.SharedIP != "" {
			add(svc.SharedIP + "/32")
		}
	}
	if wan.SharedServicesRange != "" {
		add(wan.SharedServicesRange)
	}
	if includeRouteAll && target.Metadata.RouteAllTraffic && other.Peer.Endpoint != "" {
		add("0.0.0.0/0")
	}

	return out
}

// GenerateWireGuardConfig renders the peer's INI-form configuration:
// one [Interface] block plus one [Peer] block per other peer in the WAN
// carrying a public key. The output is byte-consumable by an unmodified
// WireGuard implementation.
func GenerateWireGuardConfig(view OverlayView) (string, error) {
	var b strings.Builder

	b.WriteString("[Interface]\n")
	fmt.Fprintf(&b, "PrivateKey = %s\n", view.PrivateKey)

	addrs := []string{view.Target.Peer.TunnelIP + "/32"}
	for _, svc := range view.Target.ActiveServices() {
		if svc.SharedIP != "" {
			addrs = append(addrs, svc.SharedIP+"/32")
		}
	}
	fmt.Fprintf(&b, "Address = %s\n", strings.Join(addrs, ", "))

	if view.Target.Peer.ListenPort > 0 {
		fmt.Fprintf(&b, "ListenPort = %d\n", view.Target.Peer.ListenPort)
	}

	for _, other := range view.Others {
		if other.Peer.ID == view.Target.Peer.ID || other.Peer.PublicKey == "" {
			continue
		}
		b.WriteString("\n[Peer]\n")
		fmt.Fprintf(&b, "PublicKey = %s\n", other.Peer.PublicKey)
		if other.Peer.Endpoint != "" {
			fmt.Fprintf(&b, "Endpoint = %s\n", other.Peer.Endpoint)
		}

		allowed := allowedIPsFor(other, view.WAN, view.Target.Peer, true)
		fmt.Fprintf(&b, "AllowedIPs = %s\n", strings.Join(allowed, ", "))

		if view.Target.Peer.PersistentKeepalive > 0 {
			fmt.Fprintf(&b, "PersistentKeepalive = %d\n", view.Target.Peer.PersistentKeepalive)
		}
	}

	return b.String(), nil
}

func interfaceName(p *model.Peer) string {
	if p.InterfaceName != "" {
		return p.InterfaceName
	}
	return "wg-wan-overlay"
}

// GenerateDesiredState derives the structured RouterOS desired state for
// the target peer, per spec §4.4. Output is stable under re-computation:
// given unchanged overlay state, two calls return equal structures (by
// comment), satisfying invariant 5.
func GenerateDesiredState(view OverlayView) DesiredState {
	target := view.Target.Peer
	ifName := interfaceName(target)

	state := DesiredState{
		Interface: Interface{
			Name:       ifName,
			ListenPort: target.ListenPort,
			PrivateKey: view.PrivateKey,
			Comment:    OwnershipPrefix + "peer-" + target.ID,
		},
		IPAddresses: []IPAddress{{
			Address:   target.TunnelIP + "/24",
			Interface: ifName,
			Comment:   OwnershipPrefix + "peer-" + target.ID,
		}},
	}

	for _, other := range sortedOthers(view.Others, target.ID) {
		if other.Peer.PublicKey == "" {
			continue
		}
		allowed := allowedIPsFor(other, view.WAN, target, false)
		entry := PeerEntry{
			Interface:      ifName,
			PublicKey:      other.Peer.PublicKey,
			AllowedAddress: strings.Join(allowed, ","),
			Comment:        OwnershipPrefix + "peer-" + other.Peer.ID,
		}
		if target.PersistentKeepalive > 0 {
			entry.PersistentKeepalive = strconv.Itoa(target.PersistentKeepalive) + "s"
		}
		if other.Peer.Endpoint != "" {
			if ep, err := ParseEndpoint(other.Peer.Endpoint); err == nil {
				entry.EndpointAddress = ep.Host
				entry.EndpointPort = ep.Port
			}
		}
		state.Peers = append(state.Peers, entry)

		for _, s := range other.RoutedSubnets() {
			dst := s.CIDR
			if s.NATEnabled && s.NATTranslatedCIDR != "" {
				dst = s.NATTranslatedCIDR
			}
			state.Routes = append(state.Routes, Route{
				DstAddress: dst,
				Gateway:    ifName,
				Comment:    OwnershipPrefix + "route-to-" + other.Peer.ID,
			})
		}
	}

	if view.WAN.SharedServicesRange != "" {
		state.Routes = append(state.Routes, Route{
			DstAddress: view.WAN.SharedServicesRange,
			Gateway:    ifName,
			Comment:    OwnershipPrefix + "route-shared-services-" + target.ID,
		})
	}

	state.FirewallRules = []FirewallRule{
		{Chain: "input", Action: "accept", InInterface: ifName, Comment: OwnershipPrefix + "fw-input-" + target.ID},
		{Chain: "forward", Action: "accept", InInterface: ifName, Comment: OwnershipPrefix + "fw-forward-in-" + target.ID},
		{Chain: "forward", Action: "accept", OutInterface: ifName, Comment: OwnershipPrefix + "fw-forward-out-" + target.ID},
	}

	for _, svc := range view.Target.ActiveServices() {
		for _, proto := range svc.Protocols() {
			rule := NATRule{
				Chain:       "dstnat",
				DstAddress:  svc.SharedIP,
				Protocol:    proto,
				Action:      "dst-nat",
				ToAddresses: svc.LocalIP,
				Comment:     OwnershipPrefix + "service-" + svc.ID,
			}
			if svc.SharedPort > 0 {
				rule.DstPort = strconv.Itoa(svc.SharedPort)
			}
			if svc.LocalPort > 0 {
				rule.ToPorts = strconv.Itoa(svc.LocalPort)
			}
			state.NATRules = append(state.NATRules, rule)
		}
	}
	// srcnat return-traffic rules. These exist only in the rendered script
	// (GenerateScript), matching generate_mikrotik_script() in the original
	// config_generator.py: get_mikrotik_desired_state() there never
	// includes them, because they are not part of the managed-resource set
	// that Plan/Preflight/Apply/Verify diff against the router.
	for _, svc := range view.Target.ActiveServices() {
		for _, proto := range svc.Protocols() {
			state.ReturnNATRules = append(state.ReturnNATRules, NATRule{
				Chain:       "srcnat",
				SrcAddress:  svc.LocalIP,
				Protocol:    proto,
				Action:      "masquerade",
				ToAddresses: svc.SharedIP,
				Comment:     OwnershipPrefix + "service-" + svc.ID + "-return",
			})
		}
	}

	return state
}

// sortedOthers returns view's other peers in a stable order (by ID),
// excluding the target itself, so desired-state computation is
// deterministic between calls (invariant 5).
func sortedOthers(others []PeerView, targetID string) []PeerView {
	out := make([]PeerView, 0, len(others))
	for _, o := range others {
		if o.Peer.ID == targetID {
			continue
		}
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Peer.ID < out[j].Peer.ID })
	return out
}
