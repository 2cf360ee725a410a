package deploy

import (
	"context"
	"fmt"
	"time"

	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
)

// VerifyResult reports whether a managed peer's router state matches
// the desired state; InSync is true iff Issues is empty.
type VerifyResult struct {
	InSync  bool
	Issues  []string
	Current routerapi.ManagedResources
}

// Verify fetches the router's current managed resources and reports
// drift against the freshly-computed desired state: missing entries
// keyed by comment, and field-level drift for matched comments.
func (e *Engine) Verify(ctx context.Context, peerID string) (VerifyResult, error) {
	view, err := e.buildOverlayView(ctx, peerID)
	if err != nil {
		return VerifyResult{}, err
	}
	client, err := e.clientFor(ctx, view.Target.Peer)
	if err != nil {
		return VerifyResult{}, err
	}

	desired := configgen.GenerateDesiredState(view)
	current, err := client.GetManagedResources(ctx)
	if err != nil {
		return VerifyResult{}, err
	}

	var issues []string

	ifaceMatches := false
	for _, r := range current[routerapi.FamilyWireguardInterface] {
		if r.Comment() == desired.Interface.Comment {
			ifaceMatches = true
			if port, ok := r["listen-port"].(float64); ok && int(port) != desired.Interface.ListenPort {
				issues = append(issues, fmt.Sprintf("interface listen-port drifted: want %d, got %v", desired.Interface.ListenPort, port))
			}
		}
	}
	if !ifaceMatches {
		issues = append(issues, "managed interface is missing")
	}

	issues = append(issues, missingEntries("route", current[routerapi.FamilyIPRoute], routeComments(desired.Routes))...)
	issues = append(issues, missingEntries("address", current[routerapi.FamilyIPAddress], addressComments(desired.IPAddresses))...)
	issues = append(issues, missingEntries("firewall rule", current[routerapi.FamilyFirewallFilter], firewallComments(desired.FirewallRules))...)
	issues = append(issues, missingEntries("NAT rule", current[routerapi.FamilyFirewallNAT], natComments(desired.NATRules))...)
	issues = append(issues, missingEntries("peer", current[routerapi.FamilyWireguardPeer], peerComments(desired.Peers))...)

	issues = append(issues, routeDrift(current[routerapi.FamilyIPRoute], desired.Routes)...)
	issues = append(issues, firewallDrift(current[routerapi.FamilyFirewallFilter], desired.FirewallRules)...)
	issues = append(issues, natDrift(current[routerapi.FamilyFirewallNAT], desired.NATRules)...)

	return VerifyResult{InSync: len(issues) == 0, Issues: issues, Current: current}, nil
}

// TestConnection is the job_type=test-connection operation of §4.6:
// it reaches the peer's router API, reads back its identity and
// RouterOS version, and records the observed state on the peer.
func (e *Engine) TestConnection(ctx context.Context, peerID string) (routerapi.Identity, error) {
	peer, err := e.store.Peers().Get(ctx, peerID)
	if err != nil {
		return routerapi.Identity{}, err
	}
	client, err := e.clientFor(ctx, peer)
	if err != nil {
		return routerapi.Identity{}, err
	}

	identity, err := client.TestConnection(ctx)
	now := time.Now()
	peer.LastAPICheck = &now
	if err != nil {
		peer.APIStatus = model.PeerAPIStatusUnreachable
		_ = e.store.Peers().Update(ctx, peer)
		return routerapi.Identity{}, err
	}

	peer.APIStatus = model.PeerAPIStatusConnected
	peer.RouterIdentity = identity.Name
	peer.RouterOSVer = identity.RouterOSVersion
	peer.IsOnline = true
	peer.LastSeen = &now
	_ = e.store.Peers().Update(ctx, peer)

	return identity, nil
}

func missingEntries(kind string, current []routerapi.Resource, wantComments []string) []string {
	have := make(map[string]struct{}, len(current))
	for _, r := range current {
		have[r.Comment()] = struct{}{}
	}
	var issues []string
	for _, c := range wantComments {
		if _, ok := have[c]; !ok {
			issues = append(issues, fmt.Sprintf("missing %s: %s", kind, c))
		}
	}
	return issues
}

func routeComments(routes []configgen.Route) []string {
	out := make([]string, len(routes))
	for i, r := range routes {
		out[i] = r.Comment
	}
	return out
}

func addressComments(addrs []configgen.IPAddress) []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.Comment
	}
	return out
}

func firewallComments(rules []configgen.FirewallRule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Comment
	}
	return out
}

func natComments(rules []configgen.NATRule) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = r.Comment
	}
	return out
}

func peerComments(peers []configgen.PeerEntry) []string {
	out := make([]string, len(peers))
	for i, p := range peers {
		out[i] = p.Comment
	}
	return out
}

func routeDrift(current []routerapi.Resource, desired []configgen.Route) []string {
	byComment := make(map[string]configgen.Route, len(desired))
	for _, r := range desired {
		byComment[r.Comment] = r
	}
	var issues []string
	for _, r := range current {
		want, ok := byComment[r.Comment()]
		if !ok {
			continue
		}
		if dst, _ := r["dst-address"].(string); dst != want.DstAddress {
			issues = append(issues, fmt.Sprintf("route %s: dst-address drifted: want %s, got %s", r.Comment(), want.DstAddress, dst))
		}
		if gw, _ := r["gateway"].(string); gw != want.Gateway {
			issues = append(issues, fmt.Sprintf("route %s: gateway drifted: want %s, got %s", r.Comment(), want.Gateway, gw))
		}
	}
	return issues
}

func firewallDrift(current []routerapi.Resource, desired []configgen.FirewallRule) []string {
	byComment := make(map[string]configgen.FirewallRule, len(desired))
	for _, r := range desired {
		byComment[r.Comment] = r
	}
	var issues []string
	for _, r := range current {
		want, ok := byComment[r.Comment()]
		if !ok {
			continue
		}
		fields := map[string]struct{ want, got string }{
			"chain":         {want.Chain, str(r["chain"])},
			"action":        {want.Action, str(r["action"])},
			"in-interface":  {want.InInterface, str(r["in-interface"])},
			"out-interface": {want.OutInterface, str(r["out-interface"])},
		}
		for field, pair := range fields {
			if pair.want != pair.got {
				issues = append(issues, fmt.Sprintf("firewall rule %s: %s drifted: want %s, got %s", r.Comment(), field, pair.want, pair.got))
			}
		}
	}
	return issues
}

func natDrift(current []routerapi.Resource, desired []configgen.NATRule) []string {
	byComment := make(map[string]configgen.NATRule, len(desired))
	for _, r := range desired {
		byComment[r.Comment] = r
	}
	var issues []string
	for _, r := range current {
		want, ok := byComment[r.Comment()]
		if !ok {
			continue
		}
		fields := map[string]struct{ want, got string }{
			"chain":        {want.Chain, str(r["chain"])},
			"protocol":     {want.Protocol, str(r["protocol"])},
			"dst-address":  {want.DstAddress, str(r["dst-address"])},
			"dst-port":     {want.DstPort, str(r["dst-port"])},
			"action":       {want.Action, str(r["action"])},
			"to-addresses": {want.ToAddresses, str(r["to-addresses"])},
			"to-ports":     {want.ToPorts, str(r["to-ports"])},
		}
		for field, pair := range fields {
			if pair.want != pair.got {
				issues = append(issues, fmt.Sprintf("NAT rule %s: %s drifted: want %s, got %s", r.Comment(), field, pair.want, pair.got))
			}
		}
	}
	return issues
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
