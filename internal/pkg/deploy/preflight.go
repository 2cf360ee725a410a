package deploy

import (
	"context"
	"fmt"

	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/conflict"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
)

// PreflightIssue is one non-fatal, read-only observation surfaced before
// an apply, each carrying a human-readable suggestion.
type PreflightIssue struct {
	Family     string
	Message    string
	Suggestion string
}

// PreflightResult reports every issue found; Success is true iff Issues
// is empty. Preflight never writes.
type PreflightResult struct {
	Success bool
	Issues  []PreflightIssue
}

// Preflight reads every resource on the router (not just managed ones)
// and reports interface/listen-port/address/route/NAT/firewall
// collisions with foreign (non-managed) resources, plus routing-path
// ambiguity surfaced by the Conflict Detector.
func (e *Engine) Preflight(ctx context.Context, peerID string) (PreflightResult, error) {
	view, err := e.buildOverlayView(ctx, peerID)
	if err != nil {
		return PreflightResult{}, err
	}
	client, err := e.clientFor(ctx, view.Target.Peer)
	if err != nil {
		return PreflightResult{}, err
	}

	desired := configgen.GenerateDesiredState(view)
	var issues []PreflightIssue

	foreignIfaces, err := client.List(ctx, routerapi.FamilyWireguardInterface, "")
	if err != nil {
		return PreflightResult{}, err
	}
	for _, r := range foreignIfaces {
		if isManagedComment(r.Comment()) {
			continue
		}
		if name, _ := r["name"].(string); name == desired.Interface.Name {
			issues = append(issues, PreflightIssue{
				Family:     routerapi.FamilyWireguardInterface,
				Message:    fmt.Sprintf("interface name %q collides with a foreign interface", name),
				Suggestion: "rename the peer's interface_name",
			})
		}
		if port, ok := r["listen-port"].(float64); ok && int(port) == desired.Interface.ListenPort {
			issues = append(issues, PreflightIssue{
				Family:     routerapi.FamilyWireguardInterface,
				Message:    fmt.Sprintf("listen-port %d collides with a foreign interface", desired.Interface.ListenPort),
				Suggestion: "choose a different listen_port for this peer",
			})
		}
	}

	issues = append(issues, foreignKeyCollisions(ctx, client, routerapi.FamilyIPAddress, func(r routerapi.Resource) string {
		addr, _ := r["address"].(string)
		return addr
	}, addressKeys(desired.IPAddresses))...)

	issues = append(issues, foreignKeyCollisions(ctx, client, routerapi.FamilyIPRoute, func(r routerapi.Resource) string {
		dst, _ := r["dst-address"].(string)
		return dst
	}, routeKeys(desired.Routes))...)

	issues = append(issues, foreignKeyCollisions(ctx, client, routerapi.FamilyFirewallNAT, func(r routerapi.Resource) string {
		dst, _ := r["dst-address"].(string)
		return dst
	}, natKeys(desired.NATRules))...)

	issues = append(issues, foreignKeyCollisions(ctx, client, routerapi.FamilyFirewallFilter, func(r routerapi.Resource) string {
		chain, _ := r["chain"].(string)
		action, _ := r["action"].(string)
		inIface, _ := r["in-interface"].(string)
		outIface, _ := r["out-interface"].(string)
		return firewallKey(chain, action, inIface, outIface)
	}, firewallKeys(desired.FirewallRules))...)

	existingRoutes, err := client.List(ctx, routerapi.FamilyIPRoute, "")
	if err != nil {
		return PreflightResult{}, err
	}
	var candidates []string
	for _, r := range desired.Routes {
		candidates = append(candidates, r.DstAddress)
	}
	var existingNamed []conflict.Named
	for _, r := range existingRoutes {
		if dst, ok := r["dst-address"].(string); ok {
			existingNamed = append(existingNamed, conflict.Named{Label: r.Comment(), CIDR: dst})
		}
	}
	for _, c := range conflict.DetectConflicts(candidates, view.WAN.TunnelIPRange, view.WAN.SharedServicesRange, nil, existingNamed) {
		issues = append(issues, PreflightIssue{
			Family:     routerapi.FamilyIPRoute,
			Message:    fmt.Sprintf("%s: %s", c.ConflictType, c.Description),
			Suggestion: firstResolution(c.SuggestedResolutions),
		})
	}

	return PreflightResult{Success: len(issues) == 0, Issues: issues}, nil
}

func firstResolution(resolutions []conflict.Resolution) string {
	if len(resolutions) == 0 {
		return ""
	}
	return string(resolutions[0])
}

func addressKeys(addrs []configgen.IPAddress) []string {
	keys := make([]string, len(addrs))
	for i, a := range addrs {
		keys[i] = a.Address
	}
	return keys
}

func routeKeys(routes []configgen.Route) []string {
	keys := make([]string, len(routes))
	for i, r := range routes {
		keys[i] = r.DstAddress
	}
	return keys
}

func natKeys(nats []configgen.NATRule) []string {
	keys := make([]string, len(nats))
	for i, n := range nats {
		keys[i] = n.DstAddress
	}
	return keys
}

// firewallKey composes the 4-tuple RouterOS uses to distinguish
// filter rules, matching deployment.py's desired_fw set of
// (chain, action, in-interface, out-interface).
func firewallKey(chain, action, inInterface, outInterface string) string {
	return chain + "|" + action + "|" + inInterface + "|" + outInterface
}

func firewallKeys(rules []configgen.FirewallRule) []string {
	keys := make([]string, len(rules))
	for i, r := range rules {
		keys[i] = firewallKey(r.Chain, r.Action, r.InInterface, r.OutInterface)
	}
	return keys
}

func foreignKeyCollisions(ctx context.Context, client *routerapi.Client, family string, keyOf func(routerapi.Resource) string, desiredKeys []string) []PreflightIssue {
	existing, err := client.List(ctx, family, "")
	if err != nil {
		return nil
	}
	wanted := make(map[string]struct{}, len(desiredKeys))
	for _, k := range desiredKeys {
		if k != "" {
			wanted[k] = struct{}{}
		}
	}
	var issues []PreflightIssue
	for _, r := range existing {
		if isManagedComment(r.Comment()) {
			continue
		}
		key := keyOf(r)
		if _, ok := wanted[key]; ok {
			issues = append(issues, PreflightIssue{
				Family:     family,
				Message:    fmt.Sprintf("%s %q is already present under a non-managed comment", family, key),
				Suggestion: "resolve the collision manually on the router before applying",
			})
		}
	}
	return issues
}
