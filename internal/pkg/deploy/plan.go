package deploy

import (
	"context"

	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
)

// PlanResult is the read-only diff between a managed peer's current
// managed resources and its desired state, per family.
type PlanResult struct {
	Families map[string]FamilyDiff
}

// Plan builds the desired state for a peer, fetches its current managed
// resources over the Router API, and set-differences them family by
// family. It performs no writes.
func (e *Engine) Plan(ctx context.Context, peerID string) (PlanResult, error) {
	view, err := e.buildOverlayView(ctx, peerID)
	if err != nil {
		return PlanResult{}, err
	}
	client, err := e.clientFor(ctx, view.Target.Peer)
	if err != nil {
		return PlanResult{}, err
	}

	desired := configgen.GenerateDesiredState(view)
	current, err := client.GetManagedResources(ctx)
	if err != nil {
		return PlanResult{}, err
	}

	families, err := diffDesiredState(desired, current)
	if err != nil {
		return PlanResult{}, err
	}
	return PlanResult{Families: families}, nil
}

func diffDesiredState(desired configgen.DesiredState, current routerapi.ManagedResources) (map[string]FamilyDiff, error) {
	out := make(map[string]FamilyDiff, len(routerapi.AllFamilies))

	ifaceResource, err := toResource(desired.Interface)
	if err != nil {
		return nil, err
	}
	out[routerapi.FamilyWireguardInterface] = diffFamily(routerapi.FamilyWireguardInterface,
		current[routerapi.FamilyWireguardInterface], []routerapi.Resource{ifaceResource})

	peers, err := toResources(desired.Peers)
	if err != nil {
		return nil, err
	}
	out[routerapi.FamilyWireguardPeer] = diffFamily(routerapi.FamilyWireguardPeer,
		current[routerapi.FamilyWireguardPeer], peers)

	addrs, err := toResources(desired.IPAddresses)
	if err != nil {
		return nil, err
	}
	out[routerapi.FamilyIPAddress] = diffFamily(routerapi.FamilyIPAddress,
		current[routerapi.FamilyIPAddress], addrs)

	routes, err := toResources(desired.Routes)
	if err != nil {
		return nil, err
	}
	out[routerapi.FamilyIPRoute] = diffFamily(routerapi.FamilyIPRoute,
		current[routerapi.FamilyIPRoute], routes)

	filters, err := toResources(desired.FirewallRules)
	if err != nil {
		return nil, err
	}
	out[routerapi.FamilyFirewallFilter] = diffFamily(routerapi.FamilyFirewallFilter,
		current[routerapi.FamilyFirewallFilter], filters)

	nats, err := toResources(desired.NATRules)
	if err != nil {
		return nil, err
	}
	out[routerapi.FamilyFirewallNAT] = diffFamily(routerapi.FamilyFirewallNAT,
		current[routerapi.FamilyFirewallNAT], nats)

	return out, nil
}
