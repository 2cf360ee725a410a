package configgen

import (
	"fmt"
	"strings"
)

// GenerateScript serializes a DesiredState as an idempotent RouterOS
// script: create-if-missing for the interface and its address,
// delete-all-managed-then-recreate for peers/routes/firewall/NAT, with
// verification prints at the end. Mirrors config_generator.py's
// generate_mikrotik_script.
func GenerateScript(state DesiredState) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s managed configuration\n", OwnershipPrefix)

	fmt.Fprintf(&b, "/interface/wireguard\n")
	fmt.Fprintf(&b, ":if ([:len [find comment=%q]] = 0) do={ add name=%s listen-port=%d private-key=%q comment=%q }\n",
		state.Interface.Comment, state.Interface.Name, state.Interface.ListenPort, state.Interface.PrivateKey, state.Interface.Comment)

	fmt.Fprintf(&b, "\n/ip/address\n")
	for _, a := range state.IPAddresses {
		fmt.Fprintf(&b, ":if ([:len [find comment=%q]] = 0) do={ add address=%s interface=%s comment=%q }\n",
			a.Comment, a.Address, a.Interface, a.Comment)
	}

	fmt.Fprintf(&b, "\n/interface/wireguard/peers\n")
	fmt.Fprintf(&b, "remove [find comment~%q]\n", OwnershipPrefix)
	for _, p := range state.Peers {
		fmt.Fprintf(&b, "add interface=%s public-key=%q allowed-address=%s", p.Interface, p.PublicKey, p.AllowedAddress)
		if p.PersistentKeepalive != "" {
			fmt.Fprintf(&b, " persistent-keepalive=%s", p.PersistentKeepalive)
		}
		if p.EndpointAddress != "" {
			fmt.Fprintf(&b, " endpoint-address=%s endpoint-port=%s", p.EndpointAddress, p.EndpointPort)
		}
		fmt.Fprintf(&b, " comment=%q\n", p.Comment)
	}

	fmt.Fprintf(&b, "\n/ip/route\n")
	fmt.Fprintf(&b, "remove [find comment~%q]\n", OwnershipPrefix)
	for _, r := range state.Routes {
		fmt.Fprintf(&b, "add dst-address=%s gateway=%s comment=%q\n", r.DstAddress, r.Gateway, r.Comment)
	}

	fmt.Fprintf(&b, "\n/ip/firewall/filter\n")
	fmt.Fprintf(&b, "remove [find comment~%q]\n", OwnershipPrefix)
	for _, f := range state.FirewallRules {
		fmt.Fprintf(&b, "add chain=%s action=%s", f.Chain, f.Action)
		if f.InInterface != "" {
			fmt.Fprintf(&b, " in-interface=%s", f.InInterface)
		}
		if f.OutInterface != "" {
			fmt.Fprintf(&b, " out-interface=%s", f.OutInterface)
		}
		fmt.Fprintf(&b, " comment=%q\n", f.Comment)
	}

	fmt.Fprintf(&b, "\n/ip/firewall/nat\n")
	fmt.Fprintf(&b, "remove [find comment~%q]\n", OwnershipPrefix)
	allNAT := make([]NATRule, 0, len(state.NATRules)+len(state.ReturnNATRules))
	allNAT = append(allNAT, state.NATRules...)
	allNAT = append(allNAT, state.ReturnNATRules...)
	for _, n := range allNAT {
		fmt.Fprintf(&b, "add chain=%s action=%s protocol=%s", n.Chain, n.Action, n.Protocol)
		if n.DstAddress != "" {
			fmt.Fprintf(&b, " dst-address=%s", n.DstAddress)
		}
		if n.SrcAddress != "" {
			fmt.Fprintf(&b, " src-address=%s", n.SrcAddress)
		}
		fmt.Fprintf(&b, " to-addresses=%s", n.ToAddresses)
		if n.DstPort != "" {
			fmt.Fprintf(&b, " dst-port=%s", n.DstPort)
		}
		if n.ToPorts != "" {
			fmt.Fprintf(&b, " to-ports=%s", n.ToPorts)
		}
		fmt.Fprintf(&b, " comment=%q\n", n.Comment)
	}

	fmt.Fprintf(&b, "\n:put \"%s deployment complete\"\n", OwnershipPrefix)
	fmt.Fprintf(&b, "/interface/wireguard print where comment~%q\n", OwnershipPrefix)

	return b.String()
}
