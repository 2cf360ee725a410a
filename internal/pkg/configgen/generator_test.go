package configgen

import (
	"strings"
	"testing"

	"github.com/wanoverlay/manager/internal/pkg/model"
)

func TestGenerateWireGuardConfigS3(t *testing.T) {
	wan := &model.WAN{SharedServicesRange: "10.0.5.0/24"}
	peerA := &model.Peer{ID: "a", TunnelIP: "10.0.0.1"}
	peerB := &model.Peer{
		ID: "b", TunnelIP: "10.0.0.2", Endpoint: "203.0.113.5:51820", PublicKey: "K_B",
	}
	subnetB := &model.LocalSubnet{CIDR: "192.168.10.0/24", IsRouted: true}

	view := OverlayView{
		WAN:        wan,
		PrivateKey: "PRIVATE_A",
		Target:     PeerView{Peer: peerA},
		Others:     []PeerView{{Peer: peerB, Subnets: []*model.LocalSubnet{subnetB}}},
	}

	cfg, err := GenerateWireGuardConfig(view)
	if err != nil {
		t.Fatalf("GenerateWireGuardConfig() error = %v", err)
	}

	if strings.Count(cfg, "[Peer]") != 1 {
		t.Fatalf("config has != 1 [Peer] block:\n%s", cfg)
	}
	if !strings.Contains(cfg, "PublicKey = K_B") {
		t.Errorf("missing PublicKey line:\n%s", cfg)
	}
	if !strings.Contains(cfg, "Endpoint = 203.0.113.5:51820") {
		t.Errorf("missing Endpoint line:\n%s", cfg)
	}

	idx := strings.Index(cfg, "AllowedIPs = ")
	if idx < 0 {
		t.Fatalf("missing AllowedIPs line:\n%s", cfg)
	}
	line := cfg[idx : idx+strings.Index(cfg[idx:], "\n")]
	for _, want := range []string{"10.0.0.2/32", "192.168.10.0/24", "10.0.5.0/24"} {
		if !strings.Contains(line, want) {
			t.Errorf("AllowedIPs line %q missing %q", line, want)
		}
	}
}

func TestGenerateDesiredStateNATService(t *testing.T) {
	wan := &model.WAN{SharedServicesRange: "10.0.5.0/24"}
	peer := &model.Peer{ID: "p1", TunnelIP: "10.0.0.5", InterfaceName: "wg-wan-overlay"}
	svc := &model.PublishedService{
		ID: "svc1", LocalIP: "192.168.1.10", LocalPort: 80,
		SharedIP: "10.0.5.1", SharedPort: 8080, Protocol: model.ServiceProtocolBoth, IsActive: true,
	}

	view := OverlayView{
		WAN:        wan,
		PrivateKey: "PRIVATE",
		Target:     PeerView{Peer: peer, Services: []*model.PublishedService{svc}},
	}

	state := GenerateDesiredState(view)

	if len(state.NATRules) != 2 {
		t.Fatalf("NATRules = %d, want 2 (tcp+udp dstnat only)", len(state.NATRules))
	}
	for _, n := range state.NATRules {
		if n.Chain != "dstnat" {
			t.Errorf("DesiredState.NATRules must be dstnat-only, got chain %q", n.Chain)
		}
		if n.DstAddress != "10.0.5.1" || n.Action != "dst-nat" || n.ToAddresses != "192.168.1.10" {
			t.Errorf("unexpected dstnat rule: %+v", n)
		}
		if n.DstPort != "8080" || n.ToPorts != "80" {
			t.Errorf("unexpected ports on rule: %+v", n)
		}
		if !strings.HasPrefix(n.Comment, OwnershipPrefix) {
			t.Errorf("rule missing ownership prefix: %+v", n)
		}
	}

	if len(state.ReturnNATRules) != 2 {
		t.Fatalf("ReturnNATRules = %d, want 2 (tcp+udp srcnat)", len(state.ReturnNATRules))
	}
	for _, n := range state.ReturnNATRules {
		if n.Chain != "srcnat" || n.Action != "masquerade" {
			t.Errorf("unexpected srcnat rule: %+v", n)
		}
	}

	script := GenerateScript(state)
	if strings.Count(script, "chain=dstnat") != 2 {
		t.Errorf("script missing dstnat rules:\n%s", script)
	}
	if strings.Count(script, "chain=srcnat") != 2 {
		t.Errorf("script missing srcnat return-traffic rules:\n%s", script)
	}
}

func TestGenerateDesiredStateStableUnderRecomputation(t *testing.T) {
	wan := &model.WAN{SharedServicesRange: "10.0.5.0/24"}
	peer := &model.Peer{ID: "p1", TunnelIP: "10.0.0.5"}
	other := &model.Peer{ID: "p2", TunnelIP: "10.0.0.6", PublicKey: "K2"}

	view := OverlayView{WAN: wan, PrivateKey: "PK", Target: PeerView{Peer: peer}, Others: []PeerView{{Peer: other}}}

	a := GenerateDesiredState(view)
	b := GenerateDesiredState(view)
	if a.Interface.Comment != b.Interface.Comment || len(a.Peers) != len(b.Peers) {
		t.Fatalf("desired state not stable across recomputation: %+v vs %+v", a, b)
	}
}
