package deploy

import (
	"testing"

	"github.com/wanoverlay/manager/internal/pkg/configgen"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
)

func TestMissingEntriesReportsAbsentComment(t *testing.T) {
	current := []routerapi.Resource{{"comment": "WAN-Overlay-Manager:a"}}
	issues := missingEntries("route", current, []string{"WAN-Overlay-Manager:a", "WAN-Overlay-Manager:b"})
	if len(issues) != 1 {
		t.Fatalf("issues = %v, want exactly one", issues)
	}
}

func TestRouteDriftDetectsGatewayChange(t *testing.T) {
	current := []routerapi.Resource{
		{"comment": "WAN-Overlay-Manager:r1", "dst-address": "10.0.0.0/24", "gateway": "10.0.0.9"},
	}
	desired := []configgen.Route{
		{Comment: "WAN-Overlay-Manager:r1", DstAddress: "10.0.0.0/24", Gateway: "10.0.0.1"},
	}
	issues := routeDrift(current, desired)
	if len(issues) != 1 {
		t.Fatalf("routeDrift() = %v, want one drift issue", issues)
	}
}

func TestNATDriftDetectsPortChange(t *testing.T) {
	current := []routerapi.Resource{
		{"comment": "WAN-Overlay-Manager:n1", "chain": "dstnat", "protocol": "tcp",
			"dst-address": "10.0.5.1", "dst-port": "9999", "action": "dst-nat", "to-addresses": "192.168.1.10", "to-ports": "80"},
	}
	desired := []configgen.NATRule{
		{Comment: "WAN-Overlay-Manager:n1", Chain: "dstnat", Protocol: "tcp",
			DstAddress: "10.0.5.1", DstPort: "8080", Action: "dst-nat", ToAddresses: "192.168.1.10", ToPorts: "80"},
	}
	issues := natDrift(current, desired)
	if len(issues) != 1 {
		t.Fatalf("natDrift() = %v, want one drift issue (dst-port)", issues)
	}
}
