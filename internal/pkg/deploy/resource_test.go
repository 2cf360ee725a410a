package deploy

import (
	"testing"

	"github.com/wanoverlay/manager/internal/pkg/configgen"
)

func TestToResourceUsesJSONTags(t *testing.T) {
	route := configgen.Route{DstAddress: "10.0.0.0/24", Gateway: "10.0.0.1", Comment: "WAN-Overlay-Manager:r1"}
	r, err := toResource(route)
	if err != nil {
		t.Fatalf("toResource() error = %v", err)
	}
	if r["dst-address"] != "10.0.0.0/24" {
		t.Errorf("dst-address = %v, want 10.0.0.0/24", r["dst-address"])
	}
	if r.Comment() != "WAN-Overlay-Manager:r1" {
		t.Errorf("Comment() = %v", r.Comment())
	}
}

func TestToResourcesPreservesOrder(t *testing.T) {
	routes := []configgen.Route{
		{DstAddress: "10.0.0.0/24", Comment: "a"},
		{DstAddress: "10.0.1.0/24", Comment: "b"},
	}
	out, err := toResources(routes)
	if err != nil {
		t.Fatalf("toResources() error = %v", err)
	}
	if len(out) != 2 || out[0].Comment() != "a" || out[1].Comment() != "b" {
		t.Errorf("unexpected order: %+v", out)
	}
}
