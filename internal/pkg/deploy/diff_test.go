package deploy

import (
	"testing"

	"github.com/wanoverlay/manager/internal/pkg/routerapi"
)

func TestDiffFamilyCreatesAndDeletes(t *testing.T) {
	current := []routerapi.Resource{
		{"id": "*1", "comment": "WAN-Overlay-Manager:stale-route"},
		{"id": "*2", "comment": "WAN-Overlay-Manager:kept-route"},
	}
	desired := []routerapi.Resource{
		{"comment": "WAN-Overlay-Manager:kept-route"},
		{"comment": "WAN-Overlay-Manager:new-route"},
	}

	diff := diffFamily(routerapi.FamilyIPRoute, current, desired)

	if len(diff.ToCreate) != 1 || diff.ToCreate[0].Comment() != "WAN-Overlay-Manager:new-route" {
		t.Errorf("ToCreate = %+v, want one new-route entry", diff.ToCreate)
	}
	if len(diff.ToDelete) != 1 || diff.ToDelete[0].Comment() != "WAN-Overlay-Manager:stale-route" {
		t.Errorf("ToDelete = %+v, want one stale-route entry", diff.ToDelete)
	}
}

func TestDiffFamilyNoChanges(t *testing.T) {
	same := []routerapi.Resource{{"id": "*1", "comment": "WAN-Overlay-Manager:r"}}
	diff := diffFamily(routerapi.FamilyIPRoute, same, []routerapi.Resource{{"comment": "WAN-Overlay-Manager:r"}})
	if len(diff.ToCreate) != 0 || len(diff.ToDelete) != 0 {
		t.Errorf("expected no diff, got %+v", diff)
	}
}
