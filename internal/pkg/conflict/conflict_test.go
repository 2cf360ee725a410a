package conflict

import "testing"

func TestDetectConflictsCriticalTunnelOverlap(t *testing.T) {
	conflicts := DetectConflicts(
		[]string{"10.0.0.0/24"},
		"10.0.0.0/24",
		"10.0.5.0/24",
		nil, nil,
	)

	if len(conflicts) != 1 {
		t.Fatalf("len(conflicts) = %d, want 1", len(conflicts))
	}
	c := conflicts[0]
	if c.Severity != SeverityCritical || c.ConflictType != ConflictTunnelIPOverlap {
		t.Errorf("conflict = %+v, want critical tunnel_ip_overlap", c)
	}
	want := map[Resolution]bool{ResolutionDontRoute: true, ResolutionUseNAT: true, ResolutionChangeSubnet: true}
	if len(c.SuggestedResolutions) != len(want) {
		t.Errorf("suggested resolutions = %v", c.SuggestedResolutions)
	}
}

func TestDetectConflictsSiblingWarning(t *testing.T) {
	conflicts := DetectConflicts(
		[]string{"192.168.10.0/24"},
		"10.0.0.0/24",
		"10.0.5.0/24",
		[]Named{{Label: "peer-b", CIDR: "192.168.10.0/24"}},
		nil,
	)
	if len(conflicts) != 1 || conflicts[0].Severity != SeverityWarning {
		t.Fatalf("conflicts = %+v", conflicts)
	}
}

func TestDetectConflictsNoOverlap(t *testing.T) {
	conflicts := DetectConflicts(
		[]string{"192.168.20.0/24"},
		"10.0.0.0/24",
		"10.0.5.0/24",
		nil, nil,
	)
	if len(conflicts) != 0 {
		t.Fatalf("conflicts = %+v, want none", conflicts)
	}
}

func TestSuggestNATSubnetAvoidsExisting(t *testing.T) {
	existing := []Named{{Label: "used", CIDR: "172.16.0.0/24"}}
	s, err := SuggestNATSubnet("192.168.10.0/24", existing)
	if err != nil {
		t.Fatalf("SuggestNATSubnet() error = %v", err)
	}
	if s == "172.16.0.0/24" {
		t.Errorf("SuggestNATSubnet() returned an overlapping candidate: %s", s)
	}
}
