package deploy

import "testing"

func TestMilestonesAreStrictlyIncreasing(t *testing.T) {
	for i := 1; i < len(orderedMilestones); i++ {
		if orderedMilestones[i] <= orderedMilestones[i-1] {
			t.Fatalf("milestone %d (%d) does not exceed milestone %d (%d)",
				i, orderedMilestones[i], i-1, orderedMilestones[i-1])
		}
	}
	if orderedMilestones[len(orderedMilestones)-1] != 100 {
		t.Errorf("final milestone = %d, want 100", orderedMilestones[len(orderedMilestones)-1])
	}
}
