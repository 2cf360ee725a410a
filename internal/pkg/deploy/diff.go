package deploy

import "github.com/wanoverlay/manager/internal/pkg/routerapi"

// FamilyDiff is the set difference between a router's managed resources
// and the desired set for one resource family, keyed by comment (the
// ownership-tagged identity RouterOS gives us instead of a stable id).
type FamilyDiff struct {
	Kind           string
	ManagedCurrent []routerapi.Resource
	ManagedDesired []routerapi.Resource
	ToCreate       []routerapi.Resource
	ToDelete       []routerapi.Resource
}

// diffFamily set-differences current managed resources against the
// desired set by comment string: anything in desired but not in current
// must be created, anything in current but not in desired must be
// deleted. Resources are never matched by id since the desired set has
// none assigned yet.
func diffFamily(kind string, current, desired []routerapi.Resource) FamilyDiff {
	currentByComment := make(map[string]routerapi.Resource, len(current))
	for _, r := range current {
		currentByComment[r.Comment()] = r
	}
	desiredByComment := make(map[string]routerapi.Resource, len(desired))
	for _, r := range desired {
		desiredByComment[r.Comment()] = r
	}

	diff := FamilyDiff{Kind: kind, ManagedCurrent: current, ManagedDesired: desired}
	for comment, r := range desiredByComment {
		if _, ok := currentByComment[comment]; !ok {
			diff.ToCreate = append(diff.ToCreate, r)
		}
	}
	for comment, r := range currentByComment {
		if _, ok := desiredByComment[comment]; !ok {
			diff.ToDelete = append(diff.ToDelete, r)
		}
	}
	return diff
}
