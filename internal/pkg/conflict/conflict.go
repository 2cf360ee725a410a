package conflict

import "net/netip"

// Severity classifies how serious a subnet conflict is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityWarning  Severity = "warning"
	SeverityInfo     Severity = "info"
)

// Resolution is one of the suggested ways to resolve a conflict.
type Resolution string

const (
	ResolutionDontRoute       Resolution = "dont_route"
	ResolutionUseNAT          Resolution = "use_nat"
	ResolutionChangeSubnet    Resolution = "change_subnet"
	ResolutionSelectiveRouting Resolution = "selective_routing"
)

// ConflictType names what the candidate subnet collided with.
type ConflictType string

const (
	ConflictTunnelIPOverlap       ConflictType = "tunnel_ip_overlap"
	ConflictSharedServicesOverlap ConflictType = "shared_services_overlap"
	ConflictPeerSubnetOverlap     ConflictType = "peer_subnet_overlap"
	ConflictExistingRouteOverlap  ConflictType = "existing_route_overlap"
)

// SubnetConflict describes one overlap found for a candidate subnet.
type SubnetConflict struct {
	Subnet               string       `json:"subnet"`
	ConflictType         ConflictType `json:"conflict_type"`
	Severity             Severity     `json:"severity"`
	ConflictingWith       string      `json:"conflicting_with"`
	ConflictingSubnet     string      `json:"conflicting_subnet"`
	Description           string      `json:"description"`
	SuggestedResolutions []Resolution `json:"suggested_resolutions"`
}

// Named is a CIDR attributed to some other owner (a sibling peer, or an
// "existing route" on a target router), used as the detector's
// comparison set.
type Named struct {
	Label string // e.g. peer name/id, or a route description
	CIDR  string
}

// Overlaps reports whether two CIDRs intersect, by standard CIDR
// intersection: each contains the other's network address, or either
// contains the other's prefix.
func Overlaps(a, b netip.Prefix) bool {
	a, b = a.Masked(), b.Masked()
	return a.Overlaps(b)
}

// DetectConflicts classifies every candidate subnet against the WAN's own
// ranges (critical), sibling peers' subnets (warning), and an injected
// list of existing router routes (warning), per spec §4.3.
func DetectConflicts(candidates []string, tunnelRange, sharedServicesRange string, siblingSubnets []Named, existingRoutes []Named) []SubnetConflict {
	var conflicts []SubnetConflict

	tunnelPfx, tunnelErr := netip.ParsePrefix(tunnelRange)
	sharedPfx, sharedErr := netip.ParsePrefix(sharedServicesRange)
	tunnelOK := tunnelErr == nil
	sharedOK := sharedErr == nil

	for _, raw := range candidates {
		cand, err := netip.ParsePrefix(raw)
		if err != nil {
			continue
		}

		if tunnelOK && Overlaps(cand, tunnelPfx) {
			conflicts = append(conflicts, SubnetConflict{
				Subnet:               raw,
				ConflictType:         ConflictTunnelIPOverlap,
				Severity:             SeverityCritical,
				ConflictingWith:       "wan-tunnel-range",
				ConflictingSubnet:     tunnelRange,
				Description:           "subnet overlaps the WAN's tunnel IP range",
				SuggestedResolutions: []Resolution{ResolutionDontRoute, ResolutionUseNAT, ResolutionChangeSubnet},
			})
		}
		if sharedOK && Overlaps(cand, sharedPfx) {
			conflicts = append(conflicts, SubnetConflict{
				Subnet:               raw,
				ConflictType:         ConflictSharedServicesOverlap,
				Severity:             SeverityCritical,
				ConflictingWith:       "wan-shared-services-range",
				ConflictingSubnet:     sharedServicesRange,
				Description:           "subnet overlaps the WAN's shared-services range",
				SuggestedResolutions: []Resolution{ResolutionDontRoute, ResolutionUseNAT, ResolutionChangeSubnet},
			})
		}

		for _, sib := range siblingSubnets {
			sibPfx, err := netip.ParsePrefix(sib.CIDR)
			if err != nil || !Overlaps(cand, sibPfx) {
				continue
			}
			conflicts = append(conflicts, SubnetConflict{
				Subnet:               raw,
				ConflictType:         ConflictPeerSubnetOverlap,
				Severity:             SeverityWarning,
				ConflictingWith:       sib.Label,
				ConflictingSubnet:     sib.CIDR,
				Description:           "subnet overlaps a subnet advertised by another peer in this WAN",
				SuggestedResolutions: []Resolution{ResolutionUseNAT, ResolutionSelectiveRouting, ResolutionChangeSubnet},
			})
		}

		for _, route := range existingRoutes {
			routePfx, err := netip.ParsePrefix(route.CIDR)
			if err != nil || !Overlaps(cand, routePfx) {
				continue
			}
			conflicts = append(conflicts, SubnetConflict{
				Subnet:               raw,
				ConflictType:         ConflictExistingRouteOverlap,
				Severity:             SeverityWarning,
				ConflictingWith:       route.Label,
				ConflictingSubnet:     route.CIDR,
				Description:           "subnet overlaps an existing route on the target router",
				SuggestedResolutions: []Resolution{ResolutionDontRoute, ResolutionSelectiveRouting, ResolutionChangeSubnet},
			})
		}
	}

	return conflicts
}

// HasCritical reports whether any conflict in the set is critical.
func HasCritical(conflicts []SubnetConflict) bool {
	for _, c := range conflicts {
		if c.Severity == SeverityCritical {
			return true
		}
	}
	return false
}
