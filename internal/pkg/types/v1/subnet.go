package v1

import "time"

// CreateSubnetRequest advertises a local CIDR from a peer into the overlay.
// swagger:model
type CreateSubnetRequest struct {
	PeerID            string `json:"peer_id" binding:"required"`
	CIDR              string `json:"cidr" binding:"required"`
	IsRouted          bool   `json:"is_routed"`
	NATEnabled        bool   `json:"nat_enabled"`
	NATTranslatedCIDR string `json:"nat_translated_cidr"`
	Description       string `json:"description"`
}

// UpdateSubnetRequest partially updates a local subnet.
// swagger:model
type UpdateSubnetRequest struct {
	IsRouted          *bool   `json:"is_routed"`
	NATEnabled        *bool   `json:"nat_enabled"`
	NATTranslatedCIDR *string `json:"nat_translated_cidr"`
	Description       *string `json:"description"`
}

// SubnetResponse is the public representation of a local subnet.
// swagger:model
type SubnetResponse struct {
	ID                string    `json:"id"`
	PeerID            string    `json:"peer_id"`
	CIDR              string    `json:"cidr"`
	IsRouted          bool      `json:"is_routed"`
	NATEnabled        bool      `json:"nat_enabled"`
	NATTranslatedCIDR string    `json:"nat_translated_cidr,omitempty"`
	Description       string    `json:"description,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// ListSubnetsResponse is a paginated list of local subnets.
// swagger:model
type ListSubnetsResponse struct {
	Items []SubnetResponse `json:"items"`
	Total int64            `json:"total"`
}

// SubnetConflictResponse reports the conflicts a candidate subnet would
// produce against the rest of the overlay, without persisting anything.
// swagger:model
type SubnetConflictResponse struct {
	HasCritical bool                    `json:"has_critical"`
	Conflicts   []SubnetConflictSummary `json:"conflicts"`
}

// SubnetConflictSummary is one conflict finding.
// swagger:model
type SubnetConflictSummary struct {
	Subnet               string   `json:"subnet"`
	ConflictType         string   `json:"conflict_type"`
	Severity             string   `json:"severity"`
	ConflictingWith      string   `json:"conflicting_with"`
	ConflictingSubnet    string   `json:"conflicting_subnet"`
	Description          string   `json:"description"`
	SuggestedResolutions []string `json:"suggested_resolutions"`
}
