package v1

import "time"

// CreateWANRequest creates a new overlay network.
// swagger:model
type CreateWANRequest struct {
	Name                string `json:"name" binding:"required"`
	TunnelIPRange       string `json:"tunnel_ip_range" binding:"required"`
	SharedServicesRange string `json:"shared_services_range" binding:"required"`
	TopologyType        string `json:"topology_type"`
	Description         string `json:"description"`
}

// UpdateWANRequest partially updates a WAN. The address ranges are
// immutable once peers exist against them, so they are not settable here.
// swagger:model
type UpdateWANRequest struct {
	Name         *string `json:"name"`
	TopologyType *string `json:"topology_type"`
	Description  *string `json:"description"`
}

// WANResponse is the public representation of a WAN.
// swagger:model
type WANResponse struct {
	ID                  string    `json:"id"`
	Name                string    `json:"name"`
	TunnelIPRange       string    `json:"tunnel_ip_range"`
	SharedServicesRange string    `json:"shared_services_range"`
	TopologyType        string    `json:"topology_type"`
	Description         string    `json:"description"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// ListWANsResponse is a paginated list of WANs.
// swagger:model
type ListWANsResponse struct {
	Items []WANResponse `json:"items"`
	Total int64         `json:"total"`
}

// PoolSnapshotResponse is the occupancy snapshot of one address pool.
// swagger:model
type PoolSnapshotResponse struct {
	Network        string `json:"network"`
	Broadcast      string `json:"broadcast"`
	Netmask        string `json:"netmask"`
	PrefixLength   int    `json:"prefix_length"`
	TotalHosts     int    `json:"total_hosts"`
	FirstHost      string `json:"first_host"`
	LastHost       string `json:"last_host"`
	AllocatedCount int    `json:"allocated_count"`
	AvailableCount int    `json:"available_count"`
}

// WANIPInfoResponse reports occupancy of a WAN's two address pools.
// swagger:model
type WANIPInfoResponse struct {
	TunnelRange         PoolSnapshotResponse `json:"tunnel_range"`
	SharedServicesRange PoolSnapshotResponse `json:"shared_services_range"`
}

// WANTopologyResponse renders a WAN's topology for diagramming: its
// topology type and every peer's role and tunnel identity within it.
// swagger:model
type WANTopologyResponse struct {
	TopologyType string               `json:"topology_type"`
	Nodes        []TopologyNodeResponse `json:"nodes"`
}

// TopologyNodeResponse is one peer node in a WAN topology graph.
// swagger:model
type TopologyNodeResponse struct {
	PeerID     string `json:"peer_id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	TunnelIP   string `json:"tunnel_ip"`
	IsManaged  bool   `json:"is_managed"`
	IsOnline   bool   `json:"is_online"`
}
