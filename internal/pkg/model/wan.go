package model

import "time"

// WAN is a named overlay network carrying a tunnel address pool and a
// shared-services address pool. Deletion cascades to its peers.
type WAN struct {
	ID                  string    `json:"id" gorm:"primaryKey"`
	Name                string    `json:"name" gorm:"uniqueIndex;not null" validate:"required,min=1,max=64"`
	TunnelIPRange       string    `json:"tunnel_ip_range" gorm:"column:tunnel_ip_range;not null" validate:"required,cidrv4"`
	SharedServicesRange string    `json:"shared_services_range" gorm:"column:shared_services_range;not null" validate:"required,cidrv4"`
	TopologyType        string    `json:"topology_type" gorm:"not null;default:hub-spoke" validate:"required,oneof=hub-spoke mesh hybrid"`
	Description         string    `json:"description" gorm:""`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

const (
	TopologyHubSpoke = "hub-spoke"
	TopologyMesh     = "mesh"
	TopologyHybrid   = "hybrid"
)
