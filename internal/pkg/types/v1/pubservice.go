package v1

import "time"

// CreatePublishedServiceRequest maps a private endpoint on a peer onto an
// address drawn from its WAN's shared-services range. shared_ip is
// optional — when empty the allocator picks the first free address.
// swagger:model
type CreatePublishedServiceRequest struct {
	PeerID     string `json:"peer_id" binding:"required"`
	Name       string `json:"name" binding:"required"`
	LocalIP    string `json:"local_ip" binding:"required"`
	LocalPort  int    `json:"local_port"`
	SharedIP   string `json:"shared_ip"`
	SharedPort int    `json:"shared_port"`
	Protocol   string `json:"protocol" binding:"required"`
}

// UpdatePublishedServiceRequest partially updates a published service.
// swagger:model
type UpdatePublishedServiceRequest struct {
	Name       *string `json:"name"`
	LocalIP    *string `json:"local_ip"`
	LocalPort  *int    `json:"local_port"`
	SharedPort *int    `json:"shared_port"`
	Protocol   *string `json:"protocol"`
	IsActive   *bool   `json:"is_active"`
}

// PublishedServiceResponse is the public representation of a published service.
// swagger:model
type PublishedServiceResponse struct {
	ID         string    `json:"id"`
	PeerID     string    `json:"peer_id"`
	Name       string    `json:"name"`
	LocalIP    string    `json:"local_ip"`
	LocalPort  int       `json:"local_port"`
	SharedIP   string    `json:"shared_ip"`
	SharedPort int       `json:"shared_port"`
	Protocol   string    `json:"protocol"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ListPublishedServicesResponse is a paginated list of published services.
// swagger:model
type ListPublishedServicesResponse struct {
	Items []PublishedServiceResponse `json:"items"`
	Total int64                      `json:"total"`
}
