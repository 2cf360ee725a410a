package model

import "time"

// PublishedService maps a private endpoint on a peer to an address drawn
// from the WAN's shared-services range, reachable by every other peer.
type PublishedService struct {
	ID         string `json:"id" gorm:"primaryKey"`
	PeerID     string `json:"peer_id" gorm:"index;not null"`
	Name       string `json:"name" gorm:"not null" validate:"required,min=1,max=64"`
	LocalIP    string `json:"local_ip" gorm:"not null" validate:"required,ip4_addr"`
	LocalPort  int    `json:"local_port" gorm:"default:0"`
	SharedIP   string `json:"shared_ip" gorm:"index;not null"`
	SharedPort int    `json:"shared_port" gorm:"default:0"`
	Protocol   string `json:"protocol" gorm:"not null" validate:"required,oneof=tcp udp both"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	ServiceProtocolTCP  = "tcp"
	ServiceProtocolUDP  = "udp"
	ServiceProtocolBoth = "both"
)

// Protocols expands "both" into the concrete protocol list a NAT rule
// must be emitted for.
func (s *PublishedService) Protocols() []string {
	if s.Protocol == ServiceProtocolBoth {
		return []string{ServiceProtocolTCP, ServiceProtocolUDP}
	}
	return []string{s.Protocol}
}
