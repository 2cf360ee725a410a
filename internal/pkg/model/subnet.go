package model

import "time"

// LocalSubnet is a CIDR a peer advertises into the overlay.
type LocalSubnet struct {
	ID                string `json:"id" gorm:"primaryKey"`
	PeerID            string `json:"peer_id" gorm:"index;not null"`
	CIDR              string `json:"cidr" gorm:"not null" validate:"required,cidrv4"`
	IsRouted          bool   `json:"is_routed" gorm:"default:true"`
	NATEnabled        bool   `json:"nat_enabled" gorm:"default:false"`
	NATTranslatedCIDR string `json:"nat_translated_cidr" gorm:""`
	Description       string `json:"description" gorm:""`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
