package model

import "time"

// ConfigurationHistory records one generated configuration snapshot for a
// peer, independent of whether or when it was pushed.
type ConfigurationHistory struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	PeerID      string     `json:"peer_id" gorm:"index;not null"`
	ConfigType  string     `json:"config_type" gorm:"not null" validate:"required,oneof=wireguard mikrotik-script mikrotik-api iptables nftables"`
	ConfigText  string     `json:"config_text" gorm:"type:text;not null"`
	GeneratedAt time.Time  `json:"generated_at"`
	AppliedAt   *time.Time `json:"applied_at" gorm:""`
}

const (
	ConfigTypeWireGuard      = "wireguard"
	ConfigTypeMikrotikScript = "mikrotik-script"
	ConfigTypeMikrotikAPI    = "mikrotik-api"
	ConfigTypeIPTables       = "iptables"
	ConfigTypeNFTables       = "nftables"
)
