package model

import "time"

// Peer is one endpoint of a WAN overlay. Managed-device peers additionally
// carry router-management fields; the rest are nil/zero for unmanaged peers.
type Peer struct {
	ID    string `json:"id" gorm:"primaryKey"`
	WANID string `json:"wan_id" gorm:"index;not null"`
	Name  string `json:"name" gorm:"not null" validate:"required,min=1,max=64"`
	Type  string `json:"type" gorm:"not null" validate:"required,oneof=mikrotik generic-router server client hub"`

	// WireGuard identity.
	PublicKey           string `json:"public_key" gorm:""`
	PrivateKeyEncrypted string `json:"-" gorm:"column:private_key_encrypted"`
	TunnelIP            string `json:"tunnel_ip" gorm:"index;not null"`
	Endpoint            string `json:"endpoint" gorm:""`
	ListenPort          int    `json:"listen_port" gorm:"default:51820"`
	PersistentKeepalive int    `json:"persistent_keepalive" gorm:"default:0"`

	// Managed-device fields. Zero/empty when Type is not a managed kind.
	ManagementIP      string `json:"management_ip" gorm:""`
	APIPort           int    `json:"api_port" gorm:"default:0"`
	AuthMethod        string `json:"auth_method" gorm:"" validate:"omitempty,oneof=password token"`
	Username          string `json:"username" gorm:""`
	PasswordEncrypted string `json:"-" gorm:"column:password_encrypted"`
	TokenEncrypted    string `json:"-" gorm:"column:token_encrypted"`
	UseSSL            bool   `json:"use_ssl" gorm:"default:false"`
	VerifyCert        bool   `json:"verify_cert" gorm:"default:true"`
	AutoDeploy        bool   `json:"auto_deploy" gorm:"default:false"`
	InterfaceName     string `json:"interface_name" gorm:"default:wg-wan-overlay"`

	// Observed fields, updated by the Router API Client / Deployment Engine.
	APIStatus      string     `json:"api_status" gorm:"default:unknown" validate:"omitempty,oneof=unknown connected auth-failed unreachable"`
	RouterIdentity string     `json:"router_identity" gorm:""`
	RouterOSVer    string     `json:"routeros_version" gorm:""`
	LastAPICheck   *time.Time `json:"last_api_check" gorm:""`
	IsOnline       bool       `json:"is_online" gorm:"default:false"`
	LastSeen       *time.Time `json:"last_seen" gorm:""`

	Metadata PeerMetadata `json:"peer_metadata" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	PeerTypeMikrotik      = "mikrotik"
	PeerTypeGenericRouter = "generic-router"
	PeerTypeServer        = "server"
	PeerTypeClient        = "client"
	PeerTypeHub           = "hub"

	PeerAuthMethodPassword = "password"
	PeerAuthMethodToken    = "token"

	PeerAPIStatusUnknown     = "unknown"
	PeerAPIStatusConnected   = "connected"
	PeerAPIStatusAuthFailed  = "auth-failed"
	PeerAPIStatusUnreachable = "unreachable"
)

// IsManaged reports whether the peer's router configuration is driven
// directly by this system over the vendor API.
func (p *Peer) IsManaged() bool {
	return p.Type == PeerTypeMikrotik
}
