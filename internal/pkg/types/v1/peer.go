package v1

import "time"

// CreatePeerRequest registers a new peer on a WAN. Managed-device fields
// are only meaningful when type is a managed kind (currently "mikrotik");
// tunnel_ip is optional — when empty the allocator picks the first free
// address in the WAN's tunnel range.
// swagger:model
type CreatePeerRequest struct {
	WANID               string `json:"wan_id" binding:"required"`
	Name                string `json:"name" binding:"required"`
	Type                string `json:"type" binding:"required"`
	TunnelIP            string `json:"tunnel_ip"`
	Endpoint            string `json:"endpoint"`
	ListenPort          int    `json:"listen_port"`
	PersistentKeepalive int    `json:"persistent_keepalive"`
	RouteAllTraffic     bool   `json:"route_all_traffic"`

	ManagementIP  string `json:"management_ip"`
	APIPort       int    `json:"api_port"`
	AuthMethod    string `json:"auth_method"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	Token         string `json:"token"`
	UseSSL        bool   `json:"use_ssl"`
	VerifyCert    bool   `json:"verify_cert"`
	AutoDeploy    bool   `json:"auto_deploy"`
	InterfaceName string `json:"interface_name"`
}

// UpdatePeerRequest partially updates a peer. wan_id, type and tunnel_ip
// are immutable after creation (re-create the peer to change them).
// swagger:model
type UpdatePeerRequest struct {
	Name                *string `json:"name"`
	Endpoint            *string `json:"endpoint"`
	ListenPort          *int    `json:"listen_port"`
	PersistentKeepalive *int    `json:"persistent_keepalive"`
	RouteAllTraffic     *bool   `json:"route_all_traffic"`

	ManagementIP  *string `json:"management_ip"`
	APIPort       *int    `json:"api_port"`
	AuthMethod    *string `json:"auth_method"`
	Username      *string `json:"username"`
	Password      *string `json:"password"`
	Token         *string `json:"token"`
	UseSSL        *bool   `json:"use_ssl"`
	VerifyCert    *bool   `json:"verify_cert"`
	AutoDeploy    *bool   `json:"auto_deploy"`
	InterfaceName *string `json:"interface_name"`
}

// PeerResponse is the public representation of a peer. Credentials and
// the private key never leave the server in any form.
// swagger:model
type PeerResponse struct {
	ID                  string `json:"id"`
	WANID               string `json:"wan_id"`
	Name                string `json:"name"`
	Type                string `json:"type"`
	PublicKey           string `json:"public_key"`
	TunnelIP            string `json:"tunnel_ip"`
	Endpoint            string `json:"endpoint"`
	ListenPort          int    `json:"listen_port"`
	PersistentKeepalive int    `json:"persistent_keepalive"`
	RouteAllTraffic     bool   `json:"route_all_traffic"`
	NeedsConfigRefresh  bool   `json:"needs_config_refresh"`

	ManagementIP  string `json:"management_ip,omitempty"`
	APIPort       int    `json:"api_port,omitempty"`
	AuthMethod    string `json:"auth_method,omitempty"`
	Username      string `json:"username,omitempty"`
	UseSSL        bool   `json:"use_ssl,omitempty"`
	VerifyCert    bool   `json:"verify_cert,omitempty"`
	AutoDeploy    bool   `json:"auto_deploy,omitempty"`
	InterfaceName string `json:"interface_name,omitempty"`

	APIStatus      string     `json:"api_status,omitempty"`
	RouterIdentity string     `json:"router_identity,omitempty"`
	RouterOSVer    string     `json:"routeros_version,omitempty"`
	LastAPICheck   *time.Time `json:"last_api_check,omitempty"`
	IsOnline       bool       `json:"is_online"`
	LastSeen       *time.Time `json:"last_seen,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ListPeersResponse is a paginated list of peers.
// swagger:model
type ListPeersResponse struct {
	Items []PeerResponse `json:"items"`
	Total int64          `json:"total"`
}

// PeerConfigResponse carries a rendered peer configuration, in whatever
// config_type was requested.
// swagger:model
type PeerConfigResponse struct {
	ConfigType string `json:"config_type"`
	ConfigText string `json:"config_text"`
}

// DeployRequest gates an apply with an explicit confirmation step; when
// approve is false the server returns the pending plan instead of
// writing anything.
// swagger:model
type DeployRequest struct {
	Approve bool `json:"approve"`
}

// RegenerateKeysResponse returns the new public key after an in-place
// keypair rotation.
// swagger:model
type RegenerateKeysResponse struct {
	PublicKey string `json:"public_key"`
}
