package code

// WAN errors (121001-121004)
const (
	// ErrWANNotFound - 404: WAN not found.
	ErrWANNotFound int = iota + 121001

	// ErrWANNameAlreadyExists - 400: a WAN with this name already exists.
	ErrWANNameAlreadyExists

	// ErrWANInvalidRange - 400: tunnel_ip_range or shared_services_range does not parse as a CIDR.
	ErrWANInvalidRange

	// ErrWANRangesOverlap - 400: tunnel_ip_range and shared_services_range overlap.
	ErrWANRangesOverlap
)

// Peer errors (121010-121016)
const (
	// ErrPeerNotFound - 404: peer not found.
	ErrPeerNotFound int = iota + 121010

	// ErrPeerPublicKeyInvalid - 400: public_key is not well-formed base64-32.
	ErrPeerPublicKeyInvalid

	// ErrPeerTunnelIPOutsideWAN - 400: tunnel_ip does not lie inside the WAN's tunnel range.
	ErrPeerTunnelIPOutsideWAN

	// ErrPeerNotManaged - 400: operation requires a managed-device peer.
	ErrPeerNotManaged

	// ErrPeerEndpointInvalid - 400: endpoint is not a valid "host:port" / "[ipv6]:port".
	ErrPeerEndpointInvalid

	// ErrPeerCredentialMissing - 400: managed peer missing password/token for its auth_method.
	ErrPeerCredentialMissing

	// ErrPeerSecretUnreadable - 500: stored credential could not be decrypted.
	ErrPeerSecretUnreadable
)

// Local subnet errors (121020-121022)
const (
	// ErrSubnetInvalidCIDR - 400: subnet CIDR does not parse.
	ErrSubnetInvalidCIDR int = iota + 121020

	// ErrSubnetNATTranslationMismatch - 400: nat_translated_cidr prefix length differs from cidr.
	ErrSubnetNATTranslationMismatch

	// ErrSubnetNotFound - 404: local subnet not found.
	ErrSubnetNotFound
)

// Published service errors (121030-121032)
const (
	// ErrServiceNotFound - 404: published service not found.
	ErrServiceNotFound int = iota + 121030

	// ErrServiceSharedIPConflict - 400: shared_ip already in use within the WAN.
	ErrServiceSharedIPConflict

	// ErrServiceInvalidProtocol - 400: protocol is not one of tcp/udp/both.
	ErrServiceInvalidProtocol
)

// Subnet conflict errors (121040-121041)
const (
	// ErrSubnetConflictCritical - 400: one or more critical subnet conflicts block the operation.
	ErrSubnetConflictCritical int = iota + 121040

	// ErrNoNATSubnetAvailable - 500: no candidate NAT translation subnet could be synthesized.
	ErrNoNATSubnetAvailable
)

// Configuration generator errors (121050-121051)
const (
	// ErrConfigGenerationFailed - 500: failed to generate peer configuration.
	ErrConfigGenerationFailed int = iota + 121050

	// ErrUnsupportedConfigType - 400: requested config_type is not supported for this peer.
	ErrUnsupportedConfigType
)

// Router API client errors (121060-121064)
const (
	// ErrRouterAuthFailed - 401: managed device rejected the configured credentials.
	ErrRouterAuthFailed int = iota + 121060

	// ErrRouterUnreachable - 502: managed device connection was refused or reset.
	ErrRouterUnreachable

	// ErrRouterTimeout - 504: managed device call did not complete within the deadline.
	ErrRouterTimeout

	// ErrRouterProtocolError - 502: managed device returned an unexpected response.
	ErrRouterProtocolError

	// ErrRouterScriptExecUnavailable - 501: device has no working script-exec surface.
	ErrRouterScriptExecUnavailable
)

// Deployment engine errors (121070-121077)
const (
	// ErrJobNotFound - 404: deployment job not found.
	ErrJobNotFound int = iota + 121070

	// ErrJobAlreadyRunning - 400: a pending/running job already exists for this peer.
	ErrJobAlreadyRunning

	// ErrJobNotCancellable - 400: job is already in a terminal state.
	ErrJobNotCancellable

	// ErrJobNotDeletable - 400: non-terminal jobs cannot be deleted.
	ErrJobNotDeletable

	// ErrDeployApprovalRequired - 400: deploy requires approve=true and none was given.
	ErrDeployApprovalRequired

	// ErrNoHistoryToRevert - 404: no mikrotik-api configuration history exists to revert to.
	ErrNoHistoryToRevert

	// ErrPreflightFailed - 400: preflight reported blocking issues.
	ErrPreflightFailed

	// ErrVerifyDrift - 200: verify completed but reported drift (not a failure, informational).
	ErrVerifyDrift

	// ErrJobNotRetryable - 400: only failed jobs may be retried.
	ErrJobNotRetryable
)

// Secret envelope errors (121080-121081)
const (
	// ErrSecretEnvelopeNotConfigured - 500: encryption key/salt missing at startup.
	ErrSecretEnvelopeNotConfigured int = iota + 121080

	// ErrSecretDecryptFailed - 500: ciphertext could not be decrypted with the configured key.
	ErrSecretDecryptFailed
)
