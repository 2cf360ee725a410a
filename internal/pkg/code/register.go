package code

func init() {
	register(ErrUserAlreadyExist, 400, "User already exists")
	register(ErrEmailAlreadyExist, 400, "Email already exists")
	register(ErrUserNotFound, 404, "User not found")
	register(ErrUserNotActive, 403, "User account is not active")
	register(ErrSuccess, 200, "OK")
	register(ErrUnknown, 500, "Server error: Unknown server error")
	register(ErrBind, 400, "Error occurred while binding the request body to the struct")
	register(ErrValidation, 400, "Validation failed")
	register(ErrTokenInvalid, 401, "Token invalid")
	register(ErrDatabase, 500, "Server error: Database error")
	register(ErrEncrypt, 401, "Error occurred while encrypting the user password")
	register(ErrSignatureInvalid, 401, "Signature is invalid")
	register(ErrExpired, 401, "Token expired")
	register(ErrInvalidAuthHeader, 401, "Invalid authorization header")
	register(ErrMissingHeader, 401, "The `Authorization` header was empty")
	register(ErrPasswordIncorrect, 401, "Password was incorrect")
	register(ErrPermissionDenied, 403, "Permission denied")
	register(ErrEncodingFailed, 500, "Server error: Encoding failed due to an error with the data")
	register(ErrDecodingFailed, 500, "Server error: Decoding failed due to an error with the data")
	register(ErrInvalidJSON, 500, "Server error:Data is not valid JSON")
	register(ErrEncodingJSON, 500, "Server error: JSON data could not be encoded")
	register(ErrDecodingJSON, 500, "Server error: JSON data could not be decoded")
	register(ErrInvalidYaml, 500, "Server error:Data is not valid Yaml")
	register(ErrEncodingYaml, 500, "Server error: Yaml data could not be encoded")
	register(ErrDecodingYaml, 500, "Server error: Yaml data could not be decoded")
	register(ErrStoreNotInitialized, 500, "Server error: Store not initialized")

	// IP allocation errors
	register(ErrIPNotIPv4, 400, "IP address is not IPv4")
	register(ErrIPOutOfRange, 400, "IP address is out of allocation prefix range")
	register(ErrIPIsNetworkAddress, 400, "IP address is a network address")
	register(ErrIPIsBroadcastAddress, 400, "IP address is a broadcast address")
	register(ErrIPIsServerIP, 400, "IP address is the server/gateway IP")
	register(ErrIPAlreadyInUse, 400, "IP address is already in use")
	register(ErrPoolExhausted, 400, "No available IP addresses remain in the pool")
	register(ErrIPReservationConflict, 400, "Requested IP is outside the pool or already allocated")

	// WireGuard key errors
	register(ErrWGPrivateKeyInvalid, 400, "Invalid WireGuard private key")
	register(ErrWGKeyGenerationFailed, 500, "Failed to generate WireGuard key")
	register(ErrWGPublicKeyGenerationFailed, 500, "Failed to generate public key from private key")

	// WAN errors
	register(ErrWANNotFound, 404, "WAN not found")
	register(ErrWANNameAlreadyExists, 400, "A WAN with this name already exists")
	register(ErrWANInvalidRange, 400, "tunnel_ip_range or shared_services_range is not a valid CIDR")
	register(ErrWANRangesOverlap, 400, "tunnel_ip_range and shared_services_range overlap")

	// Peer errors
	register(ErrPeerNotFound, 404, "Peer not found")
	register(ErrPeerPublicKeyInvalid, 400, "public_key is not well-formed")
	register(ErrPeerTunnelIPOutsideWAN, 400, "tunnel_ip does not lie inside the WAN's tunnel range")
	register(ErrPeerNotManaged, 400, "Operation requires a managed-device peer")
	register(ErrPeerEndpointInvalid, 400, "endpoint is not a valid host:port")
	register(ErrPeerCredentialMissing, 400, "Managed peer is missing credentials for its auth_method")
	register(ErrPeerSecretUnreadable, 500, "Stored credential could not be decrypted; re-enter credentials")

	// Local subnet errors
	register(ErrSubnetInvalidCIDR, 400, "Invalid CIDR")
	register(ErrSubnetNATTranslationMismatch, 400, "nat_translated_cidr prefix length must match cidr")
	register(ErrSubnetNotFound, 404, "Local subnet not found")

	// Published service errors
	register(ErrServiceNotFound, 404, "Published service not found")
	register(ErrServiceSharedIPConflict, 400, "shared_ip is already in use within this WAN")
	register(ErrServiceInvalidProtocol, 400, "protocol must be one of tcp, udp, both")

	// Conflict detector errors
	register(ErrSubnetConflictCritical, 400, "One or more critical subnet conflicts were detected")
	register(ErrNoNATSubnetAvailable, 500, "No candidate NAT translation subnet is available")

	// Configuration generator errors
	register(ErrConfigGenerationFailed, 500, "Failed to generate peer configuration")
	register(ErrUnsupportedConfigType, 400, "Unsupported config_type for this peer")

	// Router API client errors
	register(ErrRouterAuthFailed, 401, "Managed device rejected the configured credentials")
	register(ErrRouterUnreachable, 502, "Managed device connection was refused or reset")
	register(ErrRouterTimeout, 504, "Managed device call did not complete within the deadline")
	register(ErrRouterProtocolError, 502, "Managed device returned an unexpected response")
	register(ErrRouterScriptExecUnavailable, 501, "Managed device has no working script-exec surface")

	// Deployment engine errors
	register(ErrJobNotFound, 404, "Deployment job not found")
	register(ErrJobAlreadyRunning, 400, "A pending or running job already exists for this peer")
	register(ErrJobNotCancellable, 400, "Job is already in a terminal state")
	register(ErrJobNotDeletable, 400, "Non-terminal jobs cannot be deleted")
	register(ErrDeployApprovalRequired, 400, "Deploy requires approve=true")
	register(ErrNoHistoryToRevert, 404, "No mikrotik-api configuration history exists to revert to")
	register(ErrPreflightFailed, 400, "Preflight reported blocking issues")
	register(ErrVerifyDrift, 200, "Verify completed with drift from desired state")
	register(ErrJobNotRetryable, 400, "Only failed jobs may be retried")

	// Secret envelope errors
	register(ErrSecretEnvelopeNotConfigured, 500, "Encryption key/salt are not configured")
	register(ErrSecretDecryptFailed, 500, "Ciphertext could not be decrypted with the configured key")
}
