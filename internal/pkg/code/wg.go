package code

// IP allocation errors (120001-120006)
const (
	// ErrIPNotIPv4 - 400: IP address is not IPv4.
	ErrIPNotIPv4 int = iota + 120001

	// ErrIPOutOfRange - 400: IP address is out of allocation prefix range.
	ErrIPOutOfRange

	// ErrIPIsNetworkAddress - 400: IP address is the network address.
	ErrIPIsNetworkAddress

	// ErrIPIsBroadcastAddress - 400: IP address is the broadcast address.
	ErrIPIsBroadcastAddress

	// ErrIPIsServerIP - 400: IP address is the server/gateway IP.
	ErrIPIsServerIP

	// ErrIPAlreadyInUse - 400: IP address is already allocated.
	ErrIPAlreadyInUse
)

// Pool exhaustion and reservation errors (120010-120011)
const (
	// ErrPoolExhausted - 400: no available host addresses remain in the pool.
	ErrPoolExhausted int = iota + 120010

	// ErrIPReservationConflict - 400: requested IP is outside the pool or already allocated.
	ErrIPReservationConflict
)

// WireGuard key errors (120020-120022)
const (
	// ErrWGPrivateKeyInvalid - 400: Invalid WireGuard private key.
	ErrWGPrivateKeyInvalid int = iota + 120020

	// ErrWGKeyGenerationFailed - 500: Failed to generate WireGuard key material.
	ErrWGKeyGenerationFailed

	// ErrWGPublicKeyGenerationFailed - 500: Failed to derive public key from private key.
	ErrWGPublicKeyGenerationFailed
)
