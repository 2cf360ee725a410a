package deploy

import (
	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
	"github.com/wanoverlay/manager/internal/pkg/model"
	"github.com/wanoverlay/manager/internal/pkg/routerapi"
	"github.com/wanoverlay/manager/internal/pkg/secret"
)

// connectionParams decrypts a managed peer's stored credential and
// builds the Router API Client's connection parameters. The decrypted
// secret lives only for the duration of the call.
func connectionParams(peer *model.Peer, envelope *secret.Envelope) (routerapi.ConnectionParams, error) {
	if !peer.IsManaged() {
		return routerapi.ConnectionParams{}, errors.WithCode(code.ErrPeerNotManaged, "peer %s is not a managed device", peer.ID)
	}

	params := routerapi.ConnectionParams{
		Host:       peer.ManagementIP,
		Port:       peer.APIPort,
		AuthMethod: peer.AuthMethod,
		Username:   peer.Username,
		UseSSL:     peer.UseSSL,
		VerifyCert: peer.VerifyCert,
	}

	switch peer.AuthMethod {
	case model.PeerAuthMethodToken:
		token, err := envelope.Decrypt(peer.TokenEncrypted)
		if err != nil {
			return routerapi.ConnectionParams{}, errors.WithCode(code.ErrPeerSecretUnreadable, "decrypt peer token: %v", err)
		}
		params.Token = token
	default:
		password, err := envelope.Decrypt(peer.PasswordEncrypted)
		if err != nil {
			return routerapi.ConnectionParams{}, errors.WithCode(code.ErrPeerSecretUnreadable, "decrypt peer password: %v", err)
		}
		params.Password = password
	}

	return params, nil
}
