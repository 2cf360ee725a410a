package options

import (
	"fmt"

	"github.com/spf13/pflag"
)

// SecretOptions configures the symmetric envelope used to encrypt peer
// credentials (router password/token, WireGuard private keys) at rest.
type SecretOptions struct {
	EncryptionKey  string `json:"encryption-key" mapstructure:"encryption-key"`
	EncryptionSalt string `json:"encryption-salt" mapstructure:"encryption-salt"`
}

func NewSecretOptions() *SecretOptions {
	return &SecretOptions{}
}

func (s *SecretOptions) Validate() []error {
	var errs []error
	if s.EncryptionKey == "" {
		errs = append(errs, fmt.Errorf("secret.encryption-key is required"))
	}
	if s.EncryptionSalt == "" {
		errs = append(errs, fmt.Errorf("secret.encryption-salt is required"))
	}
	return errs
}

func (s *SecretOptions) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&s.EncryptionKey, "secret.encryption-key", s.EncryptionKey, "Key used to derive the AES-256-GCM envelope that encrypts stored credentials")
	fs.StringVar(&s.EncryptionSalt, "secret.encryption-salt", s.EncryptionSalt, "Salt used alongside secret.encryption-key in the PBKDF2 key derivation")
}
