package security

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// KeyPair holds the process-wide RSA keys: private for signing, public for
// verification. Loaded once at startup and read-only afterwards.
type KeyPair struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
}

// LoadKeyPair reads a PKCS#8 private key and an X.509 SubjectPublicKeyInfo
// public key, both PEM-encoded. Unreadable or malformed key material is a
// startup-fatal error for the caller.
func LoadKeyPair(privateKeyPath, publicKeyPath string) (*KeyPair, error) {
	privPEM, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("security: failed to read private key from %s: %w", privateKeyPath, err)
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("security: failed to parse private key: %w", err)
	}

	pubPEM, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("security: failed to read public key from %s: %w", publicKeyPath, err)
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("security: failed to parse public key: %w", err)
	}

	return &KeyPair{privateKey: privateKey, publicKey: publicKey}, nil
}

// NewKeyPair wraps already-parsed keys. Used by tests and by callers that
// manage key material themselves.
func NewKeyPair(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey) *KeyPair {
	return &KeyPair{privateKey: privateKey, publicKey: publicKey}
}

func (k *KeyPair) Private() *rsa.PrivateKey { return k.privateKey }
func (k *KeyPair) Public() *rsa.PublicKey   { return k.publicKey }
