package jwtx

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"os"
)

// Keypair is the Ed25519 signing keypair for session tokens.
type Keypair struct {
	Private ed25519.PrivateKey
	Public  ed25519.PublicKey
}

// GenerateKeypair creates a fresh Ed25519 keypair. With no key file
// configured the service runs on an ephemeral keypair, which invalidates
// outstanding tokens on restart.
func GenerateKeypair() (Keypair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return Keypair{}, fmt.Errorf("jwtx: generate keypair: %w", err)
	}
	return Keypair{Private: priv, Public: pub}, nil
}

// LoadKeypair reads a PKCS8 PEM-encoded Ed25519 private key from path.
func LoadKeypair(path string) (Keypair, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Keypair{}, fmt.Errorf("jwtx: read key file: %w", err)
	}

	block, _ := pem.Decode(raw)
	if block == nil {
		return Keypair{}, errors.New("jwtx: invalid PEM in key file")
	}
	if block.Type != "PRIVATE KEY" {
		return Keypair{}, fmt.Errorf("jwtx: expected PRIVATE KEY block, got %q (Ed25519 requires PKCS8)", block.Type)
	}

	parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
	if err != nil {
		return Keypair{}, fmt.Errorf("jwtx: parse PKCS8: %w", err)
	}

	priv, ok := parsed.(ed25519.PrivateKey)
	if !ok {
		return Keypair{}, errors.New("jwtx: key file does not hold an Ed25519 key")
	}

	return Keypair{
		Private: priv,
		Public:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// EncodePEM renders the private key as a PKCS8 PEM block, the format
// LoadKeypair expects.
func (k Keypair) EncodePEM() ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(k.Private)
	if err != nil {
		return nil, fmt.Errorf("jwtx: marshal PKCS8: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil
}

// Validate sanity-checks key material before first use.
func (k Keypair) Validate() error {
	if len(k.Private) != ed25519.PrivateKeySize {
		return errors.New("jwtx: invalid Ed25519 private key size")
	}
	if len(k.Public) != ed25519.PublicKeySize {
		return errors.New("jwtx: invalid Ed25519 public key size")
	}
	return nil
}
