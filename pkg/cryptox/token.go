package cryptox

import (
	"crypto/rand"
	"fmt"
)

// InviteCodeLength is the length of generated invite codes. Eight
// characters over a 32-symbol alphabet gives 40 bits of entropy, which is
// unguessable in practice for a rate-limited signup endpoint while staying
// short enough to read over the phone.
const InviteCodeLength = 8

// inviteAlphabet is Crockford base32: uppercase alphanumerics minus the
// easily-confused I, L, O and U. Codes are case-sensitive exact-match
// tokens, so the alphabet also defines their canonical form.
const inviteAlphabet = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewInviteCode generates a random invite code.
func NewInviteCode() (string, error) {
	buf := make([]byte, InviteCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: generate invite code: %w", err)
	}

	for i, b := range buf {
		buf[i] = inviteAlphabet[int(b)%len(inviteAlphabet)]
	}
	return string(buf), nil
}
