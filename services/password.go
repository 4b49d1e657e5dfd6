package services

import (
	"crypto/subtle"

	"DocRegistry/config"

	"golang.org/x/crypto/bcrypt"
)

// PasswordPolicy encodes new passwords and verifies login attempts.
//
// The plain scheme stores the secret verbatim and compares by exact equality,
// which is how existing accounts were provisioned. The bcrypt scheme hashes
// new secrets. Verification accepts a bcrypt hash under either scheme, so
// accounts migrate as their passwords are rewritten.
type PasswordPolicy struct {
	Scheme string
}

func NewPasswordPolicy(scheme string) PasswordPolicy {
	if scheme != config.PasswordSchemeBcrypt {
		scheme = config.PasswordSchemePlain
	}
	return PasswordPolicy{Scheme: scheme}
}

func (p PasswordPolicy) Encode(plain string) (string, error) {
	if p.Scheme != config.PasswordSchemeBcrypt {
		return plain, nil
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	return string(b), err
}

func (p PasswordPolicy) Matches(stored, provided string) bool {
	if _, err := bcrypt.Cost([]byte(stored)); err == nil {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(provided)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(provided)) == 1
}
