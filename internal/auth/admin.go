package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// ErrBadCredentials is returned for a wrong admin password.
var ErrBadCredentials = errors.New("invalid credentials")

// AdminGate checks the admin secret. Only its bcrypt hash is kept in memory.
type AdminGate struct {
	hash   []byte
	issuer *Issuer
}

// NewAdminGate hashes password. It fails on an empty password so the service
// cannot run with an open admin surface.
func NewAdminGate(password string, issuer *Issuer) (*AdminGate, error) {
	if password == "" {
		return nil, errors.New("admin password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &AdminGate{hash: hash, issuer: issuer}, nil
}

// Login exchanges the admin password for an admin token.
func (g *AdminGate) Login(password string) (string, error) {
	if bcrypt.CompareHashAndPassword(g.hash, []byte(password)) != nil {
		return "", ErrBadCredentials
	}
	return g.issuer.Issue(KindAdmin, KindAdmin)
}
