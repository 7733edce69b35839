// Package auth checks operator credentials against a static map loaded from
// the secrets file at startup. Exact, case-sensitive matching; no hashing,
// lockout, or expiry — the credential store is the deployment's problem, and
// the plaintext comparison is a known gap inherited from the product, not a
// pattern to copy elsewhere.
package auth

import (
	"github.com/opsdesk/ticketera/internal/errs"
)

type Authenticator struct {
	users map[string]string
}

// New builds an authenticator from a username→password map. An empty map is a
// startup error: the service must not come up with nobody able to log in.
func New(users map[string]string) (*Authenticator, error) {
	if len(users) == 0 {
		return nil, &errs.ConfigError{Reason: "no users configured"}
	}
	m := make(map[string]string, len(users))
	for u, p := range users {
		m[u] = p
	}
	return &Authenticator{users: m}, nil
}

// Authenticate returns nil only for an exact username+password match.
func (a *Authenticator) Authenticate(username, password string) error {
	stored, ok := a.users[username]
	if !ok || stored != password {
		return errs.ErrInvalidCredentials
	}
	return nil
}
