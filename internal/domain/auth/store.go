package auth

import (
	"errors"
	"strings"
)

var credentialHeader = []string{"UserId", "Password", "Role", "Email"}

// Credential is one row of user_credentials.csv. Password holds a bcrypt hash
// once the user has logged in at least once.
type Credential struct {
	UserID   string `json:"userId"`
	Password string `json:"-"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
}

type CredentialCodec struct{}

func (CredentialCodec) Header() []string {
	return credentialHeader
}

func (CredentialCodec) Encode(c Credential) []string {
	return []string{c.UserID, c.Password, c.Role, c.Email}
}

func (CredentialCodec) Decode(_ []string, row []string) (Credential, error) {
	c := Credential{
		UserID:   strings.TrimSpace(row[0]),
		Password: row[1],
		Role:     strings.TrimSpace(row[2]),
		Email:    strings.TrimSpace(row[3]),
	}
	if c.UserID == "" || c.Password == "" {
		return Credential{}, errors.New("user id and password are required")
	}
	return c, nil
}

func (CredentialCodec) Key(c Credential) string {
	return c.UserID
}
