package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"

	"github.com/IvanM63/backend-abb-analytic/pkg/dbmodels"
)

// AuthClaims is the custom claim set carried by a session token.
type AuthClaims struct {
	Email string   `json:"email"`
	Roles []string `json:"roles,omitempty"`
}

// SessionInfo is what middleware attaches to a request after a token
// was verified.
type SessionInfo struct {
	UserID uint64
	Email  string
	Roles  []string
}

// GenerateAuthToken signs an HS256 session token for the user, valid
// for the configured validity (24h by default).
func (m *AuthModel) GenerateAuthToken(user *dbmodels.User) (string, error) {
	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte(m.app.Client.JwtSecret)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	cl := jwt.Claims{
		Subject:  fmt.Sprintf("%d", user.ID),
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(*m.app.Client.TokenValidity)),
	}
	custom := AuthClaims{
		Email: user.Email,
		Roles: roleNames(user.Roles),
	}

	return jwt.Signed(sig).Claims(cl).Claims(custom).Serialize()
}

// VerifyAuthToken validates signature and expiry and resolves the
// session info.
func (m *AuthModel) VerifyAuthToken(token string) (*SessionInfo, error) {
	tok, err := jwt.ParseSigned(token, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return nil, err
	}

	cl := jwt.Claims{}
	custom := AuthClaims{}
	if err = tok.Claims([]byte(m.app.Client.JwtSecret), &cl, &custom); err != nil {
		return nil, err
	}
	if err = cl.Validate(jwt.Expected{Time: time.Now().UTC()}); err != nil {
		return nil, err
	}

	userId, err := strconv.ParseUint(cl.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid token subject: %w", err)
	}

	return &SessionInfo{
		UserID: userId,
		Email:  custom.Email,
		Roles:  custom.Roles,
	}, nil
}

func roleNames(roles []dbmodels.Role) []string {
	var names []string
	for _, r := range roles {
		names = append(names, r.Name)
	}
	return names
}
