package security

import (
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Identity is the tenant context the core trusts on every call: which
// company schema and which worker the token speaks for. Role distinguishes
// workers from operators (who may acknowledge alerts and pull reports).
type Identity struct {
	WorkerID  uint   `json:"worker_id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}

type IdentityClaims struct {
	Identity
	jwt.RegisteredClaims
}

const (
	RoleWorker   = "worker"
	RoleOperator = "operator"
)

// CreateIdentityToken mints an HS256 token for a worker or operator. The
// secret is base64 encoded, matching how it is stored in SSM.
func CreateIdentityToken(identity *Identity, base64Secret string, expiresInSeconds int64) (string, error) {
	secretBytes, err := base64.StdEncoding.DecodeString(base64Secret)
	if err != nil {
		return "", err
	}
	claims := IdentityClaims{
		Identity: *identity,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "shiftguard",
			Audience:  []string{"*.shiftguard.com"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(expiresInSeconds) * time.Second)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretBytes)
}
