package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"shiftguard.com/shiftguard/security"
	"shiftguard.com/shiftguard/web/common"
)

const identityKey = "identity"

func parseJwt(tokenStr string, jwtSecret []byte) (*security.IdentityClaims, error) {
	claims := &security.IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// Authentication checks for a valid Bearer token (or the application cookie)
// and stores the decoded identity on the context. The core trusts the
// worker/company context carried here and performs no authorization itself.
func Authentication(jwtSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ""

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			cookie, err := c.Cookie("shiftguard.ApplicationCookie")
			if err != nil {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = cookie
		} else {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			tokenStr = parts[1]
		}

		claims, err := parseJwt(tokenStr, jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid or expired token"))
			return
		}

		c.Set(identityKey, &claims.Identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity set by Authentication, or nil when
// the route is unprotected.
func CurrentIdentity(c *gin.Context) *security.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*security.Identity)
	return id
}
