// Package middleware contains the gin middleware chain: session token
// verification, principal resolution and permission gates.
package middleware

import (
	"net/http"
	"strings"

	"leadsdesk/internal/auth"
	"leadsdesk/internal/model"
	"leadsdesk/internal/repository"
	"leadsdesk/pkg/util"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// Authenticate verifies the bearer token and resolves the principal from
// the store. The principal is rebuilt on every request, so permission
// changes and account deletion take effect immediately regardless of
// outstanding tokens.
func Authenticate(tokens *auth.TokenIssuer, users repository.IUserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortUnauthorized(c)
			return
		}

		userID, err := tokens.Verify(token)
		if err != nil {
			abortUnauthorized(c)
			return
		}
		objID, err := util.ParseObjectID(userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := users.FindByID(c.Request.Context(), objID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(principalKey, user.Principal())
		c.Next()
	}
}

// PrincipalFrom returns the principal resolved by Authenticate.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// extractBearerToken pulls the token from an "Authorization: Bearer x"
// header. Scheme matching is case-insensitive.
func extractBearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// abortUnauthorized replies with a uniform 401. Missing, malformed and
// expired credentials are indistinguishable to the caller.
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, model.NewErrorResponse("Not authorized, token failed"))
}
