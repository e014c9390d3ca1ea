package middleware

import (
	"net/http"
	"strings"

	"reviewhub/internal/microservices/http-api/policy"
	"reviewhub/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// Authenticate resolves the bearer token, when one is sent, into the actor
// for the request. Requests without an Authorization header continue as
// anonymous; a malformed or invalid token is rejected with 401.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Set(actorKey, policy.Anonymous())
			c.Next()
			return
		}

		// Extract token (format: "Bearer <token>")
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header format"})
			return
		}

		actor, err := authService.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			if service.IsTokenError(err) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
				return
			}
			_ = c.Error(err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the actor set by Authenticate, anonymous when unset.
func ActorFrom(c *gin.Context) policy.Actor {
	if v, ok := c.Get(actorKey); ok {
		if actor, ok := v.(policy.Actor); ok {
			return actor
		}
	}
	return policy.Anonymous()
}

// RequirePolicy runs a request-level check before the handler. A rejected
// anonymous actor gets 401, a rejected authenticated one 403.
func RequirePolicy(check policy.RequestCheck) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFrom(c)
		decision := check(actor, c.Request.Method)
		if decision.Allowed {
			c.Next()
			return
		}

		status := http.StatusForbidden
		if !actor.Authenticated {
			status = http.StatusUnauthorized
		}
		c.AbortWithStatusJSON(status, gin.H{"error": decision.Reason})
	}
}
