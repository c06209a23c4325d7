package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/smeops/backend/internal/infrastructure/config"
	"github.com/smeops/backend/internal/interfaces/http/dto"
)

// Role is the access level carried in the token
type Role string

const (
	RoleStaff   Role = "staff"
	RoleManager Role = "manager"
	RoleAdmin   Role = "admin"
)

// roleRank orders roles for RequireRole checks
var roleRank = map[Role]int{
	RoleStaff:   1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// Actor is the authenticated caller extracted from the token
type Actor struct {
	ID   uuid.UUID
	Role Role
}

const actorKey = "actor"

// Claims are the custom JWT claims the backend issues and verifies
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and stores the Actor on the context
func Auth(cfg *config.JWTConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Missing bearer token"))
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.Secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Invalid or expired token"))
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Invalid token subject"))
			return
		}

		role := Role(claims.Role)
		if _, ok := roleRank[role]; !ok {
			role = RoleStaff
		}

		c.Set(actorKey, Actor{ID: userID, Role: role})
		c.Next()
	}
}

// RequireRole rejects callers below the minimum role
func RequireRole(minimum Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse("UNAUTHORIZED", "Authentication required"))
			return
		}
		if roleRank[actor.Role] < roleRank[minimum] {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse("FORBIDDEN", "Insufficient role"))
			return
		}
		c.Next()
	}
}

// GetActor returns the authenticated caller, if any
func GetActor(c *gin.Context) (Actor, bool) {
	value, exists := c.Get(actorKey)
	if !exists {
		return Actor{}, false
	}
	actor, ok := value.(Actor)
	return actor, ok
}
