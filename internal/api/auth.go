package api

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"family-meal-planner/internal/cutoff"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// Claims is the member identity asserted by the upstream auth service.
type Claims struct {
	FamilyID string `json:"family_id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// IssueToken signs an HS256 token for actor.
func IssueToken(secret []byte, actor cutoff.Actor, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		FamilyID: actor.FamilyID,
		Name:     actor.DisplayName,
		Role:     string(actor.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   actor.MemberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// ParseToken verifies a token and returns the actor it names.
func ParseToken(secret []byte, raw string) (cutoff.Actor, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return cutoff.Actor{}, err
	}

	actor := cutoff.Actor{
		MemberID:    claims.Subject,
		FamilyID:    claims.FamilyID,
		DisplayName: claims.Name,
		Role:        cutoff.Role(strings.ToUpper(claims.Role)),
	}
	if actor.MemberID == "" || actor.FamilyID == "" || !actor.Role.Valid() {
		return cutoff.Actor{}, fmt.Errorf("token is missing member, family or role")
	}
	return actor, nil
}

// AuthMiddleware rejects requests without a valid bearer token and stores
// the actor in the gin context.
func AuthMiddleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing bearer token"})
			return
		}
		actor, err := ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}
		c.Set(actorKey, actor)
		c.Next()
	}
}

func actorFrom(c *gin.Context) cutoff.Actor {
	actor, _ := c.MustGet(actorKey).(cutoff.Actor)
	return actor
}
