package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mentorhub/internal/service"
)

const authClaimsKey = "auth_claims"

// JWTAuthMiddleware exige un access token válido y deja los claims en
// el contexto para que los handlers resuelvan usuario y rol.
func JWTAuthMiddleware(jwtSvc *service.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if jwtSvc == nil {
			abortJSON(c, http.StatusInternalServerError, "jwt not configured")
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			abortJSON(c, http.StatusUnauthorized, "missing token")
			return
		}

		claims, err := jwtSvc.ParseAccessToken(token)
		if err != nil {
			abortJSON(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set(authClaimsKey, claims)
		c.Next()
	}
}

// GetAuthClaims obtiene los claims que dejó el middleware; ok es false
// en rutas públicas donde nadie se autenticó.
func GetAuthClaims(c *gin.Context) (service.Claims, bool) {
	val, ok := c.Get(authClaimsKey)
	if !ok {
		return service.Claims{}, false
	}
	claims, ok := val.(service.Claims)
	return claims, ok
}

// bearerToken extrae el token de un header Authorization, aceptando
// "Bearer" en cualquier capitalización.
func bearerToken(header string) string {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func abortJSON(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg})
	c.Abort()
}
