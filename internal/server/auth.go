package server

import (
	"net/http"
	"strings"
	"time"

	"todoapp/internal/domain/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	authCookie = "jwt_token"
	ctxUserID  = "userID"
)

type authClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func (api *TaskAPI) issueToken(userID string) (string, error) {
	now := time.Now()
	claims := authClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(api.cfg.TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(api.cfg.JWTSecret))
}

func (api *TaskAPI) parseToken(tokenString string) (string, error) {
	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrInvalidToken
		}
		return []byte(api.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid || claims.UserID == "" {
		return "", errors.ErrInvalidToken
	}
	return claims.UserID, nil
}

// authRequired guards the task routes: the owner id comes from the
// jwt_token cookie (or a Bearer header), never from the request body.
func (api *TaskAPI) authRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString, err := ctx.Cookie(authCookie)
		if err != nil || tokenString == "" {
			header := ctx.GetHeader("Authorization")
			if strings.HasPrefix(header, "Bearer ") {
				tokenString = strings.TrimPrefix(header, "Bearer ")
			}
		}
		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": errors.ErrUnauthorized.Error()})
			return
		}

		userID, err := api.parseToken(tokenString)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "error": errors.ErrInvalidToken.Error()})
			return
		}

		ctx.Set(ctxUserID, userID)
		ctx.Next()
	}
}
