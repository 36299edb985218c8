package services

import (
	"fmt"
	"os"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"

	"github.com/brainwave-labs/quest_api/dto"
)

type JWTService struct {
	context.DefaultService

	secret       []byte
	accessExpiry time.Duration
}

const JWT_SVC = "jwt_svc"

func (svc JWTService) Id() string {
	return JWT_SVC
}

func (svc *JWTService) Configure(ctx *context.Context) error {
	secret := os.Getenv("JWT_OAUTH_SECRET")
	if secret == "" {
		return fmt.Errorf("JWT_OAUTH_SECRET is not set")
	}
	svc.secret = []byte(secret)

	svc.accessExpiry = 24 * time.Hour
	if v := os.Getenv("JWT_ACCESS_EXPIRY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid JWT_ACCESS_EXPIRY: %w", err)
		}
		svc.accessExpiry = d
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *JWTService) Start() error {
	return nil
}

type AccessClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateTokenPair issues a signed access token for the given user.
func (svc *JWTService) GenerateTokenPair(userID string) (*dto.TokenPair, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(svc.accessExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(svc.secret)
	if err != nil {
		log.WithError(err).Error("failed to sign access token")
		return nil, err
	}

	return &dto.TokenPair{
		AccessToken: signed,
		ExpiresIn:   int64(svc.accessExpiry.Seconds()),
	}, nil
}

// VerifyJWTToken validates the token signature and expiry and returns the user id.
func (svc *JWTService) VerifyJWTToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return svc.secret, nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.UserID == "" {
		return "", fmt.Errorf("token missing user id")
	}

	return claims.UserID, nil
}
