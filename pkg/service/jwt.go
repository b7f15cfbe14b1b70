package service

import (
	"errors"
	"time"

	apperrors "aircon-admin/pkg/errors"

	jwt "github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type JwtCustomClaim struct {
	UserID         uint64 `json:"userId"`
	Name           string `json:"name"`
	Role           string `json:"role"`
	IsRefreshToken bool   `json:"isRefreshToken"`
	jwt.RegisteredClaims
}

type JWTService interface {
	GenerateTokens(userID uint64, name, role string) (string, string, error)
	ValidateToken(tokenString string) (*JwtCustomClaim, error)
	GetAccessTokenTTL() time.Duration
	GetRefreshTokenTTL() time.Duration
}

type jwtService struct {
	secretKey       string
	accessTokenExp  time.Duration
	refreshTokenExp time.Duration
	logger          *zap.Logger
}

func NewJWTService(secretKey string, accessTokenExp, refreshTokenExp time.Duration, logger *zap.Logger) JWTService {
	return &jwtService{
		secretKey:       secretKey,
		accessTokenExp:  accessTokenExp,
		refreshTokenExp: refreshTokenExp,
		logger:          logger,
	}
}

func (s *jwtService) GenerateTokens(userID uint64, name, role string) (string, string, error) {
	now := time.Now()

	accessToken, err := s.sign(&JwtCustomClaim{
		UserID: userID,
		Name:   name,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTokenExp)),
		},
	})
	if err != nil {
		return "", "", err
	}

	refreshToken, err := s.sign(&JwtCustomClaim{
		UserID:         userID,
		Name:           name,
		Role:           role,
		IsRefreshToken: true,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshTokenExp)),
		},
	})
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *jwtService) sign(claims *JwtCustomClaim) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(s.secretKey))
}

func (s *jwtService) GetAccessTokenTTL() time.Duration {
	return s.accessTokenExp
}

func (s *jwtService) GetRefreshTokenTTL() time.Duration {
	return s.refreshTokenExp
}

func (s *jwtService) ValidateToken(tokenString string) (*JwtCustomClaim, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaim{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidSigningMethod
		}
		return []byte(s.secretKey), nil
	})
	if err != nil {
		s.logger.Debug("token parse failed", zap.Error(err))
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, apperrors.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			return nil, apperrors.ErrTokenNotYetValid
		case errors.Is(err, apperrors.ErrInvalidSigningMethod):
			return nil, apperrors.ErrInvalidSigningMethod
		default:
			return nil, apperrors.ErrInvalidToken
		}
	}

	claims, ok := token.Claims.(*JwtCustomClaim)
	if !ok || !token.Valid {
		s.logger.Warn("token is invalid or claims could not be extracted")
		return nil, apperrors.ErrInvalidToken
	}

	return claims, nil
}
