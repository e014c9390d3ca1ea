package service

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"reviewhub/internal/microservices/http-api/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

const accessTokenType = "access"

// Claims is the payload of an access token.
type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	Superuser bool   `json:"is_superuser"`
	Type      string `json:"type"`
	jwt.RegisteredClaims
}

// TokenIssuer turns a confirmed identity into a bearer credential and back.
type TokenIssuer interface {
	Issue(user *models.User) (string, error)
	Parse(tokenString string) (*Claims, error)
}

type jwtIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer returns an HS256 issuer whose tokens live for ttl.
func NewTokenIssuer(secret string, ttl time.Duration) TokenIssuer {
	return &jwtIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (i *jwtIssuer) Issue(user *models.User) (string, error) {
	issuedAt := i.now()
	claims := Claims{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		Superuser: user.IsSuperuser,
		Type:      accessTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(i.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return signed, nil
}

func (i *jwtIssuer) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if !token.Valid || claims.Type != accessTokenType {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
