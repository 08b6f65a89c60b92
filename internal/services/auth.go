package services

import (
	"errors"
	"strings"
	"time"

	"belakoo-backend-go/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"
)

var errWrongTokenType = errors.New("wrong token type")

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    int64
}

// Identity is what an access token says about its bearer.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

type TokenService struct {
	Secret     []byte
	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// NewTokenService takes TTLs in seconds, as they come from configuration.
func NewTokenService(secret, issuer string, accessTTLSeconds, refreshTTLSeconds int64) TokenService {
	return TokenService{
		Secret:     []byte(secret),
		Issuer:     issuer,
		AccessTTL:  time.Duration(accessTTLSeconds) * time.Second,
		RefreshTTL: time.Duration(refreshTTLSeconds) * time.Second,
	}
}

func (t TokenService) HashPassword(raw string) (string, error) {
	return hashArgon2id(raw)
}

// VerifyPassword accepts argon2id hashes and legacy bcrypt hashes.
func (t TokenService) VerifyPassword(raw, hashed string) bool {
	if strings.HasPrefix(hashed, "$argon2") {
		return verifyArgon2id(raw, hashed)
	}
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw)) == nil
}

func (t TokenService) CreateAccessToken(user models.User) (string, int64, error) {
	now := time.Now().UTC()
	exp := now.Add(t.AccessTTL)
	claims := jwt.MapClaims{
		"iss":   t.Issuer,
		"sub":   user.ID,
		"typ":   tokenTypeAccess,
		"email": user.Email,
		"name":  user.Name,
		"role":  user.Role,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.Secret)
	return signed, exp.Unix(), err
}

func (t TokenService) CreateRefreshToken(userID string) (string, error) {
	now := time.Now().UTC()
	exp := now.Add(t.RefreshTTL)
	claims := jwt.MapClaims{
		"iss": t.Issuer,
		"sub": userID,
		"typ": tokenTypeRefresh,
		"iat": now.Unix(),
		"exp": exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

func (t TokenService) IssuePair(user models.User) (TokenPair, error) {
	access, exp, err := t.CreateAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := t.CreateRefreshToken(user.ID)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresAt: exp}, nil
}

func (t TokenService) ParseToken(tokenStr string) (*jwt.Token, jwt.MapClaims, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return t.Secret, nil
	}, jwt.WithIssuer(t.Issuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return token, claims, err
}

// ParseAccessToken validates an access token and returns its bearer.
func (t TokenService) ParseAccessToken(tokenStr string) (Identity, error) {
	claims, err := t.parseTyped(tokenStr, tokenTypeAccess)
	if err != nil {
		return Identity{}, err
	}
	id := Identity{}
	id.UserID, _ = claims["sub"].(string)
	id.Email, _ = claims["email"].(string)
	id.Name, _ = claims["name"].(string)
	id.Role, _ = claims["role"].(string)
	if id.UserID == "" {
		return Identity{}, errors.New("token has no subject")
	}
	return id, nil
}

// ParseRefreshToken returns the user id carried by a refresh token.
func (t TokenService) ParseRefreshToken(tokenStr string) (string, error) {
	claims, err := t.parseTyped(tokenStr, tokenTypeRefresh)
	if err != nil {
		return "", err
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", errors.New("token has no subject")
	}
	return sub, nil
}

func (t TokenService) parseTyped(tokenStr, typ string) (jwt.MapClaims, error) {
	token, claims, err := t.ParseToken(tokenStr)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims["typ"] != typ {
		return nil, errWrongTokenType
	}
	return claims, nil
}
