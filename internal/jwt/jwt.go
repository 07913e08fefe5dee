package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"casino-server/internal/config"
)

// Issuer issues the JWT
const Issuer = "casino.auth"

// Audience is the intended JWT audience
const Audience = "casino.server"

// ErrKeysNotLoaded is returned when signing or validating before the keys are loaded
var ErrKeysNotLoaded = errors.New("jwt keys are not loaded")

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// LoadKeys will load the public and private keys named in the configuration
// The private key is optional, it is only needed to mint tokens.
func LoadKeys() error {
	cfg := config.Instance().JWT

	pub, err := loadPublicKey(cfg.PublicKey)
	if err != nil {
		return err
	}

	var priv *rsa.PrivateKey
	if cfg.PrivateKey != "" {
		if priv, err = loadPrivateKey(cfg.PrivateKey); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}

			logrus.WithField("path", cfg.PrivateKey).Debug("no private key, tokens cannot be signed")
		}
	}

	SetKeys(priv, pub)
	return nil
}

// SetKeys replaces the keys
func SetKeys(private *rsa.PrivateKey, public *rsa.PublicKey) {
	privateKey = private
	publicKey = public
}

// Sign will sign a JWT for the player
func Sign(subject string, ttl time.Duration) (string, error) {
	if privateKey == nil {
		return "", ErrKeysNotLoaded
	}

	now := time.Now()
	claims := jwtgo.RegisteredClaims{
		Audience: jwtgo.ClaimStrings{Audience},
		ID:       uuid.New().String(),
		IssuedAt: jwtgo.NewNumericDate(now),
		Issuer:   Issuer,
		Subject:  subject,
	}

	if ttl > 0 {
		claims.ExpiresAt = jwtgo.NewNumericDate(now.Add(ttl))
	}

	return jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, claims).SignedString(privateKey)
}

// ValidSubject will validate a signed JWT and return the player it was issued to
func ValidSubject(signedString string) (string, error) {
	if publicKey == nil {
		return "", ErrKeysNotLoaded
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	}, jwtgo.WithAudience(Audience), jwtgo.WithIssuer(Issuer))

	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwtgo.RegisteredClaims)
	if !ok {
		return "", fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}

	return claims.Subject, nil
}

func loadPublicKey(path string) (*rsa.PublicKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pem, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA public key: %w", err)
	}

	return pem, nil
}

func loadPrivateKey(path string) (*rsa.PrivateKey, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	pem, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return nil, fmt.Errorf("could not parse RSA private key: %w", err)
	}

	return pem, nil
}
