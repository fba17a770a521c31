package auth

import (
	"log/slog"

	"github.com/golang-jwt/jwt/v5"

	"userhub/config"
	"userhub/internal/domain/service"
	"userhub/internal/errors"
)

// recommendedSecretBytes is the advisory minimum HMAC key length. Shorter
// secrets are accepted for compatibility with existing deployments, but
// flagged at startup.
const recommendedSecretBytes = 32

// jwtCodec is a concrete implementation of the TokenCodec interface signing
// claims with HMAC-SHA256. The secret is fixed at construction.
type jwtCodec struct {
	secret []byte
}

// NewJWTCodec is the constructor for jwtCodec.
// It takes configuration values to create a new token codec instance.
func NewJWTCodec(cfg *config.Config, logger *slog.Logger) (service.TokenCodec, error) {
	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if len(cfg.JWT.Secret) < recommendedSecretBytes && logger != nil {
		logger.Warn("jwt secret is shorter than the recommended minimum",
			slog.Int("length", len(cfg.JWT.Secret)),
			slog.Int("recommended", recommendedSecretBytes),
		)
	}

	return &jwtCodec{secret: []byte(cfg.JWT.Secret)}, nil
}

// Encode signs the claims into the three-part compact token form.
func (c *jwtCodec) Encode(claims *service.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Decode parses and verifies a token string. The parser verifies the
// signature before validating any claim, and expiry is compared with no
// leeway, so an expired-but-forged token still reads as a signature failure.
func (c *jwtCodec) Decode(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, classifyTokenError(err)
	}
	if !token.Valid {
		return nil, service.ErrTokenSignatureInvalid
	}

	return claims, nil
}

// classifyTokenError collapses the parser's error tree into the codec's three
// decode failure kinds.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return service.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return service.ErrTokenExpired
	default:
		return service.ErrTokenMalformed
	}
}
