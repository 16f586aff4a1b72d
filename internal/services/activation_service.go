package services

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/you/elearnauth/domain"
)

// ActivationConfig configures activation tickets
type ActivationConfig struct {
	Secret  string
	TTL     time.Duration
	CodeMin int
	CodeMax int
}

// ActivationServiceImpl implements domain.ActivationService with signed JWT envelopes.
// The envelope carries a keyed digest of the code, never the code itself.
type ActivationServiceImpl struct {
	secret  []byte
	ttl     time.Duration
	codeMin int
	codeMax int
	now     func() time.Time
}

type activationClaims struct {
	jwt.RegisteredClaims
	Email  string `json:"email"`
	Digest string `json:"chk"`
}

// NewActivationService creates a new activation service
func NewActivationService(cfg ActivationConfig) *ActivationServiceImpl {
	return &ActivationServiceImpl{
		secret:  []byte(cfg.Secret),
		ttl:     cfg.TTL,
		codeMin: cfg.CodeMin,
		codeMax: cfg.CodeMax,
		now:     time.Now,
	}
}

// WithClock overrides the time source
func (s *ActivationServiceImpl) WithClock(now func() time.Time) *ActivationServiceImpl {
	s.now = now
	return s
}

// Issue implements domain.ActivationService
func (s *ActivationServiceImpl) Issue(email string) (*domain.ActivationTicket, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", domain.ErrValidation)
	}

	code, err := s.generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate activation code: %w", err)
	}

	now := s.now()
	expiresAt := now.Add(s.ttl)
	claims := activationClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Email:  email,
		Digest: s.digest(email, code),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign activation token: %w", err)
	}

	return &domain.ActivationTicket{
		Token:     token,
		Code:      code,
		ExpiresAt: expiresAt,
	}, nil
}

// Verify implements domain.ActivationService. Expiry is checked before the code.
func (s *ActivationServiceImpl) Verify(token, code string) (string, error) {
	claims := &activationClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrActivationExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if claims.Email == "" || claims.Digest == "" {
		return "", domain.ErrTokenInvalid
	}

	expected, err := hex.DecodeString(claims.Digest)
	if err != nil {
		return "", domain.ErrTokenInvalid
	}
	submitted, _ := hex.DecodeString(s.digest(claims.Email, code))
	if !hmac.Equal(expected, submitted) {
		return "", domain.ErrInvalidActivationCode
	}
	return claims.Email, nil
}

// CodeRange reports the inclusive bounds codes are drawn from
func (s *ActivationServiceImpl) CodeRange() (int, int) {
	return s.codeMin, s.codeMax
}

func (s *ActivationServiceImpl) generateCode() (string, error) {
	if s.codeMin < 0 || s.codeMax < s.codeMin {
		return "", fmt.Errorf("invalid code range [%d, %d]", s.codeMin, s.codeMax)
	}
	span := big.NewInt(int64(s.codeMax - s.codeMin + 1))
	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	width := len(strconv.Itoa(s.codeMax))
	return fmt.Sprintf("%0*d", width, s.codeMin+int(n.Int64())), nil
}

func (s *ActivationServiceImpl) digest(email, code string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(email))
	mac.Write([]byte{0})
	mac.Write([]byte(code))
	return hex.EncodeToString(mac.Sum(nil))
}

var _ domain.ActivationService = (*ActivationServiceImpl)(nil)
