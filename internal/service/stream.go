package service

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/msomdec/interview-room/internal/domain"
)

// DefaultStreamTokenTTL bounds how long a video service token stays valid.
const DefaultStreamTokenTTL = time.Hour

// StreamClaims are the claims the video service expects in a user token.
type StreamClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// TokenGenerator mints user tokens for the real-time video service.
type TokenGenerator interface {
	GenerateUserToken(userID string) (domain.StreamToken, error)
}

// StreamClient signs user tokens with the API secret of the video service.
type StreamClient struct {
	apiKey    string
	apiSecret []byte
	validity  time.Duration
	now       func() time.Time
}

// NewStreamClient builds a client bound to the API key and secret. Both are
// required.
func NewStreamClient(apiKey, apiSecret string, validity time.Duration) (*StreamClient, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("%w: stream api key and secret are required", domain.ErrMissingConfig)
	}
	if validity <= 0 {
		validity = DefaultStreamTokenTTL
	}
	return &StreamClient{
		apiKey:    apiKey,
		apiSecret: []byte(apiSecret),
		validity:  validity,
		now:       time.Now,
	}, nil
}

// APIKey is the public identifier clients pass alongside the token.
func (c *StreamClient) APIKey() string { return c.apiKey }

func (c *StreamClient) GenerateUserToken(userID string) (domain.StreamToken, error) {
	if userID == "" {
		return domain.StreamToken{}, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}

	now := c.now()
	expiresAt := now.Add(c.validity)
	claims := StreamClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.apiSecret)
	if err != nil {
		return domain.StreamToken{}, fmt.Errorf("sign stream token: %w", err)
	}

	return domain.StreamToken{Token: signed, UserID: userID, ExpiresAt: expiresAt}, nil
}

// GeneratorFactory constructs a TokenGenerator from the API credentials.
type GeneratorFactory func(apiKey, apiSecret string) (TokenGenerator, error)

// StreamTokenIssuer hands an authenticated caller a fresh video service
// token. Tokens are never cached.
type StreamTokenIssuer struct {
	identities IdentityLookup
	apiKey     string
	apiSecret  string
	newClient  GeneratorFactory
}

// NewStreamTokenIssuer creates an issuer signing tokens valid for ttl.
func NewStreamTokenIssuer(identities IdentityLookup, apiKey, apiSecret string, ttl time.Duration) *StreamTokenIssuer {
	return &StreamTokenIssuer{
		identities: identities,
		apiKey:     apiKey,
		apiSecret:  apiSecret,
		newClient: func(key, secret string) (TokenGenerator, error) {
			return NewStreamClient(key, secret, ttl)
		},
	}
}

// WithGeneratorFactory replaces how the issuer builds its client.
func (s *StreamTokenIssuer) WithGeneratorFactory(f GeneratorFactory) *StreamTokenIssuer {
	s.newClient = f
	return s
}

// APIKey returns the public key of the video service.
func (s *StreamTokenIssuer) APIKey() string { return s.apiKey }

// IssueToken resolves the caller and mints a token scoped to its id. Without
// an authenticated caller it fails with ErrUnauthenticated before any client
// is built.
func (s *StreamTokenIssuer) IssueToken(ctx context.Context) (domain.StreamToken, error) {
	identity, err := s.identities.CurrentUser(ctx)
	if err != nil {
		return domain.StreamToken{}, fmt.Errorf("resolve caller: %w", err)
	}
	if identity == nil || identity.ID == "" {
		return domain.StreamToken{}, domain.ErrUnauthenticated
	}

	client, err := s.newClient(s.apiKey, s.apiSecret)
	if err != nil {
		return domain.StreamToken{}, fmt.Errorf("build stream client: %w", err)
	}

	token, err := client.GenerateUserToken(identity.ID)
	if err != nil {
		return domain.StreamToken{}, fmt.Errorf("generate stream token: %w", err)
	}
	return token, nil
}
