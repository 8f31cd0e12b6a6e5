package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/msomdec/interview-room/internal/domain"
	"github.com/msomdec/interview-room/internal/service"
)

const (
	testStreamKey    = "stream-key"
	testStreamSecret = "stream-secret-for-tests"
)

type staticIdentity struct {
	identity *domain.Identity
	err      error
}

func (s staticIdentity) CurrentUser(context.Context) (*domain.Identity, error) {
	return s.identity, s.err
}

type recordingGenerator struct {
	calls   int
	userIDs []string
}

func (g *recordingGenerator) GenerateUserToken(userID string) (domain.StreamToken, error) {
	g.calls++
	g.userIDs = append(g.userIDs, userID)
	return domain.StreamToken{Token: "tok-" + userID, UserID: userID}, nil
}

func TestStreamTokenIssuer_Unauthenticated(t *testing.T) {
	gen := &recordingGenerator{}
	built := 0
	issuer := service.NewStreamTokenIssuer(staticIdentity{}, testStreamKey, testStreamSecret, time.Hour).
		WithGeneratorFactory(func(key, secret string) (service.TokenGenerator, error) {
			built++
			return gen, nil
		})

	_, err := issuer.IssueToken(context.Background())
	if !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if built != 0 || gen.calls != 0 {
		t.Fatalf("expected no client use, built=%d calls=%d", built, gen.calls)
	}
}

func TestStreamTokenIssuer_ScopesToCaller(t *testing.T) {
	gen := &recordingGenerator{}
	var gotKey, gotSecret string
	issuer := service.NewStreamTokenIssuer(staticIdentity{identity: &domain.Identity{ID: "u_123"}}, testStreamKey, testStreamSecret, time.Hour).
		WithGeneratorFactory(func(key, secret string) (service.TokenGenerator, error) {
			gotKey, gotSecret = key, secret
			return gen, nil
		})

	tok, err := issuer.IssueToken(context.Background())
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	if tok.UserID != "u_123" {
		t.Fatalf("expected user_id u_123, got %q", tok.UserID)
	}
	if len(gen.userIDs) != 1 || gen.userIDs[0] != "u_123" {
		t.Fatalf("expected one request for u_123, got %v", gen.userIDs)
	}
	if gotKey != testStreamKey || gotSecret != testStreamSecret {
		t.Fatalf("client built with %q/%q", gotKey, gotSecret)
	}

	if _, err := issuer.IssueToken(context.Background()); err != nil {
		t.Fatalf("second IssueToken: %v", err)
	}
	if gen.calls != 2 {
		t.Fatalf("expected a fresh request per call, got %d", gen.calls)
	}
}

func TestStreamTokenIssuer_MissingConfig(t *testing.T) {
	issuer := service.NewStreamTokenIssuer(staticIdentity{identity: &domain.Identity{ID: "u_1"}}, "", "", time.Hour)

	_, err := issuer.IssueToken(context.Background())
	if !errors.Is(err, domain.ErrMissingConfig) {
		t.Fatalf("expected ErrMissingConfig, got %v", err)
	}
}

func TestStreamTokenIssuer_LookupError(t *testing.T) {
	boom := errors.New("directory down")
	issuer := service.NewStreamTokenIssuer(staticIdentity{err: boom}, testStreamKey, testStreamSecret, time.Hour)

	if _, err := issuer.IssueToken(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected lookup error to propagate, got %v", err)
	}
}

func TestStreamClient_SignsVerifiableToken(t *testing.T) {
	client, err := service.NewStreamClient(testStreamKey, testStreamSecret, 30*time.Minute)
	if err != nil {
		t.Fatalf("NewStreamClient: %v", err)
	}
	issued := time.Now().Truncate(time.Second)
	client.SetClock(func() time.Time { return issued })

	tok, err := client.GenerateUserToken("u_123")
	if err != nil {
		t.Fatalf("GenerateUserToken: %v", err)
	}

	claims := &service.StreamClaims{}
	parsed, err := jwt.ParseWithClaims(tok.Token, claims, func(*jwt.Token) (any, error) {
		return []byte(testStreamSecret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != "u_123" {
		t.Fatalf("expected user_id u_123, got %q", claims.UserID)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(issued.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry %v", got)
	}
	if !tok.ExpiresAt.Equal(issued.Add(30 * time.Minute)) {
		t.Fatalf("unexpected token ExpiresAt %v", tok.ExpiresAt)
	}

	again, err := client.GenerateUserToken("u_123")
	if err != nil {
		t.Fatalf("second GenerateUserToken: %v", err)
	}
	if again.Token == tok.Token {
		t.Fatal("expected distinct tokens for separate requests")
	}
}

func TestNewStreamClient_RequiresCredentials(t *testing.T) {
	for _, tc := range []struct{ key, secret string }{{"", "s"}, {"k", ""}, {"", ""}} {
		if _, err := service.NewStreamClient(tc.key, tc.secret, time.Hour); !errors.Is(err, domain.ErrMissingConfig) {
			t.Fatalf("key=%q secret=%q: expected ErrMissingConfig, got %v", tc.key, tc.secret, err)
		}
	}
}
