package security

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// Identity is the caller identity extracted from a verified token. The
// admin record lookup by UID happens in the HTTP middleware, not here.
type Identity struct {
	UID   string
	Email string
}

// TokenVerifier checks a bearer token and returns the identity it encodes.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

type firebaseVerifier struct {
	client *auth.Client
}

// NewFirebaseVerifier builds a verifier backed by Firebase Auth ID tokens.
// The credentials file is the service account key for the project.
func NewFirebaseVerifier(ctx context.Context, credentialsFile string) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (v *firebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	decoded, err := v.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, ErrInvalidToken
	}
	identity := &Identity{UID: decoded.UID}
	if email, ok := decoded.Claims["email"].(string); ok {
		identity.Email = email
	}
	return identity, nil
}

type localVerifier struct {
	manager TokenManager
}

// NewLocalVerifier verifies HS256 tokens issued by the local TokenManager.
func NewLocalVerifier(manager TokenManager) TokenVerifier {
	return &localVerifier{manager: manager}
}

func (v *localVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims, err := v.manager.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return &Identity{UID: claims.UID, Email: claims.Email}, nil
}
