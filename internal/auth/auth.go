// Package auth wraps the external identity and document-store collaborator
// (Firebase Auth + Firestore). The core payment flow does not depend on it;
// interactive login stays in the provider's browser SDK and this wrapper
// verifies the resulting ID tokens server-side.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/est-ai/checkout-service/internal/config"
)

const usersCollection = "users"

// Profile is the additional user data stored alongside the identity record.
type Profile struct {
	FirstName string
	LastName  string
	Company   string
	Phone     string
	Role      string
}

// UserData is the per-user document kept in the document store.
type UserData struct {
	UID       string    `firestore:"uid"`
	Email     string    `firestore:"email"`
	FirstName string    `firestore:"firstName"`
	LastName  string    `firestore:"lastName"`
	Company   string    `firestore:"company"`
	Phone     string    `firestore:"phone"`
	Role      string    `firestore:"role"`
	CreatedAt time.Time `firestore:"createdAt,serverTimestamp"`
	LastLogin time.Time `firestore:"lastLogin,serverTimestamp"`
}

// Service exposes the register/get-user-data/is-authenticated/logout
// operations of the auth collaborator.
type Service struct {
	auth   *fbauth.Client
	store  *firestore.Client
	logger *zap.Logger
}

// NewService initializes the collaborator clients. When no credentials file
// is configured the ambient application credentials are used.
func NewService(ctx context.Context, cfg config.AuthConfig, logger *zap.Logger) (*Service, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize auth client: %w", err)
	}

	storeClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firestore client: %w", err)
	}

	return &Service{auth: authClient, store: storeClient, logger: logger}, nil
}

// Register creates the identity record and the user document.
func (s *Service) Register(ctx context.Context, email, password string, profile Profile) (*UserData, error) {
	displayName := strings.TrimSpace(profile.FirstName + " " + profile.LastName)

	params := (&fbauth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)

	user, err := s.auth.CreateUser(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	data := &UserData{
		UID:       user.UID,
		Email:     email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Company:   profile.Company,
		Phone:     profile.Phone,
		Role:      profile.Role,
	}

	if _, err := s.store.Collection(usersCollection).Doc(user.UID).Set(ctx, data); err != nil {
		return nil, fmt.Errorf("store user data: %w", err)
	}

	s.logger.Info("user registered", zap.String("uid", user.UID))

	return data, nil
}

// GetUserData reads the user document for the given uid.
func (s *Service) GetUserData(ctx context.Context, uid string) (*UserData, error) {
	doc, err := s.store.Collection(usersCollection).Doc(uid).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get user data: %w", err)
	}

	var data UserData
	if err := doc.DataTo(&data); err != nil {
		return nil, fmt.Errorf("decode user data: %w", err)
	}
	return &data, nil
}

// IsAuthenticated verifies an ID token and returns the authenticated uid.
func (s *Service) IsAuthenticated(ctx context.Context, idToken string) (string, error) {
	token, err := s.auth.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", fmt.Errorf("verify id token: %w", err)
	}
	return token.UID, nil
}

// Logout revokes the user's refresh tokens, invalidating existing sessions.
func (s *Service) Logout(ctx context.Context, uid string) error {
	if err := s.auth.RevokeRefreshTokens(ctx, uid); err != nil {
		return fmt.Errorf("revoke refresh tokens: %w", err)
	}
	s.logger.Info("user logged out", zap.String("uid", uid))
	return nil
}

// Close releases the document-store connection.
func (s *Service) Close() error {
	return s.store.Close()
}
