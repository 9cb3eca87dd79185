package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"

	"github.com/Sukh767/Volt-Vogue/internal/model"
	"github.com/Sukh767/Volt-Vogue/internal/token"
)

// UserDirectory is the slice of the user repository the auth flow needs.
type UserDirectory interface {
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// SessionStore is the revocation authority: one refresh token per subject.
type SessionStore interface {
	Put(ctx context.Context, subjectID string, refreshToken string) error
	Get(ctx context.Context, subjectID string) (string, error)
	Delete(ctx context.Context, subjectID string) error
}

// TokenCodec signs and verifies the two token classes.
type TokenCodec interface {
	Issue(subjectID string, role model.Role, class token.Class) (string, error)
	Verify(tokenString string, class token.Class) (*token.Claims, error)
	DecodeExpired(tokenString string, class token.Class) (*token.Claims, error)
}

type AuthService struct {
	users    UserDirectory
	sessions SessionStore
	codec    TokenCodec

	// refreshes coalesces concurrent refresh calls. The key includes the
	// presented token, so callers holding a superseded token can never ride
	// a valid caller's flight.
	refreshes singleflight.Group
}

func NewAuthService(users UserDirectory, sessions SessionStore, codec TokenCodec) *AuthService {
	return &AuthService{users: users, sessions: sessions, codec: codec}
}

func (s *AuthService) Signup(ctx context.Context, name string, email string, password string) (model.Profile, model.TokenPair, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return model.Profile{}, model.TokenPair{}, fmt.Errorf("%w: name, email and password are required", model.ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return model.Profile{}, model.TokenPair{}, fmt.Errorf("%w: invalid email address", model.ErrInvalidInput)
	}
	if len(password) < 6 {
		return model.Profile{}, model.TokenPair{}, fmt.Errorf("%w: password must be at least 6 characters", model.ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return model.Profile{}, model.TokenPair{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user, err := s.users.Create(ctx, model.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleCustomer,
		CartItems:    []model.CartItem{},
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return model.Profile{}, model.TokenPair{}, err
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return model.Profile{}, model.TokenPair{}, err
	}

	slog.Info("user signed up", "user_id", user.ID.Hex())
	return user.Profile(), pair, nil
}

// Login verifies the credential against the stored hash and establishes a
// fresh session. Unknown email and wrong password produce the same failure
// so the endpoint cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, email string, password string) (model.Profile, model.TokenPair, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.Profile{}, model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.Profile{}, model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.Profile{}, model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := s.startSession(ctx, user)
	if err != nil {
		return model.Profile{}, model.TokenPair{}, err
	}

	slog.Info("user logged in", "user_id", user.ID.Hex())
	return user.Profile(), pair, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself is not rotated; the session record stays as issued
// at login. Concurrent calls for the same subject and token share a single
// in-flight exchange.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.codec.Verify(refreshToken, token.ClassRefresh)
	if err != nil {
		return "", err
	}

	// The coalesced flight keeps running even if this caller goes away, so
	// any other waiter still receives the result.
	flightCtx := context.WithoutCancel(ctx)

	result, err, _ := s.refreshes.Do(claims.Subject+"\x00"+refreshToken, func() (any, error) {
		current, err := s.sessions.Get(flightCtx, claims.Subject)
		if err != nil {
			return nil, err
		}
		if current != refreshToken {
			return nil, model.ErrSessionRevoked
		}
		return s.codec.Issue(claims.Subject, claims.Role, token.ClassAccess)
	})
	if err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	return result.(string), nil
}

// Logout revokes the subject's session. Decoding tolerates an expired token
// since the intent is cleanup; an undecodable token simply means there is
// nothing to revoke.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	if strings.TrimSpace(refreshToken) == "" {
		return nil
	}

	claims, err := s.codec.DecodeExpired(refreshToken, token.ClassRefresh)
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, claims.Subject); err != nil {
		return err
	}

	slog.Info("user logged out", "user_id", claims.Subject)
	return nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (model.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.Profile{}, err
	}
	return user.Profile(), nil
}

// VerifyAccess validates an access token for the HTTP boundary and returns
// the claims to attach to the request context.
func (s *AuthService) VerifyAccess(tokenString string) (*model.AuthClaims, error) {
	claims, err := s.codec.Verify(tokenString, token.ClassAccess)
	if err != nil {
		return nil, err
	}

	return &model.AuthClaims{
		UserID:  claims.Subject,
		Role:    claims.Role,
		Type:    string(claims.Class),
		TokenID: claims.TokenID,
	}, nil
}

func (s *AuthService) startSession(ctx context.Context, user model.User) (model.TokenPair, error) {
	subjectID := user.ID.Hex()

	accessToken, err := s.codec.Issue(subjectID, user.Role, token.ClassAccess)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := s.codec.Issue(subjectID, user.Role, token.ClassRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := s.sessions.Put(ctx, subjectID, refreshToken); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
