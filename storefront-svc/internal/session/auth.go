// Package session authenticates shoppers and gates checkout on a complete
// profile.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"campus-storefront/storefront-svc/internal/domain"
	"campus-storefront/storefront-svc/internal/storage"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	tokenIssuer       = "campus-storefront"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrUnauthenticated    = errors.New("authentication required")
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (domain.User, bool, error)
}

type ProfileWriter interface {
	UpsertProfile(ctx context.Context, profile domain.Profile) error
}

type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

var (
	_ UserRepository  = (*storage.PostgresRepository)(nil)
	_ ProfileWriter   = (*storage.PostgresRepository)(nil)
	_ RevocationStore = (*storage.TokenStore)(nil)
)

type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Session is a signed-in identity and its bearer token.
type Session struct {
	Identity     domain.Identity `json:"identity"`
	Token        string          `json:"token"`
	ExpiresAt    time.Time       `json:"expires_at"`
	ProfileSaved bool            `json:"profile_saved"`
}

type Authenticator struct {
	users       UserRepository
	profiles    ProfileWriter
	revocations RevocationStore
	secret      []byte
	ttl         time.Duration
	now         func() time.Time
}

func NewAuthenticator(users UserRepository, profiles ProfileWriter, revocations RevocationStore, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		users:       users,
		profiles:    profiles,
		revocations: revocations,
		secret:      []byte(secret),
		ttl:         ttl,
		now:         time.Now,
	}
}

// SignUp creates the account and then tries to save the profile. A failed
// profile write leaves the account in place and is reported through
// Session.ProfileSaved.
func (a *Authenticator) SignUp(ctx context.Context, email, password string, profile domain.Profile) (Session, error) {
	email = normalizeEmail(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return Session{}, domain.NewValidationError("email", "is not a valid address")
	}
	if len(password) < minPasswordLength {
		return Session{}, domain.NewValidationError("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	if err := a.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, domain.NewDataAccessError("create user", err)
	}

	sess, err := a.issue(*user)
	if err != nil {
		return Session{}, err
	}

	profile.UserID = user.ID
	if err := a.profiles.UpsertProfile(ctx, profile); err != nil {
		log.WithField("user_id", user.ID).Warnf("profile not saved during sign-up: %v", err)
	} else {
		sess.ProfileSaved = true
	}
	return sess, nil
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, found, err := a.users.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return Session{}, domain.NewDataAccessError("get user", err)
	}
	if !found {
		return Session{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return Session{}, ErrInvalidCredentials
	}
	return a.issue(user)
}

// SignOut revokes the token until it would expire. It never fails from the
// caller's point of view.
func (a *Authenticator) SignOut(ctx context.Context, token string) {
	claims, err := a.parse(token)
	if err != nil {
		return
	}
	ttl := claims.ExpiresAt.Time.Sub(a.now())
	if err := a.revocations.Revoke(ctx, claims.ID, ttl); err != nil {
		log.WithField("user_id", claims.Subject).Warnf("token revocation failed: %v", err)
	}
}

func (a *Authenticator) Verify(ctx context.Context, token string) (domain.Identity, error) {
	claims, err := a.parse(token)
	if err != nil {
		return domain.Identity{}, ErrUnauthenticated
	}

	revoked, err := a.revocations.IsRevoked(ctx, claims.ID)
	if err != nil {
		return domain.Identity{}, domain.NewDataAccessError("check token revocation", err)
	}
	if revoked {
		return domain.Identity{}, ErrUnauthenticated
	}

	return domain.Identity{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}, nil
}

func (a *Authenticator) issue(user domain.User) (Session, error) {
	now := a.now()
	expiresAt := now.Add(a.ttl)
	claims := &Claims{
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID,
			Issuer:    tokenIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}

	return Session{
		Identity: domain.Identity{
			UserID:  user.ID,
			Email:   user.Email,
			Role:    user.Role,
			TokenID: claims.ID,
		},
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func (a *Authenticator) parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
