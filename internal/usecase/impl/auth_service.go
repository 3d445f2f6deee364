package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"regexp"
	"strings"
	"sync"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
)

const minPasswordLength = 6

// emailPattern is a deliberately loose local@domain.tld shape check, matching
// what the storefront has always accepted.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// authService implements the AuthUsecase interface. Credentials are a small
// in-memory map keyed by normalized email; the full map and the session
// marker are re-serialized to the gateway after every successful mutation.
type authService struct {
	mu       sync.Mutex
	gateway  repository.KVGateway
	checksum service.PasswordChecksum
	users    map[string]entity.UserCredential
	session  *entity.Session
	logger   *slog.Logger
}

// NewAuthService is the constructor for authService. It restores persisted
// credentials and any active session; a missing key or corrupt payload
// yields the empty/anonymous default, never an error.
func NewAuthService(
	ctx context.Context,
	gateway repository.KVGateway,
	checksum service.PasswordChecksum,
	logger *slog.Logger,
) usecase.AuthUsecase {
	srv := &authService{
		gateway:  gateway,
		checksum: checksum,
		users:    make(map[string]entity.UserCredential),
		logger:   logger,
	}
	srv.restore(ctx)

	return srv
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) restore(ctx context.Context) {
	if raw, err := srv.gateway.Get(ctx, repository.KeyUsers); err == nil {
		var users map[string]entity.UserCredential
		if jsonErr := json.Unmarshal([]byte(raw), &users); jsonErr != nil {
			srv.log(ctx).Warn("Persisted credentials are corrupt, starting empty", slog.Any("error", jsonErr))
		} else {
			srv.users = users
		}
	} else if !errors.Is(err, repository.ErrKeyNotFound) {
		srv.log(ctx).Warn("Failed to read persisted credentials, starting empty", slog.Any("error", err))
	}

	if raw, err := srv.gateway.Get(ctx, repository.KeySession); err == nil {
		var session entity.Session
		if jsonErr := json.Unmarshal([]byte(raw), &session); jsonErr != nil || session.Email == "" {
			srv.log(ctx).Warn("Persisted session is corrupt, starting anonymous", slog.Any("error", jsonErr))
		} else {
			srv.session = &session
		}
	} else if !errors.Is(err, repository.ErrKeyNotFound) {
		srv.log(ctx).Warn("Failed to read persisted session, starting anonymous", slog.Any("error", err))
	}

	srv.log(ctx).Debug("Restored account state",
		slog.Int("credentials", len(srv.users)),
		slog.Bool("signedIn", srv.session != nil))
}

// Register creates a new account and establishes a session for it.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.SessionOutput, error) {
	email, err := validateCredentials(input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Registration validation failed", slog.String("email", input.Email))

		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	if _, exists := srv.users[email]; exists {
		srv.log(ctx).Warn("Registration for existing account", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "account already registered")
	}

	srv.users[email] = entity.UserCredential{
		Email:    email,
		Checksum: srv.checksum.Sum(input.Password),
	}
	srv.session = &entity.Session{Email: email}

	if err := srv.commitUsers(ctx); err != nil {
		return nil, err
	}
	if err := srv.commitSession(ctx); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account registered", slog.String("email", email))

	return &usecase.SessionOutput{Session: &entity.Session{Email: email}}, nil
}

// SignIn verifies credentials and establishes a session. A missing account
// and a wrong password are indistinguishable to the caller.
func (srv *authService) SignIn(ctx context.Context, input *usecase.SignInInput) (*usecase.SessionOutput, error) {
	email, err := validateCredentials(input.Email, input.Password)
	if err != nil {
		srv.log(ctx).Warn("Sign-in validation failed", slog.String("email", input.Email))

		return nil, err
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()

	cred, exists := srv.users[email]
	if !exists || !srv.checksum.Check(input.Password, cred.Checksum) {
		srv.log(ctx).Warn("Sign-in failed", slog.String("email", email))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "sign-in failed")
	}

	srv.session = &entity.Session{Email: email}
	if err := srv.commitSession(ctx); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Signed in", slog.String("email", email))

	return &usecase.SessionOutput{Session: &entity.Session{Email: email}}, nil
}

// SignOut clears the current session unconditionally; signing out while
// anonymous is a no-op.
func (srv *authService) SignOut(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	srv.session = nil
	if err := srv.gateway.Remove(ctx, repository.KeySession); err != nil {
		srv.log(ctx).Error("Failed to clear persisted session", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPersistFailed, "failed to clear persisted session")
	}

	srv.log(ctx).Info("Signed out")

	return nil
}

// CurrentSession returns the active session, or nil when anonymous.
func (srv *authService) CurrentSession(_ context.Context) (*entity.Session, error) {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if srv.session == nil {
		return nil, nil
	}
	session := *srv.session

	return &session, nil
}

// Flush re-persists the full account state.
func (srv *authService) Flush(ctx context.Context) error {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	if err := srv.commitUsers(ctx); err != nil {
		return err
	}
	if srv.session == nil {
		return nil
	}

	return srv.commitSession(ctx)
}

// validateCredentials normalizes the email and applies the registration
// rules shared by register and sign-in.
func validateCredentials(email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailPattern.MatchString(email) {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "malformed email address")
	}
	if len(password) < minPasswordLength {
		return "", errors.Wrap(domainerrors.ErrValidationFailed, "password too short")
	}

	return email, nil
}

// commitUsers re-serializes the credential map. Callers must hold srv.mu.
func (srv *authService) commitUsers(ctx context.Context) error {
	payload, err := json.Marshal(srv.users)
	if err != nil {
		return errors.Wrap(err, "failed to serialize credentials")
	}

	if err := srv.gateway.Set(ctx, repository.KeyUsers, string(payload)); err != nil {
		srv.log(ctx).Error("Failed to persist credentials", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPersistFailed, "failed to persist credentials")
	}

	return nil
}

// commitSession re-serializes the session marker. Callers must hold srv.mu.
func (srv *authService) commitSession(ctx context.Context) error {
	payload, err := json.Marshal(srv.session)
	if err != nil {
		return errors.Wrap(err, "failed to serialize session")
	}

	if err := srv.gateway.Set(ctx, repository.KeySession, string(payload)); err != nil {
		srv.log(ctx).Error("Failed to persist session", slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrPersistFailed, "failed to persist session")
	}

	return nil
}
