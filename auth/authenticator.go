package auth

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/uptrace/bun"
)

// RegisterUserMessage carries a validated registration request.
type RegisterUserMessage struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Role      string `json:"role"`
	Password  string `json:"password"`
	UseHashid bool   `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Auther orchestrates registration, login, token refresh, and current user
// lookups against the users store and the token service.
type Auther struct {
	provider     IdentityProvider
	repo         RepositoryManager
	tokenService TokenService
	logger       Logger
	activitySink ActivitySink
}

// NewAuthenticator returns a new Auther
func NewAuthenticator(provider IdentityProvider, repo RepositoryManager, tokenService TokenService) *Auther {
	return &Auther{
		provider:     provider,
		repo:         repo,
		tokenService: tokenService,
		logger:       defLogger{},
		activitySink: noopActivitySink{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithActivitySink configures an ActivitySink for emitting auth events.
func (s *Auther) WithActivitySink(sink ActivitySink) *Auther {
	s.activitySink = normalizeActivitySink(sink)
	return s
}

// TokenService returns the TokenService instance used by this Auther
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates a new user and issues its first token pair. The email
// conflict is always reported before the phone conflict, and an insert that
// loses a uniqueness race maps to the same conflict errors as the pre-check.
func (s *Auther) Register(ctx context.Context, msg RegisterUserMessage) (*User, TokenPair, error) {
	role, err := ParseRole(msg.Role)
	if err != nil {
		return nil, TokenPair{}, err
	}

	hash, err := HashPassword(msg.Password)
	if err != nil {
		return nil, TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		FirstName:    msg.FirstName,
		LastName:     msg.LastName,
		Email:        msg.Email,
		Phone:        msg.Phone,
		Role:         role,
		PasswordHash: hash,
		IsActive:     true,
	}

	if msg.UseHashid {
		if id, err := hashid.NewUUID(msg.Email); err == nil {
			user.ID = id
		}
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	err = s.repo.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		if err := s.ensureNotRegisteredTx(ctx, tx, user); err != nil {
			return err
		}

		created, err := s.repo.Users().RegisterTx(ctx, tx, user)
		if err != nil {
			if conflict := conflictFromUniqueViolation(err); conflict != nil {
				return conflict
			}
			return errors.Wrap(err, errors.CategoryInternal, "could not create user")
		}

		user = created
		return nil
	})

	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, TokenPair{}, richErr
		}
		return nil, TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "user registration transaction failed")
	}

	pair, err := s.tokenService.IssueTokenPair(user.Identity())
	if err != nil {
		return nil, TokenPair{}, err
	}

	s.emitAuthEvent(ctx, ActivityEventUserRegistered, s.actorFromUser(user), user.ID.String(), map[string]any{
		"email": user.Email,
		"role":  user.Role,
	})

	return user, pair, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *Auther) Login(ctx context.Context, identifier, password string) (*User, TokenPair, error) {
	identity, err := s.provider.VerifyIdentity(ctx, identifier, password)
	if err != nil {
		s.logger.Error("Login verify identity error", "error", err)
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, ActorRef{Type: "unknown"}, "", map[string]any{
			"identifier": identifier,
			"error":      err.Error(),
		})
		return nil, TokenPair{}, err
	}

	pair, err := s.tokenService.IssueTokenPair(identity)
	if err != nil {
		s.emitAuthEvent(ctx, ActivityEventLoginFailure, s.actorFromIdentity(identity), identity.ID(), map[string]any{
			"identifier": identifier,
			"error":      err.Error(),
		})
		return nil, TokenPair{}, err
	}

	user, err := s.repo.Users().GetByID(ctx, identity.ID())
	if err != nil {
		return nil, TokenPair{}, errors.Wrap(err, errors.CategoryInternal, "failed to load user after login")
	}

	s.emitAuthEvent(ctx, ActivityEventLoginSuccess, s.actorFromIdentity(identity), identity.ID(), map[string]any{
		"identifier": identifier,
	})

	return user, pair, nil
}

// Refresh verifies a refresh token, re-reads the user from the store, and
// issues a new pair from the current record. Role or status changes since
// the token was minted always win over the stale claims.
func (s *Auther) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	identity, err := s.provider.FindIdentityByID(ctx, claims.UserID())
	if err != nil {
		if IsAuthError(err) || errors.IsNotFound(err) {
			return TokenPair{}, ErrTokenMalformed
		}
		return TokenPair{}, err
	}

	pair, err := s.tokenService.IssueTokenPair(identity)
	if err != nil {
		return TokenPair{}, err
	}

	s.emitAuthEvent(ctx, ActivityEventTokenRefresh, s.actorFromIdentity(identity), identity.ID(), nil)

	return pair, nil
}

// CurrentUser fetches the full user record behind a set of access claims.
func (s *Auther) CurrentUser(ctx context.Context, userID string) (*User, error) {
	user, err := s.repo.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to load current user")
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return user, nil
}

// Logout is stateless: tokens stay valid until they expire. We only emit the
// audit event for the acknowledged logout.
func (s *Auther) Logout(ctx context.Context, claims AuthClaims) {
	actor := ActorRef{Type: "user"}
	userID := ""
	if claims != nil {
		actor.ID = claims.UserID()
		userID = claims.UserID()
	}
	s.emitAuthEvent(ctx, ActivityEventLogout, actor, userID, nil)
}

func (s *Auther) ensureNotRegisteredTx(ctx context.Context, tx bun.Tx, user *User) error {
	if existing, err := s.repo.Users().GetByEmailOrPhoneTx(ctx, tx, user.Email); err == nil && existing != nil {
		return ErrEmailTaken
	} else if err != nil && !errors.IsNotFound(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check email availability")
	}

	if existing, err := s.repo.Users().GetByEmailOrPhoneTx(ctx, tx, user.Phone); err == nil && existing != nil {
		return ErrPhoneTaken
	} else if err != nil && !errors.IsNotFound(err) {
		return errors.Wrap(err, errors.CategoryInternal, "failed to check phone availability")
	}

	return nil
}

func conflictFromUniqueViolation(err error) *errors.Error {
	if !IsUniqueViolation(err) {
		return nil
	}

	msg := err.Error()
	if strings.Contains(msg, "phone") {
		return ErrPhoneTaken
	}

	// email is the first uniqueness constraint checked, fall back to it
	return ErrEmailTaken
}

func (s *Auther) emitAuthEvent(ctx context.Context, eventType ActivityEventType, actor ActorRef, userID string, metadata map[string]any) {
	sink := normalizeActivitySink(s.activitySink)
	event := ActivityEvent{
		EventType: eventType,
		Actor:     actor,
		UserID:    userID,
		Metadata:  metadata,
	}

	if event.Metadata == nil {
		event.Metadata = map[string]any{}
	}

	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	if err := sink.Record(ctx, event); err != nil {
		s.logger.Warn("activity sink record error: %v", err)
	}
}

func (s *Auther) actorFromIdentity(identity Identity) ActorRef {
	if identity == nil {
		return ActorRef{Type: "unknown"}
	}

	return ActorRef{
		ID:   identity.ID(),
		Type: "user",
	}
}

func (s *Auther) actorFromUser(user *User) ActorRef {
	if user == nil {
		return ActorRef{Type: "unknown"}
	}

	return ActorRef{
		ID:   user.ID.String(),
		Type: "user",
	}
}
