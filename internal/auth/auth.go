// Package auth is the credential gate in front of the tracker.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/rcliao/water-tracker/internal/kv"
	"github.com/rcliao/water-tracker/internal/logging"
)

// MinPasswordLength is the shortest password accepted for a login attempt.
const MinPasswordLength = 6

// Credentials used when none are configured.
const (
	DefaultUsername = "admin"
	DefaultPassword = "password"
)

var (
	ErrEmptyUsername      = errors.New("Username cannot be empty")
	ErrEmptyPassword      = errors.New("Password cannot be empty")
	ErrPasswordTooShort   = fmt.Errorf("Password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("Invalid username or password")
)

// Session is the persisted login state.
type Session struct {
	LoggedIn      bool   `json:"isLoggedIn"`
	User          string `json:"user,omitempty"`
	Remember      bool   `json:"rememberUsername"`
	SavedUsername string `json:"savedUsername,omitempty"`
}

// Gate checks credentials and keeps the session under kv.KeySession.
type Gate struct {
	kv       kv.Store
	username string
	hash     []byte
	log      *logrus.Entry
}

// NewGate builds a gate for one account. An empty passwordHash falls back to
// the default password.
func NewGate(store kv.Store, username, passwordHash string, log *logrus.Entry) (*Gate, error) {
	if log == nil {
		log = logging.Discard()
	}
	if username == "" {
		username = DefaultUsername
	}
	hash := []byte(passwordHash)
	if len(hash) == 0 {
		var err error
		hash, err = bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
		if err != nil {
			return nil, fmt.Errorf("hash default password: %w", err)
		}
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}
	return &Gate{kv: store, username: username, hash: hash, log: log.WithField("component", "auth")}, nil
}

// HashPassword returns the bcrypt hash to put in configuration.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Validate applies the input rules checked before any credential lookup.
func Validate(username, password string) error {
	switch {
	case username == "":
		return ErrEmptyUsername
	case password == "":
		return ErrEmptyPassword
	case len([]rune(password)) < MinPasswordLength:
		return ErrPasswordTooShort
	}
	return nil
}

// Authenticate validates the input and checks it against the account.
func (g *Gate) Authenticate(username, password string) error {
	if err := Validate(username, password); err != nil {
		return err
	}
	if username != g.username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(g.hash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// Login authenticates and records the session. With remember set the username
// is kept for the next login prompt.
func (g *Gate) Login(ctx context.Context, username, password string, remember bool) (Session, error) {
	if err := g.Authenticate(username, password); err != nil {
		g.log.WithField("user", username).Warn("login rejected")
		return Session{}, err
	}
	s, err := g.Session(ctx)
	if err != nil {
		return Session{}, err
	}
	s.LoggedIn = true
	s.User = username
	s.Remember = remember
	if remember {
		s.SavedUsername = username
	} else {
		s.SavedUsername = ""
	}
	return s, g.save(ctx, s)
}

// Logout ends the session, keeping the saved username only when remembered.
func (g *Gate) Logout(ctx context.Context) (Session, error) {
	s, err := g.Session(ctx)
	if err != nil {
		return Session{}, err
	}
	s.LoggedIn = false
	s.User = ""
	if !s.Remember {
		s.SavedUsername = ""
	}
	return s, g.save(ctx, s)
}

// SetRemember toggles remembering the username. Turning it off forgets the
// saved username.
func (g *Gate) SetRemember(ctx context.Context, remember bool) (Session, error) {
	s, err := g.Session(ctx)
	if err != nil {
		return Session{}, err
	}
	s.Remember = remember
	if !remember {
		s.SavedUsername = ""
	} else if s.User != "" {
		s.SavedUsername = s.User
	}
	return s, g.save(ctx, s)
}

// Session returns the stored session. Missing or undecodable data is a
// logged-out session.
func (g *Gate) Session(ctx context.Context) (Session, error) {
	data, err := g.kv.Get(ctx, kv.KeySession)
	if errors.Is(err, kv.ErrNotFound) {
		return Session{}, nil
	}
	if err != nil {
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		g.log.WithError(err).Warn("discarding undecodable session")
		return Session{}, nil
	}
	return s, nil
}

func (g *Gate) save(ctx context.Context, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := g.kv.Put(ctx, kv.KeySession, data); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
