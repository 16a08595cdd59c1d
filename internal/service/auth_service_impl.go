package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/db"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/repository"
)

type authService struct {
	backend  AuthBackend
	sessions repository.SessionRepo
	prefs    repository.PreferenceRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewAuthService(backend AuthBackend, sessions repository.SessionRepo, prefs repository.PreferenceRepo, uow db.UnitOfWork, observers ...UseCaseObserver) AuthService {
	return &authService{
		backend:  backend,
		sessions: sessions,
		prefs:    prefs,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

// SignIn stores the issued token and the remember-me choice in one
// transaction.
func (s *authService) SignIn(ctx context.Context, f *form.SignIn) (err error) {
	startedAt := time.Now()
	defer func() {
		observe(ctx, s.observer, "auth.sign_in", startedAt, map[string]any{"remember": f.Remember}, &err)
	}()

	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	token, err := s.backend.Login(ctx, api.Credentials{Username: f.Email, Password: f.Password})
	if err != nil {
		return err
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)
		txPrefs := repository.NewSQLitePreferenceRepo(tx)

		if err := txSessions.Save(ctx, &domain.Session{Token: token, Email: f.Email}); err != nil {
			return err
		}
		if f.Remember {
			return txPrefs.Set(ctx, domain.PrefRememberedEmail, f.Email)
		}
		return txPrefs.Delete(ctx, domain.PrefRememberedEmail)
	})
}

func (s *authService) Register(ctx context.Context, f *form.Register) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "auth.register", startedAt, nil, &err) }()

	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	return s.backend.Signup(ctx, api.Credentials{Username: f.Email, Password: f.Password})
}

func (s *authService) ForgotPassword(ctx context.Context, f *form.ForgotPassword) (err error) {
	startedAt := time.Now()
	defer func() { observe(ctx, s.observer, "auth.forgot_password", startedAt, nil, &err) }()

	if fe := f.Validate(); len(fe) > 0 {
		return fe
	}
	return s.backend.ForgotPassword(ctx, f.Email)
}

// SignOut drops the token. The remembered email stays.
func (s *authService) SignOut(ctx context.Context) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteSessionRepo(tx).Clear(ctx)
	})
}

func (s *authService) Session(ctx context.Context) (*domain.Session, error) {
	sess, err := s.sessions.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotSignedIn
	}
	if err != nil {
		return nil, err
	}
	if sess.Token == "" {
		return nil, ErrNotSignedIn
	}
	return sess, nil
}

func (s *authService) RememberedEmail(ctx context.Context) (string, error) {
	email, err := s.prefs.Get(ctx, domain.PrefRememberedEmail)
	if errors.Is(err, repository.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading remembered email: %w", err)
	}
	return email, nil
}

func (s *authService) Token(ctx context.Context) (string, error) {
	sess, err := s.Session(ctx)
	if err != nil {
		return "", err
	}
	return sess.Token, nil
}
