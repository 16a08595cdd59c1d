package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
)

// ErrNotSignedIn is returned when no session token is stored.
var ErrNotSignedIn = errors.New("not signed in: run `tradie login`")

// RecordBackend is the part of the REST client used for entity CRUD.
type RecordBackend interface {
	List(ctx context.Context, kind domain.Kind, opts domain.ListOptions) (domain.Page, error)
	Get(ctx context.Context, kind domain.Kind, id string) (domain.Record, error)
	Create(ctx context.Context, kind domain.Kind, payload any) (domain.Record, error)
	Update(ctx context.Context, kind domain.Kind, id string, payload any) error
	Delete(ctx context.Context, kind domain.Kind, id string) error
}

type ProfileBackend interface {
	Profile(ctx context.Context) (domain.Record, error)
	UpdateProfile(ctx context.Context, p domain.UserProfile) error
}

type AuthBackend interface {
	Login(ctx context.Context, cred api.Credentials) (string, error)
	Signup(ctx context.Context, cred api.Credentials) error
	ForgotPassword(ctx context.Context, username string) error
}

type RecordService interface {
	// List always asks the backend and returns normalized records.
	List(ctx context.Context, kind domain.Kind, opts domain.ListOptions) (domain.Page, error)
	// Cached returns the last successful List result for the same query.
	Cached(kind domain.Kind, opts domain.ListOptions) (domain.Page, bool)
	// Lookup returns the first large page used to fill select inputs.
	Lookup(ctx context.Context, kind domain.Kind) (domain.Page, error)
	Get(ctx context.Context, kind domain.Kind, id string) (domain.Record, error)
	// Save creates when id is empty and updates otherwise. A form that
	// fails validation returns its form.FieldErrors without any request.
	Save(ctx context.Context, kind domain.Kind, id string, f form.Form) (domain.Record, error)
	Delete(ctx context.Context, kind domain.Kind, id string) error
	// Resolve finds one record by id or by (fuzzy) display name.
	Resolve(ctx context.Context, kind domain.Kind, query string) (domain.Record, error)
}

type AuthService interface {
	SignIn(ctx context.Context, f *form.SignIn) error
	Register(ctx context.Context, f *form.Register) error
	ForgotPassword(ctx context.Context, f *form.ForgotPassword) error
	SignOut(ctx context.Context) error
	Session(ctx context.Context) (*domain.Session, error)
	RememberedEmail(ctx context.Context) (string, error)
	// Token satisfies api.TokenSource.
	Token(ctx context.Context) (string, error)
}

type ProfileService interface {
	Get(ctx context.Context) (domain.Record, error)
	Update(ctx context.Context, f *form.Profile) error
}

type StatsService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
}
