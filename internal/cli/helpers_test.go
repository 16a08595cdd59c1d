package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/cache"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/repository"
	"github.com/alexanderramin/tradieone/internal/service"
	"github.com/alexanderramin/tradieone/internal/testutil"
	"github.com/stretchr/testify/require"
)

const (
	testEmail    = "tradie@example.com"
	testPassword = "hunter2"
)

// testApp wires a full App against a fake backend and an in-memory DB.
// Nobody is signed in.
func testApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()
	database := testutil.NewTestDB(t)
	fb := testutil.NewFakeBackend(t)
	fb.AddUser(testEmail, testPassword)

	auth := service.NewAuthService(
		api.NewAuthClient(fb.URL()),
		repository.NewSQLiteSessionRepo(database),
		repository.NewSQLitePreferenceRepo(database),
		testutil.NewTestUoW(database),
	)
	client := api.NewClient(fb.URL(), auth)
	records := service.NewRecordService(client, cache.New(), 20, 500)

	return &App{
		Records:        records,
		Auth:           auth,
		Profile:        service.NewProfileService(client),
		Stats:          service.NewStatsService(records),
		PageSize:       20,
		ExportPageSize: 2,
	}, fb
}

// signedInApp is testApp with the test user signed in.
func signedInApp(t *testing.T) (*App, *testutil.FakeBackend) {
	t.Helper()
	app, fb := testApp(t)
	require.NoError(t, app.Auth.SignIn(context.Background(), &form.SignIn{Email: testEmail, Password: testPassword}))
	return app, fb
}

func seedClients(fb *testutil.FakeBackend) {
	fb.Seed(domain.KindClients,
		domain.Record{"id": "1", "clientName": "Acme Plumbing", "email": "acme@example.com", "stateName": "vic"},
		domain.Record{"id": "2", "clientName": "Bright Sparks"},
		domain.Record{"id": "3", "clientName": "Cool Air"},
	)
}

// executeCmd runs a cobra command and captures stdout/stderr. Stdin is empty.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}
