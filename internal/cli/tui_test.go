package cli

import (
	"context"
	"net/http"
	"testing"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/debounce"
	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- start-up ---

func TestAppModel_StartsOnSignInWithoutSession(t *testing.T) {
	app, _ := testApp(t)

	m := newAppModel(app)
	assert.Equal(t, ViewSignIn, m.activeView().ID())
}

func TestAppModel_StartsOnDashboardWithSession(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
	assert.Equal(t, testEmail, d.State().SignedInAs)
	assert.True(t, d.ViewContains("Clients"))
	assert.True(t, d.ViewContains(testEmail))
}

// --- navigation ---

func TestDashboard_NumberKeyOpensList(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')

	assert.Equal(t, []ViewID{ViewDashboard, ViewRecordList}, d.ViewStackIDs())
	assert.True(t, d.ViewContains("Acme Plumbing"))
	assert.True(t, d.ViewContains("page 1 · 3 of 3"))

	d.PressEsc()
	assert.Equal(t, []ViewID{ViewDashboard}, d.ViewStackIDs())
}

func TestList_EnterOpensDetail(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	d.PressDown()
	d.PressEnter()

	assert.Equal(t, ViewRecordDetail, d.ActiveViewID())
	assert.True(t, d.ViewContains("CLIENT #2"))
	assert.True(t, d.ViewContains("Bright Sparks"))
}

func TestList_Paging(t *testing.T) {
	app, fb := signedInApp(t)
	app.PageSize = 2
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	assert.True(t, d.ViewContains("page 1 · 2 of 3"))

	d.PressKey('n')
	assert.True(t, d.ViewContains("page 2 · 1 of 3"))
	assert.True(t, d.ViewContains("Cool Air"))

	// No page 3.
	d.PressKey('n')
	assert.True(t, d.ViewContains("page 2 · 1 of 3"))

	d.PressKey('p')
	assert.True(t, d.ViewContains("page 1 · 2 of 3"))
}

func TestList_LoadErrorOffersRetry(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	res, _ := api.ResourceFor(domain.KindJobs)

	d := NewTestDriver(t, app)
	fb.Fail(http.MethodGet, res.ListPath(), http.StatusInternalServerError, `{"message":"database offline"}`)
	d.PressKey('2')

	assert.True(t, d.ViewContains("database offline"))
	assert.True(t, d.ViewContains("press r to retry"))

	d.PressKey('r')
	assert.True(t, d.ViewContains("No jobs found."))
}

// --- search ---

func TestListSearch_OnlySettledValueIsQueried(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	d.PressKey('/')
	require.True(t, d.List().CapturesInput())

	d.PressKey('a')
	first, _ := d.List().gate.Latest()
	d.PressKey('c')
	d.PressKey('m')
	d.PressKey('e')

	// The quiet period for "a" ends after newer keystrokes: ignored.
	d.Send(debounce.SettledMsg{Token: first})
	d.Settle()

	var typed []string
	for _, kw := range fb.ListKeywords(domain.KindClients) {
		if kw != "" {
			typed = append(typed, kw)
		}
	}
	assert.Equal(t, []string{"acme"}, typed)
	assert.True(t, d.ViewContains("Acme Plumbing"))
	assert.False(t, d.ViewContains("Cool Air"))

	// q goes to the search box, not the quit binding.
	assert.False(t, d.IsQuitting())
}

func TestListSearch_NoMatches(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	d.PressKey('/')
	d.Type("zzz")
	d.Settle()
	d.PressEnter()

	assert.False(t, d.List().CapturesInput())
	assert.True(t, d.ViewContains(`No clients match "zzz".`))
}

func TestListSearch_EscClearsKeyword(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	d.PressKey('/')
	d.Type("cool")
	d.Settle()
	require.False(t, d.ViewContains("Acme Plumbing"))

	d.PressEsc()
	d.Settle()
	assert.Equal(t, ViewRecordList, d.ActiveViewID())
	assert.Equal(t, "", d.List().opts.Keyword)
	assert.True(t, d.ViewContains("Acme Plumbing"))
}

func TestListSearch_ResetsToFirstPage(t *testing.T) {
	app, fb := signedInApp(t)
	app.PageSize = 2
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	d.PressKey('n')
	require.Equal(t, 2, d.List().opts.PageNumber)

	d.PressKey('/')
	d.Type("a")
	d.Settle()
	assert.Equal(t, 1, d.List().opts.PageNumber)
}

// --- load ordering ---

func TestList_StaleResponseIsDropped(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	state := newSharedState(app)

	v := newRecordListView(state, domain.KindClients)
	oldLoad := v.Init()
	oldSeq := v.seq
	newLoad := v.load()
	require.NotEqual(t, oldSeq, v.seq)

	v.Update(newLoad())
	require.Len(t, v.page.Items, 3)

	stale := recordsLoadedMsg{kind: domain.KindClients, seq: oldSeq, page: domain.Page{Items: []domain.Record{{"id": "9"}}}}
	v.Update(stale)
	assert.Len(t, v.page.Items, 3)

	// The superseded request still completes; its result is ignored too.
	v.Update(oldLoad())
	assert.Equal(t, loadSuccess, v.status)
}

func TestList_SeqsAreUniqueAcrossViews(t *testing.T) {
	app, _ := signedInApp(t)
	state := newSharedState(app)

	a := newRecordListView(state, domain.KindClients)
	b := newRecordListView(state, domain.KindClients)
	a.load()
	b.load()
	assert.NotEqual(t, a.seq, b.seq)
}

func TestList_RefreshKeepsCachedRows(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	state := newSharedState(app)

	v := newRecordListView(state, domain.KindClients)
	v.Update(v.Init()())
	require.Equal(t, loadSuccess, v.status)

	pending := v.load()
	assert.Equal(t, loadLoading, v.status)
	assert.Len(t, v.page.Items, 3)
	assert.Contains(t, v.View(), "refreshing...")

	v.Update(pending())
	assert.NotContains(t, v.View(), "refreshing...")
}

// --- delete ---

func asBatch(msg tea.Msg) ([]tea.Cmd, bool) {
	b, ok := msg.(tea.BatchMsg)
	return b, ok
}

func TestDeleteRecordCmd_Success(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	cmds, ok := asBatch(deleteRecordCmd(app, domain.KindClients, "2", false)())
	require.True(t, ok)
	require.Len(t, cmds, 2)
	assert.Contains(t, cmds[0]().(cmdOutputMsg).output, "Deleted client #2")
	assert.Equal(t, refreshViewMsg{}, cmds[1]())
	assert.Len(t, fb.Records(domain.KindClients), 2)
}

func TestDeleteRecordCmd_PopsDetailPage(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	cmds, ok := asBatch(deleteRecordCmd(app, domain.KindClients, "2", true)())
	require.True(t, ok)
	require.Len(t, cmds, 3)
	assert.Equal(t, popViewMsg{}, cmds[0]())
}

func TestDeleteRecordCmd_FailureKeepsViews(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	res, _ := api.ResourceFor(domain.KindClients)
	fb.Fail(http.MethodDelete, res.DeletePath("2"), http.StatusConflict, `{"message":"client has open jobs"}`)

	msg := deleteRecordCmd(app, domain.KindClients, "2", true)()
	out, ok := msg.(cmdOutputMsg)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, out.output, "client has open jobs")
	assert.Len(t, fb.Records(domain.KindClients), 3)
}

// --- forms ---

func TestRecordForm_SaveCompletes(t *testing.T) {
	app, fb := signedInApp(t)
	state := newSharedState(app)

	v := newRecordFormView(state, entitySpecs[domain.KindClients], "", &form.Client{ClientName: "New Co"}, nil)
	v.saving = true
	_, cmd := v.Update(v.save()())
	require.NotNil(t, cmd)

	_, ok := cmd().(wizardCompleteMsg)
	assert.True(t, ok)
	recs := fb.Records(domain.KindClients)
	require.Len(t, recs, 1)
	assert.Equal(t, "New Co", recs[0].String("clientName"))
	assert.Equal(t, "Created client #101", v.successMessage(domain.Record{"id": "101"}))
}

func TestRecordForm_ValidationKeepsFormOpen(t *testing.T) {
	app, fb := signedInApp(t)
	state := newSharedState(app)

	v := newRecordFormView(state, entitySpecs[domain.KindClients], "", &form.Client{Email: "not-an-email"}, nil)
	v.Update(v.save()())

	assert.Error(t, v.err)
	assert.False(t, v.saving)
	view := v.View()
	assert.Contains(t, view, "Client name is required")
	assert.Equal(t, "not-an-email", v.target.(*form.Client).Email)
	assert.Empty(t, fb.Records(domain.KindClients))
}

func TestRecordForm_EditTitle(t *testing.T) {
	app, _ := signedInApp(t)
	state := newSharedState(app)

	v := newRecordFormView(state, entitySpecs[domain.KindClients], "2", &form.Client{ClientName: "Bright Sparks"}, nil)
	assert.Equal(t, "Edit client #2", v.Title())
	assert.Equal(t, "Updated client #2", v.successMessage(nil))
}

func TestOpenRecordForm_LoadsLookups(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	fb.Seed(domain.KindEmployees, domain.Record{"id": "7", "firstName": "Sam", "lastName": "Lee"})

	msg := openRecordForm(newSharedState(app), domain.KindJobs, nil)()
	push, ok := msg.(pushViewMsg)
	require.True(t, ok, "got %T", msg)

	v := push.view.(*recordFormView)
	assert.Equal(t, "New job", v.Title())
	assert.Len(t, v.lookups[domain.KindClients], 3)
	assert.Len(t, v.lookups[domain.KindEmployees], 1)
	assert.Contains(t, v.lookups, domain.KindProjects)
}

func TestOpenRecordForm_LookupFailure(t *testing.T) {
	app, fb := signedInApp(t)
	res, _ := api.ResourceFor(domain.KindClients)
	fb.Fail(http.MethodGet, res.ListPath(), http.StatusInternalServerError, `{"message":"boom"}`)

	msg := openRecordForm(newSharedState(app), domain.KindJobs, nil)()
	out, ok := msg.(cmdOutputMsg)
	require.True(t, ok, "got %T", msg)
	assert.Contains(t, out.output, "boom")
}

// --- sign in ---

func TestSignInView_Success(t *testing.T) {
	app, _ := testApp(t)
	state := newSharedState(app)

	v := newSignInView(state)
	v.signIn.Email = testEmail
	v.signIn.Password = testPassword
	_, cmd := v.Update(v.submit()())
	require.NotNil(t, cmd)

	reset, ok := cmd().(resetViewsMsg)
	require.True(t, ok)
	assert.Equal(t, ViewDashboard, reset.view.ID())
	assert.Equal(t, testEmail, state.SignedInAs)
}

func TestSignInView_FailureClearsPassword(t *testing.T) {
	app, _ := testApp(t)
	state := newSharedState(app)

	v := newSignInView(state)
	v.signIn.Email = testEmail
	v.signIn.Password = "wrong"
	v.Update(v.submit()())

	assert.Error(t, v.err)
	assert.Empty(t, v.signIn.Password)
	assert.Equal(t, testEmail, v.signIn.Email)
	assert.Empty(t, state.SignedInAs)
}

func TestSignInView_Register(t *testing.T) {
	app, _ := testApp(t)
	state := newSharedState(app)

	v := newSignInView(state)
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	require.Equal(t, modeRegister, v.mode)
	assert.Equal(t, "Create account", v.Title())

	v.register = form.Register{Email: "new@example.com", Password: "pw", ConfirmPassword: "pw"}
	v.Update(v.submit()())

	assert.Equal(t, modeSignIn, v.mode)
	assert.Equal(t, "new@example.com", v.signIn.Email)
	assert.Contains(t, v.View(), "Account created. Sign in to continue.")
}

func TestSignInView_EscLeavesPasswordReset(t *testing.T) {
	app, _ := testApp(t)

	v := newSignInView(newSharedState(app))
	v.Update(tea.KeyMsg{Type: tea.KeyCtrlF})
	require.Equal(t, modeForgot, v.mode)
	v.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, modeSignIn, v.mode)
}

func TestSignInView_PrefillsRememberedEmail(t *testing.T) {
	app, _ := testApp(t)
	ctx := context.Background()
	require.NoError(t, app.Auth.SignIn(ctx, &form.SignIn{Email: testEmail, Password: testPassword, Remember: true}))
	require.NoError(t, app.Auth.SignOut(ctx))

	v := newSignInView(newSharedState(app))
	assert.Equal(t, testEmail, v.signIn.Email)
	assert.True(t, v.signIn.Remember)
}

// --- command bar ---

func TestCommandBar_KindOpensList(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.Command("clients")

	assert.False(t, d.CmdBarFocused())
	assert.Equal(t, ViewRecordList, d.ActiveViewID())
	assert.Len(t, d.List().page.Items, 3)
}

func TestCommandBar_RunsCobraCommand(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.Command(`clients get "bright sparks"`)

	assert.Contains(t, d.LastOutput(), "CLIENT #2")
	assert.Contains(t, d.LastOutput(), "Bright Sparks")
	assert.Equal(t, ViewDashboard, d.ActiveViewID())
}

func TestCommandBar_MutationRefreshesLists(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.Command("clients")
	require.Len(t, d.List().page.Items, 3)

	d.Command("clients delete 2 -y")
	assert.Contains(t, d.LastOutput(), "Deleted client #2")
	assert.Len(t, d.List().page.Items, 2)
}

func TestCommandBar_UnknownCommandSuggests(t *testing.T) {
	app, _ := signedInApp(t)

	d := NewTestDriver(t, app)
	d.Command("clints list")

	assert.Contains(t, d.LastOutput(), "unknown command")
	assert.Contains(t, d.LastOutput(), "Did you mean:")
	assert.Contains(t, d.LastOutput(), "clients")
}

func TestCommandBar_ParseError(t *testing.T) {
	app, _ := signedInApp(t)

	d := NewTestDriver(t, app)
	d.Command(`clients get "acme`)
	assert.Contains(t, d.LastOutput(), "unterminated quoted string")
}

func TestCommandBar_Exit(t *testing.T) {
	app, _ := signedInApp(t)

	d := NewTestDriver(t, app)
	d.Command("exit")
	assert.True(t, d.IsQuitting())
}

func TestCommandBar_Logout(t *testing.T) {
	app, _ := signedInApp(t)

	d := NewTestDriver(t, app)
	d.Command("logout")

	assert.Equal(t, []ViewID{ViewSignIn}, d.ViewStackIDs())
	assert.Empty(t, d.State().SignedInAs)
	_, err := app.Auth.Session(context.Background())
	assert.Error(t, err)
}

func TestCommandBar_Home(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	d := NewTestDriver(t, app)
	d.PressKey('1')
	d.PressEnter()
	require.Len(t, d.ViewStackIDs(), 3)

	d.Command("home")
	assert.Equal(t, []ViewID{ViewDashboard}, d.ViewStackIDs())
}

func TestCommandBar_Suggestions(t *testing.T) {
	app, _ := signedInApp(t)
	bar := newCommandBar(newSharedState(app))

	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"cli", []string{"clients"}},
		{"ex", []string{"exit"}},
		{"jobs ex", []string{"jobs export"}},
		{"clients d", []string{"clients delete"}},
		{"clients delete ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, bar.suggestionsFor(tt.text))
		})
	}
}

func TestSplitShellArgs(t *testing.T) {
	tests := []struct {
		in      string
		want    []string
		wantErr string
	}{
		{in: "clients list", want: []string{"clients", "list"}},
		{in: `clients get "acme plumbing"`, want: []string{"clients", "get", "acme plumbing"}},
		{in: `jobs add --title 'Fix tap'`, want: []string{"jobs", "add", "--title", "Fix tap"}},
		{in: `a\ b`, want: []string{"a b"}},
		{in: `x ""`, want: []string{"x", ""}},
		{in: "   ", want: nil},
		{in: `"open`, wantErr: "unterminated quoted string"},
		{in: `trail\`, wantErr: "unterminated escape sequence"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := splitShellArgs(tt.in)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMutates(t *testing.T) {
	assert.True(t, mutates([]string{"clients", "add"}))
	assert.True(t, mutates([]string{"job", "update", "3"}))
	assert.True(t, mutates([]string{"employees", "delete", "1"}))
	assert.True(t, mutates([]string{"profile", "update"}))
	assert.False(t, mutates([]string{"clients", "list"}))
	assert.False(t, mutates([]string{"profile"}))
	assert.False(t, mutates([]string{"stats"}))
}
