package cli

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/tradieone/internal/domain"
	"github.com/alexanderramin/tradieone/internal/form"
	"github.com/alexanderramin/tradieone/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// --- auth ---

func TestLoginWhoAmILogout(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")

	out, err = executeCmd(t, app, "login", "--email", testEmail, "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as "+testEmail)

	out, err = executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, testEmail)

	_, err = executeCmd(t, app, "logout")
	require.NoError(t, err)
	out, err = executeCmd(t, app, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Not signed in.")
}

func TestLogin_WrongPassword(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login", "-e", testEmail, "--password", "nope")
	require.Error(t, err)

	_, err = app.Auth.Session(t.Context())
	assert.ErrorIs(t, err, service.ErrNotSignedIn)
}

func TestLogin_UsesRememberedEmail(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "login", "-e", testEmail, "--password", testPassword, "--remember")
	require.NoError(t, err)
	_, err = executeCmd(t, app, "logout")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "login", "--password", testPassword)
	require.NoError(t, err)
	assert.Contains(t, out, "Signed in as "+testEmail)
}

func TestRegister_PasswordMismatch(t *testing.T) {
	app, _ := testApp(t)

	_, err := executeCmd(t, app, "register", "-e", "new@example.com", "--password", "a", "--confirm", "b")
	var fe form.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Passwords do not match", fe["confirmPassword"])
}

func TestRegister_CreatesAccount(t *testing.T) {
	app, _ := testApp(t)

	out, err := executeCmd(t, app, "register", "-e", "new@example.com", "--password", "pw", "--confirm", "pw")
	require.NoError(t, err)
	assert.Contains(t, out, "Account created")

	_, err = executeCmd(t, app, "login", "-e", "new@example.com", "--password", "pw")
	assert.NoError(t, err)
}

func TestRecordsRequireSignIn(t *testing.T) {
	app, fb := testApp(t)
	seedClients(fb)

	_, err := executeCmd(t, app, "clients", "list")
	require.Error(t, err)
	assert.Equal(t, "Not signed in. Run `tradie login` first.", describeError(err))
}

// --- list / get ---

func TestClientsList_Table(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	out, err := executeCmd(t, app, "clients", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Acme Plumbing")
	assert.Contains(t, out, "Cool Air")
	assert.Contains(t, out, "page 1 · 3 of 3")
}

func TestClientsList_SearchAndJSON(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	out, err := executeCmd(t, app, "client", "ls", "-s", "acme", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Items      []map[string]any `json:"items"`
		TotalCount int              `json:"totalCount"`
		PageNumber int              `json:"pageNumber"`
		PageSize   int              `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Acme Plumbing", got.Items[0]["clientName"])
	assert.Equal(t, 1, got.TotalCount)
	assert.Equal(t, 1, got.PageNumber)
	assert.Equal(t, 20, got.PageSize)
}

func TestClientsList_Empty(t *testing.T) {
	app, _ := signedInApp(t)

	out, err := executeCmd(t, app, "clients", "list", "--search", "zzz")
	require.NoError(t, err)
	assert.Contains(t, out, `No clients match "zzz".`)
}

func TestClientsGet_ByName(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	out, err := executeCmd(t, app, "clients", "get", "bright sparks")
	require.NoError(t, err)
	assert.Contains(t, out, "CLIENT #2")
	assert.Contains(t, out, "Bright Sparks")
}

func TestClientsGet_NormalizesState(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	out, err := executeCmd(t, app, "clients", "get", "1", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "state: Victoria")
}

func TestClientsGet_Unknown(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	_, err := executeCmd(t, app, "clients", "get", "Nobody Here At All")
	assert.ErrorIs(t, err, service.ErrNoMatch)
}

// --- add / update / delete ---

func TestClientsAdd(t *testing.T) {
	app, fb := signedInApp(t)

	out, err := executeCmd(t, app, "clients", "add",
		"--client-name", "New Co", "--email", "hi@new.co", "--state", "qld")
	require.NoError(t, err)
	assert.Contains(t, out, "Created client #101")

	recs := fb.Records(domain.KindClients)
	require.Len(t, recs, 1)
	assert.Equal(t, "New Co", recs[0].String("clientName"))
	assert.Equal(t, "Queensland", recs[0].String("state"))
}

func TestClientsAdd_ValidationFailsWithoutRequest(t *testing.T) {
	app, fb := signedInApp(t)

	_, err := executeCmd(t, app, "clients", "add", "--email", "not-an-email")
	var fe form.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Client name is required", fe["clientName"])
	assert.Equal(t, "Invalid email address", fe["email"])
	assert.Empty(t, fb.Records(domain.KindClients))
}

func TestClientsAdd_InvalidChoiceFlag(t *testing.T) {
	app, _ := signedInApp(t)

	_, err := executeCmd(t, app, "employees", "add", "--first-name", "Sam", "--status", "Retired")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Active")
}

func TestClientsUpdate_KeepsOtherFields(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	out, err := executeCmd(t, app, "clients", "update", "Acme Plumbing", "--phone", "0400 000 000")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated client #1")

	recs := fb.Records(domain.KindClients)
	assert.Equal(t, "0400 000 000", recs[0].String("phone"))
	assert.Equal(t, "Acme Plumbing", recs[0].String("clientName"))
	assert.Equal(t, "acme@example.com", recs[0].String("email"))
}

func TestClientsUpdate_KeepsCountry(t *testing.T) {
	app, fb := signedInApp(t)
	fb.Seed(domain.KindClients,
		domain.Record{"id": "5", "clientName": "Harbour Roofing", "city": "Sydney", "country": "Australia"},
	)

	_, err := executeCmd(t, app, "clients", "update", "5", "--city", "Newcastle")
	require.NoError(t, err)

	recs := fb.Records(domain.KindClients)
	require.Len(t, recs, 1)
	assert.Equal(t, "Newcastle", recs[0].String("city"))
	assert.Equal(t, "Australia", recs[0].String("country"))
}

func TestClientsUpdate_NoFlags(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	_, err := executeCmd(t, app, "clients", "update", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestClientsDelete_RequiresYes(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	_, err := executeCmd(t, app, "clients", "delete", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to delete client #2 without --yes")
	assert.Len(t, fb.Records(domain.KindClients), 3)

	out, err := executeCmd(t, app, "clients", "rm", "2", "-y")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted client #2")
	assert.Len(t, fb.Records(domain.KindClients), 2)
}

func jobArgs(extra ...string) []string {
	args := []string{"jobs", "add",
		"--title", "Fix leak",
		"--location-name", "Kitchen",
		"--client", "Acme Plumbing",
		"--address-line1", "1 Main St",
		"--state", "VIC",
		"--postcode", "3000",
		"--start-date", "2026-05-01",
		"--end-date", "2026-05-02",
		"--start-time", "08:00",
		"--finish-time", "16:00",
	}
	return append(args, extra...)
}

func TestJobsAdd_ResolvesReferences(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	fb.Seed(domain.KindEmployees,
		domain.Record{"id": "7", "firstName": "Sam", "lastName": "Lee"},
		domain.Record{"id": "8", "firstName": "Ria", "lastName": "Khan"},
	)

	out, err := executeCmd(t, app, append(jobArgs("--city", "Geelong"), "--employees", "Sam Lee,8")...)
	require.NoError(t, err)
	assert.Contains(t, out, "Created job")

	jobs := fb.Records(domain.KindJobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "1", jobs[0].String("clientId"))
	assert.Equal(t, "Geelong", jobs[0].String("city"))
	assert.Equal(t, "Victoria", jobs[0].String("state"))
	assert.Equal(t, []any{json.Number("7"), json.Number("8")}, jobs[0]["assignedEmployeeIds"])
}

func TestJobsAdd_UnlistedCityIsKept(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)

	_, err := executeCmd(t, app, jobArgs("--city", "Smalltown")...)
	require.NoError(t, err)

	jobs := fb.Records(domain.KindJobs)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Smalltown", jobs[0].String("city"))
}

func TestJobsAdd_ProjectOfAnotherClient(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	fb.Seed(domain.KindProjects, domain.Record{"id": "5", "name": "Office Fitout", "clientId": "2"})

	_, err := executeCmd(t, app, jobArgs("--city", "Melbourne", "--project", "Office Fitout")...)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `project "Office Fitout" belongs to another client`)
	assert.Empty(t, fb.Records(domain.KindJobs))
}

func TestJobsAdd_MissingFields(t *testing.T) {
	app, fb := signedInApp(t)

	_, err := executeCmd(t, app, "jobs", "add", "--title", "Fix leak")
	var fe form.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Client is required", fe["clientId"])
	assert.Equal(t, "Start date is required", fe["startDate"])
	assert.Empty(t, fb.Records(domain.KindJobs))
}

// --- export ---

func TestClientsExport_PagesThroughEverything(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	path := filepath.Join(t.TempDir(), "out", "clients.xlsx")

	out, err := executeCmd(t, app, "clients", "export", "--xlsx", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 3 clients to "+path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Clients")
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Acme Plumbing", rows[1][1])
	assert.Equal(t, "Cool Air", rows[3][1])
}

func TestClientsExport_RequiresPath(t *testing.T) {
	app, _ := signedInApp(t)

	_, err := executeCmd(t, app, "clients", "export")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `required flag(s) "xlsx" not set`)
}

// --- stats / profile ---

func TestStats_JSON(t *testing.T) {
	app, fb := signedInApp(t)
	seedClients(fb)
	fb.Seed(domain.KindJobs, domain.Record{"id": "1", "title": "Fix leak"})

	out, err := executeCmd(t, app, "stats", "-o", "json")
	require.NoError(t, err)

	var got struct {
		Clients int            `json:"clients"`
		Counts  map[string]int `json:"counts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 3, got.Clients)
	assert.Equal(t, 1, got.Counts["jobs"])
	assert.Equal(t, 0, got.Counts["projects"])
}

func TestProfileShowAndUpdate(t *testing.T) {
	app, fb := signedInApp(t)
	fb.SetProfile(domain.Record{"id": "9", "firstName": "Pat", "email": "pat@example.com"})

	out, err := executeCmd(t, app, "profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "Pat")

	out, err = executeCmd(t, app, "profile", "update", "--last-name", "Nguyen")
	require.NoError(t, err)
	assert.Contains(t, out, "Profile updated")
	assert.Equal(t, "Nguyen", fb.Profile().String("lastName"))
	assert.Equal(t, "Pat", fb.Profile().String("firstName"))
}

func TestProfileUpdate_InvalidPhone(t *testing.T) {
	app, fb := signedInApp(t)
	fb.SetProfile(domain.Record{"id": "9"})

	_, err := executeCmd(t, app, "profile", "update", "--phone", "12")
	var fe form.FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "Phone must be at least 6 characters", fe["phone"])
}
