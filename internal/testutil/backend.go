package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/alexanderramin/tradieone/internal/api"
	"github.com/alexanderramin/tradieone/internal/domain"
)

// Request is one call seen by a FakeBackend.
type Request struct {
	Method  string
	Path    string
	Keyword string
	Auth    string
	Body    domain.Record
}

type failure struct {
	status int
	body   string
}

// FakeBackend is an in-memory stand-in for both the REST API and the auth
// service, served from one httptest server.
type FakeBackend struct {
	Server *httptest.Server

	mu       sync.Mutex
	records  map[domain.Kind][]domain.Record
	profile  domain.Record
	users    map[string]string
	tokens   map[string]string
	nextID   int
	requests []Request
	failures map[string]failure

	// RequireAuth rejects /api calls without a token issued by /login.
	RequireAuth bool
}

// NewFakeBackend starts a backend that is shut down with the test.
func NewFakeBackend(t *testing.T) *FakeBackend {
	t.Helper()
	b := &FakeBackend{
		records:  make(map[domain.Kind][]domain.Record),
		profile:  domain.Record{},
		users:    make(map[string]string),
		tokens:   make(map[string]string),
		nextID:   100,
		failures: make(map[string]failure),
	}
	b.Server = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.Server.Close)
	return b
}

func (b *FakeBackend) URL() string { return b.Server.URL }

// Seed appends records of kind.
func (b *FakeBackend) Seed(kind domain.Kind, recs ...domain.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range recs {
		b.records[kind] = append(b.records[kind], r.Clone())
	}
}

// Records returns a snapshot of the stored records of kind.
func (b *FakeBackend) Records(kind domain.Kind) []domain.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]domain.Record, len(b.records[kind]))
	for i, r := range b.records[kind] {
		out[i] = r.Clone()
	}
	return out
}

// SetProfile replaces the stored user profile.
func (b *FakeBackend) SetProfile(p domain.Record) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.profile = p.Clone()
}

func (b *FakeBackend) Profile() domain.Record {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.profile.Clone()
}

// AddUser registers credentials accepted by /login.
func (b *FakeBackend) AddUser(email, password string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[email] = password
}

// Fail makes the next call to method+path answer with status and body.
func (b *FakeBackend) Fail(method, path string, status int, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failures[method+" "+path] = failure{status: status, body: body}
}

// Requests returns every call seen so far.
func (b *FakeBackend) Requests() []Request {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Request(nil), b.requests...)
}

// Count returns how many calls matched method and path exactly.
func (b *FakeBackend) Count(method, path string) int {
	n := 0
	for _, r := range b.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

// ListKeywords returns the keyword of every list call to kind, in order.
func (b *FakeBackend) ListKeywords(kind domain.Kind) []string {
	res, _ := api.ResourceFor(kind)
	var out []string
	for _, r := range b.Requests() {
		if r.Method == http.MethodGet && r.Path == res.ListPath() {
			out = append(out, r.Keyword)
		}
	}
	return out
}

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	var body domain.Record
	if r.Body != nil && (r.Method == http.MethodPost || r.Method == http.MethodPut) {
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		_ = dec.Decode(&body)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.requests = append(b.requests, Request{
		Method:  r.Method,
		Path:    r.URL.Path,
		Keyword: r.URL.Query().Get("keyword"),
		Auth:    r.Header.Get("Authorization"),
		Body:    body,
	})

	if f, ok := b.failures[r.Method+" "+r.URL.Path]; ok {
		delete(b.failures, r.Method+" "+r.URL.Path)
		w.WriteHeader(f.status)
		_, _ = w.Write([]byte(f.body))
		return
	}

	switch r.URL.Path {
	case "/login":
		b.login(w, body)
		return
	case "/signup":
		b.signup(w, body)
		return
	case "/forgot":
		w.WriteHeader(http.StatusOK)
		return
	}

	if b.RequireAuth {
		if _, ok := b.tokens[strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")]; !ok {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Unauthorized"})
			return
		}
	}

	if r.URL.Path == "/api/UserProfile" {
		if r.Method == http.MethodPut {
			for k, v := range body {
				b.profile[k] = v
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, b.profile)
		return
	}

	for _, kind := range domain.Kinds() {
		res, _ := api.ResourceFor(kind)
		if r.URL.Path == res.Base || strings.HasPrefix(r.URL.Path, res.Base+"/") {
			b.serveResource(w, r, kind, res, body)
			return
		}
	}
	http.NotFound(w, r)
}

func (b *FakeBackend) serveResource(w http.ResponseWriter, r *http.Request, kind domain.Kind, res api.Resource, body domain.Record) {
	rest := strings.TrimPrefix(strings.TrimPrefix(r.URL.Path, res.Base), "/")

	switch {
	case r.Method == http.MethodGet && rest == "GetList":
		b.list(w, r, kind)
	case r.Method == http.MethodGet && rest != "":
		if i := b.find(kind, rest); i >= 0 {
			writeJSON(w, http.StatusOK, b.records[kind][i])
			return
		}
		writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found", kind.Singular())})
	case r.Method == http.MethodPost && rest == "":
		b.nextID++
		rec := body.Clone()
		rec["id"] = b.nextID
		b.records[kind] = append(b.records[kind], rec)
		writeJSON(w, http.StatusCreated, rec)
	case r.Method == http.MethodPut:
		id := rest
		if res.UpdateInBody {
			id = body.ID()
		}
		i := b.find(kind, id)
		if i < 0 || (res.UpdateInBody && rest != "") {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found", kind.Singular())})
			return
		}
		rec := body.Clone()
		rec["id"] = b.records[kind][i]["id"]
		b.records[kind][i] = rec
		w.WriteHeader(http.StatusNoContent)
	case r.Method == http.MethodDelete:
		id := strings.TrimPrefix(rest, res.DeletePrefix)
		if res.DeletePrefix != "" && !strings.HasPrefix(rest, res.DeletePrefix) {
			http.NotFound(w, r)
			return
		}
		i := b.find(kind, id)
		if i < 0 {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": fmt.Sprintf("%s not found", kind.Singular())})
			return
		}
		b.records[kind] = append(b.records[kind][:i], b.records[kind][i+1:]...)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (b *FakeBackend) list(w http.ResponseWriter, r *http.Request, kind domain.Kind) {
	q := r.URL.Query()
	keyword := strings.ToLower(q.Get("keyword"))
	pageNumber, _ := strconv.Atoi(q.Get("pageNumber"))
	pageSize, _ := strconv.Atoi(q.Get("pageSize"))
	if pageNumber <= 0 {
		pageNumber = 1
	}
	if pageSize <= 0 {
		pageSize = domain.DefaultPageSize
	}

	var matched []domain.Record
	for _, rec := range b.records[kind] {
		if keyword == "" || matches(rec, keyword) {
			matched = append(matched, rec)
		}
	}

	start := (pageNumber - 1) * pageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + pageSize
	if end > len(matched) {
		end = len(matched)
	}
	items := matched[start:end]
	if items == nil {
		items = []domain.Record{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items, "totalCount": len(matched)})
}

func (b *FakeBackend) find(kind domain.Kind, id string) int {
	for i, rec := range b.records[kind] {
		if rec.ID() == id {
			return i
		}
	}
	return -1
}

func (b *FakeBackend) login(w http.ResponseWriter, body domain.Record) {
	user, pass := body.String("username"), body.String("password")
	if want, ok := b.users[user]; !ok || want != pass {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Invalid username or password"})
		return
	}
	token := "token-" + user
	b.tokens[token] = user
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (b *FakeBackend) signup(w http.ResponseWriter, body domain.Record) {
	user := body.String("username")
	if _, exists := b.users[user]; exists {
		writeJSON(w, http.StatusConflict, map[string]string{"message": "User already exists"})
		return
	}
	b.users[user] = body.String("password")
	w.WriteHeader(http.StatusCreated)
}

func matches(rec domain.Record, keyword string) bool {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if strings.Contains(strings.ToLower(rec.String(k)), keyword) {
			return true
		}
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
