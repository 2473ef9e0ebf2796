package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/cvbuilder/pkg/cv"
	"github.com/artem13815/cvbuilder/pkg/form"
)

type recorded struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

// apiStub answers every request with the same status and body and
// records what it received.
type apiStub struct {
	mu      sync.Mutex
	calls   []recorded
	status  int
	body    any
	headers map[string]string
	raw     []byte
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rec := recorded{method: r.Method, path: r.URL.Path, query: r.URL.RawQuery, auth: r.Header.Get("Authorization")}
	if data, _ := io.ReadAll(r.Body); len(data) > 0 {
		_ = json.Unmarshal(data, &rec.body)
	}
	s.mu.Lock()
	s.calls = append(s.calls, rec)
	s.mu.Unlock()

	for k, v := range s.headers {
		w.Header().Set(k, v)
	}
	status := s.status
	if status == 0 {
		status = http.StatusOK
	}
	if s.raw != nil {
		w.WriteHeader(status)
		_, _ = w.Write(s.raw)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if s.body != nil {
		_ = json.NewEncoder(w).Encode(s.body)
	}
}

func (s *apiStub) last(t *testing.T) recorded {
	t.Helper()
	s.mu.Lock()
	defer s.mu.Unlock()
	require.NotEmpty(t, s.calls)
	return s.calls[len(s.calls)-1]
}

func newTestClient(t *testing.T, stub *apiStub, token string) (*Client, *[]string) {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	var changes []string
	sess := NewSession(token, func(tok string) { changes = append(changes, tok) })
	return New(srv.URL+"/", sess), &changes
}

func TestLoginStoresToken(t *testing.T) {
	stub := &apiStub{body: map[string]any{"data": "tok-1", "message": "Logged in successfully"}}
	c, changes := newTestClient(t, stub, "")

	require.NoError(t, c.Login(context.Background(), "a@b.c", "password1"))

	assert.Equal(t, "tok-1", c.Session().Token())
	assert.Equal(t, []string{"tok-1"}, *changes)
	got := stub.last(t)
	assert.Equal(t, "/api/v1/auth/login", got.path)
	assert.Equal(t, "a@b.c", got.body["email"])
	assert.Empty(t, got.auth)
}

func TestAuthErrorClearsSession(t *testing.T) {
	stub := &apiStub{status: http.StatusUnauthorized, body: map[string]any{"message": "token revoked", "kind": "auth"}}
	c, changes := newTestClient(t, stub, "stale")

	_, err := c.Details(context.Background())

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindAuth, cerr.Kind)
	assert.Equal(t, "token revoked", cerr.Message)
	assert.False(t, c.Session().LoggedIn())
	assert.Equal(t, []string{""}, *changes)
	assert.Equal(t, "Bearer stale", stub.last(t).auth)
}

func TestErrorKindFromStatus(t *testing.T) {
	cases := map[int]Kind{
		http.StatusNotFound:            KindNotFound,
		http.StatusConflict:            KindConflict,
		http.StatusUnprocessableEntity: KindValidation,
		http.StatusBadGateway:          KindServer,
	}
	for status, want := range cases {
		stub := &apiStub{status: status, body: map[string]any{}}
		c, _ := newTestClient(t, stub, "tok")
		_, err := c.GetCV(context.Background())
		var cerr *Error
		require.ErrorAs(t, err, &cerr, "status %d", status)
		assert.Equal(t, want, cerr.Kind, "status %d", status)
		assert.Equal(t, http.StatusText(status), cerr.Message)
		assert.True(t, c.Session().LoggedIn())
	}
}

func TestReplaceCVFieldErrors(t *testing.T) {
	stub := &apiStub{status: http.StatusBadRequest, body: map[string]any{
		"message": "validation failed",
		"kind":    "validation",
		"errors":  []map[string]string{{"field": "postalCode", "message": "please enter a valid postal code in the format XX-XXX"}},
	}}
	c, _ := newTestClient(t, stub, "tok")

	_, err := c.ReplaceCV(context.Background(), cv.CV{PostalCode: "123"})

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Len(t, cerr.Fields, 1)
	assert.Equal(t, "postalCode", cerr.Fields[0].Field)
	got := stub.last(t)
	assert.Equal(t, http.MethodPut, got.method)
	assert.Equal(t, []any{}, got.body["skills"])
}

func TestSubmitFormRejectsMisalignedLocally(t *testing.T) {
	stub := &apiStub{}
	c, _ := newTestClient(t, stub, "tok")
	st := form.New()
	st.WorkPlace = append(st.WorkPlace, "Acme")

	_, err := c.SubmitForm(context.Background(), st)

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindValidation, cerr.Kind)
	assert.Equal(t, "work", cerr.Field)
	assert.Empty(t, stub.calls)
}

func TestSubmitFormDecodesCV(t *testing.T) {
	stub := &apiStub{body: map[string]any{
		"data":    map[string]any{"firstName": "Ann", "skills": []string{"Go"}},
		"message": "CV updated successfully",
	}}
	c, _ := newTestClient(t, stub, "tok")

	got, err := c.SubmitForm(context.Background(), form.New())

	require.NoError(t, err)
	assert.Equal(t, "Ann", got.FirstName)
	assert.Equal(t, []string{"Go"}, got.Skills)
	assert.Equal(t, "/api/v1/users/cv/form", stub.last(t).path)
}

func TestDraftRoutes(t *testing.T) {
	stub := &apiStub{body: map[string]any{"data": form.New(), "message": "Draft updated"}}
	c, _ := newTestClient(t, stub, "tok")
	ctx := context.Background()

	steps := []struct {
		call   func() error
		method string
		path   string
	}{
		{func() error { _, err := c.OpenDraft(ctx); return err }, http.MethodPost, "/api/v1/users/cv/draft"},
		{func() error { _, err := c.AppendEntry(ctx, form.SectionWork); return err }, http.MethodPost, "/api/v1/users/cv/draft/sections/work/entries"},
		{func() error { _, err := c.RemoveLastEntry(ctx, form.SectionEducation); return err }, http.MethodDelete, "/api/v1/users/cv/draft/sections/education/entries/last"},
		{func() error { _, err := c.RemoveEntry(ctx, form.SectionWork, 2); return err }, http.MethodDelete, "/api/v1/users/cv/draft/sections/work/entries/2"},
		{func() error { _, err := c.UpdateField(ctx, form.SectionWork, form.ColWorkPlace, 1, "Acme"); return err }, http.MethodPatch, "/api/v1/users/cv/draft/sections/work/entries/1"},
		{func() error { _, err := c.SetFields(ctx, map[string]string{"city": "Krakow"}); return err }, http.MethodPatch, "/api/v1/users/cv/draft/fields"},
		{func() error { _, err := c.AppendItem(ctx, form.ListSkills, "Go"); return err }, http.MethodPost, "/api/v1/users/cv/draft/lists/skills/items"},
		{func() error { _, err := c.UpdateItem(ctx, form.ListLanguages, 0, "English"); return err }, http.MethodPatch, "/api/v1/users/cv/draft/lists/languages/items/0"},
		{func() error { _, err := c.RemoveItem(ctx, form.ListSkills, 3); return err }, http.MethodDelete, "/api/v1/users/cv/draft/lists/skills/items/3"},
		{func() error { _, err := c.SubmitDraft(ctx); return err }, http.MethodPost, "/api/v1/users/cv/draft/submit"},
	}
	for _, step := range steps {
		require.NoError(t, step.call(), step.path)
		got := stub.last(t)
		assert.Equal(t, step.method, got.method, step.path)
		assert.Equal(t, step.path, got.path)
	}

	require.NoError(t, func() error { _, err := c.UpdateField(ctx, form.SectionWork, form.ColWorkPlace, 1, "Acme"); return err }())
	body := stub.last(t).body
	assert.Equal(t, "workPlace", body["field"])
	assert.Equal(t, "Acme", body["value"])
}

func TestDiscardDraftNoContent(t *testing.T) {
	stub := &apiStub{status: http.StatusNoContent}
	c, _ := newTestClient(t, stub, "tok")

	require.NoError(t, c.DiscardDraft(context.Background()))
	assert.Equal(t, http.MethodDelete, stub.last(t).method)
}

func TestListUsersQuery(t *testing.T) {
	stub := &apiStub{body: map[string]any{"data": []map[string]any{{"_id": "7c9e6679-7425-40de-944b-e07fc1f90ae7", "email": "a@b.c", "firstName": "Ann"}}}}
	c, _ := newTestClient(t, stub, "tok")

	got, err := c.ListUsers(context.Background(), "golang", 10, 5)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ann", got[0].FirstName)
	assert.Equal(t, "limit=10&offset=5&skill=golang", stub.last(t).query)
}

func TestExportReadsAttachment(t *testing.T) {
	stub := &apiStub{
		raw: []byte("%PDF-1.3 fake"),
		headers: map[string]string{
			"Content-Type":        "application/pdf",
			"Content-Disposition": `attachment; filename="CV.pdf"`,
			"X-Page-Count":        "3",
		},
	}
	c, _ := newTestClient(t, stub, "tok")

	doc, err := c.Export(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "CV.pdf", doc.Filename)
	assert.Equal(t, 3, doc.Pages)
	assert.Equal(t, []byte("%PDF-1.3 fake"), doc.Data)
}

func TestExportFailureKind(t *testing.T) {
	stub := &apiStub{status: http.StatusUnprocessableEntity, body: map[string]any{"message": "render target not found", "kind": "render_target_missing"}}
	c, _ := newTestClient(t, stub, "tok")

	_, err := c.Export(context.Background())

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, KindRenderTargetMissing, cerr.Kind)
	assert.False(t, cerr.Retryable())
}

func TestLogoutAndDeleteClearSession(t *testing.T) {
	stub := &apiStub{body: map[string]any{"message": "ok"}}
	c, _ := newTestClient(t, stub, "tok")

	require.NoError(t, c.Logout(context.Background()))
	assert.False(t, c.Session().LoggedIn())
	assert.Equal(t, "/api/v1/auth/logout", stub.last(t).path)

	c.Session().Set("tok-2")
	require.NoError(t, c.DeleteAccount(context.Background()))
	assert.False(t, c.Session().LoggedIn())
	assert.Equal(t, http.MethodDelete, stub.last(t).method)
}

func TestUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", NewSession("tok", nil))

	_, err := c.GetCV(context.Background())

	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, 0, cerr.Status)
	assert.True(t, cerr.Retryable())
}
