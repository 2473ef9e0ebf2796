package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/artem13815/cvbuilder/pkg/auth"
	"github.com/artem13815/cvbuilder/pkg/cv"
	"github.com/artem13815/cvbuilder/pkg/form"
)

// Client talks to the cvbuilder HTTP API on behalf of one Session.
type Client struct {
	BaseURL string
	session *Session
	httpDo  *http.Client
}

func New(baseURL string, session *Session) *Client {
	if session == nil {
		session = NewSession("", nil)
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/") + "/api/v1",
		session: session,
		httpDo: &http.Client{
			Timeout: 90 * time.Second,
		},
	}
}

func (c *Client) Session() *Session { return c.session }

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Kind    string          `json:"kind"`
	Field   string          `json:"field"`
	Errors  []cv.FieldError `json:"errors"`
}

// do sends a JSON request and decodes the data field of the reply into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	resp, err := c.send(ctx, method, path, in)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil && err != io.EOF {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
		}
	}
	if resp.StatusCode >= 300 {
		return c.fail(resp.StatusCode, env)
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &Error{Kind: KindServer, Status: resp.StatusCode, Message: "malformed data: " + err.Error()}
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, in any) (*http.Response, error) {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.session.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	resp, err := c.httpDo.Do(req)
	if err != nil {
		return nil, &Error{Kind: KindServer, Message: err.Error()}
	}
	return resp, nil
}

// fail maps an error reply onto one Kind. Auth failures end the session.
func (c *Client) fail(status int, env envelope) error {
	kind := Kind(env.Kind)
	if kind == "" {
		kind = kindForStatus(status)
	}
	msg := env.Message
	if msg == "" {
		msg = http.StatusText(status)
	}
	if kind == KindAuth {
		c.session.Clear()
	}
	return &Error{Kind: kind, Status: status, Message: msg, Field: env.Field, Fields: env.Errors}
}

func (c *Client) Register(ctx context.Context, in auth.Registration) error {
	return c.do(ctx, http.MethodPost, "/auth/register", in, nil)
}

// Login stores the issued token in the session.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var token string
	if err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{"email": email, "password": password}, &token); err != nil {
		return err
	}
	c.session.Set(token)
	return nil
}

// Logout revokes the token server-side and clears the session either way.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.Clear()
	if !c.session.LoggedIn() {
		return nil
	}
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}

func (c *Client) Details(ctx context.Context) (cv.Profile, error) {
	var p cv.Profile
	err := c.do(ctx, http.MethodGet, "/users/details", nil, &p)
	return p, err
}

func (c *Client) ListUsers(ctx context.Context, skill string, limit, offset int) ([]cv.Profile, error) {
	q := url.Values{}
	if skill != "" {
		q.Set("skill", skill)
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	path := "/users"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}
	var out []cv.Profile
	err := c.do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}

// DeleteAccount deletes the signed-in user and ends the session.
func (c *Client) DeleteAccount(ctx context.Context) error {
	if err := c.do(ctx, http.MethodDelete, "/users/delete-account", nil, nil); err != nil {
		return err
	}
	c.session.Clear()
	return nil
}

func (c *Client) GetCV(ctx context.Context) (cv.CV, error) {
	var out cv.CV
	err := c.do(ctx, http.MethodGet, "/users/cv", nil, &out)
	return out, err
}

// ReplaceCV replaces the whole CV; fields left empty are stored empty.
func (c *Client) ReplaceCV(ctx context.Context, doc cv.CV) (cv.CV, error) {
	var out cv.CV
	err := c.do(ctx, http.MethodPut, "/users/update-cv", doc.Normalize(), &out)
	return out, err
}

func (c *Client) Form(ctx context.Context) (form.State, error) {
	var out form.State
	err := c.do(ctx, http.MethodGet, "/users/cv/form", nil, &out)
	return out, err
}

// SubmitForm checks section alignment locally, then replaces the CV.
func (c *Client) SubmitForm(ctx context.Context, st form.State) (cv.CV, error) {
	if err := st.CheckAligned(); err != nil {
		return cv.CV{}, &Error{Kind: KindValidation, Message: err.Error(), Field: fieldOf(err)}
	}
	var out cv.CV
	err := c.do(ctx, http.MethodPut, "/users/cv/form", st, &out)
	return out, err
}

func fieldOf(err error) string {
	var verr *form.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}

// Download is an exported PDF.
type Download struct {
	Data     []byte
	Filename string
	// Pages is taken from X-Page-Count; 0 when the header is absent.
	Pages int
}

// Export downloads the PDF of the signed-in user's profile view.
func (c *Client) Export(ctx context.Context) (Download, error) {
	resp, err := c.send(ctx, http.MethodGet, "/users/cv/export", nil)
	if err != nil {
		return Download{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var env envelope
		_ = json.NewDecoder(resp.Body).Decode(&env)
		return Download{}, c.fail(resp.StatusCode, env)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Download{}, &Error{Kind: KindServer, Status: resp.StatusCode, Message: fmt.Sprintf("read pdf: %v", err)}
	}
	out := Download{Data: data, Filename: "CV.pdf"}
	if _, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition")); err == nil && params["filename"] != "" {
		out.Filename = params["filename"]
	}
	out.Pages, _ = strconv.Atoi(resp.Header.Get("X-Page-Count"))
	return out, nil
}
