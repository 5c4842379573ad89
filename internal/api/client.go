package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/estudos/internal/domain"
)

const (
	defaultRequestTimeout = 30 * time.Second
	defaultUploadTimeout  = 5 * time.Minute

	// maxResponseBytes caps how much of a response body is read.
	maxResponseBytes = 32 << 20
)

// Credentials supplies the bearer token attached to every request. An
// empty token means the request is sent unauthenticated.
type Credentials interface {
	Load(ctx context.Context) (string, error)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the service root including the /api/v1 suffix.
	BaseURL string

	HTTPClient     *http.Client
	Credentials    Credentials
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

// Client is the HTTP implementation of Gateway.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	creds          Credentials
	requestTimeout time.Duration
	uploadTimeout  time.Duration
}

// Compile-time check.
var _ Gateway = (*Client)(nil)

// NewClient creates a Client.
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	u, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("api: parse base URL: %w", err)
	}
	c := &Client{
		baseURL:        u,
		http:           opts.HTTPClient,
		creds:          opts.Credentials,
		requestTimeout: opts.RequestTimeout,
		uploadTimeout:  opts.UploadTimeout,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.requestTimeout <= 0 {
		c.requestTimeout = defaultRequestTimeout
	}
	if c.uploadTimeout <= 0 {
		c.uploadTimeout = defaultUploadTimeout
	}
	return c, nil
}

// UploadMaterials posts the files as repeated multipart "files" fields.
func (c *Client) UploadMaterials(ctx context.Context, files []Material) (*UploadResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for _, f := range files {
		part, err := mw.CreateFormFile("files", f.Name)
		if err != nil {
			return nil, fmt.Errorf("create form part %s: %w", f.Name, err)
		}
		if _, err := io.Copy(part, f.Reader); err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	var out UploadResult
	err := c.do(ctx, call{
		op:          OpUploadMaterials,
		method:      http.MethodPost,
		path:        "/upload-materials",
		body:        &body,
		contentType: mw.FormDataContentType(),
		timeout:     c.uploadTimeout,
		schema:      UploadSchema,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitAnswers posts the responses for the given upload session.
func (c *Client) SubmitAnswers(ctx context.Context, sessionID string, responses []QuizResponse) (*SubmitResult, error) {
	if responses == nil {
		responses = []QuizResponse{}
	}
	var out SubmitResult
	err := c.doJSON(ctx, call{
		op:     OpSubmitAnswers,
		method: http.MethodPost,
		path:   "/submit-answers",
		query:  url.Values{"session_id": {sessionID}},
		schema: SubmitSchema,
	}, submitRequest{QuizResponses: responses}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RegisterUser creates an account and returns the new profile.
func (c *Client) RegisterUser(ctx context.Context, username, email, password string) (*domain.UserProfile, error) {
	var out domain.UserProfile
	err := c.doJSON(ctx, call{
		op:     OpRegisterUser,
		method: http.MethodPost,
		path:   "/auth/register",
		schema: ProfileSchema,
	}, registerRequest{Username: username, Email: email, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// LoginUser exchanges credentials for a token.
func (c *Client) LoginUser(ctx context.Context, username, password string) (*LoginResult, error) {
	var out LoginResult
	err := c.doJSON(ctx, call{
		op:     OpLoginUser,
		method: http.MethodPost,
		path:   "/auth/login",
		schema: LoginSchema,
	}, loginRequest{Username: username, Password: password}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetProfile returns the profile of the token's owner.
func (c *Client) GetProfile(ctx context.Context) (*domain.UserProfile, error) {
	var out domain.UserProfile
	err := c.do(ctx, call{
		op:     OpGetProfile,
		method: http.MethodGet,
		path:   "/auth/me",
		schema: ProfileSchema,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type call struct {
	op          string
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
	timeout     time.Duration
	schema      *Schema
}

func (c *Client) doJSON(ctx context.Context, cl call, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal %s request: %w", cl.op, err)
	}
	cl.body = bytes.NewReader(b)
	cl.contentType = "application/json"
	return c.do(ctx, cl, out)
}

func (c *Client) do(ctx context.Context, cl call, out any) error {
	timeout := cl.timeout
	if timeout <= 0 {
		timeout = c.requestTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + cl.path
	if len(cl.query) > 0 {
		u.RawQuery = cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, u.String(), cl.body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", cl.op, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	reqID := RequestIDFrom(ctx)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	req.Header.Set("X-Request-ID", reqID)

	if c.creds != nil {
		token, err := c.creds.Load(ctx)
		if err != nil {
			return fmt.Errorf("load credentials: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &UnavailableError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &UnavailableError{Err: fmt.Errorf("read %s response: %w", cl.op, err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newError(resp.StatusCode, raw)
	}

	if err := validateResponse(cl.op, cl.schema, raw); err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &InvalidResponseError{Operation: cl.op, Content: raw, Err: err}
	}
	return nil
}
