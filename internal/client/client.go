// Package client is a typed wrapper around the records REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/unirecords/internal/app/models/dto"
	"github.com/yigit/unirecords/internal/app/models/dto/enums"
	"github.com/yigit/unirecords/internal/pkg/apperrors"
	"github.com/yigit/unirecords/internal/pkg/logger"
)

// DefaultBaseURL is used when Config.BaseURL is empty.
const DefaultBaseURL = "http://localhost:8080/api"

// DefaultListLimit is the page size used to pull whole collections.
const DefaultListLimit = 1000

// RequestIDHeader carries a per-request UUID for log correlation.
const RequestIDHeader = "X-Request-ID"

const loginEndpoint = "/auth/login"

// TokenStore provides the bearer token and is told to forget the session when
// the server rejects it.
type TokenStore interface {
	Token() string
	ClearAuth() error
}

// Config configures a Client
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	// OnUnauthorized runs after a 401 has cleared the stored session.
	OnUnauthorized func()
}

// Client talks to the records API.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenStore
	onUnauthorized func()
	log            zerolog.Logger

	Auth     *AuthService
	Students *StudentsService
	Alumni   *AlumniService
	Advisors *AdvisorsService
	Projects *ProjectsService
	Import   *ImportService
}

// New creates a Client. tokens may be nil for anonymous use.
func New(cfg Config, tokens TokenStore) *Client {
	base := strings.TrimRight(cfg.BaseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		baseURL:        base,
		http:           httpClient,
		tokens:         tokens,
		onUnauthorized: cfg.OnUnauthorized,
		log:            logger.Component("client"),
	}
	c.Auth = &AuthService{c: c}
	c.Students = &StudentsService{c: c}
	c.Alumni = &AlumniService{c: c}
	c.Advisors = &AdvisorsService{c: c}
	c.Projects = &ProjectsService{c: c}
	c.Import = &ImportService{c: c}
	return c
}

// BaseURL returns the API root without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) token() string {
	if c.tokens == nil {
		return ""
	}
	return c.tokens.Token()
}

// newRequest builds a request with the common headers. contentType may be
// empty for bodies that set their own, such as multipart uploads.
func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Request, string, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, "", fmt.Errorf("build request %s %s: %w", method, endpoint, err)
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	requestID := uuid.NewString()
	req.Header.Set(RequestIDHeader, requestID)

	return req, requestID, nil
}

// do sends a JSON request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, endpoint string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, endpoint, err)
		}
		body = bytes.NewReader(payload)
	}

	req, requestID, err := c.newRequest(ctx, method, endpoint, body, "application/json")
	if err != nil {
		return err
	}
	return c.send(req, requestID, endpoint, apperrors.DefaultMessage, out)
}

func (c *Client) send(req *http.Request, requestID, endpoint, fallback string, out interface{}) error {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", req.Method).Str("endpoint", endpoint).Str("request_id", requestID).Msg("Request failed")
		return fmt.Errorf("%s %s: %w", req.Method, endpoint, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response %s %s: %w", req.Method, endpoint, err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("endpoint", endpoint).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(started)).
		Str("request_id", requestID).
		Msg("API request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.handleErrorResponse(resp.StatusCode, endpoint, fallback, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s %s: %v", apperrors.ErrBadResponse, req.Method, endpoint, err)
	}
	return nil
}

func (c *Client) handleErrorResponse(status int, endpoint, fallback string, raw []byte) error {
	var envelope dto.ErrorResponse
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.ResolveMessage()
	if message == "" {
		message = fallback
	}

	if status == http.StatusUnauthorized && !strings.Contains(endpoint, loginEndpoint) {
		c.forceLogout(endpoint)
	}

	apiErr := apperrors.NewAPIError(status, endpoint, message)
	if status == http.StatusUnauthorized && envelope.Error != nil {
		switch envelope.Error.Code {
		case enums.ErrorCodeExpiredToken:
			apiErr.Cause = apperrors.ErrTokenExpired
		case enums.ErrorCodeInvalidToken:
			apiErr.Cause = apperrors.ErrTokenInvalid
		}
	}
	return apiErr
}

func (c *Client) forceLogout(endpoint string) {
	c.log.Info().Str("endpoint", endpoint).Msg("Session rejected by server, clearing stored credentials")
	if c.tokens != nil {
		if err := c.tokens.ClearAuth(); err != nil {
			c.log.Warn().Err(err).Msg("Failed to clear session")
		}
	}
	if c.onUnauthorized != nil {
		c.onUnauthorized()
	}
}

func listQuery(params dto.ListParams) string {
	q := url.Values{}
	if params.Page > 0 {
		q.Set("page", fmt.Sprint(params.Page))
	}
	if params.Limit > 0 {
		q.Set("limit", fmt.Sprint(params.Limit))
	}
	if params.Search != "" {
		q.Set("search", params.Search)
	}
	for k, v := range params.Filters {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func itemPath(collection, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.NewBadRequestError("missing id")
	}
	return collection + "/" + url.PathEscape(id), nil
}

type recorder[T any] interface {
	Record() T
}

func listRecords[R recorder[T], T any](ctx context.Context, c *Client, collection string, params dto.ListParams) ([]T, dto.PaginationInfo, error) {
	var resp dto.ListResponse[R]
	if err := c.do(ctx, http.MethodGet, collection+listQuery(params), nil, &resp); err != nil {
		return nil, dto.PaginationInfo{}, err
	}
	out := make([]T, 0, len(resp.Data))
	for _, row := range resp.Data {
		out = append(out, row.Record())
	}
	return out, resp.Pagination, nil
}

func getRecord[R recorder[T], T any](ctx context.Context, c *Client, collection, id string) (T, error) {
	var zero T
	path, err := itemPath(collection, id)
	if err != nil {
		return zero, err
	}
	var resp dto.APIResponse[*R]
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return zero, err
	}
	if resp.Data == nil {
		return zero, apperrors.NewAPIError(http.StatusNotFound, path, resp.Message)
	}
	return (*resp.Data).Record(), nil
}

func createRecord(ctx context.Context, c *Client, collection string, payload interface{}) (string, error) {
	var resp dto.APIResponse[dto.CreatedID]
	if err := c.do(ctx, http.MethodPost, collection, payload, &resp); err != nil {
		return "", err
	}
	return fmt.Sprint(resp.Data.ID), nil
}

func updateRecord(ctx context.Context, c *Client, collection, id string, payload interface{}) error {
	path, err := itemPath(collection, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, payload, nil)
}

func deleteRecord(ctx context.Context, c *Client, collection, id string) error {
	path, err := itemPath(collection, id)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// IsUnauthorized reports whether err is a 401 from the API, including a
// rejected or expired token.
func IsUnauthorized(err error) bool {
	return apperrors.Is(err, apperrors.ErrUnauthorized, apperrors.ErrTokenExpired, apperrors.ErrTokenInvalid)
}
