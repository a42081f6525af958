package transportsvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/alassafsami695-wq/graduation-project-main-sub001/core"
)

const (
	msgRequestFailed = "request failed"
	msgNonJSON       = "unexpected non-JSON response"

	defaultTimeout = 30 * time.Second
)

var null = json.RawMessage("null")

type (
	// Caller is anything able to send a Request to the remote API.
	Caller interface {
		// Call sends req and returns the normalized JSON payload:
		// the `data` field when the response carries one, the whole payload otherwise.
		Call(ctx context.Context, req Request) (json.RawMessage, error)
	}

	Options struct {
		BaseURL    string
		Timeout    time.Duration // per call; <= 0 means the default (30s)
		HTTPClient *http.Client
		Logger     core.Logger
	}

	// Client is a stateless Caller over HTTP: it holds no session and caches nothing,
	// the bearer token travels with each Request.
	Client struct {
		baseURL string
		timeout time.Duration
		http    *http.Client
		logger  core.Logger
	}
)

var _ Caller = (*Client)(nil)

func NewClient(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		logger:  opts.Logger,
	}
	if c.timeout <= 0 {
		c.timeout = defaultTimeout
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	return c
}

// NewClientFromConfig returns a Client configured from conf.API.
func NewClientFromConfig(conf *core.Config, logger core.Logger) *Client {
	return NewClient(Options{
		BaseURL: conf.API.BaseURL,
		Timeout: conf.API.Timeout,
		Logger:  logger,
	})
}

func (c *Client) Call(ctx context.Context, req Request) (json.RawMessage, error) {
	method := req.method()

	body, contentType, err := req.encodeBody()
	if err != nil {
		return nil, errors.Wrap(err, "encoding request body")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, req.url(c.baseURL), body)
	if err != nil {
		return nil, errors.Wrap(err, "building request")
	}
	c.setHeaders(httpReq, req, contentType)

	start := time.Now()
	res, err := c.http.Do(httpReq)
	if err != nil {
		c.debug(method, req.Path, 0, start, err)
		return nil, &core.NetworkError{Cause: err}
	}
	defer func() { _ = res.Body.Close() }()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		c.debug(method, req.Path, res.StatusCode, start, err)
		return nil, &core.NetworkError{Cause: errors.Wrap(err, "reading response body")}
	}
	c.debug(method, req.Path, res.StatusCode, start, nil)

	if res.StatusCode < http.StatusOK || res.StatusCode >= http.StatusMultipleChoices {
		return nil, &core.ApiError{Status: res.StatusCode, Message: errorMessage(data)}
	}
	return normalize(res.StatusCode, data)
}

func (c *Client) setHeaders(httpReq *http.Request, req Request, contentType string) {
	multipart := strings.HasPrefix(contentType, "multipart/")

	httpReq.Header.Set(headerAccept, contentTypeJSON)
	for k, vals := range req.Header {
		// the multipart boundary is set by the writer and must not be overridden
		if multipart && http.CanonicalHeaderKey(k) == headerCT {
			continue
		}
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}
	if multipart || (contentType != "" && httpReq.Header.Get(headerCT) == "") {
		httpReq.Header.Set(headerCT, contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set(headerAuth, "Bearer "+req.Token)
	}
}

func (c *Client) debug(method, path string, status int, start time.Time, err error) {
	if c.logger == nil {
		return
	}
	msg := fmt.Sprintf("api %s %s -> %d (%s)", method, path, status, time.Since(start).Round(time.Millisecond))
	if err != nil {
		c.logger.Debug(msg, err)
		return
	}
	c.logger.Debug(msg)
}

// errorMessage extracts the `error` or `message` string field of an error payload.
func errorMessage(data []byte) string {
	var payload struct {
		Error   interface{} `json:"error"`
		Message interface{} `json:"message"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return msgRequestFailed
	}
	if s, ok := payload.Error.(string); ok && s != "" {
		return s
	}
	if s, ok := payload.Message.(string); ok && s != "" {
		return s
	}
	return msgRequestFailed
}

// normalize unwraps the `data` field of a successful payload when present and non-null,
// returning the payload verbatim otherwise. The remote API is inconsistent about enveloping.
// An envelope reporting `success: false` is a rejected call despite its 2xx status.
func normalize(status int, data []byte) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return null, nil
	}
	if !json.Valid(trimmed) {
		return nil, &core.ApiError{Status: status, Message: msgNonJSON}
	}
	if trimmed[0] == '{' {
		var env struct {
			Success *bool           `json:"success"`
			Data    json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(trimmed, &env); err == nil {
			if env.Success != nil && !*env.Success {
				return nil, &core.ApiError{Status: status, Message: errorMessage(trimmed), Rejected: true}
			}
			if len(env.Data) > 0 && !bytes.Equal(env.Data, null) {
				return env.Data, nil
			}
		}
	}
	return json.RawMessage(trimmed), nil
}

// Decode unmarshals a normalized payload into v. A `null` payload leaves v untouched.
func Decode(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 || bytes.Equal(raw, null) {
		return nil
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrapf(core.ErrUnexpectedShape, "decoding into %T: %v", v, err)
	}
	return nil
}

// Do calls req through c and decodes the normalized payload into a T.
func Do[T any](ctx context.Context, c Caller, req Request) (T, error) {
	var out T
	raw, err := c.Call(ctx, req)
	if err != nil {
		return out, err
	}
	if err = Decode(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}
