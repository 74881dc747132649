package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/gochat/internal/client/models"
	"github.com/dmitrijs2005/gochat/internal/logging"
	"github.com/go-resty/resty/v2"
)

const (
	pathRegister = "/register"
	pathLogin    = "/login"
	pathLogout   = "/logout"
	pathProfile  = "/profile"
)

type HTTPGateway struct {
	client *resty.Client
	tokens TokenSource
}

var _ Gateway = (*HTTPGateway)(nil)

type Option func(*HTTPGateway)

// WithTokenSource attaches a bearer token from ts to every request.
func WithTokenSource(ts TokenSource) Option {
	return func(g *HTTPGateway) { g.tokens = ts }
}

// WithCookieJar makes the gateway keep server cookies in jar. Without it
// no cookies are stored.
func WithCookieJar(jar http.CookieJar) Option {
	return func(g *HTTPGateway) { g.client.SetCookieJar(jar) }
}

// WithLogger sends resty's diagnostics, such as undecodable error bodies,
// to log. They are discarded by default.
func WithLogger(log logging.Logger) Option {
	return func(g *HTTPGateway) { g.client.SetLogger(restyLogger{log: log.With("component", "gateway")}) }
}

// NewHTTPGateway returns a gateway talking to baseURL (for example
// "http://localhost:8081"). timeout bounds each request; zero means none.
func NewHTTPGateway(baseURL string, timeout time.Duration, opts ...Option) *HTTPGateway {
	client := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetRetryCount(0).
		SetCookieJar(nil).
		SetLogger(restyLogger{log: logging.Discard()})
	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	g := &HTTPGateway{client: client}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

func (g *HTTPGateway) Register(ctx context.Context, req models.RegisterRequest) error {
	return g.do(ctx, "register", http.MethodPost, pathRegister, req, nil)
}

func (g *HTTPGateway) Login(ctx context.Context, creds models.Credentials) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := g.do(ctx, "login", http.MethodPost, pathLogin, creds, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (g *HTTPGateway) Logout(ctx context.Context) error {
	return g.do(ctx, "logout", http.MethodPost, pathLogout, nil, nil)
}

func (g *HTTPGateway) GetProfile(ctx context.Context) (*models.RawProfile, error) {
	var p models.RawProfile
	if err := g.do(ctx, "get profile", http.MethodGet, pathProfile, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (g *HTTPGateway) UpdateProfile(ctx context.Context, req models.UpdateProfileRequest) (*models.RawProfile, error) {
	var p models.RawProfile
	if err := g.do(ctx, "update profile", http.MethodPut, pathProfile, req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// do performs one request. body is sent as JSON when non-nil; a successful
// response is decoded into result when result is non-nil and the body is
// not empty. resty decodes JSON responses; bodies served without a JSON
// content type are decoded here.
func (g *HTTPGateway) do(ctx context.Context, op, method, path string, body, result any) error {
	req := g.client.R().SetContext(ctx).SetError(&ErrorBody{})
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	if g.tokens != nil {
		if token, ok := g.tokens(ctx); ok {
			req.SetAuthToken(token)
		}
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		if resp == nil || resp.RawResponse == nil || !isDecodeError(err) {
			return &NetworkError{Op: op, Err: err}
		}
		if isEmpty(resp.Body()) {
			return nil
		}
		return fmt.Errorf("%s: decode response: %w", op, err)
	}

	if !resp.IsSuccess() {
		return newRejection(op, resp)
	}

	if result == nil || isEmpty(resp.Body()) || resty.IsJSONType(resp.Header().Get("Content-Type")) {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), result); err != nil {
		return fmt.Errorf("%s: decode response: %w", op, err)
	}
	return nil
}

func newRejection(op string, resp *resty.Response) *ServerRejection {
	r := &ServerRejection{Op: op, Status: resp.StatusCode(), Raw: resp.Body()}
	if eb, ok := resp.Error().(*ErrorBody); ok && (eb.Error != "" || eb.Code != "") {
		r.Body = *eb
		return r
	}
	if err := json.Unmarshal(r.Raw, &r.Body); err != nil {
		r.Body = ErrorBody{Error: strings.TrimSpace(string(r.Raw))}
	}
	return r
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}

func isEmpty(b []byte) bool {
	return len(bytes.TrimSpace(b)) == 0
}

// restyLogger routes resty's own diagnostics into the gateway logger.
type restyLogger struct {
	log logging.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(context.Background(), fmt.Sprintf(format, v...))
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, v...))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(context.Background(), fmt.Sprintf(format, v...))
}
