package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/kevinfinalboss/crmreports/internal/logger"
	"github.com/kevinfinalboss/crmreports/pkg/types"
	"golang.org/x/net/html/charset"
)

const (
	DefaultRetries = 5
	DefaultBackoff = 500 * time.Millisecond
	DefaultTimeout = 30 * time.Second
)

// Session is an authenticated CRM web session. It is safe for sequential
// reuse; the cookie jar is shared by the verifying and the insecure client.
type Session struct {
	config   types.CRMConfig
	logger   *logger.Logger
	secure   *http.Client
	insecure *http.Client
	retries  int
	backoff  time.Duration
	sleep    func(context.Context, time.Duration) error

	mu       sync.Mutex
	loggedIn bool
}

func New(config types.CRMConfig, log *logger.Logger) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	timeout := DefaultTimeout
	if config.TimeoutSeconds > 0 {
		timeout = time.Duration(config.TimeoutSeconds) * time.Second
	}

	retries := DefaultRetries
	if config.Retries > 0 {
		retries = config.Retries
	}

	return &Session{
		config:   config,
		logger:   log,
		secure:   createHTTPClient(jar, timeout, false),
		insecure: createHTTPClient(jar, timeout, true),
		retries:  retries,
		backoff:  DefaultBackoff,
		sleep:    sleepContext,
	}, nil
}

func createHTTPClient(jar http.CookieJar, timeout time.Duration, insecure bool) *http.Client {
	return &http.Client{
		Jar:     jar,
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: insecure,
			},
		},
	}
}

// WithSleeper replaces the wait between retries, mainly for tests.
func (s *Session) WithSleeper(sleep func(context.Context, time.Duration) error) *Session {
	s.sleep = sleep
	return s
}

func (s *Session) LoggedIn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggedIn
}

func (s *Session) Login(ctx context.Context) error {
	if s.config.Username == "" || s.config.Password == "" || s.config.Domain == "" || s.config.LoginURL == "" {
		s.logger.Error("crm_login_failed").
			Str("reason", "missing credentials").
			Send()
		return fmt.Errorf("%w: username, password, domain and login url are required", types.ErrConnectionsFailed)
	}

	s.logger.Debug("crm_login_started").
		Str("url", s.config.LoginURL).
		Str("username", s.config.Username).
		Str("domain", s.config.Domain).
		Send()

	form := url.Values{}
	form.Set("login", s.config.Username)
	form.Set("password", s.config.Password)
	form.Set("domain", s.config.Domain)

	status, _, err := s.do(ctx, s.config.Verify, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.LoginURL, strings.NewReader(form.Encode()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req, nil
	})
	if err != nil {
		s.logger.Error("crm_login_failed").
			Str("url", s.config.LoginURL).
			Err(err).
			Send()
		return fmt.Errorf("%w: %v", types.ErrConnectionsFailed, err)
	}

	if status != http.StatusOK {
		s.logger.Error("crm_login_failed").
			Str("url", s.config.LoginURL).
			Int("status", status).
			Send()
		return fmt.Errorf("%w: login returned status %d", types.ErrConnectionsFailed, status)
	}

	s.mu.Lock()
	s.loggedIn = true
	s.mu.Unlock()

	s.logger.Info("crm_login_success").
		Str("username", s.config.Username).
		Send()
	return nil
}

// Submit sends the request and returns the status and the body decoded to
// UTF-8. GET carries the query only, POST adds the form body.
func (s *Session) Submit(ctx context.Context, request *types.Request, method string) (int, string, error) {
	if !s.LoggedIn() {
		return 0, "", fmt.Errorf("%w: session is not logged in", types.ErrConnectionsFailed)
	}

	target, err := requestURL(request)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %v", types.ErrCantGetData, err)
	}

	status, body, err := s.do(ctx, request.Verify(), func() (*http.Request, error) {
		var payload io.Reader
		if method == http.MethodPost {
			payload = strings.NewReader(request.Form().Encode())
		}

		req, err := http.NewRequestWithContext(ctx, method, target, payload)
		if err != nil {
			return nil, err
		}
		for key, value := range request.Headers() {
			req.Header.Set(key, value)
		}
		if method == http.MethodPost {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		return req, nil
	})
	if err != nil {
		s.logger.Error("request_failed").
			Str("method", method).
			Str("url", request.URL()).
			Err(err).
			Send()
		return 0, "", err
	}

	s.logger.Debug("request_submitted").
		Str("method", method).
		Str("url", request.String()).
		Int("status", status).
		Int("bytes", len(body)).
		Send()
	return status, body, nil
}

// do retries transport errors up to s.retries times with exponential
// backoff. HTTP statuses are never retried.
func (s *Session) do(ctx context.Context, verify bool, build func() (*http.Request, error)) (int, string, error) {
	client := s.secure
	if !verify {
		client = s.insecure
	}

	var lastErr error
	for attempt := 0; attempt <= s.retries; attempt++ {
		if attempt > 0 {
			delay := s.backoff * time.Duration(1<<(attempt-1))
			s.logger.Warn("request_retry").
				Int("attempt", attempt+1).
				Dur("delay", delay).
				Err(lastErr).
				Send()
			if err := s.sleep(ctx, delay); err != nil {
				return 0, "", err
			}
		}

		req, err := build()
		if err != nil {
			return 0, "", err
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return 0, "", ctxErr
			}
			lastErr = err
			continue
		}

		body, err := readBody(resp)
		if err != nil {
			lastErr = err
			continue
		}
		return resp.StatusCode, body, nil
	}

	return 0, "", fmt.Errorf("no answer after %d attempts: %w", s.retries+1, lastErr)
}

func readBody(resp *http.Response) (string, error) {
	defer resp.Body.Close()

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to detect charset: %w", err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

func requestURL(request *types.Request) (string, error) {
	parsed, err := url.Parse(request.URL())
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", request.URL(), err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return "", errors.New("url must be absolute: " + request.URL())
	}

	query := parsed.Query()
	for key, values := range request.Query() {
		query[key] = values
	}
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
