// Package auth provides the credential flavors the remote API accepts:
// a per-request API key (header or query parameter) and a form-login session
// backed by a cookie jar.
package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"github.com/opsinv/assetdb-client/internal/constants"
	"github.com/opsinv/assetdb-client/internal/transport"
	"github.com/opsinv/assetdb-client/pkg/assetdb"
)

// APIKey authenticates every request with a static key.
type APIKey struct {
	Key string
	// InQuery sends the key as a query parameter instead of a header.
	InQuery bool
}

// Apply implements transport.Credentials.
func (k *APIKey) Apply(req *http.Request) {
	if k.Key == "" {
		return
	}

	if k.InQuery {
		query := req.URL.Query()
		query.Set(constants.APIKeyQueryParam, k.Key)
		req.URL.RawQuery = query.Encode()

		return
	}

	req.Header.Set(constants.APIKeyHeader, k.Key)
}

// Session holds a signed-in session obtained through the login form flow.
// SignIn must complete before any resource call is issued; afterwards the
// cookie jar is read-only shared state across all calls.
type Session struct {
	Username  string
	Password  string
	LoginPath string

	jar      http.CookieJar
	signedIn bool
}

// NewSession creates a session credential with a fresh cookie jar.
func NewSession(username, password, loginPath string) (*Session, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	if loginPath == "" {
		loginPath = constants.DefaultLoginPath
	}

	return &Session{
		Username:  username,
		Password:  password,
		LoginPath: loginPath,
		jar:       jar,
	}, nil
}

// Jar exposes the cookie jar for installation into the transport.
func (s *Session) Jar() http.CookieJar {
	return s.jar
}

// SignedIn reports whether SignIn has completed.
func (s *Session) SignedIn() bool {
	return s.signedIn
}

// SignIn posts the login form once. The server-set session cookie lands in
// the jar shared with the transport.
func (s *Session) SignIn(ctx context.Context, client *transport.Client) error {
	form := url.Values{
		"username": []string{s.Username},
		"password": []string{s.Password},
	}

	resp, err := client.PostForm(ctx, s.LoginPath, form)
	if err != nil {
		if assetdb.IsAuth(err) {
			return err
		}

		return fmt.Errorf("signing in: %w", err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return &assetdb.AuthError{StatusCode: resp.StatusCode, Detail: "login rejected"}
	}

	s.signedIn = true

	return nil
}

// Apply implements transport.Credentials. Session cookies ride in the jar,
// so there is nothing to attach per request.
func (s *Session) Apply(_ *http.Request) {}
