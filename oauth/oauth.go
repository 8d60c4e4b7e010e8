// Package oauth handles the one-time Google authorization for the Blogger
// API and the token file it leaves behind for later runs.
package oauth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope grants write access to the account's blogs.
const Scope = "https://www.googleapis.com/auth/blogger"

// DefaultRedirectURL must be registered on the OAuth client as an authorized
// redirect URI.
const DefaultRedirectURL = "http://localhost:8080/"

// NewConfig builds the oauth2 config for the Blogger consent flow.
func NewConfig(clientID, clientSecret, redirectURL string) *oauth2.Config {
	if redirectURL == "" {
		redirectURL = DefaultRedirectURL
	}
	return &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     google.Endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{Scope},
	}
}

// LoadToken reads a token saved by a previous Authorize run.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("parse token file: %w", err)
	}
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return nil, errors.New("token file holds no usable token")
	}
	return &tok, nil
}

// SaveToken writes the token for later runs. Readable by the owner only, it
// is a credential.
func SaveToken(path string, tok *oauth2.Token) error {
	data, err := json.MarshalIndent(tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// Client returns an HTTP client that injects tok into every request and
// refreshes it when it expires.
func Client(ctx context.Context, conf *oauth2.Config, tok *oauth2.Token) *http.Client {
	return oauth2.NewClient(ctx, conf.TokenSource(ctx, tok))
}

// Authorize walks the browser consent flow: it prints the consent URL on out,
// catches the redirect on a local server, and exchanges the code for a token.
// It returns once the exchange finishes or ctx expires.
func Authorize(ctx context.Context, conf *oauth2.Config, out io.Writer) (*oauth2.Token, error) {
	state, err := newState()
	if err != nil {
		return nil, err
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/", redirectHandler(state, codeCh, errCh))

	addr, err := redirectAddr(conf.RedirectURL)
	if err != nil {
		return nil, err
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen on %s: %w", addr, err)
	}
	srv := &http.Server{Handler: mux}
	go srv.Serve(ln)
	defer srv.Close()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	fmt.Fprintf(out, "Open this URL in your browser to authorize:\n\n  %s\n\n", authURL)

	select {
	case code := <-codeCh:
		tok, err := conf.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchange code: %w", err)
		}
		return tok, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// redirectHandler captures the single authorization redirect. Whatever comes
// first wins; the channels are buffered so a stray second hit cannot block.
func redirectHandler(state string, codeCh chan<- string, errCh chan<- error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if msg := q.Get("error"); msg != "" {
			http.Error(w, "authorization failed: "+msg, http.StatusBadRequest)
			select {
			case errCh <- fmt.Errorf("authorization denied: %s", msg):
			default:
			}
			return
		}
		if q.Get("state") != state {
			http.Error(w, "state mismatch", http.StatusBadRequest)
			select {
			case errCh <- errors.New("state mismatch in redirect"):
			default:
			}
			return
		}
		code := q.Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this tab and return to the terminal.")
		select {
		case codeCh <- code:
		default:
		}
	}
}

func newState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

func redirectAddr(redirectURL string) (string, error) {
	u, err := url.Parse(redirectURL)
	if err != nil {
		return "", fmt.Errorf("parse redirect url: %w", err)
	}
	if u.Port() == "" {
		return "", fmt.Errorf("redirect url %s must name a port", redirectURL)
	}
	return u.Host, nil
}
