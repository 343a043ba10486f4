package infrastructure

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sglre6355/musicow/internal/modules/playlist_sync/domain"
	"github.com/zmb3/spotify/v2"
	spotifyauth "github.com/zmb3/spotify/v2/auth"
	"golang.org/x/oauth2"
)

const defaultCallbackTimeout = 5 * time.Minute

var (
	// ErrAuthTimeout is returned when the OAuth callback is not received in time.
	ErrAuthTimeout = errors.New("authentication timed out waiting for callback")

	// ErrStateMismatch is returned when the OAuth state parameter doesn't match.
	ErrStateMismatch = errors.New("OAuth state mismatch")

	// ErrInvalidRedirectURI is returned when the redirect URI has no host to listen on.
	ErrInvalidRedirectURI = errors.New("redirect URI must be an absolute http URL")
)

// SpotifyAuthConfig holds the Spotify application credentials.
type SpotifyAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// SpotifyAuthenticator produces an authenticated Spotify client,
// reusing a cached token when possible.
type SpotifyAuthenticator struct {
	auth            *spotifyauth.Authenticator
	oauth           *oauth2.Config
	cache           *TokenCache
	redirect        *url.URL
	listenAddr      string
	apiBaseURL      string
	callbackTimeout time.Duration
}

var playlistScopes = []string{
	spotifyauth.ScopePlaylistModifyPublic,
	spotifyauth.ScopePlaylistModifyPrivate,
	spotifyauth.ScopePlaylistReadPrivate,
	spotifyauth.ScopePlaylistReadCollaborative,
}

// NewSpotifyAuthenticator creates a SpotifyAuthenticator with the playlist scopes.
func NewSpotifyAuthenticator(cfg SpotifyAuthConfig, cache *TokenCache) (*SpotifyAuthenticator, error) {
	redirect, err := url.Parse(cfg.RedirectURI)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redirect URI: %w", err)
	}
	if redirect.Hostname() == "" || (redirect.Scheme != "http" && redirect.Scheme != "https") {
		return nil, ErrInvalidRedirectURI
	}

	auth := spotifyauth.New(
		spotifyauth.WithClientID(cfg.ClientID),
		spotifyauth.WithClientSecret(cfg.ClientSecret),
		spotifyauth.WithRedirectURL(cfg.RedirectURI),
		spotifyauth.WithScopes(playlistScopes...),
	)

	return &SpotifyAuthenticator{
		auth: auth,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       playlistScopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   spotifyauth.AuthURL,
				TokenURL:  spotifyauth.TokenURL,
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		cache:           cache,
		redirect:        redirect,
		listenAddr:      callbackListenAddr(redirect),
		callbackTimeout: defaultCallbackTimeout,
	}, nil
}

// callbackListenAddr returns the host:port the callback server binds to.
// A redirect URI without a port uses the scheme's default port.
func callbackListenAddr(redirect *url.URL) string {
	port := redirect.Port()
	if port == "" {
		port = "80"
		if redirect.Scheme == "https" {
			port = "443"
		}
	}
	return net.JoinHostPort(redirect.Hostname(), port)
}

// Connect returns a playlist sink for the authorized account together with that account.
// A cached token is used if Spotify accepts it; a rejected token is removed from the
// cache and the authorization code flow runs instead.
func (a *SpotifyAuthenticator) Connect(ctx context.Context) (*SpotifyPlaylistSink, *domain.Account, error) {
	token, err := a.cache.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cached token: %w", err)
	}

	if token != nil {
		sink := a.newSink(ctx, token)
		account, err := sink.CurrentAccount(ctx)
		if err == nil {
			return sink, account, nil
		}

		slog.Warn("cached spotify token rejected, starting new authorization",
			"token_cache", a.cache.Path(),
			"error", err,
		)
		if err := a.cache.Delete(); err != nil {
			slog.Warn("failed to remove rejected spotify token", "error", err)
		}
	}

	token, err = a.runOAuthFlow(ctx)
	if err != nil {
		return nil, nil, err
	}

	sink := a.newSink(ctx, token)
	account, err := sink.CurrentAccount(ctx)
	if err != nil {
		return nil, nil, err
	}
	return sink, account, nil
}

// newSink builds a sink whose client writes every refreshed token back to the cache.
func (a *SpotifyAuthenticator) newSink(ctx context.Context, token *oauth2.Token) *SpotifyPlaylistSink {
	src := newCachingTokenSource(a.oauth.TokenSource(ctx, token), a.cache, token)

	var opts []spotify.ClientOption
	if a.apiBaseURL != "" {
		opts = append(opts, spotify.WithBaseURL(a.apiBaseURL))
	}

	return NewSpotifyPlaylistSink(spotify.New(oauth2.NewClient(ctx, src), opts...))
}

// cachingTokenSource saves a token to the cache whenever the access token changes.
type cachingTokenSource struct {
	mu         sync.Mutex
	base       oauth2.TokenSource
	cache      *TokenCache
	lastAccess string
}

func newCachingTokenSource(base oauth2.TokenSource, cache *TokenCache, initial *oauth2.Token) *cachingTokenSource {
	s := &cachingTokenSource{
		base:  base,
		cache: cache,
	}
	if initial != nil {
		s.lastAccess = initial.AccessToken
	}
	return s
}

// Token implements oauth2.TokenSource.
func (s *cachingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.base.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if token.AccessToken == s.lastAccess {
		return token, nil
	}
	s.lastAccess = token.AccessToken

	if err := s.cache.Save(token); err != nil {
		slog.Warn("failed to cache refreshed spotify token", "error", err)
	} else {
		slog.Debug("cached refreshed spotify token", "expiry", token.Expiry)
	}

	return token, nil
}

// runOAuthFlow performs the authorization code flow with a local callback server.
func (a *SpotifyAuthenticator) runOAuthFlow(ctx context.Context) (*oauth2.Token, error) {
	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state: %w", err)
	}

	tokenCh := make(chan *oauth2.Token, 1)
	errCh := make(chan error, 1)

	server := &http.Server{
		Addr:              a.listenAddr,
		Handler:           a.callbackRouter(state, tokenCh, errCh),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sendErr(errCh, fmt.Errorf("callback server error: %w", err))
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	slog.Info("waiting for spotify authorization, open the url to continue",
		"url", a.auth.AuthURL(state),
		"callback", a.redirect.String(),
	)

	var token *oauth2.Token
	select {
	case token = <-tokenCh:
	case err := <-errCh:
		return nil, err
	case <-time.After(a.callbackTimeout):
		return nil, ErrAuthTimeout
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if err := a.cache.Save(token); err != nil {
		slog.Warn("failed to cache spotify token", "error", err)
	}

	return token, nil
}

// callbackRouter serves the redirect URI path.
func (a *SpotifyAuthenticator) callbackRouter(
	state string,
	tokenCh chan<- *oauth2.Token,
	errCh chan<- error,
) http.Handler {
	path := a.redirect.Path
	if path == "" {
		path = "/"
	}

	r := chi.NewRouter()
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		a.handleCallback(w, req, state, tokenCh, errCh)
	})
	return r
}

// handleCallback processes the OAuth callback from Spotify.
func (a *SpotifyAuthenticator) handleCallback(
	w http.ResponseWriter,
	r *http.Request,
	expectedState string,
	tokenCh chan<- *oauth2.Token,
	errCh chan<- error,
) {
	if r.URL.Query().Get("state") != expectedState {
		http.Error(w, "State mismatch", http.StatusBadRequest)
		sendErr(errCh, ErrStateMismatch)
		return
	}

	if errMsg := r.URL.Query().Get("error"); errMsg != "" {
		http.Error(w, "Authorization failed: "+errMsg, http.StatusBadRequest)
		sendErr(errCh, fmt.Errorf("spotify authorization error: %s", errMsg))
		return
	}

	token, err := a.auth.Token(r.Context(), expectedState, r)
	if err != nil {
		http.Error(w, "Failed to get token", http.StatusInternalServerError)
		sendErr(errCh, fmt.Errorf("failed to exchange code for token: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = fmt.Fprintln(w, "Spotify authorization complete. You can close this window.")

	select {
	case tokenCh <- token:
	default:
	}
}

// sendErr delivers err unless an error is already pending.
func sendErr(errCh chan<- error, err error) {
	select {
	case errCh <- err:
	default:
	}
}

// generateState creates a random state string for OAuth.
func generateState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
