package authweb

import (
    "context"
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/stretchr/testify/require"
)

func TestSilentTokenFromLocationFragment(t *testing.T) {
    provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        require.Equal(t, "token", r.URL.Query().Get("response_type"))
        require.Equal(t, "none", r.URL.Query().Get("prompt"))
        require.Equal(t, "client-1", r.URL.Query().Get("client_id"))
        w.Header().Set("Location", "http://127.0.0.1:9/cb#access_token=abc123&token_type=bearer")
        w.WriteHeader(http.StatusFound)
    }))
    defer provider.Close()

    f := New(provider.URL, "client-1", "http://127.0.0.1:9/cb", time.Second)
    tok, err := f.Token(context.Background(), false)
    require.NoError(t, err)
    require.Equal(t, "abc123", tok)
}

func TestSilentTokenProviderWantsInteraction(t *testing.T) {
    provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        // a login page instead of a redirect
        w.WriteHeader(http.StatusOK)
    }))
    defer provider.Close()

    f := New(provider.URL, "client-1", "http://127.0.0.1:9/cb", time.Second)
    tok, err := f.Token(context.Background(), false)
    require.NoError(t, err)
    require.Empty(t, tok)
}

func TestSilentTokenRedirectWithoutToken(t *testing.T) {
    provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        w.Header().Set("Location", "http://127.0.0.1:9/cb#error=login_required")
        w.WriteHeader(http.StatusFound)
    }))
    defer provider.Close()

    f := New(provider.URL, "client-1", "http://127.0.0.1:9/cb", time.Second)
    tok, err := f.Token(context.Background(), false)
    require.NoError(t, err)
    require.Empty(t, tok)
}

func TestInteractiveTokenTimesOutToEmpty(t *testing.T) {
    f := New("http://127.0.0.1:9/authorize", "client-1", "http://127.0.0.1:0/cb", 50*time.Millisecond)
    tok, err := f.Token(context.Background(), true)
    require.NoError(t, err)
    require.Empty(t, tok)
}

func TestInteractiveTokenCancelledToEmpty(t *testing.T) {
    f := New("http://127.0.0.1:9/authorize", "client-1", "http://127.0.0.1:0/cb", time.Minute)
    ctx, cancel := context.WithCancel(context.Background())
    cancel()
    tok, err := f.Token(ctx, true)
    require.NoError(t, err)
    require.Empty(t, tok)
}

func TestTokenFromCallback(t *testing.T) {
    require.Equal(t, "tok", tokenFromCallback("http://x/cb#access_token=tok&state=s"))
    require.Empty(t, tokenFromCallback("http://x/cb#state=s"))
    require.Empty(t, tokenFromCallback("http://x/cb"))
    require.Empty(t, tokenFromCallback(""))
    require.Empty(t, tokenFromCallback("%%bad%%"))
}
