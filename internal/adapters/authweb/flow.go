package authweb

import (
    "context"
    "crypto/rand"
    "encoding/hex"
    "log"
    "net"
    "net/http"
    "net/url"
    "time"

    "golang.org/x/oauth2"
)

// Flow obtains access tokens from an implicit-grant authorize endpoint bound
// to a fixed redirect target. Silent mode asks the provider with prompt=none
// and reads the token fragment off the redirect Location header without
// following it. Interactive mode binds the loopback redirect target and waits
// for a browser to complete the flow.
type Flow struct {
    cfg     oauth2.Config
    client  *http.Client
    timeout time.Duration
}

func New(authURL, clientID, redirectURL string, timeout time.Duration) *Flow {
    if timeout <= 0 {
        timeout = 2 * time.Minute
    }
    return &Flow{
        cfg: oauth2.Config{
            ClientID:    clientID,
            RedirectURL: redirectURL,
            Endpoint:    oauth2.Endpoint{AuthURL: authURL},
        },
        client: &http.Client{
            Timeout: 30 * time.Second,
            CheckRedirect: func(*http.Request, []*http.Request) error {
                return http.ErrUseLastResponse
            },
        },
        timeout: timeout,
    }
}

// Token implements ports.AuthFlow. Absence of a token (provider refusal,
// user cancellation, timeout) is not an error; callers get "".
func (f *Flow) Token(ctx context.Context, interactive bool) (string, error) {
    if interactive {
        return f.interactiveToken(ctx)
    }
    return f.silentToken(ctx)
}

func (f *Flow) authorizeURL(state string, extra ...oauth2.AuthCodeOption) string {
    opts := append([]oauth2.AuthCodeOption{
        oauth2.SetAuthURLParam("response_type", "token"),
    }, extra...)
    return f.cfg.AuthCodeURL(state, opts...)
}

func (f *Flow) silentToken(ctx context.Context) (string, error) {
    authURL := f.authorizeURL(newState(), oauth2.SetAuthURLParam("prompt", "none"))
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, authURL, nil)
    if err != nil {
        return "", err
    }
    resp, err := f.client.Do(req)
    if err != nil {
        return "", err
    }
    defer resp.Body.Close()

    if resp.StatusCode < 300 || resp.StatusCode >= 400 {
        // Provider wants interaction; that is a refusal in silent mode.
        return "", nil
    }
    return tokenFromCallback(resp.Header.Get("Location")), nil
}

func (f *Flow) interactiveToken(ctx context.Context) (string, error) {
    target, err := url.Parse(f.cfg.RedirectURL)
    if err != nil {
        return "", err
    }
    ln, err := net.Listen("tcp", target.Host)
    if err != nil {
        return "", err
    }

    state := newState()
    tokCh := make(chan string, 1)

    mux := http.NewServeMux()
    mux.HandleFunc(target.Path, func(w http.ResponseWriter, r *http.Request) {
        if r.URL.RawQuery == "" {
            // First hit carries the token in the URL fragment, which never
            // reaches the server; serve a shim that reloads with the
            // fragment as the query string.
            w.Header().Set("Content-Type", "text/html; charset=utf-8")
            _, _ = w.Write([]byte(callbackShim))
            return
        }
        q := r.URL.Query()
        w.Header().Set("Content-Type", "text/plain; charset=utf-8")
        _, _ = w.Write([]byte("Signed in. You can close this window."))
        if q.Get("state") != state {
            tokCh <- ""
            return
        }
        tokCh <- q.Get("access_token")
    })

    srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}
    go func() { _ = srv.Serve(ln) }()
    defer func() {
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
        defer cancel()
        _ = srv.Shutdown(shutdownCtx)
    }()

    log.Printf("authweb: waiting for sign-in, open %s", f.authorizeURL(state))

    select {
    case <-ctx.Done():
        return "", nil
    case <-time.After(f.timeout):
        return "", nil
    case tok := <-tokCh:
        return tok, nil
    }
}

const callbackShim = `<!doctype html><html><body><script>
location.replace(location.pathname + "?" + location.hash.substring(1));
</script></body></html>`

// tokenFromCallback extracts the access_token fragment parameter from a
// completed-flow callback URL. Empty on any malformed input.
func tokenFromCallback(cb string) string {
    if cb == "" {
        return ""
    }
    u, err := url.Parse(cb)
    if err != nil {
        return ""
    }
    vals, err := url.ParseQuery(u.Fragment)
    if err != nil {
        return ""
    }
    return vals.Get("access_token")
}

func newState() string {
    var b [16]byte
    _, _ = rand.Read(b[:])
    return hex.EncodeToString(b[:])
}
