package synclist

import (
    "context"
    "encoding/json"
    "errors"
    "fmt"
    "io"
    "log"
    "net/http"
    "time"

    "sitevet/internal/domain"
    "sitevet/internal/ports"
)

// ErrNoCredential means no token was stored and the silent flow produced
// none; the list endpoint was never called.
var ErrNoCredential = errors.New("no credential obtainable")

const defaultTTL = 24 * time.Hour

type Options struct {
    ListURL   string
    APIKey    string
    UserAgent string
    TTL       time.Duration
    Client    *http.Client
}

// Service owns the cached list and the credential slots. It is stateless
// apart from what lives in the store, so concurrent refreshes are safe:
// both may hit the network and the last cache write wins.
type Service struct {
    store ports.SlotStore
    auth  ports.AuthFlow
    opts  Options
    now   func() time.Time
}

func New(store ports.SlotStore, auth ports.AuthFlow, opts Options) *Service {
    if opts.TTL <= 0 {
        opts.TTL = defaultTTL
    }
    if opts.Client == nil {
        opts.Client = &http.Client{Timeout: 30 * time.Second}
    }
    return &Service{store: store, auth: auth, opts: opts, now: time.Now}
}

// List returns the compliance list, from cache when fresh, refreshing it
// otherwise. A failed refresh falls back to the stale cache; nil with a nil
// error means no cached list and no successful fetch exist.
func (s *Service) List(ctx context.Context) ([]domain.ListEntry, error) {
    rec, cached, err := s.store.CacheRecord(ctx)
    if err != nil {
        log.Printf("synclist: cache read: %v", err)
        cached = false
    }
    if cached && rec.Age(s.now()) < s.opts.TTL {
        return rec.List, nil
    }

    list, err := s.refresh(ctx)
    if err != nil {
        log.Printf("synclist: refresh: %v", err)
        if cached {
            return rec.List, nil
        }
        return nil, nil
    }
    return list, nil
}

// refresh fetches the list from the remote endpoint and replaces the cache
// wholesale. A 401 triggers one interactive re-authentication and exactly
// one retry; any other failure leaves the cache untouched.
func (s *Service) refresh(ctx context.Context) ([]domain.ListEntry, error) {
    token, err := s.credential(ctx)
    if err != nil {
        return nil, err
    }
    if token == "" {
        return nil, ErrNoCredential
    }

    list, status, err := s.fetch(ctx, token)
    if status == http.StatusUnauthorized {
        token, err = s.reauth(ctx)
        if err != nil {
            return nil, err
        }
        list, status, err = s.fetch(ctx, token)
    }
    if err != nil {
        return nil, err
    }
    if status < 200 || status >= 300 {
        return nil, fmt.Errorf("list endpoint returned %d", status)
    }

    rec := domain.CacheRecord{List: list, FetchedAt: s.now().UnixMilli()}
    if err := s.store.SetCacheRecord(ctx, rec); err != nil {
        return nil, fmt.Errorf("cache write: %w", err)
    }
    return list, nil
}

// credential returns the stored token, falling back to one silent
// authentication attempt. Tokens from the flow are persisted unconditionally.
func (s *Service) credential(ctx context.Context) (string, error) {
    cred, ok, err := s.store.Credential(ctx)
    if err != nil {
        log.Printf("synclist: credential read: %v", err)
    }
    if ok && cred.AccessToken != "" {
        return cred.AccessToken, nil
    }

    token, err := s.auth.Token(ctx, false)
    if err != nil {
        return "", fmt.Errorf("silent auth: %w", err)
    }
    if token != "" {
        if err := s.store.SetCredential(ctx, domain.Credential{AccessToken: token}); err != nil {
            log.Printf("synclist: credential write: %v", err)
        }
    }
    return token, nil
}

func (s *Service) reauth(ctx context.Context) (string, error) {
    token, err := s.auth.Token(ctx, true)
    if err != nil {
        return "", fmt.Errorf("interactive auth: %w", err)
    }
    if token == "" {
        return "", errors.New("credential rejected and re-authentication declined")
    }
    if err := s.store.SetCredential(ctx, domain.Credential{AccessToken: token}); err != nil {
        log.Printf("synclist: credential write: %v", err)
    }
    return token, nil
}

func (s *Service) fetch(ctx context.Context, token string) ([]domain.ListEntry, int, error) {
    req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.opts.ListURL, nil)
    if err != nil {
        return nil, 0, err
    }
    req.Header.Set("x-api-key", s.opts.APIKey)
    req.Header.Set("Authorization", "Bearer "+token)
    if s.opts.UserAgent != "" {
        req.Header.Set("User-Agent", s.opts.UserAgent)
    }

    resp, err := s.opts.Client.Do(req)
    if err != nil {
        return nil, 0, err
    }
    defer resp.Body.Close()

    if resp.StatusCode < 200 || resp.StatusCode >= 300 {
        _, _ = io.Copy(io.Discard, resp.Body)
        return nil, resp.StatusCode, nil
    }

    var list []domain.ListEntry
    if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
        return nil, resp.StatusCode, fmt.Errorf("decode list: %w", err)
    }
    return list, resp.StatusCode, nil
}
