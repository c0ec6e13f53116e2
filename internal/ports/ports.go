package ports

import (
    "context"

    "sitevet/internal/domain"
)

// SlotStore persists the named single-value slots the synchronizer owns:
// the bearer credential and the cached list record. Each set replaces the
// slot wholesale; concurrent writers are last-write-wins.
type SlotStore interface {
    Credential(ctx context.Context) (domain.Credential, bool, error)
    SetCredential(ctx context.Context, cred domain.Credential) error
    CacheRecord(ctx context.Context) (domain.CacheRecord, bool, error)
    SetCacheRecord(ctx context.Context, rec domain.CacheRecord) error
    Close() error
}

// AuthFlow obtains an access token from the identity provider. Interactive
// mode may involve a user; non-interactive mode must not. A declined,
// cancelled or timed-out flow yields an empty token and a nil error.
type AuthFlow interface {
    Token(ctx context.Context, interactive bool) (string, error)
}

// ListSource supplies the current compliance list. A nil list with a nil
// error means no list is available at all (no cache, no successful fetch).
type ListSource interface {
    List(ctx context.Context) ([]domain.ListEntry, error)
}
