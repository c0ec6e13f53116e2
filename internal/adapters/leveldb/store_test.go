package leveldb

import (
    "context"
    "testing"
    "time"

    "github.com/stretchr/testify/require"

    "sitevet/internal/domain"
)

func openStore(t *testing.T) *Store {
    t.Helper()
    s, err := Open(t.TempDir())
    require.NoError(t, err)
    t.Cleanup(func() { _ = s.Close() })
    return s
}

func TestCredentialRoundTrip(t *testing.T) {
    s := openStore(t)
    ctx := context.Background()

    _, ok, err := s.Credential(ctx)
    require.NoError(t, err)
    require.False(t, ok)

    require.NoError(t, s.SetCredential(ctx, domain.Credential{AccessToken: "tok"}))

    cred, ok, err := s.Credential(ctx)
    require.NoError(t, err)
    require.True(t, ok)
    require.Equal(t, "tok", cred.AccessToken)
}

func TestCacheRecordReplacedWholesale(t *testing.T) {
    s := openStore(t)
    ctx := context.Background()

    _, ok, err := s.CacheRecord(ctx)
    require.NoError(t, err)
    require.False(t, ok)

    first := domain.CacheRecord{
        List:      []domain.ListEntry{{SoftwareName: "One"}, {SoftwareName: "Two"}},
        FetchedAt: time.Now().UnixMilli(),
    }
    require.NoError(t, s.SetCacheRecord(ctx, first))

    second := domain.CacheRecord{
        List:      []domain.ListEntry{{SoftwareName: "Three"}},
        FetchedAt: time.Now().UnixMilli(),
    }
    require.NoError(t, s.SetCacheRecord(ctx, second))

    rec, ok, err := s.CacheRecord(ctx)
    require.NoError(t, err)
    require.True(t, ok)
    require.Len(t, rec.List, 1)
    require.Equal(t, "Three", rec.List[0].SoftwareName)
}
