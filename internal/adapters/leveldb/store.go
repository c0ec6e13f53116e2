package leveldb

import (
    "context"
    "encoding/json"
    "errors"

    "github.com/syndtr/goleveldb/leveldb"

    "sitevet/internal/domain"
)

// Store is the embedded SlotStore for single-node runs: one leveldb key per
// named slot, JSON payloads. The slot values are JSON on the wire already,
// so there is nothing to gain from a binary encoding here.
type Store struct {
    db *leveldb.DB
}

var (
    keyCredential = []byte("slot:credential")
    keyListCache  = []byte("slot:list_cache")
)

func Open(path string) (*Store, error) {
    db, err := leveldb.OpenFile(path, nil)
    if err != nil {
        return nil, err
    }
    return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) get(key []byte, out any) (bool, error) {
    raw, err := s.db.Get(key, nil)
    if errors.Is(err, leveldb.ErrNotFound) {
        return false, nil
    }
    if err != nil {
        return false, err
    }
    if err := json.Unmarshal(raw, out); err != nil {
        return false, err
    }
    return true, nil
}

func (s *Store) set(key []byte, v any) error {
    raw, err := json.Marshal(v)
    if err != nil {
        return err
    }
    return s.db.Put(key, raw, nil)
}

func (s *Store) Credential(ctx context.Context) (domain.Credential, bool, error) {
    var cred domain.Credential
    ok, err := s.get(keyCredential, &cred)
    return cred, ok, err
}

func (s *Store) SetCredential(ctx context.Context, cred domain.Credential) error {
    return s.set(keyCredential, cred)
}

func (s *Store) CacheRecord(ctx context.Context) (domain.CacheRecord, bool, error) {
    var rec domain.CacheRecord
    ok, err := s.get(keyListCache, &rec)
    return rec, ok, err
}

func (s *Store) SetCacheRecord(ctx context.Context, rec domain.CacheRecord) error {
    return s.set(keyListCache, rec)
}
