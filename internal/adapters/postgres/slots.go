package postgres

import (
    "context"
    "encoding/json"
    "errors"

    "github.com/jackc/pgx/v5"

    "sitevet/internal/domain"
)

// SlotStore on a single slots table: one row per named slot, jsonb payload,
// upsert on write. Schema lives in migrations/.

const (
    slotCredential = "credential"
    slotListCache  = "list_cache"
)

func (db *DB) getSlot(ctx context.Context, name string, out any) (bool, error) {
    var raw []byte
    err := db.Pool.QueryRow(ctx, `SELECT value FROM slots WHERE name = $1`, name).Scan(&raw)
    if errors.Is(err, pgx.ErrNoRows) {
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

func (db *DB) setSlot(ctx context.Context, name string, v any) error {
    raw, err := json.Marshal(v)
    if err != nil {
        return err
    }
    _, err = db.Pool.Exec(ctx, `
        INSERT INTO slots (name, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (name) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
    `, name, raw)
    return err
}

func (db *DB) Credential(ctx context.Context) (domain.Credential, bool, error) {
    var cred domain.Credential
    ok, err := db.getSlot(ctx, slotCredential, &cred)
    return cred, ok, err
}

func (db *DB) SetCredential(ctx context.Context, cred domain.Credential) error {
    return db.setSlot(ctx, slotCredential, cred)
}

func (db *DB) CacheRecord(ctx context.Context) (domain.CacheRecord, bool, error) {
    var rec domain.CacheRecord
    ok, err := db.getSlot(ctx, slotListCache, &rec)
    return rec, ok, err
}

func (db *DB) SetCacheRecord(ctx context.Context, rec domain.CacheRecord) error {
    return db.setSlot(ctx, slotListCache, rec)
}
