package domain

import "time"

// Core domain models used internally. Wire shapes for the remote list and the
// HTTP surface marshal straight from these; split them if they ever drift.

// DomainInfo is the classification of one URL. Recomputed on every call,
// never persisted. Invariant: IsInstalled holds exactly when AppID != "".
type DomainInfo struct {
    FullHostname string `json:"fullHostname"`
    Hostname     string `json:"hostname"`
    IsInstalled  bool   `json:"isInstalled"`
    AppID        string `json:"appID,omitempty"`
    IsAppStore   bool   `json:"isAppStore"`
    AppStoreName string `json:"appStoreName,omitempty"`
}

// ListEntry is one row of the remote compliance list. Owned by the remote
// source and read-only here; identity is the URL in ResourceLink. Extra
// fields on the wire are ignored.
type ListEntry struct {
    ResourceLink     string `json:"resource_link"`
    SoftwareName     string `json:"software_name"`
    CurrentTLStatus  string `json:"current_tl_status"`
    CurrentDPAStatus string `json:"current_dpa_status"`
}

// CacheRecord is the single cached copy of the list, replaced wholesale on
// each successful synchronization. FetchedAt is epoch milliseconds.
type CacheRecord struct {
    List      []ListEntry `json:"list"`
    FetchedAt int64       `json:"fetchedAtEpochMs"`
}

func (r CacheRecord) Age(now time.Time) time.Duration {
    return time.Duration(now.UnixMilli()-r.FetchedAt) * time.Millisecond
}

// Credential is the single stored bearer token. Validity is never tracked
// up front; a bad token is only discovered when the list endpoint rejects it.
type Credential struct {
    AccessToken string `json:"accessToken"`
}

// SiteInfo is the answer to a site query: the classification, the matched
// entry if any, and the derived status.
type SiteInfo struct {
    DomainInfo *DomainInfo `json:"domainInfo"`
    Entry      *ListEntry  `json:"entry,omitempty"`
    Status     Status      `json:"status"`
}
