package siteinfo

import (
    "context"
    "log"

    "sitevet/internal/classify"
    "sitevet/internal/domain"
    "sitevet/internal/ports"
)

// ErrBadURL marks input that could not be classified at all.
var ErrBadURL = errString("unparseable url")

type errString string

func (e errString) Error() string { return string(e) }

type Service struct {
    lists ports.ListSource
}

func New(lists ports.ListSource) *Service { return &Service{lists: lists} }

// Lookup classifies a URL, resolves it against the current list and derives
// its status. List failures degrade to an unlisted answer; only an
// unclassifiable URL is an error.
func (s *Service) Lookup(ctx context.Context, rawurl string) (domain.SiteInfo, error) {
    info := classify.Classify(rawurl)
    if info == nil {
        return domain.SiteInfo{}, ErrBadURL
    }
    list, err := s.lists.List(ctx)
    if err != nil {
        log.Printf("siteinfo: list unavailable: %v", err)
        list = nil
    }
    entry := Resolve(info, list)
    return domain.SiteInfo{
        DomainInfo: info,
        Entry:      entry,
        Status:     domain.DeriveStatus(entry),
    }, nil
}

// Resolve finds the single applicable entry for a classified URL. Installed
// apps match on storefront app id, ordinary sites on the collapsed hostname.
// A storefront page with no resolvable app id matches nothing, so a
// storefront homepage can never inherit an app's status. First match in
// list order wins; duplicates are not deduplicated.
func Resolve(info *domain.DomainInfo, list []domain.ListEntry) *domain.ListEntry {
    if info == nil {
        return nil
    }
    if info.IsAppStore && !info.IsInstalled {
        return nil
    }
    for i := range list {
        ref := classify.Classify(list[i].ResourceLink)
        if ref == nil {
            continue
        }
        if info.IsInstalled {
            if ref.IsInstalled && ref.AppID == info.AppID {
                return &list[i]
            }
            continue
        }
        if !ref.IsInstalled && ref.Hostname == info.Hostname {
            return &list[i]
        }
    }
    return nil
}
