package classify

import (
    "net/url"
    "strings"

    "sitevet/internal/domain"
)

// storefront describes one known app storefront host: a display name and a
// best-effort app-id extractor. Adding a storefront is one more table row.
type storefront struct {
    name    string
    extract func(u *url.URL) string
}

var storefronts = map[string]storefront{
    "apps.apple.com": {
        name: "Apple App Store",
        extract: func(u *url.URL) string {
            if !strings.Contains(u.Path, "/app/") {
                return ""
            }
            return lastSegment(u.Path)
        },
    },
    "chromewebstore.google.com": {
        name: "Chrome Web Store",
        extract: func(u *url.URL) string {
            parts := strings.Split(u.Path, "/")
            if len(parts) < 2 || parts[1] != "detail" {
                return ""
            }
            return lastSegment(u.Path)
        },
    },
    "play.google.com": {
        name: "Google Play",
        extract: func(u *url.URL) string {
            if !strings.HasPrefix(u.Path, "/store/apps/details") {
                return ""
            }
            return u.Query().Get("id")
        },
    },
    "workspace.google.com": {
        name: "Google Workspace Marketplace",
        extract: func(u *url.URL) string {
            if !strings.HasPrefix(u.Path, "/marketplace/app/") {
                return ""
            }
            // Marketing pages under /marketplace/app/ end in a slug, real
            // listings in a numeric id. Only the latter count as an app.
            seg := lastSegment(u.Path)
            if !isNumeric(seg) {
                return ""
            }
            return seg
        },
    },
}

// Classify parses a URL into its matching key and storefront metadata.
// Returns nil for empty or unparseable input; it never panics. Pure.
func Classify(rawurl string) *domain.DomainInfo {
    if rawurl == "" {
        return nil
    }
    u, err := url.Parse(rawurl)
    if err != nil || u.Hostname() == "" {
        return nil
    }
    host := strings.ToLower(u.Hostname())

    info := &domain.DomainInfo{FullHostname: host}

    if sf, ok := storefronts[host]; ok {
        info.IsAppStore = true
        info.AppStoreName = sf.name
        info.AppID = sf.extract(u)
        info.IsInstalled = info.AppID != ""
        // A generic storefront page must never inherit the parent domain's
        // status, so the matching key stays the full hostname.
        info.Hostname = host
        return info
    }

    info.Hostname = registrable(host)
    return info
}

// registrable collapses a hostname to its last two labels. Hostnames with
// fewer than two labels pass through verbatim.
func registrable(host string) string {
    labels := strings.Split(host, ".")
    if len(labels) < 2 {
        return host
    }
    return strings.Join(labels[len(labels)-2:], ".")
}

func lastSegment(path string) string {
    path = strings.TrimRight(path, "/")
    if i := strings.LastIndex(path, "/"); i >= 0 {
        return path[i+1:]
    }
    return path
}

func isNumeric(s string) bool {
    if s == "" {
        return false
    }
    for _, r := range s {
        if r < '0' || r > '9' {
            return false
        }
    }
    return true
}
