package httpadapter

import (
    "context"
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "net/url"
    "testing"

    "github.com/stretchr/testify/require"

    "sitevet/internal/dispatch"
    "sitevet/internal/domain"
    "sitevet/internal/services/siteinfo"
)

type staticLists struct {
    list []domain.ListEntry
}

func (s *staticLists) List(ctx context.Context) ([]domain.ListEntry, error) {
    return s.list, nil
}

func newTestServer(t *testing.T, list []domain.ListEntry) *httptest.Server {
    t.Helper()
    lists := &staticLists{list: list}
    d := dispatch.New(lists, siteinfo.New(lists))
    ctx, cancel := context.WithCancel(context.Background())
    t.Cleanup(cancel)
    go func() { _ = d.Run(ctx) }()

    ts := httptest.NewServer(New(d).Routes())
    t.Cleanup(ts.Close)
    return ts
}

func TestGetSiteInfo(t *testing.T) {
    ts := newTestServer(t, []domain.ListEntry{{
        ResourceLink:     "https://foo.com",
        SoftwareName:     "Foo",
        CurrentTLStatus:  "Approved",
        CurrentDPAStatus: "Not Required",
    }})

    resp, err := http.Get(ts.URL + "/siteinfo?url=" + url.QueryEscape("https://www.foo.com/x"))
    require.NoError(t, err)
    defer resp.Body.Close()
    require.Equal(t, http.StatusOK, resp.StatusCode)

    var info domain.SiteInfo
    require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
    require.Equal(t, domain.StatusApproved, info.Status)
    require.NotNil(t, info.DomainInfo)
    require.Equal(t, "foo.com", info.DomainInfo.Hostname)
    require.NotNil(t, info.Entry)
    require.Equal(t, "Foo", info.Entry.SoftwareName)
}

func TestGetSiteInfoUnlisted(t *testing.T) {
    ts := newTestServer(t, nil)

    resp, err := http.Get(ts.URL + "/siteinfo?url=" + url.QueryEscape("https://unknown.example/x"))
    require.NoError(t, err)
    defer resp.Body.Close()
    require.Equal(t, http.StatusOK, resp.StatusCode)

    var info domain.SiteInfo
    require.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
    require.Equal(t, domain.StatusUnlisted, info.Status)
    require.Nil(t, info.Entry)
}

func TestGetSiteInfoMissingParam(t *testing.T) {
    ts := newTestServer(t, nil)

    resp, err := http.Get(ts.URL + "/siteinfo")
    require.NoError(t, err)
    defer resp.Body.Close()
    require.Equal(t, http.StatusBadRequest, resp.StatusCode)

    var body map[string]string
    require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
    require.Contains(t, body, "error")
}

func TestGetSiteInfoBadURL(t *testing.T) {
    ts := newTestServer(t, nil)

    resp, err := http.Get(ts.URL + "/siteinfo?url=" + url.QueryEscape("not a url"))
    require.NoError(t, err)
    defer resp.Body.Close()
    require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestPostRefresh(t *testing.T) {
    ts := newTestServer(t, nil)

    resp, err := http.Post(ts.URL+"/refresh", "", nil)
    require.NoError(t, err)
    defer resp.Body.Close()
    require.Equal(t, http.StatusAccepted, resp.StatusCode)
}

func TestHealthz(t *testing.T) {
    ts := newTestServer(t, nil)

    resp, err := http.Get(ts.URL + "/healthz")
    require.NoError(t, err)
    defer resp.Body.Close()
    require.Equal(t, http.StatusOK, resp.StatusCode)
}
