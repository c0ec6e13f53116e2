package dispatch

import (
    "context"
    "log"
    "time"

    "sitevet/internal/domain"
    "sitevet/internal/ports"
    "sitevet/internal/services/siteinfo"
)

// The host hooks (navigation events, timers, inbound queries) all funnel
// through one typed event stream consumed by a single goroutine, so the core
// never needs locking; any two triggers simply interleave.

type NavigationCompleted struct {
    URL string
}

type TimerFired struct {
    Name string
}

type QueryReceived struct {
    URL   string
    Reply chan QueryResult
}

type QueryResult struct {
    Info domain.SiteInfo
    Err  error
}

type Dispatcher struct {
    events chan any
    lists  ports.ListSource
    sites  *siteinfo.Service
}

func New(lists ports.ListSource, sites *siteinfo.Service) *Dispatcher {
    return &Dispatcher{
        events: make(chan any, 64),
        lists:  lists,
        sites:  sites,
    }
}

// Post queues an event for the dispatch loop.
func (d *Dispatcher) Post(ev any) { d.events <- ev }

// Query posts a QueryReceived and waits for its reply.
func (d *Dispatcher) Query(ctx context.Context, rawurl string) (domain.SiteInfo, error) {
    reply := make(chan QueryResult, 1)
    select {
    case d.events <- QueryReceived{URL: rawurl, Reply: reply}:
    case <-ctx.Done():
        return domain.SiteInfo{}, ctx.Err()
    }
    select {
    case res := <-reply:
        return res.Info, res.Err
    case <-ctx.Done():
        return domain.SiteInfo{}, ctx.Err()
    }
}

// Every registers a named periodic timer: first fire after delay, then one
// per period, until ctx ends. Fires are posted as TimerFired events.
func (d *Dispatcher) Every(ctx context.Context, name string, delay, period time.Duration) {
    go func() {
        select {
        case <-ctx.Done():
            return
        case <-time.After(delay):
        }
        d.Post(TimerFired{Name: name})

        ticker := time.NewTicker(period)
        defer ticker.Stop()
        for {
            select {
            case <-ctx.Done():
                return
            case <-ticker.C:
                d.Post(TimerFired{Name: name})
            }
        }
    }()
}

// Run consumes events until ctx ends. Navigation and timer fires warm the
// list cache; the TTL check inside the synchronizer makes redundant fires
// cheap. Queries answer with the full lookup tuple.
func (d *Dispatcher) Run(ctx context.Context) error {
    for {
        select {
        case <-ctx.Done():
            return ctx.Err()
        case ev := <-d.events:
            switch ev := ev.(type) {
            case NavigationCompleted:
                info, err := d.sites.Lookup(ctx, ev.URL)
                if err != nil {
                    log.Printf("dispatch: navigation %q: %v", ev.URL, err)
                    continue
                }
                log.Printf("dispatch: navigation %s -> %s", info.DomainInfo.Hostname, info.Status)
            case TimerFired:
                if _, err := d.lists.List(ctx); err != nil {
                    log.Printf("dispatch: timer %s: %v", ev.Name, err)
                }
            case QueryReceived:
                info, err := d.sites.Lookup(ctx, ev.URL)
                ev.Reply <- QueryResult{Info: info, Err: err}
            default:
                log.Printf("dispatch: dropping unknown event %T", ev)
            }
        }
    }
}
