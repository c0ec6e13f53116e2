package main

import (
    "context"
    "errors"
    "log"
    "net/http"
    "os/signal"
    "syscall"
    "time"

    "github.com/go-chi/chi/v5"
    "golang.org/x/sync/errgroup"

    "sitevet/internal/adapters/authweb"
    httpadapter "sitevet/internal/adapters/http"
    ldb "sitevet/internal/adapters/leveldb"
    pg "sitevet/internal/adapters/postgres"
    "sitevet/internal/config"
    "sitevet/internal/dispatch"
    "sitevet/internal/ports"
    "sitevet/internal/services/siteinfo"
    "sitevet/internal/services/synclist"
)

func main() {
    cfg, err := config.Load()
    if err != nil {
        log.Fatalf("config: %v", err)
    }

    ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
    defer stop()

    var store ports.SlotStore
    if cfg.DatabaseURL != "" {
        db, err := pg.Connect(ctx, cfg.DatabaseURL)
        if err != nil {
            log.Fatalf("db connect error: %v", err)
        }
        store = db
        log.Printf("slot store: postgres")
    } else {
        s, err := ldb.Open(cfg.DataDir + "/slots")
        if err != nil {
            log.Fatalf("leveldb open error: %v", err)
        }
        store = s
        log.Printf("slot store: leveldb at %s", cfg.DataDir)
    }
    defer store.Close()

    auth := authweb.New(cfg.AuthURL, cfg.AuthClientID, cfg.AuthRedirectURL, cfg.AuthTimeout)
    lists := synclist.New(store, auth, synclist.Options{
        ListURL:   cfg.ListURL,
        APIKey:    cfg.ListAPIKey,
        UserAgent: cfg.UserAgent,
        TTL:       cfg.ListTTL,
    })
    sites := siteinfo.New(lists)

    disp := dispatch.New(lists, sites)
    srv := httpadapter.New(disp)
    r := chi.NewRouter()
    r.Mount("/", srv.Routes())

    httpServer := &http.Server{
        Addr:              cfg.ListenAddr,
        Handler:           r,
        ReadHeaderTimeout: 10 * time.Second,
    }

    g, ctx := errgroup.WithContext(ctx)
    g.Go(func() error { return disp.Run(ctx) })
    g.Go(func() error {
        log.Printf("listening on %s", cfg.ListenAddr)
        err := httpServer.ListenAndServe()
        if errors.Is(err, http.ErrServerClosed) {
            return nil
        }
        return err
    })
    g.Go(func() error {
        <-ctx.Done()
        shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        return httpServer.Shutdown(shutdownCtx)
    })

    // periodic list refresh, independent of query-triggered warming
    disp.Every(ctx, "list-refresh", cfg.RefreshDelay, cfg.RefreshEvery)

    if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
        log.Fatalf("server error: %v", err)
    }
}
