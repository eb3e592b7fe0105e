package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/backoff"
	"github.com/dmitrijs2005/finkeeper/internal/client/backup"
	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/config"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/client/syncer"
	"github.com/dmitrijs2005/finkeeper/internal/dbx"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// pingTimeout bounds one reachability probe.
const pingTimeout = 3 * time.Second

type App struct {
	config       *config.Config
	logger       logging.Logger
	db           *dbx.Handle
	authService  services.AuthService
	categories   *services.CategoryRepository
	transactions *services.TransactionRepository
	syncer       *syncer.Worker
	backup       *backup.Service

	mu       sync.RWMutex
	mode     Mode
	userName string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store and wires every client component.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DBPath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	// The API client reads the token through the auth service, which in turn
	// needs the API client.
	var auth services.AuthService
	tokens := client.TokenFunc(func(ctx context.Context) (string, error) {
		return auth.AccessToken(ctx)
	})

	api, err := client.NewHTTPClient(c.ServerURL, c.HealthAddr, c.RequestTimeout, tokens)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	auth = services.NewAuthService(api, db)

	policy := backoff.Policy{
		Base:          c.RetryBaseDelay,
		Cap:           c.RetryMaxDelay,
		MaxAttempts:   c.MaxAttempts,
		JitterPercent: 10,
	}

	cats := services.NewCategoryRepository(db, api.Categories(), policy, logger)
	txs := services.NewTransactionRepository(db, api.Transactions(), policy, logger)

	worker := syncer.NewWorker(db, c.SyncInterval, syncer.DefaultBatchSize, logger, cats, txs)
	cats.SetNotifier(worker.Notify)
	txs.SetNotifier(worker.Notify)

	bk := backup.NewService(db, backup.Config{
		Bucket:    c.S3Bucket,
		Prefix:    c.S3Prefix,
		Region:    c.S3Region,
		Endpoint:  c.S3Endpoint,
		AccessKey: c.S3AccessKey,
		SecretKey: c.S3SecretKey,
	}, logger)

	return &App{
		config:       c,
		logger:       logger.With("module", "cli"),
		db:           db,
		authService:  auth,
		categories:   cats,
		transactions: txs,
		syncer:       worker,
		backup:       bk,
		mode:         ModeOffline,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// setMode records the connectivity mode and reports whether it changed.
func (a *App) setMode(mode Mode) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.mode == mode {
		return false
	}
	a.mode = mode
	a.logger.Info(context.Background(), "switched mode", "mode", mode)
	return true
}

func (a *App) Mode() Mode {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.mode
}

func (a *App) setUser(name string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.userName = name
}

func (a *App) isLoggedIn() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.userName != ""
}

func (a *App) getStatus() string {
	a.mu.RLock()
	defer a.mu.RUnlock()

	s := ""
	if a.userName != "" {
		s = a.userName + " "
	}
	if a.mode != "" {
		s = s + string(a.mode)
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// restoreSession picks up a session stored by an earlier run.
func (a *App) restoreSession(ctx context.Context) {
	tok, err := a.authService.AccessToken(ctx)
	if err != nil || tok == "" {
		return
	}
	name, err := a.authService.Username(ctx)
	if err != nil {
		return
	}
	a.setUser(name)
}

// Run starts the syncer and the online watcher, then serves the REPL on
// stdin until the user exits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to finkeeper CLI (type 'help' for commands)")
	a.restoreSession(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.syncer.Run(gctx)
	})
	g.Go(func() error {
		a.StartOnlineStatusWatcher(gctx, a.config.OnlineCheckInterval)
		return nil
	})

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))

	cancel()
	return g.Wait()
}

// Close releases the API client and the database.
func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "closing database", "error", err)
	}
}

// StartOnlineStatusWatcher probes the server every interval. Coming back
// online wakes the syncer so queued changes go out right away.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	a.checkOnline(ctx)

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, pingTimeout)
	err := a.authService.Ping(pctx)
	cancel()

	if err != nil {
		a.setMode(ModeOffline)
		return
	}
	if a.setMode(ModeOnline) && a.syncer != nil {
		a.syncer.Notify()
	}
}
