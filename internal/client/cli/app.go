// Package cli is the interactive shell of the vacstats client: a small REPL
// with login/logout, one-shot stats queries, and a full-screen dashboard
// view. The App also implements services.Navigator, so the session manager
// can move the user between views without knowing about terminals.
package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/vacstats/internal/client/api"
	"github.com/dmitrijs2005/vacstats/internal/client/config"
	"github.com/dmitrijs2005/vacstats/internal/client/services"
	"github.com/dmitrijs2005/vacstats/internal/client/session"
	"github.com/dmitrijs2005/vacstats/internal/client/tui"
	"github.com/dmitrijs2005/vacstats/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB
	api    *api.RESTClient
	auth   *services.AuthManager
	stats  *services.StatsService
	reader *bufio.Reader
	out    io.Writer

	// view is touched from the REPL goroutine and from the 401 hook, which
	// can fire on a command goroutine of an already-closed dashboard.
	viewMu sync.Mutex
	view   services.View

	// test seam for the full-screen dashboard
	runDashboard func(interval time.Duration) error
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()

	log := logging.NewDefault(os.Stderr, cfg.Debug)

	db, err := session.InitDatabase(ctx, cfg.SessionDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	store := session.NewSQLiteStore(db)

	apiClient := api.NewRESTClient(cfg.APIBaseURL, cfg.RequestTimeout, store, log)

	app := &App{
		config: cfg,
		log:    log,
		db:     db,
		api:    apiClient,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		view:   services.ViewHome,
	}
	app.auth = services.NewAuthManager(apiClient, store, app, log)
	app.stats = services.NewStatsService(apiClient)

	// session expiry anywhere bounces the user back to the login view
	apiClient.SetUnauthorizedHook(app.auth.HandleUnauthorized)

	app.runDashboard = func(interval time.Duration) error {
		return tui.Run(app.stats, interval)
	}

	return app, nil
}

// NavigateTo implements services.Navigator. It only records the target view;
// user-facing feedback belongs to the command handlers, which know why the
// navigation happened. Safe to call from any goroutine.
func (a *App) NavigateTo(view services.View) {
	a.viewMu.Lock()
	a.view = view
	a.viewMu.Unlock()
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsAuthenticated()
}

func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	if err := a.auth.Initialize(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Welcome to vacstats (type 'help' for commands)")
	if u := a.auth.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	}

	a.repl(ctx)
	return nil
}

func (a *App) Close() {
	if err := a.api.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing api client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.log.Warn(context.Background(), "error closing session database", "error", err)
	}
}

func (a *App) status() string {
	if u := a.auth.CurrentUser(); u != nil {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return ""
}
