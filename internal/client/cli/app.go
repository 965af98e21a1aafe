// Package cli is the terminal view layer: a REPL over the session
// store, the API adapter and the board controller. It contains no
// business logic beyond prompting, rendering and confirmation.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/jobtrack/internal/client/api"
	"github.com/dmitrijs2005/jobtrack/internal/client/board"
	"github.com/dmitrijs2005/jobtrack/internal/client/config"
	"github.com/dmitrijs2005/jobtrack/internal/client/session"
	"github.com/dmitrijs2005/jobtrack/internal/client/storage"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
)

type App struct {
	config  *config.Config
	session *session.Store
	api     api.Client
	board   *board.Controller
	store   storage.Store
	log     logging.Logger

	reader   *bufio.Reader
	out      io.Writer
	darkMode bool
}

// NewApp wires the whole client together: storage, the shared API
// client, the session store (with its token source and the central 401
// teardown hook), and the board controller.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	db, err := storage.InitDatabase(ctx, cfg.StorageDSN)
	if err != nil {
		return nil, fmt.Errorf("error initializing settings database: %w", err)
	}
	store := storage.NewSQLiteStore(db)

	apiClient := api.NewHTTPClient(cfg.RESTBaseURL, cfg.GraphQLURL, cfg.RequestTimeout, log)
	sess := session.New(apiClient, store, log)
	apiClient.SetTokenSource(sess.Token)
	apiClient.SetUnauthorizedHook(func() {
		sess.HandleUnauthorized(context.Background())
	})

	a := &App{
		config:  cfg,
		session: sess,
		api:     apiClient,
		board:   board.New(apiClient, log),
		store:   store,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	sess.SetExpiredHandler(func() {
		fmt.Fprintln(a.out, "Session expired, please log in again.")
	})
	return a, nil
}

// Run resolves the persisted session before the first prompt renders,
// then hands control to the REPL.
func (a *App) Run(ctx context.Context) {
	defer a.api.Close()

	if err := a.session.Restore(ctx); err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
	}
	a.loadTheme(ctx)

	if a.session.IsAuthenticated() {
		fmt.Fprintf(a.out, "Welcome back, %s!\n", a.session.Profile().DisplayName())
	}

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	if !a.session.IsAuthenticated() {
		return ""
	}
	s := a.session.Profile().DisplayName()
	if s == "" {
		s = "logged in"
	}
	return fmt.Sprintf("(%s)", s)
}

// Status prints the current session state.
func (a *App) Status(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	fmt.Fprintf(a.out, "Logged in as %s.\n", a.session.Profile().DisplayName())
	return nil
}

// busy renders the indicator shown for the duration of any request
// that gates user action.
func (a *App) busy() {
	fmt.Fprintln(a.out, "...")
}
