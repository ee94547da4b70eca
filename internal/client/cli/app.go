package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/mediacatalog/internal/client/client"
	"github.com/dmitrijs2005/mediacatalog/internal/client/config"
	"github.com/dmitrijs2005/mediacatalog/internal/client/notify"
	"github.com/dmitrijs2005/mediacatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mediacatalog/internal/client/services"
	"github.com/dmitrijs2005/mediacatalog/internal/client/viewport"
	"github.com/dmitrijs2005/mediacatalog/internal/filex"
	"github.com/dmitrijs2005/mediacatalog/internal/logging"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	session  *services.Session
	catalog  *services.CatalogStore
	viewport *viewport.Classifier
	notifier notify.Sink
	reader   *bufio.Reader
	out      io.Writer
	db       *sql.DB
}

// NewApp opens the state database and builds the services over an HTTP
// client for c.APIBaseURL. c must have passed Validate.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := filex.EnsureParentDir(c.StateDBPath); err != nil {
		return nil, err
	}

	db, err := client.InitDatabase(ctx, c.StateDBPath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.StateDBPath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	session, err := services.NewSession(ctx, apiClient, metadata.NewSQLiteRepository(db), logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(c, logger, session, services.NewCatalogStore(apiClient, logger),
		viewport.NewClassifier(viewport.NewTerminal(os.Stdout, c.CellWidth), logger),
		bufio.NewReader(os.Stdin), os.Stdout)
	a.db = db
	return a, nil
}

func newApp(c *config.Config, logger logging.Logger, session *services.Session, catalog *services.CatalogStore,
	vp *viewport.Classifier, reader *bufio.Reader, out io.Writer) *App {
	return &App{
		config:   c,
		logger:   logger,
		session:  session,
		catalog:  catalog,
		viewport: vp,
		notifier: notify.NewWriter(out),
		reader:   reader,
		out:      out,
	}
}

// Run starts the viewport watcher and the REPL and blocks until the user
// exits. Resources are released on return.
func (a *App) Run(ctx context.Context) error {
	defer a.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.viewport.Watch(ctx)
	})

	g.Go(func() error {
		defer cancel()
		printlnFn("Welcome to the media catalog (type 'help' for commands)")
		runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
		return nil
	})

	return g.Wait()
}

// Close cancels outstanding catalog requests and closes the state database.
func (a *App) Close() {
	a.catalog.Close()
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "close state db", "error", err)
		}
	}
}

func (a *App) isAuthenticated() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	_, class := a.viewport.Current()
	state := "guest"
	if a.session.IsAuthenticated() {
		state = "signed in"
	}
	return fmt.Sprintf("(%s, %s)", state, class)
}
