package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/bookshelf/internal/client/cache"
	"github.com/dmitrijs2005/bookshelf/internal/client/client"
	"github.com/dmitrijs2005/bookshelf/internal/client/config"
	"github.com/dmitrijs2005/bookshelf/internal/client/metrics"
	"github.com/dmitrijs2005/bookshelf/internal/client/models"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/bookmarks"
	"github.com/dmitrijs2005/bookshelf/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bookshelf/internal/client/services"
	"github.com/dmitrijs2005/bookshelf/internal/client/session"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
	"github.com/dmitrijs2005/bookshelf/internal/filex"
	"github.com/dmitrijs2005/bookshelf/internal/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	redis    *redis.Client
	registry *prometheus.Registry

	session     *session.Store
	gateway     client.Client
	authService services.AuthService
	library     services.LibraryService

	in  io.Reader
	out io.Writer
}

// NewApp wires storage, the gateway and the services according to c.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if _, err := filex.EnsureParentDir(c.DatabasePath); err != nil {
		return nil, fmt.Errorf("error preparing database directory: %w", err)
	}

	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("error initializing database: %w", err)
	}

	a := &App{
		config:   c,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
		in:       os.Stdin,
		out:      os.Stdout,
	}
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	bm, err := a.bookmarkRepository(ctx)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a.session = session.NewStore(logger, session.WithRepository(metadata.NewSQLiteRepository(db)))
	a.gateway = client.NewGraphQLClient(c.GraphQLEndpoint, a.session,
		client.WithTimeout(c.RequestTimeout),
		client.WithMetrics(metrics.NewGateway(a.registry)),
		client.WithLogger(logger),
	)

	users := cache.New[models.User]()
	a.authService = services.NewAuthService(a.gateway, a.session, users, logger)
	a.library = services.NewLibraryService(a.gateway, a.session, users, bm, logger)
	return a, nil
}

func (a *App) bookmarkRepository(ctx context.Context) (bookmarks.Repository, error) {
	switch a.config.BookmarkStore {
	case config.BookmarkStoreRedis:
		rc, err := bookmarks.ConnectRedis(ctx, a.config.RedisAddr, a.config.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("error connecting to redis: %w", err)
		}
		a.redis = rc
		return bookmarks.NewRedisRepository(rc, bookmarks.DefaultRedisKey), nil
	default:
		return bookmarks.NewSQLiteRepository(a.db), nil
	}
}

func (a *App) getStatus() string {
	id, ok := a.authService.Identity()
	if !ok {
		return ""
	}
	return fmt.Sprintf(" (%s)", id.Username)
}

// Run restores the session, starts the message loop and reads commands until
// the user quits.
func (a *App) Run(ctx context.Context) error {
	defer a.Close(ctx)

	if err := a.session.Load(ctx); err != nil {
		return err
	}

	if a.config.MetricsAddr != "" {
		go func() {
			if err := metrics.Serve(ctx, a.config.MetricsAddr, a.registry); err != nil {
				a.logger.Error(ctx, "metrics endpoint stopped", "error", err)
			}
		}()
	}

	fmt.Fprintln(a.out, "Welcome to the bookshelf CLI (type 'help' for commands)")

	root := NewRoot(a.authService, a.library, a.logger)
	program := ui.NewProgram(root, a.out, ui.WithLogger(a.logger))
	a.session.OnChange(func(loggedIn bool) {
		program.Send(SessionChangedMsg{LoggedIn: loggedIn})
	})

	go runREPL(program, a.getStatus, bufio.NewReader(a.in), a.out)
	return program.Run(ctx, root.Start())
}

// Close releases the gateway, the redis connection and the database.
func (a *App) Close(ctx context.Context) {
	if err := a.authService.Close(ctx); err != nil {
		a.logger.Warn(ctx, "closing gateway", "error", err)
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "closing database", "error", err)
	}
}
