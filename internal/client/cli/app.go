package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/QodeSites/myQodeApp-sub000/internal/client/config"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/gateway"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/repositories/credentials"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/session"
	"github.com/QodeSites/myQodeApp-sub000/internal/client/storage"
	"github.com/QodeSites/myQodeApp-sub000/internal/logging"
)

// App owns the long-lived pieces of the portal client: the gateway, the
// local store, and the session context consumed by every command.
type App struct {
	config  *config.Config
	gw      gateway.Gateway
	repos   *storage.Repositories
	creds   *credentials.Store
	session *session.Context
	log     logging.Logger
	reader  *bufio.Reader
}

func NewApp(cfg *config.Config) (*App, error) {
	ctx := context.Background()
	log := logging.NewDefault()

	repos, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	gw := gateway.NewHTTPGateway(cfg.APIBaseURL, cfg.RequestTimeout)
	creds := credentials.NewStore(repos.Credentials, log)
	sess := session.NewContext(gw, creds, repos.Selection, log)

	return &App{
		config:  cfg,
		gw:      gw,
		repos:   repos,
		creds:   creds,
		session: sess,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.close()
	a.Root(ctx)
}

func (a *App) close() {
	a.session.Close()
	if err := a.gw.Close(); err != nil {
		a.log.Warn(context.Background(), "closing gateway failed", "error", err)
	}
	if err := a.repos.Close(); err != nil {
		a.log.Warn(context.Background(), "closing database failed", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.creds.Access(context.Background()) != ""
}
