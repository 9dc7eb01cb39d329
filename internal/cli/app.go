package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/config"
	"github.com/dmitrijs2005/rapidblood/internal/kvstore"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"github.com/dmitrijs2005/rapidblood/internal/services"
	"github.com/dmitrijs2005/rapidblood/internal/session"
)

type App struct {
	store  kvstore.Store
	svc    *services.Services
	sess   *session.Session
	log    logging.Logger
	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the configured record store and builds the services on it.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := kvstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open record store: %w", err)
	}
	log.Debug(ctx, "record store ready", "backend", cfg.Store)

	svc := services.New(records.New(store), cfg, log)
	a := newApp(svc, bufio.NewReader(os.Stdin), os.Stdout, log)
	a.store = store
	return a, nil
}

func newApp(svc *services.Services, reader *bufio.Reader, out io.Writer, log logging.Logger) *App {
	return &App{
		svc:    svc,
		sess:   session.New(),
		log:    log,
		reader: reader,
		out:    out,
	}
}

// Run resumes a saved session if there is one and blocks in the REPL until
// the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	if a.store != nil {
		defer func() {
			if err := a.store.Close(); err != nil {
				a.log.Error(ctx, "close record store", "error", err)
			}
		}()
	}

	printlnFn("Welcome to RapidBlood (type 'help' for commands)")
	u, err := a.svc.Auth.Resume(ctx, a.sess)
	switch {
	case err == nil:
		printlnFn(fmt.Sprintf("Welcome back, %s!", u.Name))
	case !errors.Is(err, common.ErrUnauthorized):
		a.log.Warn(ctx, "cannot restore saved session", "error", err)
	}

	runREPL(ctx, a, a.status, a.reader)
}

func (a *App) role() models.Role {
	u, ok := a.sess.Current()
	if !ok {
		return ""
	}
	return u.Role
}

func (a *App) status() string {
	u, ok := a.sess.Current()
	if !ok {
		return ""
	}
	return fmt.Sprintf("(%s %s)", u.Name, u.Role)
}
