// Command oaclient is the OA workspace client: a local console for the UI
// shell plus one-shot commands against the same session storage.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/oaworkspace/oaclient/internal/core/domain"
	"github.com/oaworkspace/oaclient/internal/core/service"
	"github.com/oaworkspace/oaclient/internal/infrastructure/apiclient"
	mongodb "github.com/oaworkspace/oaclient/internal/infrastructure/db/mongo"
	redisdb "github.com/oaworkspace/oaclient/internal/infrastructure/db/redis"
	"github.com/oaworkspace/oaclient/internal/infrastructure/storage"
	"github.com/oaworkspace/oaclient/internal/pkg/config"
	"github.com/oaworkspace/oaclient/internal/pkg/metrics"
	"github.com/oaworkspace/oaclient/pkg/logger"
)

//go:generate swag init --parseInternal -d ../../ -g cmd/oaclient/main.go -o ../../docs

// @title           oaclient console API
// @version         1.0
// @description     Local console for the OA workspace client: session, connection status and office data.
// @BasePath        /
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "oaclient",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, cfg, log, os.Args[1:], os.Stdout)
	stop()

	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if errors.Is(err, errUsage) {
		usage(os.Stderr)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

var errUsage = errors.New("usage")

// run executes one command against freshly wired services.
func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string, out io.Writer) error {
	if len(args) == 0 {
		return errUsage
	}
	cmd, ok := commands[args[0]]
	if !ok {
		return errUsage
	}

	a, err := newApp(ctx, cfg, log, out)
	if err != nil {
		return err
	}
	defer a.close()

	if cmd.needsSession && !a.auth.IsAuthenticated(ctx) {
		return domain.ErrNotAuthenticated
	}
	return cmd.run(ctx, a, args[1:])
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: oaclient <command> [flags]")
	fmt.Fprintln(w)
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-12s %s\n", name, commands[name].summary)
	}
}

// app holds the services one invocation works with.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	out      io.Writer
	storage  *storage.Backend
	language *service.LanguageStore
	status   *service.StatusBroadcaster
	exec     *apiclient.Executor
	auth     *service.AuthService
	office   *service.OfficeService

	unsubscribe func()
}

func newApp(ctx context.Context, cfg *config.Config, log zerolog.Logger, out io.Writer) (*app, error) {
	backend, err := storage.Open(ctx, storage.Config{
		Driver:    cfg.Storage.Driver,
		Path:      cfg.Storage.Path,
		Secret:    cfg.Storage.Secret,
		Namespace: cfg.Storage.Namespace,
		Redis: redisdb.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		Mongo: mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		},
	}, component(log, "storage"))
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	kv := backend.Store
	tokens := service.NewTokenStore(kv, component(log, "token_store"))
	sessions := service.NewSessionStore(kv, tokens, component(log, "session_store"))
	language := service.NewLanguageStore(kv, component(log, "language"))

	status := service.NewStatusBroadcaster(component(log, "status"))
	unsubscribe := status.Subscribe(func(s domain.ConnectionStatus) {
		metrics.SetConnectionState(string(s.State))
	})

	exec, err := apiclient.NewExecutor(apiclient.Config{
		BaseURL:       cfg.API.BaseURL,
		HealthPath:    cfg.API.HealthPath,
		Origin:        cfg.API.Origin,
		FallbackDelay: cfg.API.FallbackDelay,
		Timeout:       cfg.API.Timeout,
	}, tokens, status, component(log, "apiclient"))
	if err != nil {
		unsubscribe()
		_ = backend.Close(ctx)
		return nil, err
	}
	client := apiclient.NewOfficeClient(exec)

	return &app{
		cfg:         cfg,
		log:         log,
		out:         out,
		storage:     backend,
		language:    language,
		status:      status,
		exec:        exec,
		auth:        service.NewAuthService(client, tokens, sessions, language, component(log, "auth")),
		office:      service.NewOfficeService(client, sessions, language, component(log, "office")),
		unsubscribe: unsubscribe,
	}, nil
}

func (a *app) close() {
	a.unsubscribe()
	if err := a.storage.Close(context.Background()); err != nil {
		a.log.Warn().Err(err).Msg("failed to close storage")
	}
}

func component(log zerolog.Logger, name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}
