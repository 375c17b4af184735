package appcontext

import (
	"context"

	"github.com/ridoystarlord/invctl/api"
	"github.com/ridoystarlord/invctl/config"
	"github.com/ridoystarlord/invctl/events"
	"github.com/ridoystarlord/invctl/prefs"
	"go.uber.org/zap"
)

type Context struct {
	Config *config.Config
	Logger *zap.Logger

	API   *api.Client
	Prefs *prefs.Preferences
	Bus   *events.Bus
}

// Init wires the API client, the preference store and the event bus. The
// client signs requests with the token saved by `invctl auth login`.
func Init(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Context, error) {
	store, err := prefs.Open(ctx, cfg.PrefsDriver, cfg.PrefsPath, cfg.PrefsDSN)
	if err != nil {
		return nil, err
	}
	preferences := prefs.New(store)

	client := api.NewClient(cfg.APIURL, logger.Named("api"))
	client.Token = preferences.AuthToken

	logger.Debug("context initialised",
		zap.String("api", cfg.APIURL),
		zap.String("prefs_driver", cfg.PrefsDriver),
		zap.String("config", cfg.File))

	return &Context{
		Config: cfg,
		Logger: logger,
		API:    client,
		Prefs:  preferences,
		Bus:    events.NewBus(),
	}, nil
}

func (c *Context) Close() error {
	_ = c.Logger.Sync()
	return c.Prefs.Close()
}
