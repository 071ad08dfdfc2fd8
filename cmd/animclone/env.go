package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/animclone/internal/config"
	"github.com/aretw0/animclone/internal/logging"
	"github.com/aretw0/animclone/pkg/adapters/memory"
	redisAdapter "github.com/aretw0/animclone/pkg/adapters/redis"
	"github.com/aretw0/animclone/pkg/adapters/sqlstore"
	"github.com/aretw0/animclone/pkg/adapters/yamlasset"
	"github.com/aretw0/animclone/pkg/behaviour"
	"github.com/aretw0/animclone/pkg/ports"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// env is the resolved configuration shared by every command.
type env struct {
	cfg    config.Config
	logger *slog.Logger
}

func loadEnv(cmd *cobra.Command) (*env, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.Log.Level = lvl
	}
	if format, _ := cmd.Flags().GetString("log-format"); format != "" {
		cfg.Log.Format = format
	}
	if assets, _ := cmd.Flags().GetString("assets"); assets != "" {
		cfg.Assets = assets
	}
	if backend, err := cmd.Flags().GetString("container"); err == nil && backend != "" {
		cfg.Container.Backend = backend
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:    cfg,
		logger: logging.NewWithWriter(cmd.ErrOrStderr(), level, cfg.Log.Format),
	}, nil
}

// behaviours returns the built-in registry extended with the configured opaque types.
func (e *env) behaviours() *behaviour.Registry {
	reg := behaviour.Default()
	for _, typeID := range e.cfg.Behaviours.Opaque {
		reg.RegisterOpaque(typeID)
	}
	return reg
}

func (e *env) store() *yamlasset.Store {
	return yamlasset.NewStore(e.cfg.Assets, yamlasset.NewCodec(e.behaviours()))
}

// openContainer connects to the configured ownership backend.
// The returned close function releases the backend connection.
func (e *env) openContainer(ctx context.Context) (ports.Container, func() error, error) {
	c := e.cfg.Container
	nop := func() error { return nil }

	switch c.Backend {
	case "memory":
		return memory.NewDatabase().Container(c.Name), nop, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: c.Redis.Addr})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", c.Redis.Addr, err)
		}
		var opts []redisAdapter.Option
		if c.Redis.Prefix != "" {
			opts = append(opts, redisAdapter.WithPrefix(c.Redis.Prefix))
		}
		return redisAdapter.NewFromClient(client, c.Name, opts...), client.Close, nil

	case "sqlite":
		if dir := filepath.Dir(c.SQLite); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		db, err := sqlstore.OpenSQLite(c.SQLite)
		if err != nil {
			return nil, nil, err
		}
		return db.Container(c.Name), db.Close, nil

	case "mysql":
		db, err := sqlstore.OpenMySQL(c.MySQL)
		if err != nil {
			return nil, nil, err
		}
		return db.Container(c.Name), db.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown container backend %q", c.Backend)
}
