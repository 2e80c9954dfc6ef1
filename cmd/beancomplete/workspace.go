package main

import (
	"errors"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rlch/beancomplete"
	"github.com/rlch/beancomplete/workspace"
)

// newLogger logs warnings to stderr, or everything with --debug.
func newLogger(cmd *cli.Command) (*zap.Logger, error) {
	config := zap.NewDevelopmentConfig()
	config.OutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)

	if cmd.Bool("debug") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	return config.Build()
}

// loadConfig resolves the config for dir: --config when given, else the nearest config
// file, else the defaults. --beans replaces the configured bean paths.
func loadConfig(cmd *cli.Command, dir string) (*beancomplete.Config, error) {
	var (
		cfg *beancomplete.Config
		err error
	)

	if path := cmd.String("config"); path != "" {
		cfg, err = beancomplete.LoadConfigFile(path)
	} else {
		cfg, err = beancomplete.LoadConfig(dir)
	}

	if errors.Is(err, beancomplete.ErrConfigNotFound) {
		abs, absErr := filepath.Abs(dir)
		if absErr != nil {
			return nil, absErr
		}

		cfg, err = &beancomplete.Config{Dir: abs}, nil
	}

	if err != nil {
		return nil, err
	}

	if beans := cmd.StringSlice("beans"); len(beans) > 0 {
		cfg.Beans = cfg.Beans[:0]

		for _, b := range beans {
			abs, err := filepath.Abs(b)
			if err != nil {
				return nil, err
			}

			cfg.Beans = append(cfg.Beans, abs)
		}
	}

	return cfg, nil
}

// openWorkspace loads the workspace that applies to dir.
func openWorkspace(cmd *cli.Command, dir string, logger *zap.Logger) (*workspace.Workspace, error) {
	cfg, err := loadConfig(cmd, dir)
	if err != nil {
		return nil, err
	}

	return workspace.FromConfig(cfg, logger)
}
