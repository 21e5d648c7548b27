package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xgirma/outreach-admin/internal/config"
	"github.com/xgirma/outreach-admin/internal/server"
	"github.com/xgirma/outreach-admin/internal/service"
)

const banner = `
  ___  _   _ _____ ___ ___   _   ___ _  _
 / _ \| | | |_   _| _ \ __| /_\ / __| || |
| (_) | |_| | | | |   / _| / _ \ (__| __ |
 \___/ \___/  |_| |_|_\___/_/ \_\___|_||_|
`

func newServeCmd() *cobra.Command {
	var (
		port int
		host string
		dev  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the admin API server",
		Long:  "Start the HTTP server that exposes the admin authentication and account management API.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(host, port, dev)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "HTTP listen host")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable development mode (verbose logging)")

	viper.BindPFlag("server.port", cmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", cmd.Flags().Lookup("host"))

	return cmd
}

func runServe(host string, port int, dev bool) error {
	fmt.Print(banner)
	fmt.Println()

	logger := newLogger(dev)

	// viper swallows parse errors because the config file is optional. An
	// explicitly named file should fail fast instead.
	if cfgFile != "" {
		if _, err := config.LoadYAMLConfig(cfgFile); err != nil {
			return err
		}
	}

	st, err := openStore()
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	logger.Info("credential store opened", "driver", viper.GetString("store.driver"))

	jwtSecret := viper.GetString("auth.jwt_secret")
	if jwtSecret == "" {
		jwtSecret = "outreach-dev-secret-change-me"
		logger.Warn("auth.jwt_secret not set, using insecure development secret")
	}

	ttl := time.Duration(0)
	if expiry := viper.GetString("auth.jwt_expiry"); expiry != "" {
		ttl, err = time.ParseDuration(expiry)
		if err != nil {
			return fmt.Errorf("parse auth.jwt_expiry: %w", err)
		}
	}

	tokens := service.NewTokenService(jwtSecret, ttl)
	admins := service.NewAdminService(st, viper.GetInt("auth.bcrypt_cost"))

	hasSuper, err := st.HasSuperAdmin(context.Background())
	if err != nil {
		logger.Warn("failed to check for super-admin", "error", err)
	}
	if !hasSuper {
		logger.Warn("no super-admin account found - POST /register or run: outreach admin create --super")
	}

	srvCfg := server.DefaultConfig()
	srvCfg.Host = host
	srvCfg.Port = port
	srvCfg.BaseURL = viper.GetString("server.base_url")
	if origins := viper.GetStringSlice("server.cors.origins"); len(origins) > 0 {
		srvCfg.CORSOrigins = origins
	}
	if viper.IsSet("server.rate_limit") {
		srvCfg.CredentialRateLimit = viper.GetInt("server.rate_limit")
	}
	if timeout := viper.GetString("server.shutdown_timeout"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			srvCfg.ShutdownTimeout = d
		}
	}

	srv := server.New(srvCfg, st, admins, tokens, logger)

	if err := writePID(os.Getpid()); err != nil {
		logger.Warn("failed to write PID file", "error", err)
	}
	defer removePID()

	fmt.Printf("→ Outreach %s\n", versionString())
	fmt.Printf("→ Listening on http://%s:%d\n", host, port)
	fmt.Printf("→ OpenAPI:    http://%s:%d/openapi.json\n", host, port)
	fmt.Printf("→ Health:     http://%s:%d/healthz\n", host, port)
	fmt.Println()

	return srv.ListenAndServe()
}

// newLogger builds the process logger from the logging config. Dev mode
// forces debug level.
func newLogger(dev bool) *slog.Logger {
	level := slog.LevelInfo
	switch viper.GetString("logging.level") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if dev {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	if viper.GetString("logging.format") == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
