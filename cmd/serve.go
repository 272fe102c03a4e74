// file: cmd/serve.go
// version: 1.1.0
// guid: e0808c04-7602-4197-8dc7-a019e4cad04c

package cmd

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jdfalk/bookshelf/internal/config"
	"github.com/jdfalk/bookshelf/internal/library"
	"github.com/jdfalk/bookshelf/internal/server"
	"github.com/jdfalk/bookshelf/internal/server/middleware"
	"github.com/spf13/cobra"
)

func (a *app) serveCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Long:  `Serve the bookshelf operations as a JSON API under /api/v1, with Prometheus metrics on /metrics.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			svc, closer, err := a.openService()
			if err != nil {
				return err
			}
			defer closer()

			limiter := middleware.NewSearchLimiter(cfg.Server.RateLimit, cfg.Server.Burst)
			a.watchConfig(svc, limiter)

			srv := server.NewServer(svc, server.Options{SearchLimiter: limiter})

			srvCfg := server.DefaultServerConfig(cfg.Server.Addr())
			if rt, _ := cmd.Flags().GetDuration("read-timeout"); rt > 0 {
				srvCfg.ReadTimeout = rt
			}
			if wt, _ := cmd.Flags().GetDuration("write-timeout"); wt > 0 {
				srvCfg.WriteTimeout = wt
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Serving on http://%s (database %s, %s)\n", srvCfg.Addr, cfg.DatabasePath, cfg.DatabaseType)
			return srv.Start(ctx, srvCfg)
		},
	}

	serveCmd.Flags().String("host", config.DefaultHost, "host to bind the web server to")
	serveCmd.Flags().Int("port", config.DefaultPort, "port to run the web server on")
	serveCmd.Flags().Int("rate-limit", config.DefaultSearchRateLimit, "search and recommend requests per minute per client IP (0 disables)")
	serveCmd.Flags().Int("burst", config.DefaultSearchBurst, "search rate limiter burst size")
	serveCmd.Flags().Duration("read-timeout", 15*time.Second, "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().Duration("write-timeout", 45*time.Second, "write timeout (e.g. 45s, 1m)")
	_ = a.v.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = a.v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	_ = a.v.BindPFlag("server.rate_limit", serveCmd.Flags().Lookup("rate-limit"))
	_ = a.v.BindPFlag("server.burst", serveCmd.Flags().Lookup("burst"))
	return serveCmd
}

// watchConfig reloads the config file on change and applies the settings
// that can change without a restart.
func (a *app) watchConfig(svc *library.Service, limiter *middleware.SearchLimiter) {
	if a.v.ConfigFileUsed() == "" {
		return
	}
	a.v.OnConfigChange(func(e fsnotify.Event) {
		if err := a.applyConfig(svc, limiter); err != nil {
			log.Printf("[WARN] ignoring config change in %s: %v", e.Name, err)
			return
		}
		log.Printf("[INFO] config reloaded from %s", e.Name)
	})
	a.v.WatchConfig()
}

// applyConfig pushes the live-tunable settings into a running server.
func (a *app) applyConfig(svc *library.Service, limiter *middleware.SearchLimiter) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	svc.SetTopK(cfg.Stats.TopK)
	limiter.SetLimits(cfg.Server.RateLimit, cfg.Server.Burst)
	log.Printf("[DEBUG] stats.top_k=%d server.rate_limit=%d server.burst=%d",
		cfg.Stats.TopK, cfg.Server.RateLimit, cfg.Server.Burst)
	return nil
}
