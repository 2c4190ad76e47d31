package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/robalobadob/pinyin-game/internal/config"
	"github.com/robalobadob/pinyin-game/internal/httpserver"
	"github.com/robalobadob/pinyin-game/internal/pinyin"
	"github.com/robalobadob/pinyin-game/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP server. Pages are mounted under the base path:

  <base>          index page
  <base>game      game page
  <base>api/...   catalog and route table as JSON
  <base>assets/   files from --assets-dir (e.g. <fileKey>.mp3)

The server stops gracefully on SIGINT or SIGTERM.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// addServeFlags registers the server flags on cmd and binds them to config.
func addServeFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.String("host", "", "listen host (env HOST, default 0.0.0.0)")
	pf.String("port", "", "listen port (env PORT, default 5173)")
	pf.String("base-path", "", "URL prefix the game is served under (env BASE_PATH, default /pinyin-game/)")
	pf.String("assets-dir", "", "directory served under <base>assets/ (env ASSETS_DIR)")

	_ = v.BindPFlag(config.KeyHost, pf.Lookup("host"))
	_ = v.BindPFlag(config.KeyPort, pf.Lookup("port"))
	_ = v.BindPFlag(config.KeyBasePath, pf.Lookup("base-path"))
	_ = v.BindPFlag(config.KeyAssetsDir, pf.Lookup("assets-dir"))
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}

	srv, err := httpserver.New(cat, httpserver.Options{
		BasePath:       cfg.BasePath,
		ClientOrigin:   cfg.ClientOrigin,
		AssetsDir:      cfg.AssetsDir,
		RequestTimeout: cfg.RequestTimeout,
	})
	if err != nil {
		return fmt.Errorf("building server: %w", err)
	}

	if err := srv.Run(ctx, cfg.Addr(), cfg.ShutdownTimeout); err != nil {
		log.Error().Err(err).Msg("server exited")
		return err
	}
	return nil
}

// loadCatalog opens the configured catalog source.
func loadCatalog(ctx context.Context) (*pinyin.Catalog, error) {
	return store.Open(ctx, store.Options{DBPath: cfg.CatalogDB, CatalogFile: cfg.CatalogFile})
}
