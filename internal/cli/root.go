// Package cli contains the pinyin-game command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/robalobadob/pinyin-game/internal/config"
)

var (
	v   = config.New()
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pinyin-game",
	Short: "Pinyin practice game server",
	Long: `pinyin-game serves a browser game for practising Mandarin pinyin:
initials (声母), finals (韵母) and whole-syllable readings (整体认读音节).

Running 'pinyin-game' without arguments starts the HTTP server.
Settings come from flags, environment variables or a .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.FromViper(v)
		config.SetupLogging(cfg)
	},
	RunE: runServe,
}

// initConfig loads .env before any command reads its settings.
func initConfig() {
	config.LoadDotEnv()
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("log-level", "", "log level: debug, info, warn, error (env LOG_LEVEL)")
	pf.String("log-format", "", "log format: json or console (env LOG_FORMAT)")
	pf.String("catalog-file", "", "YAML or JSON catalog file (env CATALOG_FILE)")
	pf.String("catalog-db", "", "SQLite catalog database (env CATALOG_DB)")

	_ = v.BindPFlag(config.KeyLogLevel, pf.Lookup("log-level"))
	_ = v.BindPFlag(config.KeyLogFormat, pf.Lookup("log-format"))
	_ = v.BindPFlag(config.KeyCatalogFile, pf.Lookup("catalog-file"))
	_ = v.BindPFlag(config.KeyCatalogDB, pf.Lookup("catalog-db"))

	addServeFlags(rootCmd)
}
