package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"qrlog/internal/config"
	"qrlog/internal/store"
	"qrlog/internal/view"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       *viper.Viper
	cfg     config.Config
	logger  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
)

var rootCmd = &cobra.Command{
	Use:   "qrlog",
	Short: "QR code payload builder with a local scan/generate history",
	Long: `qrlog builds QR code payloads (text, URL, phone, SMS, email, WiFi), records
payloads decoded by an external scanner, and keeps the 20 most recent of both
in a local history.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}
		cfg = loaded
		level, _ := cfg.Level()
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default <data-dir>/config.yaml)")
	pf.String("data-dir", "", "directory holding history and config (default $HOME/.qrlog)")
	pf.String("backend", "", "history storage: sqlite, file or memory")
	pf.String("locale", "", "display language: en or zh")

	v = newViper()
}

// newViper returns a viper instance bound to the global flags.
func newViper() *viper.Viper {
	nv := viper.New()
	pf := rootCmd.PersistentFlags()
	_ = nv.BindPFlag("data_dir", pf.Lookup("data-dir"))
	_ = nv.BindPFlag("backend", pf.Lookup("backend"))
	_ = nv.BindPFlag("locale", pf.Lookup("locale"))
	return nv
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openHistory opens the configured slot. A slot that cannot be opened leaves
// the history running in memory for this invocation.
func openHistory() (*store.History, error) {
	var slot store.Slot
	var err error
	switch cfg.Backend {
	case config.BackendSQLite:
		slot, err = store.NewSQLiteSlot(cfg.DataDir)
	case config.BackendFile:
		slot, err = store.NewFileSlot(filepath.Join(cfg.DataDir, "slots"))
	default:
		slot = store.NewMemorySlot()
	}
	if err != nil {
		logger.Warn("history storage unavailable, keeping log in memory", "backend", cfg.Backend, "err", err)
		slot = nil
	}

	return store.Open(slot, store.WithLogger(logger))
}

func newPanel(cmd *cobra.Command, h *store.History) (*view.Panel, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	r, err := view.NewRenderer(cfg.Locale, loc)
	if err != nil {
		return nil, err
	}
	return view.NewPanel(h, r, cmd.OutOrStdout()), nil
}
