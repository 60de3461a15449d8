package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/exp/slog"

	qrcode "github.com/RashadAnsari/go-qrstudio"
	"github.com/RashadAnsari/go-qrstudio/internal/config"
	"github.com/RashadAnsari/go-qrstudio/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	log     *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "qrstudio",
	Short: "Generate styled QR codes from URLs, contacts, WiFi credentials and more",
	Long: `qrstudio turns structured input into the payload format scanners expect
(mailto:, tel:, sms:, geo:, WIFI:, vCard), encodes it as a QR code and
redraws the modules in a chosen style before exporting PNG, JPEG, BMP, PDF or SVG.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	var err error

	cfg, err = config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log = logger.New(cfg.Env)

	return nil
}

// newSession wires a session from the loaded config.
func newSession() (*qrcode.Session, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}

	enc, err := qrcode.NewEncoder(cfg.Encoder)
	if err != nil {
		return nil, err
	}

	locator, err := cfg.Locator()
	if err != nil {
		return nil, err
	}

	sessionOpts := []qrcode.SessionOption{
		qrcode.WithOptions(opts),
		qrcode.WithLogger(log),
		qrcode.WithNotifier(qrcode.NewToast(os.Stderr, cfg.Notify)),
		qrcode.WithCooldown(cfg.Cooldown),
	}

	if locator != nil {
		sessionOpts = append(sessionOpts, qrcode.WithLocator(locator))
	}

	return qrcode.NewSession(enc, sessionOpts...), nil
}

func init() {
	pf := rootCmd.PersistentFlags()

	pf.StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	pf.String("env", "local", "logging environment: local, dev or prod")
}
