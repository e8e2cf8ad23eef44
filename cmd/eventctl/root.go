package main

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/agenthands/eventlens/internal/bus"
	"github.com/agenthands/eventlens/internal/client"
	"github.com/agenthands/eventlens/internal/config"
	"github.com/agenthands/eventlens/internal/dashboard"
)

var (
	cfg        *config.Config
	apiURL     string
	configPath string
	verbose    bool
	localBus   = bus.New()
)

var rootCmd = &cobra.Command{
	Use:          "eventctl",
	Short:        "eventctl, the disaster event dashboard in your terminal",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadDotEnv(verbose)
		if configPath == "" {
			configPath = os.Getenv("CONFIG_PATH")
		}
		if configPath == "" {
			configPath = "config/config.toml"
		}
		c, err := config.LoadWithEnv(configPath)
		if err != nil {
			return err
		}
		cfg = c
		if apiURL != "" {
			cfg.Dashboard.APIBaseURL = apiURL
		}
		return nil
	},
}

// loadDotEnv reads .env files into the environment, by default ./.env. It
// reports whether anything was loaded.
func loadDotEnv(verbose bool, files ...string) bool {
	if err := godotenv.Load(files...); err != nil {
		if verbose {
			log.Println("No .env file found, using defaults")
		}
		return false
	}
	return true
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (default from config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log configuration details")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default $CONFIG_PATH or config/config.toml)")

	rootCmd.AddCommand(
		eventsCmd(),
		eventCmd(),
		facetsCmd(),
		submitCmd(),
		statsCmd(),
		graphCmd(),
		watchCmd(),
		adminCmd(),
	)
}

func newClient() *client.Client {
	c := client.New(cfg.Dashboard.APIBaseURL, cfg.RequestTimeout())
	if tok, err := loadSession(); err == nil {
		c.Token = tok
	}
	return c
}

func sessionPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".eventctl", "session")
}

func loadSession() (string, error) {
	data, err := os.ReadFile(sessionPath())
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func saveSession(token string) error {
	path := sessionPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(token+"\n"), 0o600)
}

func clearSession() error {
	err := os.Remove(sessionPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func notifier() dashboard.Notifier {
	return cliNotifier{}
}

func formatTime(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Local().Format("2006-01-02 15:04")
	}
	return ts
}
