package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/eringen/docsite"
)

var (
	cfgFile string
	siteCfg docsite.SiteConfig
)

var rootCmd = &cobra.Command{
	Use:   "docsite",
	Short: "docsite builds and serves markdown documentation sites",
	Long: `docsite turns a docsite.yaml (navigation, sidebar trees, search
tuning, head injections) plus a directory of markdown files into a
documentation website: as a static build, or served live with an
optional admin editor.`,
	SilenceUsage: true,
	Version:      version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The scaffold command runs before a project exists.
		if cmd.Name() == "new" {
			return nil
		}
		return loadConfig()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "docsite.yaml", "site config file")
}

// loadConfig reads the site config from YAML, then overlays the runtime
// settings (listen address, cache path, admin secrets) from the
// environment and defaults via viper. Secrets never live in the YAML.
func loadConfig() error {
	cfg, err := docsite.LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	v := viper.New()
	v.SetDefault("addr", ":4173")
	v.SetDefault("cache_path", "data/render.db")
	v.SetDefault("cookie_secure", false)
	v.SetEnvPrefix("DOCSITE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg.Addr = v.GetString("addr")
	cfg.CachePath = v.GetString("cache_path")
	cfg.AdminPassword = v.GetString("admin_password")
	cfg.SessionSecret = v.GetString("session_secret")
	cfg.CookieSecure = v.GetBool("cookie_secure")

	if cfg.AdminPassword != "" && cfg.SessionSecret == "" {
		return fmt.Errorf("DOCSITE_SESSION_SECRET is required when DOCSITE_ADMIN_PASSWORD is set")
	}

	siteCfg = cfg
	return nil
}
