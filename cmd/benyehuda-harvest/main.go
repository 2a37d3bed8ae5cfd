// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the benyehuda-harvest CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/benyehuda-harvest/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// apiKey resolves the Ben Yehuda API key from the environment or the
// secrets directory. An empty result is allowed; the API serves public
// works without a key at a lower rate limit.
func apiKey() string {
	return secrets.Get(loadedSecrets, "benyehuda-api-key", "BENYEHUDA_API_KEY")
}

// rootCmd is the base command for the benyehuda-harvest CLI.
var rootCmd = &cobra.Command{
	Use:   "benyehuda-harvest",
	Short: "Scrape the Ben Yehuda Project digital library",
	Long: `benyehuda-harvest downloads works from the Ben Yehuda Project, the
public-domain Hebrew literature archive. Each scraped work is saved as one
JSON record holding the work's metadata and full text.

Each stage is a subcommand: works fetches work records, authors fetches the
authors referenced by scraped works, and catalog builds a searchable SQLite
index over the local collection.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./benyehuda-harvest.yaml or ~/.config/benyehuda-harvest/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("benyehuda-harvest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "benyehuda-harvest"))
		}
	}

	viper.SetEnvPrefix("BENYEHUDA_HARVEST")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
