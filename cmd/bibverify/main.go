// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the bibverify CLI. It checks a
// bibliography against CrossRef and PubMed and writes review-ready reports.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/bibverify/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// secretDefault returns the secret value for key if it exists, or fallback otherwise.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	if v, ok := loadedSecrets[key]; ok {
		return v
	}
	return ""
}

// rootCmd is the base command for the bibverify CLI.
var rootCmd = &cobra.Command{
	Use:   "bibverify",
	Short: "Verify bibliography citations against CrossRef and PubMed",
	Long: `bibverify reads a bibliography (plain text or PDF), extracts the metadata
of each citation, checks it against the CrossRef and PubMed databases, and
scores how well the published record matches what the manuscript claims.

The verify subcommand runs the full pipeline and writes a detailed CSV, an
R-friendly CSV, an XLSX workbook, a YAML export, a human-readable summary,
and a SQLite results database. The report subcommand re-renders the summary
from a stored run.`,
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

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./bibverify.yaml or ~/.config/bibverify/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("bibverify")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "bibverify"))
		}
	}

	viper.SetEnvPrefix("BIBVERIFY")
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
