// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "wikiosint",
	Short: "Compute Wikipedia article sensitivity scores",
	Long: `WikiOSINT fans out ~16 independent signals across the MediaWiki
and Wikimedia REST APIs for a list of article titles or URLs, normalizes
them, and aggregates them into Heat, Quality, Risk and Sensitivity
composite scores.

Usage examples:
  wikiosint score "France" "Germany"
  wikiosint score "https://fr.wikipedia.org/wiki/France" --start 2024-01-01 --end 2024-12-31
  wikiosint score --lang de --output json "Berlin"`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.wikiosint.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	rootCmd.AddCommand(scoreCmd)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".wikiosint")
	}

	viper.SetDefault("default_language", "en")
	viper.SetDefault("worker_base", 16)
	viper.SetDefault("batch_size", 20)
	viper.SetDefault("user_agent", "")
	viper.SetDefault("blacklist_path", "")
	viper.SetDefault("sockpuppet_path", "")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
