package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/arvoai/arvo/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "arvo",
	Short: "Automatic repository analysis and cloud deployment",
	Long: `Arvo analyzes a source repository, figures out how to build and run it,
picks a deployment strategy, renders the matching Terraform, provisions it
on AWS or GCP, and points hardcoded localhost endpoints at the deployed
address.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.Setup(viper.GetBool("debug"), viper.GetString("log_file"))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.arvo.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug output")
	rootCmd.PersistentFlags().Bool("demo", false, "demo mode: never contact a cloud provider, return a synthetic address")
	rootCmd.PersistentFlags().String("log-file", "", "also write logs to this file")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("demo", rootCmd.PersistentFlags().Lookup("demo"))
	viper.BindPFlag("log_file", rootCmd.PersistentFlags().Lookup("log-file"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			os.Exit(1)
		}

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".arvo")
	}

	viper.SetEnvPrefix("ARVO")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("debug") {
			fmt.Println("Using config file:", viper.ConfigFileUsed())
		}
	}
}

// defaultHistoryPath is where deployment records live unless overridden by
// the history.path config key.
func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".arvo", "history.db")
	}
	return filepath.Join(home, ".arvo", "history.db")
}
