package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/rinthtools/rinth/core"
	"github.com/rinthtools/rinth/modrinth"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rinth",
	Short: "A command line tool for finding and downloading Modrinth projects",
}

// Execute starts the root command for rinth
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// Add adds a new command as a subcommand to rinth
func Add(newCommand *cobra.Command) {
	rootCmd.AddCommand(newCommand)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("manifest-file", "rinth.toml", "The manifest file to use")
	_ = viper.BindPFlag("manifest-file", rootCmd.PersistentFlags().Lookup("manifest-file"))

	rootCmd.PersistentFlags().String("dest", ".", "The folder to download files into")
	_ = viper.BindPFlag("dest", rootCmd.PersistentFlags().Lookup("dest"))

	rootCmd.PersistentFlags().BoolP("non-interactive", "y", false, "Use default answers for interactive questions, and do not use a pager")
	_ = viper.BindPFlag("non-interactive", rootCmd.PersistentFlags().Lookup("non-interactive"))

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.rinth.toml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory and the per-user data directory
		// with name ".rinth" (without extension).
		viper.AddConfigPath(home)
		if store, err := core.GetRinthLocalStore(); err == nil {
			viper.AddConfigPath(store)
		}
		viper.SetConfigName(".rinth")
	}

	viper.SetEnvPrefix("rinth")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

// newClient builds the API client used by all commands, with the stored token
// attached when one is available.
func newClient() *modrinth.Client {
	client := modrinth.NewClient(nil)
	client.UserAgent = "rinthtools/rinth (+https://github.com/rinthtools/rinth)"
	if token := getAuthToken(); token != "" {
		client.Token = token
	}
	return client
}

// loadManifest loads the manifest named by --manifest-file.
func loadManifest() (core.Manifest, error) {
	return core.LoadManifest(viper.GetString("manifest-file"))
}
