package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/igorsobreira/titlecase"
	"github.com/rinthtools/rinth/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [name]",
	Short: "Create a manifest file in the current folder",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manifestPath := viper.GetString("manifest-file")
		if _, err := os.Stat(manifestPath); err == nil && !viper.GetBool("init.reinit") {
			fmt.Println("Manifest already exists; use --reinit to overwrite it.")
			os.Exit(1)
		}

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			wd, err := os.Getwd()
			directoryName := "."
			if err == nil {
				directoryName = filepath.Base(wd)
			}
			if directoryName != "." && len(directoryName) > 0 {
				// Turn the directory name into a space-separated proper name
				name = titlecase.Title(strings.ReplaceAll(strings.ReplaceAll(strings.Join(camelcase.Split(directoryName), " "), " - ", " "), " _ ", " "))
				name = initReadValue("Manifest name ["+name+"]: ", name)
			} else {
				name = initReadValue("Manifest name: ", "")
			}
		}
		if name == "" {
			fmt.Println("A name is required.")
			os.Exit(1)
		}

		manifest := core.NewManifest(name, manifestPath)
		manifest.GameVersions = viper.GetStringSlice("init.game-version")
		manifest.Loaders = viper.GetStringSlice("init.loader")

		if err := manifest.Write(); err != nil {
			fmt.Printf("Error writing manifest: %s\n", err)
			os.Exit(1)
		}
		fmt.Println("Manifest created at " + manifestPath)
	},
}

func initReadValue(prompt string, def string) string {
	fmt.Print(prompt)
	if viper.GetBool("non-interactive") {
		fmt.Println(def)
		return def
	}
	answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		fmt.Printf("Failed to prompt user: %v\n", err)
		os.Exit(1)
	}
	value := strings.TrimSpace(answer)
	if value == "" {
		return def
	}
	return value
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringSlice("game-version", nil, "Game version(s) to filter downloads with")
	_ = viper.BindPFlag("init.game-version", initCmd.Flags().Lookup("game-version"))

	initCmd.Flags().StringSlice("loader", nil, "Loader(s) to filter downloads with")
	_ = viper.BindPFlag("init.loader", initCmd.Flags().Lookup("loader"))

	initCmd.Flags().Bool("reinit", false, "Replace an existing manifest")
	_ = viper.BindPFlag("init.reinit", initCmd.Flags().Lookup("reinit"))
}
