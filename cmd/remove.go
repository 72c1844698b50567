package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// removeCmd represents the remove command
var removeCmd = &cobra.Command{
	Use:     "remove [name]",
	Short:   "Remove a file from the manifest",
	Aliases: []string{"delete", "uninstall"},
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := loadManifest()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		file, ok := manifest.FindFile(args[0])
		if !ok {
			fmt.Println("You don't have this file installed.")
			os.Exit(1)
		}
		name := file.Name

		local := filepath.Join(viper.GetString("dest"), filepath.Base(file.FileName))
		if _, err := os.Stat(local); err == nil {
			if err := os.Remove(local); err != nil {
				fmt.Printf("Failed to delete %s: %v\n", local, err)
				os.Exit(1)
			}
		}

		if err := manifest.RemoveFile(args[0]); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		if err := manifest.Write(); err != nil {
			fmt.Printf("Error writing manifest: %s\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s removed successfully!\n", name)
	},
}

func init() {
	rootCmd.AddCommand(removeCmd)
}
