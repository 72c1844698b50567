package cmd

import (
	"fmt"
	"os"

	"github.com/rinthtools/rinth/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// downloadCmd represents the download command
var downloadCmd = &cobra.Command{
	Use:     "download [name]",
	Short:   "Download the files in the manifest (or a single one) to the destination folder",
	Aliases: []string{"dl", "fetch"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := loadManifest()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		files := manifest.Files
		if len(args) == 1 {
			file, ok := manifest.FindFile(args[0])
			if !ok {
				fmt.Println("You don't have this file installed.")
				os.Exit(1)
			}
			files = []core.ManifestFile{*file}
		}
		if len(files) == 0 {
			fmt.Println("Nothing to download; add something first.")
			os.Exit(1)
		}

		if err := downloadFiles(newClient(), files, viper.GetString("dest")); err != nil {
			fmt.Printf("Failed to download: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d file(s) downloaded!\n", len(files))
	},
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}
