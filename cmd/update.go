package cmd

import (
	"fmt"
	"os"

	"github.com/rinthtools/rinth/core"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:     "update [name]",
	Short:   "Update a file (or all files) in the manifest",
	Aliases: []string{"upgrade"},
	Args:    cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := loadManifest()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		client := newClient()

		targets := make([]*core.ManifestFile, 0, len(manifest.Files))
		if len(args) == 1 {
			file, ok := manifest.FindFile(args[0])
			if !ok {
				fmt.Println("You don't have this file installed.")
				os.Exit(1)
			}
			targets = append(targets, file)
		} else {
			for i := range manifest.Files {
				targets = append(targets, &manifest.Files[i])
			}
		}

		var changed []core.ManifestFile
		for _, file := range targets {
			raw, ok := file.GetParsedUpdateData("modrinth")
			if !ok {
				fmt.Printf("Skipping %s: no update metadata\n", file.Name)
				continue
			}
			data := raw.(mrUpdateData)

			project, err := client.GetProject(data.ProjectID)
			if err != nil {
				fmt.Printf("Failed to check %s: %v\n", file.Name, err)
				os.Exit(1)
			}
			latest, err := getLatestVersion(project, &manifest)
			if err != nil {
				fmt.Printf("Failed to get latest version of %s: %v\n", file.Name, err)
				os.Exit(1)
			}

			if latest.ID() == data.InstalledVersion {
				fmt.Printf("\"%s\" is already up to date!\n", file.Name)
				continue
			}

			newFile, err := pickFile(latest, "")
			if err != nil {
				fmt.Printf("Failed to update %s: %v\n", file.Name, err)
				os.Exit(1)
			}
			algorithm, hash := bestHash(newFile)
			if algorithm == "" {
				fmt.Printf("Failed to update %s: new file doesn't have a hash\n", file.Name)
				os.Exit(1)
			}

			fmt.Printf("Update available: %s -> %s\n", file.FileName, *newFile.Filename)
			file.FileName = *newFile.Filename
			file.Download = core.FileDownload{
				URL:        *newFile.URL,
				HashFormat: algorithm,
				Hash:       hash,
			}
			file.Update["modrinth"]["version"] = latest.ID()
			changed = append(changed, *file)
		}

		if len(changed) == 0 {
			fmt.Println("All files are up to date!")
			return
		}

		if !promptYesNo(fmt.Sprintf("Update %d file(s)? [Y/n]: ", len(changed))) {
			fmt.Println("Cancelled!")
			return
		}

		if err := manifest.Write(); err != nil {
			fmt.Printf("Error writing manifest: %s\n", err)
			os.Exit(1)
		}
		if err := downloadFiles(client, changed, viper.GetString("dest")); err != nil {
			fmt.Printf("Failed to download: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%d file(s) updated!\n", len(changed))
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
}
