package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/rinthtools/rinth/modrinth"
	"github.com/skratchdot/open-golang/open"
	"github.com/spf13/cobra"
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open [name|slug]",
	Short: "Open the project page of an installed file (or any slug) in your browser",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		slug := args[0]

		// An installed file's name maps back to its project via update metadata.
		if manifest, err := loadManifest(); err == nil {
			if file, ok := manifest.FindFile(args[0]); ok {
				if data, ok := file.GetParsedUpdateData("modrinth"); ok {
					slug = data.(mrUpdateData).ProjectID
				}
			}
		}

		client := newClient()
		project, err := client.GetProject(slug)
		if err != nil {
			var notFound *modrinth.NotFoundError
			if errors.As(err, &notFound) {
				fmt.Println("Project not found:", slug)
			} else {
				fmt.Printf("Failed to get project: %v\n", err)
			}
			os.Exit(1)
		}

		url := "https://modrinth.com/project/" + project.Slug()
		fmt.Println("Opening", url)
		if err := open.Start(url); err != nil {
			fmt.Printf("Failed to open browser: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(openCmd)
}
