package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rinthtools/rinth/modrinth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [slug|ID]",
	Short: "Show details of a Modrinth project",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client := newClient()
		project, err := client.GetProject(args[0])
		if err != nil {
			fmt.Printf("Failed to get project: %v\n", err)
			os.Exit(1)
		}

		fmt.Println(project.Title() + " (" + project.Slug() + ")")
		if project.Model.Description != nil {
			fmt.Println(*project.Model.Description)
		}
		fmt.Println("Categories:", strings.Join(project.AllCategories(), ", "))
		if project.Model.Downloads != nil {
			fmt.Println("Downloads:", *project.Model.Downloads)
		}
		if project.Model.License != nil && project.Model.License.ID != nil {
			fmt.Println("License:", *project.Model.License.ID)
		}
		if project.Model.SourceURL != nil {
			fmt.Println("Source:", *project.Model.SourceURL)
		}

		if viper.GetBool("show.versions") {
			versions, err := project.Versions(modrinth.ListVersionsOptions{})
			if err != nil {
				fmt.Printf("Failed to list versions: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Versions:")
			for _, v := range versions {
				fmt.Printf("  %s (%s) - %s\n", v.VersionNumber(), v.Type(), strings.Join(v.Model.GameVersions, ", "))
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)

	showCmd.Flags().Bool("versions", false, "Also list the project's versions")
	_ = viper.BindPFlag("show.versions", showCmd.Flags().Lookup("versions"))
}
