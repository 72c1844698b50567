package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the files in the manifest",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := loadManifest()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		for _, file := range manifest.Files {
			if viper.GetBool("list.verbose") {
				fmt.Printf("%s (%s, %s side)\n", file.Name, file.FileName, file.Side)
			} else {
				fmt.Println(file.Name)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolP("verbose", "v", false, "Show filenames and sides")
	_ = viper.BindPFlag("list.verbose", listCmd.Flags().Lookup("verbose"))
}
