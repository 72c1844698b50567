package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rinthtools/rinth/modrinth"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for projects on Modrinth",
	Args:  cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		query := strings.Join(args, " ")
		client := newClient()

		result, err := client.SearchProjects(modrinth.SearchOptions{
			Query:  query,
			Facets: searchFacets(),
			Index:  viper.GetString("search.index"),
			Limit:  viper.GetInt("search.limit"),
		})
		if err != nil {
			fmt.Printf("Failed to search: %v\n", err)
			os.Exit(1)
		}
		if len(result.Hits) == 0 {
			fmt.Println("No projects found.")
			os.Exit(1)
		}

		for _, hit := range rankHits(query, result.Hits) {
			line := *hit.Title + " (" + *hit.Slug + ")"
			if hit.Downloads != nil {
				line += fmt.Sprintf(" - %d downloads", *hit.Downloads)
			}
			if hit.Description != nil {
				line += "\n    " + *hit.Description
			}
			fmt.Println(line)
		}
		fmt.Printf("%d of %d results shown\n", len(result.Hits), result.TotalHits)
	},
}

// searchFacets narrows results to the manifest's game versions, when a
// manifest is present.
func searchFacets() [][]string {
	manifest, err := loadManifest()
	if err != nil || len(manifest.GameVersions) == 0 {
		return nil
	}
	facets := make([]string, 0, len(manifest.GameVersions))
	for _, v := range manifest.GameVersions {
		facets = append(facets, "versions:"+v)
	}
	return [][]string{facets}
}

// rankHits reorders hits by fuzzy title match quality, keeping unmatched hits
// after the matches in server order.
func rankHits(query string, hits []*modrinth.SearchResultModel) []*modrinth.SearchResultModel {
	if query == "" {
		return hits
	}
	titles := make([]string, len(hits))
	for i, hit := range hits {
		titles[i] = *hit.Title
	}
	matches := fuzzy.Find(query, titles)
	if len(matches) == 0 {
		return hits
	}

	ranked := make([]*modrinth.SearchResultModel, 0, len(hits))
	seen := make(map[int]bool, len(matches))
	for _, m := range matches {
		ranked = append(ranked, hits[m.Index])
		seen[m.Index] = true
	}
	for i, hit := range hits {
		if !seen[i] {
			ranked = append(ranked, hit)
		}
	}
	return ranked
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().Int("limit", 10, "Maximum number of results to show")
	_ = viper.BindPFlag("search.limit", searchCmd.Flags().Lookup("limit"))

	searchCmd.Flags().String("index", "relevance", "Sort order (relevance/downloads/follows/newest/updated)")
	_ = viper.BindPFlag("search.index", searchCmd.Flags().Lookup("index"))
}
