package cmd

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/dlclark/regexp2"
	"github.com/rinthtools/rinth/core"
	"github.com/rinthtools/rinth/modrinth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/unascribed/FlexVer/go/flexver"
	"golang.org/x/exp/slices"
	"gopkg.in/dixonwille/wmenu.v4"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:     "add [URL|slug|search]",
	Short:   "Add a project from a Modrinth URL, slug/project ID or search",
	Aliases: []string{"install", "get"},
	Args:    cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		manifest, err := loadManifest()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		client := newClient()

		// If project/version IDs/version file name is provided in command line, use those
		var projectID, versionID, versionFilename string
		if projectIDFlag != "" {
			projectID = projectIDFlag
			if len(args) != 0 {
				fmt.Println("--project-id cannot be used with a separately specified URL/slug/search term")
				os.Exit(1)
			}
		}
		if versionIDFlag != "" {
			versionID = versionIDFlag
			if len(args) != 0 {
				fmt.Println("--version-id cannot be used with a separately specified URL/slug/search term")
				os.Exit(1)
			}
		}
		if versionFilenameFlag != "" {
			versionFilename = versionFilenameFlag
		}

		if (len(args) == 0 || len(args[0]) == 0) && projectID == "" && versionID == "" {
			fmt.Println("You must specify a project; with the ID flags, or by passing a URL, slug or search term directly.")
			os.Exit(1)
		}

		version := versionFlag
		var parsedSlug bool
		if projectID == "" && versionID == "" && len(args) == 1 {
			// Try interpreting the argument as a slug/project ID, or project/version/CDN URL
			parsedSlug, err = parseSlugOrUrl(args[0], &projectID, &version, &versionID, &versionFilename)
			if err != nil {
				fmt.Printf("Failed to parse URL: %v\n", err)
				os.Exit(1)
			}
		}

		// Got version ID; install using this ID
		if versionID != "" {
			if err := addVersionByID(client, versionID, versionFilename, &manifest); err != nil {
				fmt.Printf("Failed to add project: %s\n", err)
				os.Exit(1)
			}
			return
		}

		// Look up project ID
		var lookupErr error
		if projectID != "" {
			// Modrinth transparently handles slugs/project IDs in the API; there is no need to detect which one it is.
			var project *modrinth.Project
			project, lookupErr = client.GetProject(projectID)
			if lookupErr == nil {
				if version != "" {
					versionData, err := resolveVersionSpec(client, project, version)
					if err != nil {
						fmt.Printf("Failed to add project: %s\n", err)
						os.Exit(1)
					}
					if err := addVersion(client, project, versionData, versionFilename, &manifest); err != nil {
						fmt.Printf("Failed to add project: %s\n", err)
						os.Exit(1)
					}
					return
				}

				// No version specified; find latest
				if err := addProject(client, project, versionFilename, &manifest); err != nil {
					fmt.Printf("Failed to add project: %s\n", err)
					os.Exit(1)
				}
				return
			}
		}

		// Arguments weren't a valid slug/project ID, try to search for it instead (if it was not parsed as a URL)
		if projectID == "" || parsedSlug {
			if err := addViaSearch(client, strings.Join(args, " "), versionFilename, !parsedSlug, &manifest); err != nil {
				fmt.Printf("Failed to add project: %s\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Failed to add project: %s\n", lookupErr)
			os.Exit(1)
		}
	},
}

func addViaSearch(client *modrinth.Client, query string, versionFilename string, autoAcceptFirst bool, manifest *core.Manifest) error {
	fmt.Println("Searching Modrinth...")

	result, err := client.SearchProjects(modrinth.SearchOptions{
		Query:  query,
		Facets: searchFacets(),
		Index:  modrinth.IndexRelevance,
		Limit:  5,
	})
	if err != nil {
		return err
	}
	if len(result.Hits) == 0 {
		return errors.New("no projects found")
	}

	if viper.GetBool("non-interactive") || (len(result.Hits) == 1 && autoAcceptFirst) {
		// Install the first project found
		project, err := result.Hits[0].Project(client)
		if err != nil {
			return err
		}
		return addProject(client, project, versionFilename, manifest)
	}

	// Create menu for the user to choose the correct project
	menu := wmenu.NewMenu("Choose a number:")
	menu.Option("Cancel", nil, false, nil)
	for i, hit := range result.Hits {
		// Should be non-nil (Title is a required field)
		menu.Option(*hit.Title, hit, i == 0, nil)
	}

	menu.Action(func(menuRes []wmenu.Opt) error {
		if len(menuRes) != 1 || menuRes[0].Value == nil {
			return errors.New("project selection cancelled")
		}

		selected, ok := menuRes[0].Value.(*modrinth.SearchResultModel)
		if !ok {
			return errors.New("error converting interface from wmenu")
		}

		project, err := selected.Project(client)
		if err != nil {
			return err
		}
		return addProject(client, project, versionFilename, manifest)
	})

	return menu.Run()
}

func addVersionByID(client *modrinth.Client, versionID string, versionFilename string, manifest *core.Manifest) error {
	version, err := client.GetVersion(versionID)
	if err != nil {
		return fmt.Errorf("failed to fetch version %s: %w", versionID, err)
	}
	project, err := version.Project()
	if err != nil {
		return fmt.Errorf("failed to fetch the version's project: %w", err)
	}
	return addVersion(client, project, version, versionFilename, manifest)
}

func addProject(client *modrinth.Client, project *modrinth.Project, versionFilename string, manifest *core.Manifest) error {
	latest, err := getLatestVersion(project, manifest)
	if err != nil {
		return fmt.Errorf("failed to get latest version: %w", err)
	}
	return addVersion(client, project, latest, versionFilename, manifest)
}

func addVersion(client *modrinth.Client, project *modrinth.Project, version *modrinth.Version, versionFilename string, manifest *core.Manifest) error {
	file, err := pickFile(version, versionFilename)
	if err != nil {
		return err
	}

	var newEntries []core.ManifestFile

	deps := requiredDependencies(version)
	if len(deps) > 0 {
		fmt.Println("Finding dependencies...")

		for _, dep := range deps {
			resolved, err := dep.Resolve(client)
			if err != nil {
				return fmt.Errorf("failed to resolve dependency: %w", err)
			}
			depProject, err := resolved.Project()
			if err != nil {
				return fmt.Errorf("failed to resolve dependency: %w", err)
			}
			if _, installed := manifest.FindFile(depProject.Title()); installed {
				continue
			}

			depFile, err := pickFile(resolved, "")
			if err != nil {
				return fmt.Errorf("dependency %s: %w", depProject.Title(), err)
			}
			entry, err := manifestEntry(depProject, resolved, depFile)
			if err != nil {
				return err
			}
			newEntries = append(newEntries, entry)
		}

		if len(newEntries) > 0 {
			fmt.Println("Dependencies found:")
			for _, entry := range newEntries {
				fmt.Println(entry.Name)
			}
			if !promptYesNo("Would you like to add them? [Y/n]: ") {
				newEntries = newEntries[:0]
			}
		} else {
			fmt.Println("All dependencies are already added!")
		}
	}

	entry, err := manifestEntry(project, version, file)
	if err != nil {
		return err
	}
	newEntries = append(newEntries, entry)

	for _, entry := range newEntries {
		manifest.AddFile(entry)
	}
	if err := manifest.Write(); err != nil {
		return err
	}
	if err := downloadFiles(client, newEntries, viper.GetString("dest")); err != nil {
		return err
	}

	fmt.Printf("Project \"%s\" successfully added! (%s)\n", project.Title(), entry.FileName)
	return nil
}

// requiredDependencies filters a version's dependency list down to the ones
// that must be installed alongside it.
func requiredDependencies(version *modrinth.Version) []modrinth.Dependency {
	var required []modrinth.Dependency
	for _, dep := range version.DependencyList() {
		if dep.IsRequired() {
			required = append(required, dep)
		}
	}
	return required
}

// pickFile selects the artifact to install from a version: a --file-regex
// match wins, then an exact filename match, then the primary file.
func pickFile(version *modrinth.Version, versionFilename string) (modrinth.File, error) {
	files := version.FileList()
	if len(files) == 0 {
		return modrinth.File{}, errors.New("version doesn't have any files attached")
	}

	if fileRegexFlag != "" {
		re, err := regexp2.Compile(fileRegexFlag, 0)
		if err != nil {
			return modrinth.File{}, fmt.Errorf("invalid --file-regex: %w", err)
		}
		for _, f := range files {
			if f.Filename == nil {
				continue
			}
			match, err := re.MatchString(*f.Filename)
			if err != nil {
				return modrinth.File{}, err
			}
			if match {
				return f, nil
			}
		}
		return modrinth.File{}, errors.New("no file matching --file-regex found")
	}

	if versionFilename != "" {
		for _, f := range files {
			if f.Filename != nil && *f.Filename == versionFilename {
				return f, nil
			}
		}
	}

	file, _ := version.PrimaryFile()
	return file, nil
}

// getLatestVersion returns the newest version matching the manifest's filters.
// When the newest-by-date and highest-version-number picks disagree the user
// is warned, since project authors sometimes backport to older game versions.
func getLatestVersion(project *modrinth.Project, manifest *core.Manifest) (*modrinth.Version, error) {
	versions, err := project.Versions(modrinth.ListVersionsOptions{
		Loaders:      manifest.Loaders,
		GameVersions: manifest.GameVersions,
	})
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &modrinth.NoVersionsError{Project: project.Slug()}
	}

	releaseDateLatest := versions[0]
	flexverLatest := versions[0]
	for _, v := range versions[1:] {
		if flexver.Less(flexverLatest.VersionNumber(), v.VersionNumber()) {
			flexverLatest = v
		}
	}
	if flexverLatest != releaseDateLatest && flexverLatest.VersionNumber() != releaseDateLatest.VersionNumber() {
		fmt.Printf("Warning: Modrinth versions for %s inconsistent between latest version number and newest release date (%s vs %s)\n",
			project.Title(), flexverLatest.VersionNumber(), releaseDateLatest.VersionNumber())
	}

	return releaseDateLatest, nil
}

// resolveVersionSpec interprets spec as a version ID, an exact version number,
// or a semver constraint (e.g. "^1.2"), in that order.
func resolveVersionSpec(client *modrinth.Client, project *modrinth.Project, spec string) (*modrinth.Version, error) {
	// If it exists in the version list, it is already a version ID (and doesn't need querying further)
	if slices.Contains(project.Model.Versions, spec) {
		return client.GetVersion(spec)
	}

	versions, err := project.Versions(modrinth.ListVersionsOptions{})
	if err != nil {
		return nil, err
	}
	// Traverse in reverse order: the oldest file takes precedence over having the version number path
	for i := len(versions) - 1; i >= 0; i-- {
		if versions[i].VersionNumber() == spec {
			return versions[i], nil
		}
	}

	constraint, err := semver.NewConstraint(spec)
	if err != nil {
		return nil, fmt.Errorf("unable to find version %s", spec)
	}
	for _, v := range versions {
		parsed, err := semver.NewVersion(v.VersionNumber())
		if err != nil {
			continue
		}
		if constraint.Check(parsed) {
			return v, nil
		}
	}
	return nil, fmt.Errorf("no version matching constraint %s", spec)
}

// manifestEntry builds the manifest record for an installed file.
func manifestEntry(project *modrinth.Project, version *modrinth.Version, file modrinth.File) (core.ManifestFile, error) {
	if file.Filename == nil || file.URL == nil {
		return core.ManifestFile{}, errors.New("file has no filename or URL")
	}

	updateMap := make(map[string]map[string]interface{})
	var err error
	updateMap["modrinth"], err = mrUpdateData{
		ProjectID:        project.ID(),
		InstalledVersion: version.ID(),
	}.ToMap()
	if err != nil {
		return core.ManifestFile{}, err
	}

	side := getSide(project)
	if side == "" {
		fmt.Println("Warning: project doesn't have a side that's supported; assuming universal.")
		side = core.UniversalSide
	}

	algorithm, hash := bestHash(file)
	if algorithm == "" {
		return core.ManifestFile{}, errors.New("file doesn't have a hash")
	}

	return core.ManifestFile{
		Name:     project.Title(),
		FileName: *file.Filename,
		Side:     side,
		Download: core.FileDownload{
			URL:        *file.URL,
			HashFormat: algorithm,
			Hash:       hash,
		},
		Update: updateMap,
	}, nil
}

var urlRegexes = [...]*regexp.Regexp{
	// Slug/version number pattern from the upstream validation rules
	regexp.MustCompile("^https?://(www.)?modrinth\\.com/(?P<urlCategory>[^/]+)/(?P<slug>[a-zA-Z0-9!@$()`.+,_\"-]{3,64})(?:/version/(?P<version>[a-zA-Z0-9!@$()`.+,_\"-]{1,32}))?"),
	// Version/project IDs are more restrictive: [a-zA-Z0-9]+ (base62)
	regexp.MustCompile("^https?://cdn\\.modrinth\\.com/data/(?P<slug>[a-zA-Z0-9]+)/versions/(?P<versionID>[a-zA-Z0-9]+)/(?P<filename>[^/]+)$"),
	regexp.MustCompile("^(?P<slug>[a-zA-Z0-9!@$()`.+,_\"-]{3,64})$"),
}

const slugRegexIdx = 2

var urlCategories = []string{
	"mod", "plugin", "datapack", "shader", "resourcepack", "modpack",
}

func parseSlugOrUrl(input string, slug *string, version *string, versionID *string, filename *string) (parsedSlug bool, err error) {
	for regexIdx, r := range urlRegexes {
		matches := r.FindStringSubmatch(input)
		if matches != nil {
			if i := r.SubexpIndex("urlCategory"); i >= 0 {
				if !slices.Contains(urlCategories, matches[i]) {
					err = errors.New("unknown project type: " + matches[i])
					return
				}
			}
			if i := r.SubexpIndex("slug"); i >= 0 {
				*slug = matches[i]
			}
			if i := r.SubexpIndex("version"); i >= 0 && matches[i] != "" {
				*version = matches[i]
			}
			if i := r.SubexpIndex("versionID"); i >= 0 && matches[i] != "" {
				*versionID = matches[i]
			}
			if i := r.SubexpIndex("filename"); i >= 0 && matches[i] != "" {
				var parsed string
				parsed, err = url.PathUnescape(matches[i])
				if err != nil {
					return
				}
				*filename = parsed
			}
			parsedSlug = regexIdx == slugRegexIdx
			return
		}
	}
	return
}

var projectIDFlag string
var versionIDFlag string
var versionFilenameFlag string
var versionFlag string
var fileRegexFlag string

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVar(&projectIDFlag, "project-id", "", "The Modrinth project ID to use")
	addCmd.Flags().StringVar(&versionIDFlag, "version-id", "", "The Modrinth version ID to use")
	addCmd.Flags().StringVar(&versionFilenameFlag, "version-filename", "", "The Modrinth version filename to use")
	addCmd.Flags().StringVar(&versionFlag, "version", "", "The version number or semver constraint to install")
	addCmd.Flags().StringVar(&fileRegexFlag, "file-regex", "", "Install the first file whose name matches this regex")
}
