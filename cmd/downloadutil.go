package cmd

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rinthtools/rinth/core"
	"github.com/rinthtools/rinth/modrinth"
	"github.com/vbauerster/mpb/v4"
	"github.com/vbauerster/mpb/v4/decor"
)

// downloadFiles fetches each manifest entry into dest, verifying the declared
// hash. Files matching the destination's ignore rules are left alone. The
// first failure aborts the rest.
func downloadFiles(client *modrinth.Client, files []core.ManifestFile, dest string) error {
	ign, err := core.LoadIgnore(dest)
	if err != nil {
		return fmt.Errorf("failed to load ignore rules: %w", err)
	}
	if err := os.MkdirAll(dest, os.ModePerm); err != nil {
		return fmt.Errorf("failed to create destination folder: %w", err)
	}

	progress := mpb.New(mpb.WithWidth(64))
	bar := progress.AddBar(int64(len(files)),
		mpb.PrependDecorators(
			decor.Name("downloading"),
			decor.CountersNoUnit(" %d / %d"),
		),
		mpb.AppendDecorators(decor.Percentage()),
	)

	for _, file := range files {
		name := filepath.Base(file.FileName)
		if ign.MatchesPath(name) {
			fmt.Printf("Skipping %s (ignored)\n", name)
			bar.Increment()
			continue
		}

		fileURL, err := core.ReencodeURL(file.Download.URL)
		if err != nil {
			return err
		}
		data, err := client.Fetch(fileURL)
		if err != nil {
			return fmt.Errorf("failed to download %s: %w", name, err)
		}

		if file.Download.Hash != "" {
			h, err := core.GetHashImpl(file.Download.HashFormat)
			if err != nil {
				return fmt.Errorf("cannot verify %s: %w", name, err)
			}
			h.Write(data)
			calculated := hex.EncodeToString(h.Sum(nil))
			if !strings.EqualFold(calculated, file.Download.Hash) {
				return fmt.Errorf("hash mismatch for %s: %s %s does not match declared %s",
					name, file.Download.HashFormat, calculated, file.Download.Hash)
			}
		}

		if err := os.WriteFile(filepath.Join(dest, name), data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		bar.Increment()
	}
	progress.Wait()
	return nil
}

// bestHash picks the strongest hash a file declares, for storing in the
// manifest.
func bestHash(file modrinth.File) (string, string) {
	for _, format := range []string{"sha512", "sha256", "sha1", "murmur2"} {
		if val, exists := file.Hashes[format]; exists {
			return format, val
		}
	}
	// None of the preferred hashes are present, just get the first one
	for key, val := range file.Hashes {
		return key, val
	}
	return "", ""
}

// getSide derives the manifest side tag from a project's support levels.
func getSide(project *modrinth.Project) string {
	server := shouldDownloadOnSide(project.Model.ServerSide)
	client := shouldDownloadOnSide(project.Model.ClientSide)

	if server && client {
		return core.UniversalSide
	} else if server {
		return core.ServerSide
	} else if client {
		return core.ClientSide
	}
	return ""
}

func shouldDownloadOnSide(side *string) bool {
	return side != nil && (*side == modrinth.SupportRequired || *side == modrinth.SupportOptional)
}
