package modrinth

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rinthtools/rinth/core"
)

// DownloadOptions configures Version.Download and Project.Download.
type DownloadOptions struct {
	// Dest is the directory files are written into; empty means the current
	// working directory.
	Dest string
	// Recursive also resolves every declared dependency of the version and
	// downloads the files of each resolved version. Resolution is one level
	// only: dependencies of dependencies are not followed, so dependency
	// cycles cannot be hit.
	Recursive bool
	// Verify checks the downloaded bytes against every entry in each file's
	// hash map, and against the declared byte size. Any mismatch is reported
	// as a HashMismatchError.
	Verify bool
	// Loaders/GameVersions filter the version lookup when downloading a
	// project rather than a pinned version. Dependency resolution is
	// unfiltered.
	Loaders      []string
	GameVersions []string
}

// Download writes every file of the version into opts.Dest under its declared
// base filename. The first failed fetch or write aborts the remaining
// downloads; there is no retry and no partial-success bookkeeping.
func (v *Version) Download(opts DownloadOptions) error {
	if err := v.downloadFiles(opts); err != nil {
		return err
	}
	if !opts.Recursive {
		return nil
	}
	for _, dep := range v.Model.Dependencies {
		resolved, err := dep.Resolve(v.client)
		if err != nil {
			return err
		}
		if err := resolved.downloadFiles(opts); err != nil {
			return err
		}
	}
	return nil
}

func (v *Version) downloadFiles(opts DownloadOptions) error {
	for _, file := range v.Model.Files {
		if file.URL == nil {
			return &MissingFieldError{Model: "file", Field: "url"}
		}
		if file.Filename == nil {
			return &MissingFieldError{Model: "file", Field: "filename"}
		}

		// CDN filenames may contain characters Go's URL parser mangles.
		fileURL, err := core.ReencodeURL(*file.URL)
		if err != nil {
			return err
		}
		data, err := v.client.Fetch(fileURL)
		if err != nil {
			return err
		}

		if opts.Verify {
			if err := verifyFile(file, data); err != nil {
				return err
			}
		}

		dest := filepath.Join(opts.Dest, filepath.Base(*file.Filename))
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", dest, err)
		}
	}
	return nil
}

// verifyFile checks data against every declared hash and the declared size.
// A hash format we cannot compute is an error rather than a silent accept.
func verifyFile(file File, data []byte) error {
	name := filepath.Base(*file.Filename)
	for format, expected := range file.Hashes {
		h, err := core.GetHashImpl(format)
		if err != nil {
			return fmt.Errorf("cannot verify %s: %w", name, err)
		}
		h.Write(data)
		calculated := hex.EncodeToString(h.Sum(nil))
		if !strings.EqualFold(calculated, expected) {
			return &HashMismatchError{
				Filename:   name,
				HashFormat: format,
				Expected:   expected,
				Calculated: calculated,
			}
		}
	}
	if file.Size != nil && int64(len(data)) != *file.Size {
		return &HashMismatchError{
			Filename:   name,
			HashFormat: "length-bytes",
			Expected:   strconv.FormatInt(*file.Size, 10),
			Calculated: strconv.Itoa(len(data)),
		}
	}
	return nil
}
