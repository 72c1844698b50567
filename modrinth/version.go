package modrinth

import (
	"encoding/json"
	"fmt"
	"time"
)

// Version wraps a version model and exposes the API operations scoped to it.
type Version struct {
	Model  *VersionModel
	client *Client
}

func parseVersionList(body []byte, client *Client) ([]*Version, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse version list: %w", err)
	}
	versions := make([]*Version, 0, len(raw))
	for _, entry := range raw {
		model, err := ParseVersionModel(entry)
		if err != nil {
			return nil, err
		}
		versions = append(versions, &Version{Model: model, client: client})
	}
	return versions, nil
}

// ID returns the version's server-assigned ID.
func (v *Version) ID() string {
	if v.Model.ID == nil {
		return ""
	}
	return *v.Model.ID
}

// Name returns the version's display name.
func (v *Version) Name() string {
	if v.Model.Name == nil {
		return ""
	}
	return *v.Model.Name
}

// VersionNumber returns the semantic version number.
func (v *Version) VersionNumber() string {
	if v.Model.VersionNumber == nil {
		return ""
	}
	return *v.Model.VersionNumber
}

// Type returns the release channel (release, beta or alpha).
func (v *Version) Type() string {
	if v.Model.VersionType == nil {
		return ""
	}
	return *v.Model.VersionType
}

// IsFeatured reports whether the version is featured on the project page.
func (v *Version) IsFeatured() bool {
	return v.Model.Featured != nil && *v.Model.Featured
}

// Downloads returns the download count, which is server-assigned.
func (v *Version) Downloads() uint32 {
	if v.Model.Downloads == nil {
		return 0
	}
	return *v.Model.Downloads
}

// DatePublished returns the publication time; the zero time when the version
// has not been materialized from a response.
func (v *Version) DatePublished() time.Time {
	if v.Model.DatePublished == nil {
		return time.Time{}
	}
	return *v.Model.DatePublished
}

// FileList returns the version's file descriptors.
func (v *Version) FileList() []File {
	return v.Model.Files
}

// PrimaryFiles returns only the files flagged as primary.
func (v *Version) PrimaryFiles() []File {
	var primary []File
	for _, f := range v.Model.Files {
		if f.Primary != nil && *f.Primary {
			primary = append(primary, f)
		}
	}
	return primary
}

// PrimaryFile returns the canonical artifact: the primary file if one is
// flagged, otherwise the first file. ok is false for a version with no files.
func (v *Version) PrimaryFile() (file File, ok bool) {
	if len(v.Model.Files) == 0 {
		return File{}, false
	}
	file = v.Model.Files[0]
	for _, f := range v.Model.Files {
		if f.Primary != nil && *f.Primary {
			file = f
		}
	}
	return file, true
}

// DependencyList returns the version's declared dependency descriptors.
func (v *Version) DependencyList() []Dependency {
	return v.Model.Dependencies
}

// Project fetches the project this version belongs to.
func (v *Version) Project() (*Project, error) {
	if v.Model.ProjectID == nil {
		return nil, &MissingFieldError{Model: "version", Field: "project_id"}
	}
	return v.client.GetProject(*v.Model.ProjectID)
}

// Author fetches the user who published this version.
func (v *Version) Author() (*User, error) {
	if v.Model.AuthorID == nil {
		return nil, &MissingFieldError{Model: "version", Field: "author_id"}
	}
	return v.client.GetUser(*v.Model.AuthorID)
}
