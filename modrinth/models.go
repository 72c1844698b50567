package modrinth

import (
	"encoding/json"
	"fmt"
	"time"
)

// Support levels for client_side/server_side.
const (
	SupportRequired    = "required"
	SupportOptional    = "optional"
	SupportUnsupported = "unsupported"
)

// Release channels for versions.
const (
	ChannelRelease = "release"
	ChannelBeta    = "beta"
	ChannelAlpha   = "alpha"
)

// Dependency options.
const (
	DependencyRequired     = "required"
	DependencyOptional     = "optional"
	DependencyIncompatible = "incompatible"
	DependencyEmbedded     = "embedded"
)

// ProjectModel is the JSON shape of a project. Optional fields are pointers so
// that unset values are dropped on serialization rather than sent as null; the
// API misinterprets explicit nulls for optional fields.
type ProjectModel struct {
	Slug                 *string        `json:"slug,omitempty"`
	Title                *string        `json:"title,omitempty"`
	Description          *string        `json:"description,omitempty"`
	Categories           []string       `json:"categories,omitempty"`
	ClientSide           *string        `json:"client_side,omitempty"`
	ServerSide           *string        `json:"server_side,omitempty"`
	Body                 *string        `json:"body,omitempty"`
	ProjectType          *string        `json:"project_type,omitempty"`
	License              *License       `json:"license,omitempty"`
	AdditionalCategories []string       `json:"additional_categories,omitempty"`
	IssuesURL            *string        `json:"issues_url,omitempty"`
	SourceURL            *string        `json:"source_url,omitempty"`
	WikiURL              *string        `json:"wiki_url,omitempty"`
	DiscordURL           *string        `json:"discord_url,omitempty"`
	DonationURLs         []DonationURL  `json:"donation_urls,omitempty"`
	IconURL              *string        `json:"icon_url,omitempty"`
	Gallery              []GalleryImage `json:"gallery,omitempty"`
	Versions             []string       `json:"versions,omitempty"`

	// Server-assigned; nil until the model is materialized from a response.
	ID        *string `json:"id,omitempty"`
	Team      *string `json:"team,omitempty"`
	Downloads *uint32 `json:"downloads,omitempty"`
	Followers *uint32 `json:"followers,omitempty"`
}

// ParseProjectModel deserializes an API project response, checking that the
// fields every project must carry are present.
func ParseProjectModel(data []byte) (*ProjectModel, error) {
	var m ProjectModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse project: %w", err)
	}
	present := []fieldCheck{
		{"id", m.ID != nil},
		{"slug", m.Slug != nil},
		{"title", m.Title != nil},
		{"description", m.Description != nil},
		{"body", m.Body != nil},
		{"project_type", m.ProjectType != nil},
		{"client_side", m.ClientSide != nil},
		{"server_side", m.ServerSide != nil},
		{"categories", m.Categories != nil},
	}
	if err := checkRequired("project", present); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToBytes serializes the model, with unset fields omitted.
func (m *ProjectModel) ToBytes() ([]byte, error) {
	return json.Marshal(m)
}

// creationJSON is the body shape of the project creation endpoint, which takes
// the license as flat id/url fields and a couple of bootstrap markers.
func (m *ProjectModel) creationJSON() ([]byte, error) {
	body := map[string]interface{}{
		"is_draft":         true,
		"initial_versions": []interface{}{},
	}
	base, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(base, &body); err != nil {
		return nil, err
	}
	delete(body, "license")
	if m.License != nil {
		if m.License.ID != nil {
			body["license_id"] = *m.License.ID
		}
		if m.License.URL != nil {
			body["license_url"] = *m.License.URL
		}
	}
	return json.Marshal(body)
}

// VersionModel is the JSON shape of a project version.
type VersionModel struct {
	Name            *string      `json:"name,omitempty"`
	VersionNumber   *string      `json:"version_number,omitempty"`
	Changelog       *string      `json:"changelog,omitempty"`
	Dependencies    []Dependency `json:"dependencies,omitempty"`
	GameVersions    []string     `json:"game_versions,omitempty"`
	VersionType     *string      `json:"version_type,omitempty"`
	Loaders         []string     `json:"loaders,omitempty"`
	Featured        *bool        `json:"featured,omitempty"`
	Status          *string      `json:"status,omitempty"`
	RequestedStatus *string      `json:"requested_status,omitempty"`
	Files           []File       `json:"files,omitempty"`

	// Server-assigned; nil until the model is materialized from a response.
	ID            *string    `json:"id,omitempty"`
	ProjectID     *string    `json:"project_id,omitempty"`
	AuthorID      *string    `json:"author_id,omitempty"`
	DatePublished *time.Time `json:"date_published,omitempty"`
	Downloads     *uint32    `json:"downloads,omitempty"`
}

// ParseVersionModel deserializes an API version response.
func ParseVersionModel(data []byte) (*VersionModel, error) {
	var m VersionModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse version: %w", err)
	}
	present := []fieldCheck{
		{"id", m.ID != nil},
		{"project_id", m.ProjectID != nil},
		{"name", m.Name != nil},
		{"version_number", m.VersionNumber != nil},
		{"version_type", m.VersionType != nil},
		{"game_versions", m.GameVersions != nil},
		{"loaders", m.Loaders != nil},
		{"files", m.Files != nil},
	}
	if err := checkRequired("version", present); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToBytes serializes the model, with unset fields omitted.
func (m *VersionModel) ToBytes() ([]byte, error) {
	return json.Marshal(m)
}

// UserModel is the JSON shape of a user. Email and payout data are only
// returned for the user the token belongs to.
type UserModel struct {
	Username   *string                `json:"username,omitempty"`
	ID         *string                `json:"id,omitempty"`
	AvatarURL  *string                `json:"avatar_url,omitempty"`
	Created    *time.Time             `json:"created,omitempty"`
	Role       *string                `json:"role,omitempty"`
	Name       *string                `json:"name,omitempty"`
	Email      *string                `json:"email,omitempty"`
	Bio        *string                `json:"bio,omitempty"`
	PayoutData map[string]interface{} `json:"payout_data,omitempty"`
	GitHubID   *int64                 `json:"github_id,omitempty"`
	Badges     *int64                 `json:"badges,omitempty"`
}

// ParseUserModel deserializes an API user response.
func ParseUserModel(data []byte) (*UserModel, error) {
	var m UserModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse user: %w", err)
	}
	present := []fieldCheck{
		{"id", m.ID != nil},
		{"username", m.Username != nil},
		{"created", m.Created != nil},
		{"role", m.Role != nil},
	}
	if err := checkRequired("user", present); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToBytes serializes the model, with unset fields omitted.
func (m *UserModel) ToBytes() ([]byte, error) {
	return json.Marshal(m)
}

// SearchResultModel is a single hit from the search endpoint. The shape
// overlaps ProjectModel but flattens the license and renames id.
type SearchResultModel struct {
	Slug              *string    `json:"slug,omitempty"`
	Title             *string    `json:"title,omitempty"`
	Description       *string    `json:"description,omitempty"`
	ClientSide        *string    `json:"client_side,omitempty"`
	ServerSide        *string    `json:"server_side,omitempty"`
	ProjectType       *string    `json:"project_type,omitempty"`
	Downloads         *uint32    `json:"downloads,omitempty"`
	ProjectID         *string    `json:"project_id,omitempty"`
	Author            *string    `json:"author,omitempty"`
	Versions          []string   `json:"versions,omitempty"`
	Follows           *uint32    `json:"follows,omitempty"`
	DateCreated       *time.Time `json:"date_created,omitempty"`
	DateModified      *time.Time `json:"date_modified,omitempty"`
	License           *string    `json:"license,omitempty"`
	Categories        []string   `json:"categories,omitempty"`
	DisplayCategories []string   `json:"display_categories,omitempty"`
	IconURL           *string    `json:"icon_url,omitempty"`
	Color             *int64     `json:"color,omitempty"`
	LatestVersion     *string    `json:"latest_version,omitempty"`
	Gallery           []string   `json:"gallery,omitempty"`
	FeaturedGallery   *string    `json:"featured_gallery,omitempty"`
}

// ParseSearchResultModel deserializes a single search hit.
func ParseSearchResultModel(data []byte) (*SearchResultModel, error) {
	var m SearchResultModel
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse search result: %w", err)
	}
	present := []fieldCheck{
		{"project_id", m.ProjectID != nil},
		{"slug", m.Slug != nil},
		{"title", m.Title != nil},
		{"project_type", m.ProjectType != nil},
	}
	if err := checkRequired("search result", present); err != nil {
		return nil, err
	}
	return &m, nil
}

// ToBytes serializes the model, with unset fields omitted.
func (m *SearchResultModel) ToBytes() ([]byte, error) {
	return json.Marshal(m)
}

// File is a downloadable artifact attached to a version. A version may carry
// several files; at most the primary one is the canonical artifact.
type File struct {
	Hashes   map[string]string `json:"hashes,omitempty"`
	URL      *string           `json:"url,omitempty"`
	Filename *string           `json:"filename,omitempty"`
	Primary  *bool             `json:"primary,omitempty"`
	Size     *int64            `json:"size,omitempty"`
	FileType *string           `json:"file_type,omitempty"`
}

// IsResourcePack reports whether the file is tagged as a resource pack (the
// only file_type the API currently emits).
func (f *File) IsResourcePack() bool {
	return f.FileType != nil
}

// Dependency is a reference to either a specific version (VersionID set) or a
// project (ProjectID set, meaning "that project's latest version") - never
// both. Use NewVersionDependency/NewProjectDependency to keep the two
// reference kinds mutually exclusive.
type Dependency struct {
	VersionID      *string `json:"version_id,omitempty"`
	ProjectID      *string `json:"project_id,omitempty"`
	FileName       *string `json:"file_name,omitempty"`
	DependencyType *string `json:"dependency_type,omitempty"`
}

// NewVersionDependency builds a dependency pinned to a specific version.
func NewVersionDependency(versionID string, dependencyType string) Dependency {
	return Dependency{VersionID: &versionID, DependencyType: &dependencyType}
}

// NewProjectDependency builds a dependency on a project's latest version.
func NewProjectDependency(projectID string, dependencyType string) Dependency {
	return Dependency{ProjectID: &projectID, DependencyType: &dependencyType}
}

// IsRequired reports whether the dependency must be satisfied.
func (d *Dependency) IsRequired() bool {
	return d.DependencyType != nil && *d.DependencyType == DependencyRequired
}

// IsOptional reports whether the dependency is optional.
func (d *Dependency) IsOptional() bool {
	return d.DependencyType != nil && *d.DependencyType == DependencyOptional
}

// IsIncompatible reports whether the dependency marks an incompatibility.
func (d *Dependency) IsIncompatible() bool {
	return d.DependencyType != nil && *d.DependencyType == DependencyIncompatible
}

// License identifies a project's license.
type License struct {
	ID   *string `json:"id,omitempty"`
	Name *string `json:"name,omitempty"`
	URL  *string `json:"url,omitempty"`
}

// DonationURL is a single donation link of a project.
type DonationURL struct {
	ID       *string `json:"id,omitempty"`
	Platform *string `json:"platform,omitempty"`
	URL      *string `json:"url,omitempty"`
}

// GalleryImage is an image in a project's gallery.
type GalleryImage struct {
	URL         *string    `json:"url,omitempty"`
	Featured    *bool      `json:"featured,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Ordering    *int64     `json:"ordering,omitempty"`
	Created     *time.Time `json:"created,omitempty"`
}

// Notification is a user notification.
type Notification struct {
	ID      *string                  `json:"id,omitempty"`
	UserID  *string                  `json:"user_id,omitempty"`
	Type    *string                  `json:"type,omitempty"`
	Title   *string                  `json:"title,omitempty"`
	Text    *string                  `json:"text,omitempty"`
	Link    *string                  `json:"link,omitempty"`
	Read    *bool                    `json:"read,omitempty"`
	Created *time.Time               `json:"created,omitempty"`
	Actions []map[string]interface{} `json:"actions,omitempty"`
}

// TeamMember is a member of a project's team.
type TeamMember struct {
	TeamID      *string    `json:"team_id,omitempty"`
	User        *UserModel `json:"user,omitempty"`
	Role        *string    `json:"role,omitempty"`
	Permissions *int64     `json:"permissions,omitempty"`
	Accepted    *bool      `json:"accepted,omitempty"`
}

type fieldCheck struct {
	name    string
	present bool
}

func checkRequired(model string, checks []fieldCheck) error {
	for _, c := range checks {
		if !c.present {
			return &MissingFieldError{Model: model, Field: c.name}
		}
	}
	return nil
}

// String returns a pointer to v, for filling optional model fields.
func String(v string) *string { return &v }

// Bool returns a pointer to v, for filling optional model fields.
func Bool(v bool) *bool { return &v }

// Int64 returns a pointer to v, for filling optional model fields.
func Int64(v int64) *int64 { return &v }
