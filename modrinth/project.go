package modrinth

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// Project wraps a project model and exposes the API operations scoped to it.
type Project struct {
	Model  *ProjectModel
	client *Client
}

// ID returns the project's server-assigned ID.
func (p *Project) ID() string {
	if p.Model.ID == nil {
		return ""
	}
	return *p.Model.ID
}

// Slug returns the project's slug.
func (p *Project) Slug() string {
	if p.Model.Slug == nil {
		return ""
	}
	return *p.Model.Slug
}

// Title returns the project's title.
func (p *Project) Title() string {
	if p.Model.Title == nil {
		return ""
	}
	return *p.Model.Title
}

// IsClientSide reports whether the project is required on the client.
func (p *Project) IsClientSide() bool {
	return p.Model.ClientSide != nil && *p.Model.ClientSide == SupportRequired
}

// IsServerSide reports whether the project is required on the server.
func (p *Project) IsServerSide() bool {
	return p.Model.ServerSide != nil && *p.Model.ServerSide == SupportRequired
}

// AllCategories returns the primary and additional categories together.
func (p *Project) AllCategories() []string {
	return append(slices.Clone(p.Model.Categories), p.Model.AdditionalCategories...)
}

// Gallery returns the project's gallery images.
func (p *Project) Gallery() []GalleryImage {
	return p.Model.Gallery
}

// Donations returns the project's donation links.
func (p *Project) Donations() []DonationURL {
	return p.Model.DonationURLs
}

// ListVersionsOptions filters the version listing. Nil/unset fields are not
// sent. Types is applied client-side; the API has no channel filter.
type ListVersionsOptions struct {
	Loaders      []string
	GameVersions []string
	Featured     *bool
	Types        []string
}

// Versions lists the project's versions, newest first (the server ordering).
func (p *Project) Versions(opts ListVersionsOptions) ([]*Version, error) {
	query := url.Values{}
	listParam(query, "loaders", opts.Loaders)
	listParam(query, "game_versions", opts.GameVersions)
	if opts.Featured != nil {
		query.Set("featured", strconv.FormatBool(*opts.Featured))
	}

	body, err := p.client.makeGet("/project/"+url.PathEscape(p.Slug())+"/version", query,
		"project "+p.Slug(), "see project "+p.Slug())
	if err != nil {
		return nil, err
	}

	versions, err := parseVersionList(body, p.client)
	if err != nil {
		return nil, err
	}
	if opts.Types == nil {
		return versions, nil
	}
	filtered := versions[:0]
	for _, v := range versions {
		if v.Model.VersionType != nil && slices.Contains(opts.Types, *v.Model.VersionType) {
			filtered = append(filtered, v)
		}
	}
	return filtered, nil
}

// LatestVersion returns the most recently published version matching the
// filters: the first element of the server-ordered list.
func (p *Project) LatestVersion(opts ListVersionsOptions) (*Version, error) {
	versions, err := p.Versions(opts)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &NoVersionsError{Project: p.Slug()}
	}
	return versions[0], nil
}

// OldestVersion returns the earliest published version matching the filters:
// the last element of the server-ordered list.
func (p *Project) OldestVersion(opts ListVersionsOptions) (*Version, error) {
	versions, err := p.Versions(opts)
	if err != nil {
		return nil, err
	}
	if len(versions) == 0 {
		return nil, &NoVersionsError{Project: p.Slug()}
	}
	return versions[len(versions)-1], nil
}

// SpecificVersion finds the version with the given version number.
func (p *Project) SpecificVersion(versionNumber string) (*Version, error) {
	versions, err := p.Versions(ListVersionsOptions{})
	if err != nil {
		return nil, err
	}
	for _, v := range versions {
		if v.Model.VersionNumber != nil && *v.Model.VersionNumber == versionNumber {
			return v, nil
		}
	}
	return nil, &NotFoundError{Resource: "version " + versionNumber + " of project " + p.Slug()}
}

// ModifyProjectOptions names every field a project modification may change.
// Unset entries mean "no change" and are left out of the request body.
type ModifyProjectOptions struct {
	Slug                  *string  `json:"slug,omitempty"`
	Title                 *string  `json:"title,omitempty"`
	Description           *string  `json:"description,omitempty"`
	Categories            []string `json:"categories,omitempty"`
	ClientSide            *string  `json:"client_side,omitempty"`
	ServerSide            *string  `json:"server_side,omitempty"`
	Body                  *string  `json:"body,omitempty"`
	AdditionalCategories  []string `json:"additional_categories,omitempty"`
	IssuesURL             *string  `json:"issues_url,omitempty"`
	SourceURL             *string  `json:"source_url,omitempty"`
	WikiURL               *string  `json:"wiki_url,omitempty"`
	DiscordURL            *string  `json:"discord_url,omitempty"`
	LicenseID             *string  `json:"license_id,omitempty"`
	LicenseURL            *string  `json:"license_url,omitempty"`
	Status                *string  `json:"status,omitempty"`
	RequestedStatus       *string  `json:"requested_status,omitempty"`
	ModerationMessage     *string  `json:"moderation_message,omitempty"`
	ModerationMessageBody *string  `json:"moderation_message_body,omitempty"`
}

func (o *ModifyProjectOptions) isEmpty() bool {
	return o.Slug == nil && o.Title == nil && o.Description == nil && o.Categories == nil &&
		o.ClientSide == nil && o.ServerSide == nil && o.Body == nil && o.AdditionalCategories == nil &&
		o.IssuesURL == nil && o.SourceURL == nil && o.WikiURL == nil && o.DiscordURL == nil &&
		o.LicenseID == nil && o.LicenseURL == nil && o.Status == nil && o.RequestedStatus == nil &&
		o.ModerationMessage == nil && o.ModerationMessageBody == nil
}

// Modify patches the project with the set fields. At least one field must be
// set; an empty modification is rejected before any request is made.
func (p *Project) Modify(opts ModifyProjectOptions) error {
	if opts.isEmpty() {
		return &InvalidParamError{Message: "modify requires at least one field to change"}
	}
	body, err := json.Marshal(opts)
	if err != nil {
		return err
	}

	resp, err := p.client.makeRequest(http.MethodPatch, "/project/"+url.PathEscape(p.Slug()), nil,
		"application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp, "project "+p.Slug(), "edit project "+p.Slug())
}

// Delete removes the project.
func (p *Project) Delete() error {
	resp, err := p.client.makeRequest(http.MethodDelete, "/project/"+url.PathEscape(p.Slug()), nil, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	// This endpoint reports a missing project as 400, not 404.
	if resp.StatusCode == http.StatusBadRequest {
		return &NotFoundError{Resource: "project " + p.Slug()}
	}
	return checkResponse(resp, "project "+p.Slug(), "delete project "+p.Slug())
}

// CreateVersion publishes a new version of this project. The version metadata
// goes in the multipart "data" field; each artifact is attached as a part
// keyed by its base filename.
func (p *Project) CreateVersion(model *VersionModel, filePaths []string) error {
	model.ProjectID = p.Model.ID

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	metadata, err := model.ToBytes()
	if err != nil {
		return err
	}
	dataPart, err := writer.CreateFormField("data")
	if err != nil {
		return err
	}
	if _, err := dataPart.Write(metadata); err != nil {
		return err
	}

	for _, path := range filePaths {
		name := filepath.Base(path)
		filePart, err := writer.CreateFormFile(name, name)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open version file %s: %w", path, err)
		}
		_, err = io.Copy(filePart, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to read version file %s: %w", path, err)
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := p.client.makeRequest(http.MethodPost, "/version", nil, writer.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp, "project "+p.Slug(), "create a version of project "+p.Slug())
}

// ChangeIcon replaces the project icon with the image at the given path.
func (p *Project) ChangeIcon(filePath string) error {
	ext := strings.TrimPrefix(filepath.Ext(filePath), ".")
	f, err := os.Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open icon %s: %w", filePath, err)
	}
	defer f.Close()

	query := url.Values{}
	query.Set("ext", ext)
	resp, err := p.client.makeRequest(http.MethodPatch, "/project/"+url.PathEscape(p.Slug())+"/icon",
		query, "", f)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return &InvalidParamError{Message: "invalid input for new icon"}
	}
	return checkResponse(resp, "project "+p.Slug(), "edit project "+p.Slug())
}

// DeleteIcon removes the project icon.
func (p *Project) DeleteIcon() error {
	resp, err := p.client.makeRequest(http.MethodDelete, "/project/"+url.PathEscape(p.Slug())+"/icon", nil, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return &InvalidParamError{Message: "invalid input"}
	}
	return checkResponse(resp, "project "+p.Slug(), "edit project "+p.Slug())
}

// GalleryImageUpload describes a new gallery image; the metadata travels as
// query parameters and the image itself as the raw request body.
type GalleryImageUpload struct {
	FilePath    string
	Featured    bool
	Title       string
	Description string
	Ordering    int64
}

// AddGalleryImage uploads an image to the project gallery.
func (p *Project) AddGalleryImage(img GalleryImageUpload) error {
	f, err := os.Open(img.FilePath)
	if err != nil {
		return fmt.Errorf("failed to open gallery image %s: %w", img.FilePath, err)
	}
	defer f.Close()

	query := url.Values{}
	query.Set("ext", strings.TrimPrefix(filepath.Ext(img.FilePath), "."))
	query.Set("featured", strconv.FormatBool(img.Featured))
	if img.Title != "" {
		query.Set("title", img.Title)
	}
	if img.Description != "" {
		query.Set("description", img.Description)
	}
	query.Set("ordering", strconv.FormatInt(img.Ordering, 10))

	resp, err := p.client.makeRequest(http.MethodPost, "/project/"+url.PathEscape(p.Slug())+"/gallery",
		query, "", f)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp, "project "+p.Slug(), "create a gallery image")
}

// ModifyGalleryImageOptions names the gallery image fields a modification may
// change; unset entries mean "no change".
type ModifyGalleryImageOptions struct {
	Featured    *bool
	Title       *string
	Description *string
	Ordering    *int64
}

// ModifyGalleryImage edits the metadata of the gallery image with the given
// URL. At least one field must be set.
func (p *Project) ModifyGalleryImage(imageURL string, opts ModifyGalleryImageOptions) error {
	if opts.Featured == nil && opts.Title == nil && opts.Description == nil && opts.Ordering == nil {
		return &InvalidParamError{Message: "modify requires at least one field to change"}
	}

	query := url.Values{}
	query.Set("url", imageURL)
	if opts.Featured != nil {
		query.Set("featured", strconv.FormatBool(*opts.Featured))
	}
	if opts.Title != nil {
		query.Set("title", *opts.Title)
	}
	if opts.Description != nil {
		query.Set("description", *opts.Description)
	}
	if opts.Ordering != nil {
		query.Set("ordering", strconv.FormatInt(*opts.Ordering, 10))
	}

	resp, err := p.client.makeRequest(http.MethodPatch, "/project/"+url.PathEscape(p.Slug())+"/gallery",
		query, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp, "project "+p.Slug(), "edit this gallery image")
}

// DeleteGalleryImage removes the gallery image with the given URL, which must
// be a cdn.modrinth.com URL (the raw CDN host is rejected by the API).
func (p *Project) DeleteGalleryImage(imageURL string) error {
	if strings.Contains(imageURL, "cdn-raw.modrinth.com") {
		return &InvalidParamError{Message: "use cdn.modrinth.com instead of cdn-raw.modrinth.com"}
	}

	query := url.Values{}
	query.Set("url", imageURL)
	resp, err := p.client.makeRequest(http.MethodDelete, "/project/"+url.PathEscape(p.Slug())+"/gallery",
		query, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return &InvalidParamError{Message: "invalid URL or project specified"}
	}
	return checkResponse(resp, "project "+p.Slug(), "delete this gallery image")
}

// Dependencies lists the projects this project depends on, across all its
// versions.
func (p *Project) Dependencies() ([]*Project, error) {
	body, err := p.client.makeGet("/project/"+url.PathEscape(p.Slug())+"/dependencies", nil,
		"project "+p.Slug(), "see project "+p.Slug())
	if err != nil {
		return nil, err
	}

	var response struct {
		Projects []json.RawMessage `json:"projects"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, fmt.Errorf("failed to parse dependency list: %w", err)
	}
	projects := make([]*Project, 0, len(response.Projects))
	for _, entry := range response.Projects {
		model, err := ParseProjectModel(entry)
		if err != nil {
			return nil, err
		}
		projects = append(projects, &Project{Model: model, client: p.client})
	}
	return projects, nil
}

// Members lists the project's team members.
func (p *Project) Members() ([]TeamMember, error) {
	body, err := p.client.makeGet("/project/"+url.PathEscape(p.Slug())+"/members", nil,
		"project "+p.Slug(), "see project "+p.Slug())
	if err != nil {
		return nil, err
	}
	var members []TeamMember
	if err := json.Unmarshal(body, &members); err != nil {
		return nil, fmt.Errorf("failed to parse member list: %w", err)
	}
	return members, nil
}

// Download fetches the project's latest matching version and writes its files
// per opts; see Version.Download.
func (p *Project) Download(opts DownloadOptions) error {
	latest, err := p.LatestVersion(ListVersionsOptions{
		Loaders:      opts.Loaders,
		GameVersions: opts.GameVersions,
	})
	if err != nil {
		return err
	}
	return latest.Download(opts)
}
