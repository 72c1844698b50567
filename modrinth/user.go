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
	"time"
)

// User wraps a user model and exposes the API operations scoped to it. The
// follow, notification and creation operations act as this user and need the
// client's token to belong to them.
type User struct {
	Model  *UserModel
	client *Client
}

// ID returns the user's server-assigned ID.
func (u *User) ID() string {
	if u.Model.ID == nil {
		return ""
	}
	return *u.Model.ID
}

// Username returns the user's login name.
func (u *User) Username() string {
	if u.Model.Username == nil {
		return ""
	}
	return *u.Model.Username
}

// Name returns the user's display name, falling back to the username.
func (u *User) Name() string {
	if u.Model.Name == nil {
		return u.Username()
	}
	return *u.Model.Name
}

// Created returns the account creation time.
func (u *User) Created() time.Time {
	if u.Model.Created == nil {
		return time.Time{}
	}
	return *u.Model.Created
}

// Projects lists the projects the user is a member of.
func (u *User) Projects() ([]*Project, error) {
	body, err := u.client.makeGet("/user/"+url.PathEscape(u.Username())+"/projects", nil,
		"user "+u.Username(), "see user "+u.Username())
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse project list: %w", err)
	}
	projects := make([]*Project, 0, len(raw))
	for _, entry := range raw {
		model, err := ParseProjectModel(entry)
		if err != nil {
			return nil, err
		}
		projects = append(projects, &Project{Model: model, client: u.client})
	}
	return projects, nil
}

// FollowedProjects lists the projects the user follows. Requires a token for
// this user.
func (u *User) FollowedProjects() ([]*Project, error) {
	body, err := u.client.makeGet("/user/"+url.PathEscape(u.Username())+"/follows", nil,
		"user "+u.Username(), "see the projects "+u.Username()+" follows")
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse followed project list: %w", err)
	}
	projects := make([]*Project, 0, len(raw))
	for _, entry := range raw {
		model, err := ParseProjectModel(entry)
		if err != nil {
			return nil, err
		}
		projects = append(projects, &Project{Model: model, client: u.client})
	}
	return projects, nil
}

// Notifications lists the user's notifications. Requires a token for this user.
func (u *User) Notifications() ([]Notification, error) {
	body, err := u.client.makeGet("/user/"+url.PathEscape(u.Username())+"/notifications", nil,
		"user "+u.Username(), "see the notifications of "+u.Username())
	if err != nil {
		return nil, err
	}
	var notifications []Notification
	if err := json.Unmarshal(body, &notifications); err != nil {
		return nil, fmt.Errorf("failed to parse notification list: %w", err)
	}
	return notifications, nil
}

// FollowProject makes the user follow the given project. Following a project
// twice is reported by the API as 400 and surfaced as an InvalidParamError.
func (u *User) FollowProject(idOrSlug string) error {
	resp, err := u.client.makeRequest(http.MethodPost, "/project/"+url.PathEscape(idOrSlug)+"/follow", nil, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return &InvalidParamError{Message: "already following project " + idOrSlug}
	}
	return checkResponse(resp, "project "+idOrSlug, "follow project "+idOrSlug)
}

// UnfollowProject makes the user unfollow the given project. Unfollowing a
// project that is not followed is reported by the API as 400 and surfaced as
// an InvalidParamError.
func (u *User) UnfollowProject(idOrSlug string) error {
	resp, err := u.client.makeRequest(http.MethodDelete, "/project/"+url.PathEscape(idOrSlug)+"/follow", nil, "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusBadRequest {
		return &InvalidParamError{Message: "not following project " + idOrSlug}
	}
	return checkResponse(resp, "project "+idOrSlug, "unfollow project "+idOrSlug)
}

// CreateProject creates a draft project owned by the user. The model's
// metadata goes in the multipart "data" field in the creation endpoint's
// flattened license shape; iconPath optionally attaches an icon and may be
// empty.
func (u *User) CreateProject(model *ProjectModel, iconPath string) error {
	metadata, err := model.creationJSON()
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	dataPart, err := writer.CreateFormField("data")
	if err != nil {
		return err
	}
	if _, err := dataPart.Write(metadata); err != nil {
		return err
	}

	if iconPath != "" {
		name := filepath.Base(iconPath)
		iconPart, err := writer.CreateFormFile("icon", name)
		if err != nil {
			return err
		}
		f, err := os.Open(iconPath)
		if err != nil {
			return fmt.Errorf("failed to open icon %s: %w", iconPath, err)
		}
		_, err = io.Copy(iconPart, f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to read icon %s: %w", iconPath, err)
		}
	}
	if err := writer.Close(); err != nil {
		return err
	}

	resp, err := u.client.makeRequest(http.MethodPost, "/project", nil, writer.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return checkResponse(resp, "project", "create a project")
}
