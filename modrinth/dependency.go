package modrinth

import "fmt"

// Resolve produces the concrete version a dependency descriptor refers to.
// A version reference is fetched directly; a project reference resolves to
// that project's most recently published version. A project with no published
// versions is a resolution failure (NoVersionsError), never a silent skip.
func (d *Dependency) Resolve(client *Client) (*Version, error) {
	if d.VersionID != nil {
		return client.GetVersion(*d.VersionID)
	}
	if d.ProjectID == nil {
		return nil, &InvalidParamError{Message: "dependency carries neither a version nor a project reference"}
	}
	project, err := client.GetProject(*d.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve dependency on project %s: %w", *d.ProjectID, err)
	}
	return project.LatestVersion(ListVersionsOptions{})
}

// Project fetches the project the dependency belongs to, following the
// version reference when the project is not named directly.
func (d *Dependency) Project(client *Client) (*Project, error) {
	if d.ProjectID != nil {
		return client.GetProject(*d.ProjectID)
	}
	if d.VersionID == nil {
		return nil, &InvalidParamError{Message: "dependency carries neither a version nor a project reference"}
	}
	version, err := client.GetVersion(*d.VersionID)
	if err != nil {
		return nil, err
	}
	return version.Project()
}
