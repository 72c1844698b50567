package modrinth

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
)

func testVersionJSON(id string, number string) string {
	return fmt.Sprintf(`{
		"id": %q, "project_id": "AANobbMI", "name": "Sodium %s", "version_number": %q,
		"version_type": "release", "game_versions": ["1.20.1"], "loaders": ["fabric"],
		"files": [{"hashes": {"sha1": "aa"}, "url": "https://cdn.modrinth.com/data/AANobbMI/versions/%s/sodium.jar",
			"filename": "sodium.jar", "primary": true, "size": 4}],
		"dependencies": []
	}`, id, number, number, id)
}

func testProject(client *Client) *Project {
	return &Project{Model: &ProjectModel{ID: String("AANobbMI"), Slug: String("sodium"), Title: String("Sodium")}, client: client}
}

func TestLatestAndOldestVersion(t *testing.T) {
	client := newTestClient(t)
	// Server ordering is newest first
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium/version",
		httpmock.NewStringResponder(200, "["+testVersionJSON("v2", "0.5.0")+","+testVersionJSON("v1", "0.4.0")+"]"))

	project := testProject(client)

	latest, err := project.LatestVersion(ListVersionsOptions{})
	if err != nil {
		t.Fatalf("LatestVersion failed: %v", err)
	}
	if latest.ID() != "v2" {
		t.Errorf("expected latest to be the first element (v2), got %s", latest.ID())
	}

	oldest, err := project.OldestVersion(ListVersionsOptions{})
	if err != nil {
		t.Fatalf("OldestVersion failed: %v", err)
	}
	if oldest.ID() != "v1" {
		t.Errorf("expected oldest to be the last element (v1), got %s", oldest.ID())
	}
}

func TestLatestVersionEmptyList(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium/version",
		httpmock.NewStringResponder(200, "[]"))

	project := testProject(client)

	_, err := project.LatestVersion(ListVersionsOptions{})
	var noVersions *NoVersionsError
	if !errors.As(err, &noVersions) {
		t.Fatalf("expected NoVersionsError, got %v", err)
	}

	_, err = project.OldestVersion(ListVersionsOptions{})
	if !errors.As(err, &noVersions) {
		t.Fatalf("expected NoVersionsError, got %v", err)
	}
}

func TestSpecificVersion(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium/version",
		httpmock.NewStringResponder(200, "["+testVersionJSON("v2", "0.5.0")+","+testVersionJSON("v1", "0.4.0")+"]"))

	project := testProject(client)

	version, err := project.SpecificVersion("0.4.0")
	if err != nil {
		t.Fatalf("SpecificVersion failed: %v", err)
	}
	if version.ID() != "v1" {
		t.Errorf("expected v1, got %s", version.ID())
	}

	_, err = project.SpecificVersion("9.9.9")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestVersionTypeFilter(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium/version",
		httpmock.NewStringResponder(200, `[
			{"id": "v3", "project_id": "AANobbMI", "name": "beta", "version_number": "0.6.0-beta",
			 "version_type": "beta", "game_versions": ["1.20.1"], "loaders": ["fabric"], "files": []},
			{"id": "v2", "project_id": "AANobbMI", "name": "release", "version_number": "0.5.0",
			 "version_type": "release", "game_versions": ["1.20.1"], "loaders": ["fabric"], "files": []}
		]`))

	project := testProject(client)
	versions, err := project.Versions(ListVersionsOptions{Types: []string{ChannelRelease}})
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if len(versions) != 1 || versions[0].ID() != "v2" {
		t.Errorf("expected only the release version, got %d versions", len(versions))
	}
	// One request regardless of the channel filter
	if httpmock.GetTotalCallCount() != 1 {
		t.Errorf("expected 1 request, got %d", httpmock.GetTotalCallCount())
	}
}

func TestGalleryAndDonations(t *testing.T) {
	project := &Project{Model: &ProjectModel{
		Gallery: []GalleryImage{{
			URL:   String("https://cdn.modrinth.com/data/AANobbMI/images/shot.png"),
			Title: String("In-game screenshot"),
		}},
		DonationURLs: []DonationURL{{
			Platform: String("Patreon"),
			URL:      String("https://patreon.com/example"),
		}},
	}}

	gallery := project.Gallery()
	if len(gallery) != 1 || *gallery[0].Title != "In-game screenshot" {
		t.Errorf("unexpected gallery: %+v", gallery)
	}
	donations := project.Donations()
	if len(donations) != 1 || *donations[0].Platform != "Patreon" {
		t.Errorf("unexpected donations: %+v", donations)
	}
}

func TestModifyRequiresAtLeastOneField(t *testing.T) {
	client := newTestClient(t)
	project := testProject(client)

	err := project.Modify(ModifyProjectOptions{})
	var invalid *InvalidParamError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParamError, got %v", err)
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Errorf("empty modification must be rejected before any request; %d requests made", httpmock.GetTotalCallCount())
	}
}

func TestModifyPatchesOnlySetFields(t *testing.T) {
	client := newTestClient(t)

	var gotBody string
	httpmock.RegisterResponder("PATCH", "https://api.modrinth.com/v2/project/sodium",
		func(req *http.Request) (*http.Response, error) {
			body, _ := io.ReadAll(req.Body)
			gotBody = string(body)
			return httpmock.NewStringResponse(204, ""), nil
		})

	project := testProject(client)
	err := project.Modify(ModifyProjectOptions{Title: String("Sodium Reloaded")})
	if err != nil {
		t.Fatalf("Modify failed: %v", err)
	}
	if gotBody != `{"title":"Sodium Reloaded"}` {
		t.Errorf("expected only the set field in the body, got %s", gotBody)
	}
}

func TestModifyGalleryImageRequiresChanges(t *testing.T) {
	client := newTestClient(t)
	project := testProject(client)

	err := project.ModifyGalleryImage("https://cdn.modrinth.com/x.png", ModifyGalleryImageOptions{})
	var invalid *InvalidParamError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParamError, got %v", err)
	}
}

func TestDeleteGalleryImageRejectsRawCDN(t *testing.T) {
	client := newTestClient(t)
	project := testProject(client)

	err := project.DeleteGalleryImage("https://cdn-raw.modrinth.com/x.png")
	var invalid *InvalidParamError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParamError, got %v", err)
	}
	if httpmock.GetTotalCallCount() != 0 {
		t.Errorf("raw CDN URLs must be rejected before any request; %d requests made", httpmock.GetTotalCallCount())
	}
}
