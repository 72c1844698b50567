package modrinth

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
)

const testProjectJSON = `{
	"id": "AANobbMI", "slug": "sodium", "title": "Sodium",
	"description": "A rendering engine", "body": "long body",
	"project_type": "mod", "client_side": "required", "server_side": "unsupported",
	"categories": ["optimization"], "downloads": 100
}`

func newTestClient(t *testing.T) *Client {
	httpClient := &http.Client{}
	httpmock.ActivateNonDefault(httpClient)
	t.Cleanup(httpmock.DeactivateAndReset)
	return NewClient(httpClient)
}

func TestGetProject(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium",
		httpmock.NewStringResponder(200, testProjectJSON))

	project, err := client.GetProject("sodium")
	if err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if project.Title() != "Sodium" {
		t.Errorf("expected title Sodium, got %s", project.Title())
	}
	if !project.IsClientSide() || project.IsServerSide() {
		t.Error("expected a client-only project")
	}
}

func TestGetProjectNotFound(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/nope",
		httpmock.NewStringResponder(404, ""))

	_, err := client.GetProject("nope")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestGetCurrentUserUnauthorized(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/user",
		httpmock.NewStringResponder(401, ""))

	_, err := client.GetCurrentUser()
	var noAuth *NoAuthorizationError
	if !errors.As(err, &noAuth) {
		t.Fatalf("expected NoAuthorizationError, got %v", err)
	}
}

func TestUnexpectedStatusKeepsBody(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium",
		httpmock.NewStringResponder(500, "server exploded"))

	_, err := client.GetProject("sodium")
	var invalid *InvalidRequestError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidRequestError, got %v", err)
	}
	if invalid.StatusCode != 500 || invalid.Body != "server exploded" {
		t.Errorf("expected status and body preserved, got %+v", invalid)
	}
}

func TestAuthorizationHeaderSent(t *testing.T) {
	client := newTestClient(t)
	client.Token = "mrp_token"

	var gotAuth, gotUA string
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium",
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			gotUA = req.Header.Get("User-Agent")
			return httpmock.NewStringResponse(200, testProjectJSON), nil
		})

	if _, err := client.GetProject("sodium"); err != nil {
		t.Fatalf("GetProject failed: %v", err)
	}
	if gotAuth != "mrp_token" {
		t.Errorf("expected token sent as Authorization header, got %q", gotAuth)
	}
	if gotUA != DefaultUserAgent {
		t.Errorf("expected User-Agent %q, got %q", DefaultUserAgent, gotUA)
	}
}

func TestListQueryParamsJSONEncoded(t *testing.T) {
	client := newTestClient(t)

	var gotLoaders, gotGameVersions, gotFeatured string
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium/version",
		func(req *http.Request) (*http.Response, error) {
			gotLoaders = req.URL.Query().Get("loaders")
			gotGameVersions = req.URL.Query().Get("game_versions")
			gotFeatured = req.URL.Query().Get("featured")
			return httpmock.NewStringResponse(200, "[]"), nil
		})

	project := &Project{Model: &ProjectModel{Slug: String("sodium")}, client: client}
	featured := true
	_, err := project.Versions(ListVersionsOptions{
		Loaders:      []string{"fabric", "quilt"},
		GameVersions: []string{"1.20.1"},
		Featured:     &featured,
	})
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}

	if gotLoaders != `["fabric","quilt"]` {
		t.Errorf("expected JSON-encoded loaders param, got %q", gotLoaders)
	}
	if gotGameVersions != `["1.20.1"]` {
		t.Errorf("expected JSON-encoded game_versions param, got %q", gotGameVersions)
	}
	if gotFeatured != "true" {
		t.Errorf("expected featured=true, got %q", gotFeatured)
	}
}

func TestProjectExists(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/sodium/check",
		httpmock.NewStringResponder(200, `{"id": "AANobbMI"}`))
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/project/nope/check",
		httpmock.NewStringResponder(404, ""))

	exists, err := client.ProjectExists("sodium")
	if err != nil || !exists {
		t.Errorf("expected sodium to exist, got %v, %v", exists, err)
	}
	exists, err = client.ProjectExists("nope")
	if err != nil || exists {
		t.Errorf("expected nope to not exist without error, got %v, %v", exists, err)
	}
}
