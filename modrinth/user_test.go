package modrinth

import (
	"errors"
	"testing"

	"github.com/jarcoal/httpmock"
)

func testUser(client *Client) *User {
	return &User{Model: &UserModel{ID: String("u1"), Username: String("jane")}, client: client}
}

func TestFollowProjectAlreadyFollowing(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", "https://api.modrinth.com/v2/project/sodium/follow",
		httpmock.NewStringResponder(400, ""))

	err := testUser(client).FollowProject("sodium")
	var invalid *InvalidParamError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParamError for double-follow, got %v", err)
	}
}

func TestUnfollowProjectNotFollowing(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("DELETE", "https://api.modrinth.com/v2/project/sodium/follow",
		httpmock.NewStringResponder(400, ""))

	err := testUser(client).UnfollowProject("sodium")
	var invalid *InvalidParamError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidParamError for unfollowing an unfollowed project, got %v", err)
	}
}

func TestFollowProjectRequiresAuth(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("POST", "https://api.modrinth.com/v2/project/sodium/follow",
		httpmock.NewStringResponder(401, ""))

	err := testUser(client).FollowProject("sodium")
	var noAuth *NoAuthorizationError
	if !errors.As(err, &noAuth) {
		t.Fatalf("expected NoAuthorizationError, got %v", err)
	}
}

func TestUserProjects(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/user/jane/projects",
		httpmock.NewStringResponder(200, "["+testProjectJSON+"]"))

	projects, err := testUser(client).Projects()
	if err != nil {
		t.Fatalf("Projects failed: %v", err)
	}
	if len(projects) != 1 || projects[0].Slug() != "sodium" {
		t.Errorf("unexpected project list: %v", projects)
	}
}

func TestUserNotifications(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/user/jane/notifications",
		httpmock.NewStringResponder(200, `[{"id": "n1", "user_id": "u1", "type": "project_update",
			"title": "Sodium updated", "read": false}]`))

	notifications, err := testUser(client).Notifications()
	if err != nil {
		t.Fatalf("Notifications failed: %v", err)
	}
	if len(notifications) != 1 || *notifications[0].Title != "Sodium updated" {
		t.Errorf("unexpected notifications: %v", notifications)
	}
}

func TestSearchProjects(t *testing.T) {
	client := newTestClient(t)
	httpmock.RegisterResponder("GET", "https://api.modrinth.com/v2/search",
		httpmock.NewStringResponder(200, `{
			"hits": [{"project_id": "AANobbMI", "slug": "sodium", "title": "Sodium", "project_type": "mod"}],
			"offset": 0, "limit": 10, "total_hits": 1
		}`))

	result, err := client.SearchProjects(SearchOptions{Query: "sodium"})
	if err != nil {
		t.Fatalf("SearchProjects failed: %v", err)
	}
	if result.TotalHits != 1 || len(result.Hits) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if *result.Hits[0].Slug != "sodium" {
		t.Errorf("unexpected hit: %+v", result.Hits[0])
	}
}
