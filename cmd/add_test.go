package cmd

import "testing"

func parse(t *testing.T, input string) (slug, version, versionID, filename string, parsedSlug bool) {
	parsedSlug, err := parseSlugOrUrl(input, &slug, &version, &versionID, &filename)
	if err != nil {
		t.Fatalf("parse of %q failed: %v", input, err)
	}
	return
}

func TestParseBareSlug(t *testing.T) {
	slug, _, _, _, parsedSlug := parse(t, "sodium")
	if slug != "sodium" || !parsedSlug {
		t.Errorf("expected bare slug, got slug=%q parsedSlug=%v", slug, parsedSlug)
	}
}

func TestParseProjectURL(t *testing.T) {
	slug, version, _, _, parsedSlug := parse(t, "https://modrinth.com/mod/sodium")
	if slug != "sodium" || version != "" || parsedSlug {
		t.Errorf("unexpected parse: slug=%q version=%q parsedSlug=%v", slug, version, parsedSlug)
	}
}

func TestParseVersionURL(t *testing.T) {
	slug, version, _, _, _ := parse(t, "https://modrinth.com/mod/sodium/version/mc1.20.1-0.5.0")
	if slug != "sodium" || version != "mc1.20.1-0.5.0" {
		t.Errorf("unexpected parse: slug=%q version=%q", slug, version)
	}
}

func TestParseCDNURL(t *testing.T) {
	slug, _, versionID, filename, _ := parse(t, "https://cdn.modrinth.com/data/AANobbMI/versions/mc1/sodium%20fabric.jar")
	if slug != "AANobbMI" || versionID != "mc1" {
		t.Errorf("unexpected parse: slug=%q versionID=%q", slug, versionID)
	}
	if filename != "sodium fabric.jar" {
		t.Errorf("expected unescaped filename, got %q", filename)
	}
}

func TestParseUnknownCategory(t *testing.T) {
	var slug, version, versionID, filename string
	_, err := parseSlugOrUrl("https://modrinth.com/user/jane", &slug, &version, &versionID, &filename)
	if err == nil {
		t.Error("expected an error for a non-project URL category")
	}
}
