package core

import (
	"path/filepath"
	"testing"
)

func sampleFile(name string, filename string) ManifestFile {
	return ManifestFile{
		Name:     name,
		FileName: filename,
		Side:     UniversalSide,
		Download: FileDownload{
			URL:        "https://cdn.example.com/" + filename,
			HashFormat: "sha512",
			Hash:       "abc",
		},
	}
}

func TestManifestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rinth.toml")
	manifest := NewManifest("Test Pack", path)
	manifest.GameVersions = []string{"1.20.1"}
	manifest.Loaders = []string{"fabric"}
	manifest.AddFile(sampleFile("Sodium", "sodium.jar"))

	if err := manifest.Write(); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest failed: %v", err)
	}
	if loaded.Name != "Test Pack" || len(loaded.Files) != 1 {
		t.Fatalf("round trip lost data: %+v", loaded)
	}
	if loaded.Files[0].Download.HashFormat != "sha512" {
		t.Errorf("download metadata lost: %+v", loaded.Files[0])
	}
	if loaded.Path() != path {
		t.Errorf("expected path %s, got %s", path, loaded.Path())
	}
}

func TestAddFileReplacesByName(t *testing.T) {
	manifest := NewManifest("Test", "rinth.toml")
	manifest.AddFile(sampleFile("Sodium", "sodium-0.4.jar"))
	manifest.AddFile(sampleFile("sodium", "sodium-0.5.jar"))

	if len(manifest.Files) != 1 {
		t.Fatalf("expected replacement, got %d entries", len(manifest.Files))
	}
	if manifest.Files[0].FileName != "sodium-0.5.jar" {
		t.Errorf("expected newest entry kept, got %s", manifest.Files[0].FileName)
	}
}

func TestFindFileMatchesNameAndFilename(t *testing.T) {
	manifest := NewManifest("Test", "rinth.toml")
	manifest.AddFile(sampleFile("Sodium", "sodium.jar"))

	if _, ok := manifest.FindFile("SODIUM"); !ok {
		t.Error("lookup by name should be case-insensitive")
	}
	if _, ok := manifest.FindFile("sodium.jar"); !ok {
		t.Error("lookup by filename should work")
	}
	if _, ok := manifest.FindFile("lithium"); ok {
		t.Error("unexpected match")
	}
}

func TestRemoveFile(t *testing.T) {
	manifest := NewManifest("Test", "rinth.toml")
	manifest.AddFile(sampleFile("Sodium", "sodium.jar"))
	manifest.AddFile(sampleFile("Lithium", "lithium.jar"))

	if err := manifest.RemoveFile("sodium"); err != nil {
		t.Fatalf("RemoveFile failed: %v", err)
	}
	if len(manifest.Files) != 1 || manifest.Files[0].Name != "Lithium" {
		t.Errorf("unexpected files after removal: %+v", manifest.Files)
	}
	if err := manifest.RemoveFile("sodium"); err == nil {
		t.Error("removing a missing file should fail")
	}
}

type testUpdateParser struct{}

func (testUpdateParser) ParseUpdate(data map[string]interface{}) (interface{}, error) {
	return data["project-id"], nil
}

func TestGetParsedUpdateData(t *testing.T) {
	UpdateParsers["test"] = testUpdateParser{}
	defer delete(UpdateParsers, "test")

	file := sampleFile("Sodium", "sodium.jar")
	file.Update = map[string]map[string]interface{}{
		"test": {"project-id": "AANobbMI"},
	}

	parsed, ok := file.GetParsedUpdateData("test")
	if !ok || parsed.(string) != "AANobbMI" {
		t.Errorf("unexpected parsed data: %v, %v", parsed, ok)
	}
	if _, ok := file.GetParsedUpdateData("unknown"); ok {
		t.Error("unknown source should not parse")
	}
}
