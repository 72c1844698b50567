package core

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadIgnoreMissingFile(t *testing.T) {
	ign, err := LoadIgnore(t.TempDir())
	if err != nil {
		t.Fatalf("missing ignore file should not error: %v", err)
	}
	if ign.MatchesPath("anything.jar") {
		t.Error("empty rule set should match nothing")
	}
}

func TestLoadIgnoreRules(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, IgnoreFileName), []byte("*.jar\n!keep.jar\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ign, err := LoadIgnore(dir)
	if err != nil {
		t.Fatalf("LoadIgnore failed: %v", err)
	}
	if !ign.MatchesPath("sodium.jar") {
		t.Error("expected *.jar to match")
	}
	if ign.MatchesPath("keep.jar") {
		t.Error("expected negated pattern to unmatch")
	}
	if ign.MatchesPath("readme.txt") {
		t.Error("unexpected match")
	}
}

func TestReencodeURL(t *testing.T) {
	got, err := ReencodeURL("https://cdn.example.com/mod [1.20].jar")
	if err != nil {
		t.Fatalf("ReencodeURL failed: %v", err)
	}
	want := "https://cdn.example.com/mod%20%5B1.20%5D.jar"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}
