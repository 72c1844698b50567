package core

import (
	"errors"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// The three possible values of Side (the side that a file is needed on) are
// "server", "client", and "both".
const (
	ServerSide    = "server"
	ClientSide    = "client"
	UniversalSide = "both"
)

// Manifest stores the metadata of locally installed files, usually in rinth.toml
type Manifest struct {
	Name         string         `toml:"name"`
	GameVersions []string       `toml:"game-versions,omitempty"`
	Loaders      []string       `toml:"loaders,omitempty"`
	Files        []ManifestFile `toml:"files,omitempty"`

	path string
}

// ManifestFile stores the metadata of one installed file.
type ManifestFile struct {
	Name     string       `toml:"name"`
	FileName string       `toml:"filename"`
	Side     string       `toml:"side,omitempty"`
	Download FileDownload `toml:"download"`
	// Update stores per-source update metadata, keyed by source name. Values
	// are parsed on demand with the registered UpdateParser.
	Update map[string]map[string]interface{} `toml:"update,omitempty"`
}

// FileDownload stores how to fetch and verify a file.
type FileDownload struct {
	URL        string `toml:"url"`
	HashFormat string `toml:"hash-format"`
	Hash       string `toml:"hash"`
}

// UpdateParsers stores all the update metadata parsers the CLI can use, keyed
// by source name. This can be done using the mapstructure library or your own
// parsing methods.
var UpdateParsers = make(map[string]UpdateParser)

// UpdateParser takes unparsed update metadata (as a map[string]interface{})
// and returns a parsed value for the CLI's update flow.
type UpdateParser interface {
	ParseUpdate(map[string]interface{}) (interface{}, error)
}

// GetParsedUpdateData parses the update metadata for the given source name.
func (f *ManifestFile) GetParsedUpdateData(source string) (interface{}, bool) {
	raw, ok := f.Update[source]
	if !ok {
		return nil, false
	}
	parser, ok := UpdateParsers[source]
	if !ok {
		return nil, false
	}
	parsed, err := parser.ParseUpdate(raw)
	if err != nil {
		return nil, false
	}
	return parsed, true
}

// LoadManifest loads the manifest from a path.
func LoadManifest(path string) (Manifest, error) {
	var manifest Manifest
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return Manifest{}, err
	}
	manifest.path = path
	return manifest, nil
}

// NewManifest creates an empty manifest that will be written to the given path.
func NewManifest(name string, path string) Manifest {
	return Manifest{Name: name, path: path}
}

// Path returns the file the manifest was loaded from or will be written to.
func (m *Manifest) Path() string {
	return m.path
}

// Write saves the manifest file.
func (m *Manifest) Write() error {
	f, err := os.Create(m.path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	// Disable indentation
	enc.Indent = ""
	return enc.Encode(m)
}

// AddFile adds a file entry, replacing any existing entry with the same name.
func (m *Manifest) AddFile(file ManifestFile) {
	for i, existing := range m.Files {
		if strings.EqualFold(existing.Name, file.Name) {
			m.Files[i] = file
			return
		}
	}
	m.Files = append(m.Files, file)
}

// FindFile looks up a file entry by name or filename, case-insensitively.
func (m *Manifest) FindFile(name string) (*ManifestFile, bool) {
	for i := range m.Files {
		if strings.EqualFold(m.Files[i].Name, name) || strings.EqualFold(m.Files[i].FileName, name) {
			return &m.Files[i], true
		}
	}
	return nil, false
}

// RemoveFile removes the file entry with the given name or filename.
func (m *Manifest) RemoveFile(name string) error {
	for i := range m.Files {
		if strings.EqualFold(m.Files[i].Name, name) || strings.EqualFold(m.Files[i].FileName, name) {
			m.Files = append(m.Files[:i], m.Files[i+1:]...)
			return nil
		}
	}
	return errors.New("file " + name + " not found in manifest")
}
