package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	// WorkDir is created inside the templates directory.
	WorkDir             = ".templatize"
	StateFile           = "state.json"
	BackupDir           = "backup"
	CurrentStateVersion = "1"
)

// PageStatus classifies a page against the recorded conversions.
type PageStatus string

const (
	StatusPending   PageStatus = "pending"
	StatusConverted PageStatus = "converted"
	StatusModified  PageStatus = "modified"
)

// FileState tracks one converted page
type FileState struct {
	SourceHash  string    `json:"source_hash"`
	OutputHash  string    `json:"output_hash"`
	Backup      string    `json:"backup,omitempty"`
	Extractor   string    `json:"extractor"`
	ConvertedAt time.Time `json:"converted_at"`
}

// State records every conversion so reruns and restores know what was done
type State struct {
	Version   string               `json:"version"`
	UpdatedAt time.Time            `json:"updated_at"`
	Files     map[string]FileState `json:"files"`
}

// NewState creates a new empty state
func NewState() *State {
	return &State{
		Version: CurrentStateVersion,
		Files:   make(map[string]FileState),
	}
}

// Dir returns the work directory for a templates root.
func Dir(root string) string {
	return filepath.Join(root, WorkDir)
}

// Load reads state from the work directory. A missing file yields an empty state.
func Load(workDir string) (*State, error) {
	data, err := os.ReadFile(filepath.Join(workDir, StateFile))
	if err != nil {
		if os.IsNotExist(err) {
			return NewState(), nil
		}
		return nil, err
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	if st.Files == nil {
		st.Files = make(map[string]FileState)
	}
	if st.Version == "" {
		st.Version = CurrentStateVersion
	}
	return &st, nil
}

// Save writes state to the work directory, creating it if needed.
func (s *State) Save(workDir string) error {
	if s.Version == "" {
		s.Version = CurrentStateVersion
	}
	if s.Files == nil {
		s.Files = make(map[string]FileState)
	}
	s.UpdatedAt = time.Now()

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(workDir, 0755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(workDir, StateFile), data, 0644)
}

// Record stores a finished conversion.
func (s *State) Record(file string, fs FileState) {
	if fs.ConvertedAt.IsZero() {
		fs.ConvertedAt = time.Now()
	}
	s.Files[file] = fs
}

// Forget removes a file from state tracking
func (s *State) Forget(file string) {
	delete(s.Files, file)
}

// Get returns the recorded conversion for file.
func (s *State) Get(file string) (FileState, bool) {
	fs, ok := s.Files[file]
	return fs, ok
}

// Status compares the current content hash of file with what was written.
func (s *State) Status(file, currentHash string) PageStatus {
	fs, ok := s.Files[file]
	if !ok {
		return StatusPending
	}
	if fs.OutputHash != currentHash {
		return StatusModified
	}
	return StatusConverted
}

// MissingFiles returns recorded files absent from current, sorted.
func (s *State) MissingFiles(current map[string]bool) []string {
	missing := make([]string, 0)
	for file := range s.Files {
		if !current[file] {
			missing = append(missing, file)
		}
	}
	sort.Strings(missing)
	return missing
}

// Paths returns every recorded file, sorted.
func (s *State) Paths() []string {
	out := make([]string, 0, len(s.Files))
	for file := range s.Files {
		out = append(out, file)
	}
	sort.Strings(out)
	return out
}
