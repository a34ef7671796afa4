// Package manifest records what a pipeline run read, did and wrote.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/KaramelBytes/tweetsift-cli/internal/clean"
	"github.com/KaramelBytes/tweetsift-cli/internal/utils"
	"github.com/google/uuid"
)

// FileName is the default manifest file name inside an output directory.
const FileName = "run.json"

// Run is a manifest persisted on disk next to the artifacts it describes.
type Run struct {
	ID          string        `json:"id"`
	Command     string        `json:"command"`
	Input       string        `json:"input"`
	TextColumn  string        `json:"text_column"`
	LabelColumn string        `json:"label_column"`
	RowsLoaded  int           `json:"rows_loaded"`
	RowsCleaned int           `json:"rows_cleaned"`
	Cleaning    *clean.Report `json:"cleaning,omitempty"`
	Metrics     []string      `json:"metrics,omitempty"`
	Artifacts   []*Artifact   `json:"artifacts"`
	Warnings    []string      `json:"warnings,omitempty"`
	Errors      []string      `json:"errors,omitempty"`
	StartedAt   time.Time     `json:"started_at"`
	FinishedAt  time.Time     `json:"finished_at"`

	// Not serialized: where the manifest lives.
	dir  string `json:"-"`
	file string `json:"-"`
}

// New starts a manifest for a run writing into dir.
func New(command, input, dir string) *Run {
	return &Run{
		ID:        uuid.NewString(),
		Command:   command,
		Input:     input,
		StartedAt: time.Now().UTC(),
		dir:       dir,
		file:      FileName,
	}
}

// SetFileName overrides the manifest file name. Empty keeps the default.
func (r *Run) SetFileName(name string) {
	if name != "" {
		r.file = name
	}
}

// Load reads the manifest at path. A directory is read as dir/run.json.
func Load(path string) (*Run, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, FileName)
	}
	dir, file := filepath.Split(path)
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("manifest not found at %s: %w", path, err)
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var r Run
	if err := json.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	r.dir = filepath.Clean(dir)
	r.file = file
	return &r, nil
}

// Dir returns the directory the manifest is written to.
func (r *Run) Dir() string { return r.dir }

// Path returns the manifest file path.
func (r *Run) Path() string {
	if r.file == "" {
		return filepath.Join(r.dir, FileName)
	}
	return filepath.Join(r.dir, r.file)
}

// AddArtifact records an output file. err is the write failure, if any.
func (r *Run) AddArtifact(kind, path string, size int, err error) {
	a := &Artifact{Kind: kind, Path: path, Bytes: size, Written: err == nil}
	if err != nil {
		a.Error = err.Error()
		r.Errors = append(r.Errors, fmt.Sprintf("%s: %v", kind, err))
	}
	r.Artifacts = append(r.Artifacts, a)
}

// Save writes run.json using atomic write.
func (r *Run) Save() error {
	if r.dir == "" {
		return errors.New("manifest directory not set")
	}
	if err := utils.EnsureDir(r.dir); err != nil {
		return fmt.Errorf("ensure dir: %w", err)
	}
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now().UTC()
	}
	data, err := utils.PrettyJSON(r, 2)
	if err != nil {
		return err
	}
	return utils.SafeWriteFile(r.Path(), data)
}

// List loads every manifest named name under root, newest first. Unreadable
// manifests are skipped and reported in the returned slice of problems.
func List(root, name string) ([]*Run, []string, error) {
	if name == "" {
		name = FileName
	}
	paths, err := utils.FindFiles(root, name)
	if err != nil {
		return nil, nil, fmt.Errorf("scan %s: %w", root, err)
	}
	var runs []*Run
	var problems []string
	for _, p := range paths {
		r, err := Load(p)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s: %v", p, err))
			continue
		}
		runs = append(runs, r)
	}
	sort.SliceStable(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
	return runs, problems, nil
}
