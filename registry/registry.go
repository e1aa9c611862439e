// Package registry loads fixture files, optionally via a YAML run manifest,
// and exposes their groups to the runner in declaration order.
package registry

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/casecheck/casecheck/fixture"
)

// Manifest names the program under test and the fixture files for one run.
// Fixture paths are resolved relative to the manifest location.
type Manifest struct {
	Program  string   `yaml:"program,omitempty"`
	Fixtures []string `yaml:"fixtures"`
}

// Registry holds the resolved program path and the parsed fixture groups.
type Registry struct {
	config  Config
	program string
	groups  []fixture.Group
	mu      sync.RWMutex
}

// Config contains registry configuration
type Config struct {
	Log          log.Logger
	ManifestFile string // YAML manifest naming the program and its fixtures
	FixtureFile  string // a single fixture file, usable alongside or instead of a manifest
	Program      string // program under test; overrides the manifest's program
}

// NewRegistry creates a new registry instance and loads all fixtures eagerly,
// so a structurally broken fixture surfaces before anything is invoked.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.ManifestFile == "" && cfg.FixtureFile == "" {
		return nil, errors.New("a fixture file or a manifest file is required")
	}
	if cfg.Log == nil {
		cfg.Log = log.New()
		cfg.Log.Error("No logger provided, using default")
	}

	r := &Registry{config: cfg}
	if err := r.load(); err != nil {
		return nil, err
	}
	cfg.Log.Debug("Registry loaded", "len(groups)", len(r.groups), "program", r.program)
	return r, nil
}

func (r *Registry) load() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	program := r.config.Program
	var files []string
	if r.config.FixtureFile != "" {
		files = append(files, r.config.FixtureFile)
	}
	if r.config.ManifestFile != "" {
		manifest, err := loadManifest(r.config.ManifestFile)
		if err != nil {
			return err
		}
		if program == "" {
			program = manifest.Program
		}
		base := filepath.Dir(r.config.ManifestFile)
		for _, f := range manifest.Fixtures {
			if !filepath.IsAbs(f) {
				f = filepath.Join(base, f)
			}
			files = append(files, f)
		}
	}
	if len(files) == 0 {
		return errors.Errorf("manifest %s names no fixtures", r.config.ManifestFile)
	}
	if program == "" {
		return errors.New("program under test is required (flag, environment or manifest)")
	}

	var groups []fixture.Group
	for _, file := range files {
		raw, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "failed to read fixture %s", file)
		}
		parsed, err := fixture.ParseStrict(string(raw))
		if err != nil {
			return errors.Wrapf(err, "malformed fixture %s", file)
		}
		r.config.Log.Debug("Fixture parsed", "file", file, "groups", len(parsed))
		groups = append(groups, parsed...)
	}

	r.program = program
	r.groups = groups
	return nil
}

func loadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read manifest %s", path)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest %s", path)
	}
	return &m, nil
}

// Program returns the resolved path of the program under test.
func (r *Registry) Program() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.program
}

// Groups returns all fixture groups in declaration order.
func (r *Registry) Groups() []fixture.Group {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.groups
}
