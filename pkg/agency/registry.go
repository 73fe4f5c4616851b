package agency

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/normaliser/pkg/util"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var ErrUnknownAgency = errors.New("unknown agency")

type Registry struct {
	profiles map[string]*Profile
}

func NewRegistry() *Registry {
	return &Registry{
		profiles: map[string]*Profile{},
	}
}

// DefaultDirectory is where agency profiles are read from unless
// NORMALISER_AGENCIES_DIR says otherwise
func DefaultDirectory() string {
	env := util.GetEnvironmentVariables()
	if env["NORMALISER_AGENCIES_DIR"] != "" {
		return env["NORMALISER_AGENCIES_DIR"]
	}

	return "data/agencies/"
}

func LoadDefault() (*Registry, error) {
	registry := NewRegistry()

	if err := registry.LoadDirectory(DefaultDirectory()); err != nil {
		return nil, err
	}

	return registry, nil
}

func (r *Registry) Add(profile *Profile) error {
	if err := profile.Validate(); err != nil {
		return err
	}

	if _, exists := r.profiles[profile.Identifier]; exists {
		return fmt.Errorf("agency %s is defined more than once", profile.Identifier)
	}

	r.profiles[profile.Identifier] = profile

	return nil
}

func (r *Registry) LoadDirectory(directory string) error {
	return filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			extension := filepath.Ext(path)
			if extension != ".yaml" && extension != ".yml" {
				return nil
			}

			return r.LoadFile(path)
		})
}

func (r *Registry) LoadFile(path string) error {
	log.Debug().Str("path", path).Msg("Loading agency profiles file")

	profilesYaml, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	if err := r.Load(bytes.NewReader(profilesYaml)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	return nil
}

// Load reads every profile document of a YAML stream
func (r *Registry) Load(reader io.Reader) error {
	decoder := yaml.NewDecoder(reader)
	decoder.KnownFields(true)

	for {
		var profile Profile
		err := decoder.Decode(&profile)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		if err := r.Add(&profile); err != nil {
			return err
		}
	}

	return nil
}

func (r *Registry) Get(identifier string) (*Profile, error) {
	profile, exists := r.profiles[identifier]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAgency, identifier)
	}

	return profile, nil
}

func (r *Registry) List() []*Profile {
	profiles := make([]*Profile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		profiles = append(profiles, profile)
	}

	slices.SortFunc(profiles, func(a, b *Profile) int {
		switch {
		case a.Identifier < b.Identifier:
			return -1
		case a.Identifier > b.Identifier:
			return 1
		default:
			return 0
		}
	})

	return profiles
}
