// Package roles loads and serves the role-taxonomy table: the required and
// preferred keyword sets plus level-calibrated action verbs each scoring call
// consults. The table is loaded once at startup and immutable afterwards.
package roles

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/gradecv/gradecv/internal/domain"
)

// GenericRole is the profile key unknown or absent roles fall back to. The
// taxonomy file must define it; a taxonomy without a fallback is a broken
// deployment.
const GenericRole = "generic"

type profileKey struct {
	role, level string
}

// Registry is the immutable role directory. Safe for concurrent reads; never
// mutated after construction.
type Registry struct {
	profiles map[profileKey]domain.RoleProfile
	generic  domain.RoleProfile
}

type taxonomyFile struct {
	Profiles []domain.RoleProfile `yaml:"profiles" validate:"min=1,dive"`
}

// Load reads and validates a taxonomy YAML file. All errors wrap
// domain.ErrConfig; callers treat them as fatal at startup.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read taxonomy: %v", domain.ErrConfig, err)
	}
	var file taxonomyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("%w: parse taxonomy %s: %v", domain.ErrConfig, path, err)
	}
	if err := validator.New().Struct(file); err != nil {
		return nil, fmt.Errorf("%w: invalid taxonomy %s: %v", domain.ErrConfig, path, err)
	}
	return New(file.Profiles)
}

// New builds a Registry from explicit profiles, enabling tests to inject
// synthetic taxonomies. A generic fallback profile is required.
func New(profiles []domain.RoleProfile) (*Registry, error) {
	r := &Registry{profiles: make(map[profileKey]domain.RoleProfile, len(profiles))}
	for _, p := range profiles {
		key := profileKey{role: normalize(p.Role), level: normalize(p.Level)}
		if key.role == "" {
			return nil, fmt.Errorf("%w: profile with empty role", domain.ErrConfig)
		}
		if _, dup := r.profiles[key]; dup {
			return nil, fmt.Errorf("%w: duplicate profile for role %q level %q", domain.ErrConfig, p.Role, p.Level)
		}
		r.profiles[key] = p
		if key.role == GenericRole && key.level == "" {
			r.generic = p
		}
	}
	if r.generic.Role == "" {
		return nil, fmt.Errorf("%w: taxonomy must define a %q profile with no level", domain.ErrConfig, GenericRole)
	}
	return r, nil
}

// Resolve returns the profile for (role, level), trying the exact pair first,
// then the role without a level, then the generic fallback. It never fails.
func (r *Registry) Resolve(role, level string) domain.RoleProfile {
	role, level = normalize(role), normalize(level)
	if p, ok := r.profiles[profileKey{role: role, level: level}]; ok {
		return p
	}
	if p, ok := r.profiles[profileKey{role: role}]; ok {
		return p
	}
	return r.generic
}

// Entry is one row of the directory listing.
type Entry struct {
	Role   string   `json:"role"`
	Levels []string `json:"levels"`
}

// List returns the known roles and their levels, sorted for stable output.
func (r *Registry) List() []Entry {
	byRole := map[string][]string{}
	for key := range r.profiles {
		if key.level != "" {
			byRole[key.role] = append(byRole[key.role], key.level)
		} else if _, ok := byRole[key.role]; !ok {
			byRole[key.role] = []string{}
		}
	}
	out := make([]Entry, 0, len(byRole))
	for role, levels := range byRole {
		sort.Strings(levels)
		out = append(out, Entry{Role: role, Levels: levels})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Role < out[j].Role })
	return out
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
