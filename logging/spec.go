package logging

import (
	"fmt"
	"sort"
	"strings"
)

// Spec is a base level with optional per-component overrides.
//
// Format: "<base-level>[,<component>=<level>]...", for example
// "warn,manager=debug,sim=trace".
type Spec struct {
	BaseLevel  Level
	Components map[string]Level
}

// ParseSpec parses a log spec. An empty string selects info with no
// overrides. The base level, if present, must come first.
func ParseSpec(s string) (Spec, error) {
	spec := Spec{
		BaseLevel:  LevelInfo,
		Components: make(map[string]Level),
	}

	for i, part := range strings.Split(strings.TrimSpace(s), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		component, levelStr, override := strings.Cut(part, "=")
		if !override {
			if i != 0 {
				return spec, fmt.Errorf("base level %q must be first in spec", part)
			}
			level, err := ParseLevel(part)
			if err != nil {
				return spec, err
			}
			spec.BaseLevel = level
			continue
		}

		component = strings.TrimSpace(component)
		if component == "" {
			return spec, fmt.Errorf("empty component name in %q", part)
		}
		level, err := ParseLevel(levelStr)
		if err != nil {
			return spec, fmt.Errorf("invalid level for component %q: %w", component, err)
		}
		spec.Components[component] = level
	}

	return spec, nil
}

// LevelFor returns the level for component, falling back to the base
// level.
func (s *Spec) LevelFor(component string) Level {
	if level, ok := s.Components[component]; ok {
		return level
	}
	return s.BaseLevel
}

// String returns the spec in parseable form with components sorted
// by name.
func (s *Spec) String() string {
	names := make([]string, 0, len(s.Components))
	for name := range s.Components {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := []string{s.BaseLevel.String()}
	for _, name := range names {
		parts = append(parts, name+"="+s.Components[name].String())
	}
	return strings.Join(parts, ",")
}
