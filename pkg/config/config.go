// Package config resolves extraction configuration: user options merged
// over built-in defaults, with exclusion lists always union-merged so user
// input can add to the defaults but never drop one.
package config

import (
	"fmt"
	"regexp"
)

// Built-in defaults. Exclusion and filter lists are union-merged with user
// values during resolution.
var (
	DefaultComponentGlob = "src/components/**/*.{ts,tsx,js,jsx}"

	DefaultExcludeFiles = []string{
		"index.ts",
		"index.tsx",
	}

	DefaultExcludeComponents = []string{}

	// Styling and framework plumbing props carry no preview value.
	DefaultFilteredProps = []string{
		"className",
		"style",
		"ref",
		"key",
	}

	DefaultFilteredPropPatterns = []string{
		"^on[A-Z]",
		"^aria-",
		"^data-",
	}

	DefaultOutputDir = "generated"

	DefaultPathAlias = map[string]string{
		"@/": "src/",
	}
)

// Options are user-supplied overrides. Zero values mean "unset" for scalar
// fields; list fields are always unioned with defaults, never replace them.
type Options struct {
	ComponentGlob        string            `yaml:"componentGlob"`
	ExcludeFiles         []string          `yaml:"excludeFiles"`
	ExcludeComponents    []string          `yaml:"excludeComponents"`
	FilteredProps        []string          `yaml:"filteredProps"`
	FilteredPropPatterns []string          `yaml:"filteredPropPatterns"`
	OutputDir            string            `yaml:"outputDir"`
	PathAlias            map[string]string `yaml:"pathAlias"`
}

// Resolved is the effective configuration after merging defaults, user
// options, and any detected path aliases.
type Resolved struct {
	ComponentGlob        string
	ExcludeFiles         []string
	ExcludeComponents    []string
	FilteredProps        []string
	FilteredPropPatterns []string
	OutputDir            string
	PathAlias            map[string]string

	propPatterns []*regexp.Regexp
}

// Resolve merges user options over defaults. detectedAlias is the result of
// project inspection (may be nil); explicit user aliases win over it.
//
// An invalid filtered-prop pattern is a configuration error and fails the
// whole resolution.
func Resolve(opts Options, detectedAlias map[string]string) (*Resolved, error) {
	r := &Resolved{
		ComponentGlob:        DefaultComponentGlob,
		ExcludeFiles:         unionMerge(DefaultExcludeFiles, opts.ExcludeFiles),
		ExcludeComponents:    unionMerge(DefaultExcludeComponents, opts.ExcludeComponents),
		FilteredProps:        unionMerge(DefaultFilteredProps, opts.FilteredProps),
		FilteredPropPatterns: unionMerge(DefaultFilteredPropPatterns, opts.FilteredPropPatterns),
		OutputDir:            DefaultOutputDir,
	}

	if opts.ComponentGlob != "" {
		r.ComponentGlob = opts.ComponentGlob
	}
	if opts.OutputDir != "" {
		r.OutputDir = opts.OutputDir
	}

	switch {
	case len(opts.PathAlias) > 0:
		r.PathAlias = copyAlias(opts.PathAlias)
	case len(detectedAlias) > 0:
		r.PathAlias = copyAlias(detectedAlias)
	default:
		r.PathAlias = copyAlias(DefaultPathAlias)
	}

	for _, pattern := range r.FilteredPropPatterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid filtered prop pattern %q: %w", pattern, err)
		}
		r.propPatterns = append(r.propPatterns, re)
	}

	return r, nil
}

// unionMerge returns defaults followed by the user entries not already
// present, deduplicated, preserving order within each source.
func unionMerge(defaults, user []string) []string {
	seen := make(map[string]bool, len(defaults)+len(user))
	merged := make([]string, 0, len(defaults)+len(user))
	for _, lists := range [][]string{defaults, user} {
		for _, entry := range lists {
			if entry == "" || seen[entry] {
				continue
			}
			seen[entry] = true
			merged = append(merged, entry)
		}
	}
	return merged
}

func copyAlias(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for alias, real := range src {
		dst[alias] = real
	}
	return dst
}

// IsFileExcluded reports whether a file basename is on the exclusion list.
func (r *Resolved) IsFileExcluded(basename string) bool {
	return contains(r.ExcludeFiles, basename)
}

// IsComponentExcluded reports whether a component display name is excluded.
func (r *Resolved) IsComponentExcluded(name string) bool {
	return contains(r.ExcludeComponents, name)
}

// IsPropFiltered reports whether a prop name is dropped by the exact-name
// list or any of the compiled name patterns.
func (r *Resolved) IsPropFiltered(name string) bool {
	if contains(r.FilteredProps, name) {
		return true
	}
	for _, re := range r.propPatterns {
		if re.MatchString(name) {
			return true
		}
	}
	return false
}

func contains(list []string, value string) bool {
	for _, entry := range list {
		if entry == value {
			return true
		}
	}
	return false
}
