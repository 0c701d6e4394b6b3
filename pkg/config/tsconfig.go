package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// tsconfig is the subset of tsconfig.json we read for path aliases.
type tsconfig struct {
	CompilerOptions struct {
		BaseURL string              `json:"baseUrl"`
		Paths   map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// DetectPathAlias probes the project for a tsconfig.json (walking up a few
// directories from the root) and converts its wildcard path mappings into
// prefix aliases, e.g. "@/*": ["./src/*"] becomes "@/" -> "src/".
//
// Any failure returns an error for the caller to log as a warning; alias
// detection never aborts a run.
func DetectPathAlias(projectRoot string) (map[string]string, error) {
	path, err := findTSConfig(projectRoot)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var cfg tsconfig
	if err := json.Unmarshal(stripJSONComments(data), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	aliases := make(map[string]string)
	for pattern, targets := range cfg.CompilerOptions.Paths {
		if !strings.HasSuffix(pattern, "*") || len(targets) == 0 {
			continue
		}
		target := targets[0]
		if !strings.HasSuffix(target, "*") {
			continue
		}
		alias := strings.TrimSuffix(pattern, "*")
		real := strings.TrimSuffix(target, "*")
		real = strings.TrimPrefix(real, "./")
		if cfg.CompilerOptions.BaseURL != "" && cfg.CompilerOptions.BaseURL != "." {
			real = strings.TrimPrefix(cfg.CompilerOptions.BaseURL, "./") + "/" + strings.TrimPrefix(real, "/")
		}
		if alias != "" && real != "" {
			aliases[alias] = real
		}
	}

	if len(aliases) == 0 {
		return nil, fmt.Errorf("no wildcard path mappings in %s", path)
	}
	return aliases, nil
}

// findTSConfig looks for tsconfig.json in the project root, then up to
// three parent directories (monorepo layouts keep it above the package).
func findTSConfig(projectRoot string) (string, error) {
	dir := projectRoot
	for i := 0; i < 4; i++ {
		candidate := filepath.Join(dir, "tsconfig.json")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", fmt.Errorf("tsconfig.json not found near %s", projectRoot)
}

// stripJSONComments removes // and /* */ comments so the JSONC tsconfig
// dialect can be fed to encoding/json. String contents are preserved.
func stripJSONComments(data []byte) []byte {
	out := make([]byte, 0, len(data))
	inString := false
	inLine := false
	inBlock := false
	for i := 0; i < len(data); i++ {
		c := data[i]
		switch {
		case inLine:
			if c == '\n' {
				inLine = false
				out = append(out, c)
			}
		case inBlock:
			if c == '*' && i+1 < len(data) && data[i+1] == '/' {
				inBlock = false
				i++
			}
		case inString:
			out = append(out, c)
			if c == '\\' && i+1 < len(data) {
				i++
				out = append(out, data[i])
			} else if c == '"' {
				inString = false
			}
		default:
			if c == '"' {
				inString = true
				out = append(out, c)
			} else if c == '/' && i+1 < len(data) && data[i+1] == '/' {
				inLine = true
				i++
			} else if c == '/' && i+1 < len(data) && data[i+1] == '*' {
				inBlock = true
				i++
			} else {
				out = append(out, c)
			}
		}
	}
	return out
}
