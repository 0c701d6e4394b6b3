package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propview/pkg/config"
)

func TestDiscoverFilesMatchesGlobSorted(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/components/button.tsx": "export {}",
		"src/components/card.tsx":   "export {}",
		"src/components/util.ts":    "export {}",
		"src/pages/home.tsx":        "export {}",
		"README.md":                 "# readme",
	})

	cfg, err := config.Resolve(config.Options{ComponentGlob: "src/components/**/*.{ts,tsx}"}, nil)
	require.NoError(t, err)

	files, err := DiscoverFiles(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/components/button.tsx",
		"src/components/card.tsx",
		"src/components/util.ts",
	}, files)
}

func TestDiscoverFilesAppliesBasenameExclusions(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/components/button.tsx":       "export {}",
		"src/components/index.ts":         "export {}",
		"src/components/nested/index.tsx": "export {}",
	})

	cfg, err := config.Resolve(config.Options{ComponentGlob: "src/components/**/*.{ts,tsx}"}, nil)
	require.NoError(t, err)

	files, err := DiscoverFiles(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/components/button.tsx"}, files,
		"index barrels are excluded by default at any depth")
}

func TestDiscoverFilesSkipsBuildOutput(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/x.tsx":              "export {}",
		"node_modules/pkg/y.tsx": "export {}",
		"dist/z.tsx":             "export {}",
	})

	cfg, err := config.Resolve(config.Options{ComponentGlob: "**/*.tsx"}, nil)
	require.NoError(t, err)

	files, err := DiscoverFiles(root, cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"src/x.tsx"}, files)
}

func TestDiscoverFilesRejectsInvalidGlob(t *testing.T) {
	cfg, err := config.Resolve(config.Options{ComponentGlob: "src/[bad"}, nil)
	require.NoError(t, err)

	_, err = DiscoverFiles(t.TempDir(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid component glob")
}

func TestDiscoverFilesEmptyMatchIsNotAnError(t *testing.T) {
	cfg, err := config.Resolve(config.Options{}, nil)
	require.NoError(t, err)

	files, err := DiscoverFiles(t.TempDir(), cfg)
	require.NoError(t, err)
	assert.Empty(t, files)
}
