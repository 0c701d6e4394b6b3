package meta

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func comp(name string, propNames ...string) ComponentMeta {
	props := make(map[string]PropMeta, len(propNames))
	for _, p := range propNames {
		props[p] = PropMeta{Name: p, Type: TypeInfo{Kind: KindString}}
	}
	return ComponentMeta{
		Name:     name,
		FilePath: "src/components/ui/" + strings.ToLower(name) + ".tsx",
		Props:    props,
		Examples: []Example{},
	}
}

func TestDedupeKeepsRicherDefinition(t *testing.T) {
	three := comp("Button", "variant", "size", "disabled")
	five := comp("Button", "variant", "size", "disabled", "loading", "icon")

	out := Dedupe([]ComponentMeta{three, five, comp("Card", "title")})
	require.Len(t, out, 2)

	byName := make(map[string]ComponentMeta)
	for _, c := range out {
		byName[c.Name] = c
	}
	assert.Len(t, byName["Button"].Props, 5)
	assert.Len(t, byName["Card"].Props, 1)
}

func TestDedupeTieKeepsFirst(t *testing.T) {
	first := comp("Badge", "variant")
	first.Description = "first"
	second := comp("Badge", "color")
	second.Description = "second"

	out := Dedupe([]ComponentMeta{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "first", out[0].Description)
	assert.Contains(t, out[0].Props, "variant")
}

func TestNewDocumentSortsComponents(t *testing.T) {
	doc := NewDocument([]ComponentMeta{comp("Tabs"), comp("Badge"), comp("Card")}, "src/**/*.tsx", map[string]string{"@/": "src/"})

	var names []string
	for _, c := range doc.Components {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Badge", "Card", "Tabs"}, names)
	assert.Equal(t, "src/**/*.tsx", doc.ComponentDir)
	assert.False(t, doc.GeneratedAt.IsZero())
}

func TestDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "components.json")

	button := comp("Button", "variant")
	button.Props["variant"] = PropMeta{
		Name:     "variant",
		Type:     TypeInfo{Kind: KindEnum, Raw: "'primary' | 'secondary'", Values: []string{"primary", "secondary"}},
		Required: true,
	}
	doc := NewDocument([]ComponentMeta{button}, "src/**/*.tsx", map[string]string{"@/": "src/"})
	require.NoError(t, WriteDocument(doc, path))

	loaded, err := LoadDocument(path)
	require.NoError(t, err)
	require.Len(t, loaded.Components, 1)
	assert.Equal(t, doc.Components[0].Props["variant"].Type.Values, loaded.Components[0].Props["variant"].Type.Values)
	assert.Equal(t, map[string]string{"@/": "src/"}, loaded.PathAlias)
}

func TestValidateRejectsBadDocuments(t *testing.T) {
	dup := NewDocument(nil, "", nil)
	dup.Components = []ComponentMeta{comp("Button"), comp("Button")}
	assert.Error(t, Validate(dup))

	mismatch := NewDocument(nil, "", nil)
	c := comp("Input")
	c.Props["value"] = PropMeta{Name: "other", Type: TypeInfo{Kind: KindString}}
	mismatch.Components = []ComponentMeta{c}
	assert.Error(t, Validate(mismatch))

	badKind := NewDocument(nil, "", nil)
	c = comp("Input")
	c.Props["value"] = PropMeta{Name: "value", Type: TypeInfo{Kind: "mystery"}}
	badKind.Components = []ComponentMeta{c}
	assert.Error(t, Validate(badKind))

	emptyEnum := NewDocument(nil, "", nil)
	c = comp("Select")
	c.Props["size"] = PropMeta{Name: "size", Type: TypeInfo{Kind: KindEnum}}
	emptyEnum.Components = []ComponentMeta{c}
	assert.Error(t, Validate(emptyEnum))
}

func TestValidateAcceptsNestedTypes(t *testing.T) {
	c := comp("List")
	c.Props["items"] = PropMeta{
		Name: "items",
		Type: TypeInfo{
			Kind: KindArray,
			Item: &TypeInfo{
				Kind: KindObject,
				Fields: []Field{
					{Name: "label", Type: TypeInfo{Kind: KindString}, Required: true},
					{Name: "icon", Type: TypeInfo{Kind: KindComponent, Slot: SlotNode}},
				},
			},
		},
	}
	doc := NewDocument([]ComponentMeta{c}, "", nil)
	assert.NoError(t, Validate(doc))
}

func TestImportSpecifier(t *testing.T) {
	alias := map[string]string{
		"@/":   "src/",
		"@ui/": "src/components/ui/",
	}

	// Longest real prefix wins.
	assert.Equal(t, "@ui/button", ImportSpecifier("src/components/ui/button.tsx", alias))
	assert.Equal(t, "@/lib/utils", ImportSpecifier("src/lib/utils.ts", alias))
	// Index modules collapse to the directory.
	assert.Equal(t, "@ui/dialog", ImportSpecifier("src/components/ui/dialog/index.tsx", alias))
	// No alias match leaves the path untouched (minus extension).
	assert.Equal(t, "lib/helpers", ImportSpecifier("lib/helpers.ts", nil))
}

func TestWriteRegistry(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "registry.ts")

	hero := comp("Hero")
	hero.IsDefaultExport = true
	doc := NewDocument([]ComponentMeta{comp("Button"), comp("Card"), hero}, "src/**/*.tsx", map[string]string{"@/": "src/"})
	require.NoError(t, WriteRegistry(doc, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `"Button": lazy(() => import("@/components/ui/button").then((m) => ({ default: m.Button }))),`)
	assert.Contains(t, content, `"Card": lazy(() => import("@/components/ui/card").then((m) => ({ default: m.Card }))),`)
	assert.Contains(t, content, `"Hero": lazy(() => import("@/components/ui/hero")),`,
		"default exports import directly")
	assert.Contains(t, content, "export const componentRegistry")
}
