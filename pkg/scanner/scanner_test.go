package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/extractor"
	"github.com/gnana997/propview/pkg/meta"
	"github.com/gnana997/propview/pkg/parser"
	"github.com/gnana997/propview/pkg/parser/queries"
	"github.com/gnana997/propview/pkg/util"
)

// newTestScanner wires a scanner with real parser and extractor instances.
func newTestScanner(t *testing.T) *Scanner {
	t.Helper()

	pm := parser.NewManager(nil)
	t.Cleanup(func() { pm.Close() })
	qm := queries.NewManager(pm, nil)
	t.Cleanup(func() { qm.Close() })
	sources := util.NewSourceCache(0, nil)
	t.Cleanup(func() { sources.Close() })

	s, err := NewScanner(pm, extractor.New(qm, nil), sources, nil)
	require.NoError(t, err)
	return s
}

// writeProject materializes fixture files under a temp root.
func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

// runFixture runs the full pipeline over fixture files.
func runFixture(t *testing.T, files map[string]string, opts config.Options) *extractor.Result {
	t.Helper()

	root := writeProject(t, files)
	if opts.ComponentGlob == "" {
		opts.ComponentGlob = "src/**/*.{ts,tsx}"
	}
	cfg, err := config.Resolve(opts, nil)
	require.NoError(t, err)

	discovered, err := DiscoverFiles(root, cfg)
	require.NoError(t, err)

	s := newTestScanner(t)
	result, err := s.Extract(extractor.Request{ProjectRoot: root, Config: cfg, Files: discovered})
	require.NoError(t, err)
	return result
}

func componentByName(t *testing.T, result *extractor.Result, name string) meta.ComponentMeta {
	t.Helper()
	for _, comp := range result.Components {
		if comp.Name == name {
			return comp
		}
	}
	t.Fatalf("component %s not found", name)
	return meta.ComponentMeta{}
}

func TestExtractButtonEndToEnd(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/components/button.tsx": `
export function Button({variant, size, disabled}: {variant: 'primary'|'secondary'; size?: 'sm'|'md'; disabled?: boolean}) {
  return <button>{variant}</button>;
}
`,
	}, config.Options{})

	require.Len(t, result.Components, 1)
	button := componentByName(t, result, "Button")
	assert.False(t, button.AcceptsChildren)
	require.Len(t, button.Props, 3)

	variant := button.Props["variant"]
	assert.Equal(t, meta.KindEnum, variant.Type.Kind)
	assert.Equal(t, []string{"primary", "secondary"}, variant.Type.Values)
	assert.True(t, variant.Required)

	size := button.Props["size"]
	assert.Equal(t, meta.KindEnum, size.Type.Kind)
	assert.Equal(t, []string{"sm", "md"}, size.Type.Values)
	assert.False(t, size.Required)

	disabled := button.Props["disabled"]
	assert.Equal(t, meta.KindBoolean, disabled.Type.Kind)
	assert.False(t, disabled.Required)
}

func TestNamedInterfaceProps(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/badge.tsx": `
interface BadgeProps {
  /** The visual tone of the badge. */
  tone: 'info' | 'warn' | 'error';
  /** Optional count bubble. */
  count?: number;
}

export function Badge({ tone = 'info', count }: BadgeProps) {
  return <span>{count}</span>;
}
`,
	}, config.Options{})

	badge := componentByName(t, result, "Badge")
	require.Len(t, badge.Props, 2)

	tone := badge.Props["tone"]
	assert.Equal(t, meta.KindEnum, tone.Type.Kind)
	assert.Equal(t, []string{"info", "warn", "error"}, tone.Type.Values)
	assert.Equal(t, "info", tone.Default)
	assert.False(t, tone.Required, "a destructuring default makes the prop optional")
	assert.Contains(t, tone.Description, "visual tone")

	count := badge.Props["count"]
	assert.Equal(t, meta.KindNumber, count.Type.Kind)
	assert.False(t, count.Required)
	assert.Empty(t, count.Default)
}

func TestChildrenSetsFlagNotProp(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/card.tsx": `
interface CardProps {
  title: string;
  children?: ReactNode;
}

export function Card({ title, children }: CardProps) {
  return <div>{children}</div>;
}
`,
	}, config.Options{})

	card := componentByName(t, result, "Card")
	assert.True(t, card.AcceptsChildren)
	assert.NotContains(t, card.Props, "children")
	assert.Contains(t, card.Props, "title")
}

func TestPropFiltering(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/input.tsx": `
interface InputProps {
  value: string;
  className?: string;
  onChange?: (value: string) => void;
  testId?: string;
}

export function Input({ value }: InputProps) {
  return <input value={value} />;
}
`,
	}, config.Options{FilteredProps: []string{"testId"}})

	input := componentByName(t, result, "Input")
	assert.Contains(t, input.Props, "value")
	assert.NotContains(t, input.Props, "className", "default filter list applies")
	assert.NotContains(t, input.Props, "onChange", "default pattern list applies")
	assert.NotContains(t, input.Props, "testId", "user filters union with defaults")
}

func TestForwardRefComponent(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/text-field.tsx": `
import { forwardRef } from "react";

interface TextFieldProps {
  placeholder?: string;
  kind: 'outline' | 'filled';
}

const TextField = forwardRef<HTMLInputElement, TextFieldProps>(({ placeholder, kind = 'outline' }, ref) => {
  return <input ref={ref} placeholder={placeholder} />;
});

export { TextField };
`,
	}, config.Options{})

	field := componentByName(t, result, "TextField")
	require.Len(t, field.Props, 2)
	assert.Equal(t, meta.KindEnum, field.Props["kind"].Type.Kind)
	assert.Equal(t, "outline", field.Props["kind"].Default)
	assert.Equal(t, meta.KindString, field.Props["placeholder"].Type.Kind)
}

func TestDefaultExportFlagged(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/hero.tsx": `
const Hero = ({ title }: { title: string }) => <h1>{title}</h1>;
export default Hero;
`,
		"src/footer.tsx": `
export function Footer({ year }: { year: number }) {
  return <footer>{year}</footer>;
}
`,
	}, config.Options{})

	hero := componentByName(t, result, "Hero")
	assert.True(t, hero.IsDefaultExport)

	footer := componentByName(t, result, "Footer")
	assert.False(t, footer.IsDefaultExport)
}

func TestExcludedComponentDropped(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/widgets.tsx": `
export function Visible() { return <div />; }
export function Hidden() { return <div />; }
`,
	}, config.Options{ExcludeComponents: []string{"Hidden"}})

	assert.Len(t, result.Components, 1)
	assert.Equal(t, "Visible", result.Components[0].Name)
}

func TestDedupeAcrossFilesKeepsRicher(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/a.tsx": `
export function Button({ label }: { label: string }) { return <button>{label}</button>; }
`,
		"src/b.tsx": `
export function Button({ label, kind, busy }: { label: string; kind?: 'a'|'b'; busy?: boolean }) {
  return <button>{label}</button>;
}
`,
	}, config.Options{})

	require.Len(t, result.Components, 1)
	assert.Len(t, result.Components[0].Props, 3)
}

func TestUsageCounts(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/chip.tsx": `
export function Chip({ label }: { label: string }) { return <span>{label}</span>; }
`,
		"src/toolbar.tsx": `
import { Chip } from "./chip";

export function Toolbar() {
  return (
    <div>
      <Chip label="one" />
      <Chip label="two" />
    </div>
  );
}
`,
	}, config.Options{})

	chip := componentByName(t, result, "Chip")
	assert.Equal(t, 2, chip.UsageCount)
}

func TestUnreadableFileBecomesWarning(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/ok.tsx": `export function Ok() { return <div />; }`,
	})
	cfg, err := config.Resolve(config.Options{ComponentGlob: "src/**/*.tsx"}, nil)
	require.NoError(t, err)

	s := newTestScanner(t)
	result, err := s.Extract(extractor.Request{
		ProjectRoot: root,
		Config:      cfg,
		Files:       []string{"src/ok.tsx", "src/missing.tsx"},
	})
	require.NoError(t, err, "per-file failures never fail the run")

	assert.Equal(t, 1, result.FilesSkipped)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "src/missing.tsx", result.Warnings[0].File)
	assert.Len(t, result.Components, 1)
}

func TestRunAssemblesDocument(t *testing.T) {
	root := writeProject(t, map[string]string{
		"src/label.tsx": `export function Label({ text }: { text: string }) { return <label>{text}</label>; }`,
	})
	cfg, err := config.Resolve(config.Options{ComponentGlob: "src/**/*.tsx"}, nil)
	require.NoError(t, err)

	doc, result, err := Run(root, cfg, newTestScanner(t), nil)
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Empty(t, result.Warnings)
	require.Len(t, doc.Components, 1)
	assert.Equal(t, "src/**/*.tsx", doc.ComponentDir)
	assert.Equal(t, cfg.PathAlias, doc.PathAlias)
	assert.NoError(t, meta.Validate(doc))
}
