package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propview/pkg/config"
	"github.com/gnana997/propview/pkg/meta"
)

func TestCVAVariantsBecomeEnumProps(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/button.tsx": `
import { cva, type VariantProps } from "class-variance-authority";

const buttonVariants = cva("inline-flex items-center", {
  variants: {
    variant: {
      default: "bg-primary text-primary-foreground",
      destructive: "bg-destructive",
      outline: "border border-input",
    },
    size: {
      default: "h-10 px-4",
      sm: "h-9 px-3",
      lg: "h-11 px-8",
    },
  },
  defaultVariants: {
    variant: "default",
    size: "default",
  },
});

export interface ButtonProps extends VariantProps<typeof buttonVariants> {
  asChild?: boolean;
}

export function Button({ variant, size, asChild = false }: ButtonProps) {
  return <button className={buttonVariants({ variant, size })} />;
}
`,
	}, config.Options{})

	button := componentByName(t, result, "Button")
	require.Contains(t, button.Props, "variant")
	require.Contains(t, button.Props, "size")

	variant := button.Props["variant"]
	assert.Equal(t, meta.KindEnum, variant.Type.Kind)
	assert.Equal(t, []string{"default", "destructive", "outline"}, variant.Type.Values)
	assert.Equal(t, "default", variant.Default)
	assert.False(t, variant.Required)

	size := button.Props["size"]
	assert.Equal(t, []string{"default", "sm", "lg"}, size.Type.Values)
	assert.Equal(t, "default", size.Default)

	asChild := button.Props["asChild"]
	assert.Equal(t, meta.KindBoolean, asChild.Type.Kind)
	assert.Equal(t, "false", asChild.Default)
}

func TestCVAScopedByVariantPropsReference(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/menu.tsx": `
import { cva, type VariantProps } from "class-variance-authority";

const menuVariants = cva("menu", {
  variants: {
    density: { compact: "gap-1", comfortable: "gap-3" },
  },
});

const menuButtonVariants = cva("menu-button", {
  variants: {
    emphasis: { subtle: "opacity-70", bold: "font-semibold" },
  },
  defaultVariants: { emphasis: "subtle" },
});

export function Menu({ density }: { density?: string } & VariantProps<typeof menuVariants>) {
  return <nav className={menuVariants({ density })} />;
}

export function MenuButton({ emphasis }: VariantProps<typeof menuButtonVariants>) {
  return <button className={menuButtonVariants({ emphasis })} />;
}
`,
	}, config.Options{})

	menu := componentByName(t, result, "Menu")
	require.Contains(t, menu.Props, "density")
	assert.Equal(t, []string{"compact", "comfortable"}, menu.Props["density"].Type.Values)
	assert.NotContains(t, menu.Props, "emphasis",
		"variants stay with the set the component references")

	button := componentByName(t, result, "MenuButton")
	require.Contains(t, button.Props, "emphasis")
	assert.Equal(t, []string{"subtle", "bold"}, button.Props["emphasis"].Type.Values)
	assert.Equal(t, "subtle", button.Props["emphasis"].Default)
	assert.NotContains(t, button.Props, "density")
}

func TestCVALoneSetAttachesToLoneComponent(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/badge.tsx": `
import { cva } from "class-variance-authority";

const badgeVariants = cva("badge", {
  variants: {
    tone: { neutral: "bg-muted", danger: "bg-destructive" },
  },
  defaultVariants: { tone: "neutral" },
});

export function Badge({ tone }: { tone?: string }) {
  return <span className={badgeVariants({ tone })} />;
}
`,
	}, config.Options{})

	badge := componentByName(t, result, "Badge")
	tone := badge.Props["tone"]
	assert.Equal(t, meta.KindEnum, tone.Type.Kind,
		"a string-typed prop gains the variant value set")
	assert.Equal(t, []string{"neutral", "danger"}, tone.Type.Values)
	assert.Equal(t, "neutral", tone.Default)
}

func TestCVADeclaredEnumOutranksVariants(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/chip-cva.tsx": `
import { cva } from "class-variance-authority";

const chipVariants = cva("chip", {
  variants: {
    shade: { light: "bg-gray-100", mid: "bg-gray-400", dark: "bg-gray-800" },
  },
});

export function Chip({ shade }: { shade?: 'light' | 'dark' }) {
  return <span className={chipVariants({ shade })} />;
}
`,
	}, config.Options{})

	chip := componentByName(t, result, "Chip")
	assert.Equal(t, []string{"light", "dark"}, chip.Props["shade"].Type.Values,
		"a declared literal union is not widened by the variant set")
}

func TestExtractCVASetsParsesQuotedKeys(t *testing.T) {
	source := []byte(`
const alertVariants = cva("alert", {
  variants: {
    "variant": {
      "default": "bg-background",
      "destructive": "border-destructive",
    },
  },
  defaultVariants: { "variant": "default" },
});
`)
	s := newTestScanner(t)
	tree, err := s.parsers.ParseFile(source, "alert.tsx")
	require.NoError(t, err)
	defer tree.Close()

	sets := extractCVASets(tree.RootNode(), source)
	require.Len(t, sets, 1)
	assert.Equal(t, "alertVariants", sets[0].VariableName)
	require.Len(t, sets[0].Fields, 1)
	assert.Equal(t, "variant", sets[0].Fields[0].Name)
	assert.Equal(t, []string{"default", "destructive"}, sets[0].Fields[0].Type.Values)
	assert.Equal(t, map[string]string{"variant": "default"}, sets[0].Defaults)
}
