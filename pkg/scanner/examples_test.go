package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/propview/pkg/config"
)

func TestExamplesFromJSDoc(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/alert.tsx": `
/**
 * Shows a status message.
 *
 * @example Error state
 * <Alert tone="error" title="Something broke" />
 * @example
 * <Alert tone="info" title="Heads up" dismissible />
 */
export function Alert({ tone, title }: { tone: 'info' | 'error'; title: string; dismissible?: boolean }) {
  return <div role="alert">{title}</div>;
}
`,
	}, config.Options{})

	alert := componentByName(t, result, "Alert")
	assert.Equal(t, "Shows a status message.", alert.Description)
	require.Len(t, alert.Examples, 2)

	first := alert.Examples[0]
	assert.Equal(t, "Error state", first.Label)
	assert.Equal(t, map[string]string{"tone": "error", "title": "Something broke"}, first.Props)
	assert.Empty(t, first.Wrapper)

	second := alert.Examples[1]
	assert.Equal(t, "Ex 2", second.Label, "unlabeled examples fall back to their ordinal")
	assert.Equal(t, "true", second.Props["dismissible"], "boolean shorthand reads as true")
}

func TestExamplesIgnoreExpressionAttributes(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/counter.tsx": `
/**
 * @example
 * <Counter start="5" step={computeStep()} />
 */
export function Counter({ start }: { start: string }) {
  return <span>{start}</span>;
}
`,
	}, config.Options{})

	counter := componentByName(t, result, "Counter")
	require.Len(t, counter.Examples, 1)
	assert.Equal(t, map[string]string{"start": "5"}, counter.Examples[0].Props)
}

func TestWrapperPromotedWhenAllExamplesAgree(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/accordion-item.tsx": `
/**
 * @example First
 * <Accordion type="single" collapsible>
 *   <AccordionItem value="a" />
 * </Accordion>
 * @example Second
 * <Accordion type="single">
 *   <AccordionItem value="b" />
 * </Accordion>
 */
export function AccordionItem({ value }: { value: string }) {
  return <div />;
}
`,
	}, config.Options{})

	item := componentByName(t, result, "AccordionItem")
	require.Len(t, item.Examples, 2)
	assert.Equal(t, "Accordion", item.Examples[0].Wrapper)
	assert.Equal(t, map[string]string{"value": "a"}, item.Examples[0].Props)

	require.Len(t, item.Wrappers, 1)
	wrapper := item.Wrappers[0]
	assert.Equal(t, "Accordion", wrapper.Name)
	assert.Equal(t, map[string]string{"type": "single", "collapsible": "true"}, wrapper.Defaults,
		"defaults are first-write-wins across examples")
}

func TestWrapperRequiresDirectContainment(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/toast.tsx": `
/**
 * @example
 * <ToastProvider swipeDirection="right">
 *   <ToastViewport>
 *     <Toast title="Saved" />
 *   </ToastViewport>
 * </ToastProvider>
 */
export function Toast({ title }: { title: string }) {
  return <div>{title}</div>;
}
`,
	}, config.Options{})

	toast := componentByName(t, result, "Toast")
	require.Len(t, toast.Examples, 1)
	assert.Empty(t, toast.Examples[0].Wrapper,
		"an intermediate element breaks the wrapper relationship")
	assert.Equal(t, map[string]string{"title": "Saved"}, toast.Examples[0].Props)
	assert.Empty(t, toast.Wrappers)
}

func TestWrapperSuppressedByHostElementBetween(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/menu-item.tsx": `
/**
 * @example
 * <Menu open>
 *   <div className="menu-list">
 *     <MenuItem label="Copy" />
 *   </div>
 * </Menu>
 */
export function MenuItem({ label }: { label: string }) {
  return <li>{label}</li>;
}
`,
	}, config.Options{})

	item := componentByName(t, result, "MenuItem")
	require.Len(t, item.Examples, 1)
	assert.Empty(t, item.Examples[0].Wrapper,
		"host elements count as structure between wrapper and component")
	assert.Empty(t, item.Wrappers)
}

func TestWrapperSuppressedOnDisagreement(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/tab-panel.tsx": `
/**
 * @example
 * <Tabs defaultValue="a">
 *   <TabPanel value="a" />
 * </Tabs>
 * @example
 * <Accordion type="single">
 *   <TabPanel value="b" />
 * </Accordion>
 */
export function TabPanel({ value }: { value: string }) {
  return <div />;
}
`,
	}, config.Options{})

	panel := componentByName(t, result, "TabPanel")
	require.Len(t, panel.Examples, 2)
	assert.Empty(t, panel.Wrappers, "conflicting wrapper names suppress promotion")
}

func TestWrapperSuppressedWhenOnlySomeExamplesHaveOne(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/chip2.tsx": `
/**
 * @example
 * <ChipGroup spacing="2">
 *   <Chip label="a" />
 * </ChipGroup>
 * @example
 * <Chip label="b" />
 */
export function Chip({ label }: { label: string }) {
  return <span>{label}</span>;
}
`,
	}, config.Options{})

	chip := componentByName(t, result, "Chip")
	require.Len(t, chip.Examples, 2)
	assert.Equal(t, "ChipGroup", chip.Examples[0].Wrapper)
	assert.Empty(t, chip.Examples[1].Wrapper)
	assert.Empty(t, chip.Wrappers)
}

func TestNoExamplesYieldsEmptyList(t *testing.T) {
	result := runFixture(t, map[string]string{
		"src/plain.tsx": `
export function Plain({ text }: { text: string }) {
  return <p>{text}</p>;
}
`,
	}, config.Options{})

	plain := componentByName(t, result, "Plain")
	assert.NotNil(t, plain.Examples)
	assert.Empty(t, plain.Examples)
	assert.Empty(t, plain.Wrappers)
}

func TestParseJSDocTagSequence(t *testing.T) {
	doc := parseJSDoc(`/**
 * A card layout.
 *
 * @param unusedTag ignored
 * @example Basic
 * <Card title="hi" />
 * @see elsewhere
 * @example
 * <Card title="bye" />
 */`)

	assert.Equal(t, "A card layout.", doc.Description)
	require.Len(t, doc.Examples, 2)
	assert.Equal(t, "Basic", doc.Examples[0].Label)
	assert.Equal(t, `<Card title="hi" />`, doc.Examples[0].Code)
	assert.Empty(t, doc.Examples[1].Label)
	assert.Equal(t, `<Card title="bye" />`, doc.Examples[1].Code)
}
