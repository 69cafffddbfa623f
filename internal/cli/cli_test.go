package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/layout"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

const testDocument = `{
  "title": "Learn Next.js",
  "nodes": [
    {"id": "1", "type": "video", "url": "https://www.youtube.com/embed/dQw4w9WgXcQ", "parent_id": null},
    {"id": "2", "type": "webpage", "url": "https://nextjs.org/docs", "parent_id": "1"},
    {"id": "3", "type": "text", "text": "Routing basics", "parent_id": "1"}
  ]
}`

// isolate points the config and cache directories at fresh temp dirs.
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	t.Setenv("GRAPHLEARN_REDIS_URL", "")
	return cacheHome
}

func writeDoc(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (*CLI, error) {
	t.Helper()
	c := New(os.Stderr, log.ErrorLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	return c, root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(os.Stderr, LogInfo).RootCommand()
	var names []string
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, want := range []string{"layout", "render", "validate", "inspect", "serve", "cache", "completion"} {
		assert.Contains(t, names, want)
	}
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestLayoutCommandWritesScene(t *testing.T) {
	isolate(t)
	src := writeDoc(t, testDocument)
	out := filepath.Join(t.TempDir(), "out.scene.json")

	_, err := execute(t, "layout", src, "-o", out, "--no-cache")
	require.NoError(t, err)

	sc, err := scene.ReadFile(out)
	require.NoError(t, err)
	assert.Len(t, sc.Nodes, 3)
	assert.Len(t, sc.Edges, 2)
	require.NotNil(t, sc.Title)
	assert.Equal(t, "Learn Next.js", sc.Title.Text)

	root, ok := sc.Node("1")
	require.True(t, ok)
	assert.Equal(t, 100.0, root.X)
	assert.Equal(t, 100.0, root.Y)
}

func TestLayoutCommandSpacingFlag(t *testing.T) {
	isolate(t)
	src := writeDoc(t, testDocument)
	dir := t.TempDir()
	narrow := filepath.Join(dir, "narrow.json")
	wide := filepath.Join(dir, "wide.json")

	_, err := execute(t, "layout", src, "-o", narrow, "--no-cache", "--spacing", "50")
	require.NoError(t, err)
	_, err = execute(t, "layout", src, "-o", wide, "--no-cache", "--spacing", "500")
	require.NoError(t, err)

	a, err := scene.ReadFile(narrow)
	require.NoError(t, err)
	b, err := scene.ReadFile(wide)
	require.NoError(t, err)

	na, _ := a.Node("3")
	nb, _ := b.Node("3")
	assert.Less(t, na.X, nb.X)
}

func TestLayoutCommandReserveOwnWidth(t *testing.T) {
	isolate(t)
	src := writeDoc(t, `{"nodes": [
  {"id": "r", "type": "webpage", "parent_id": null},
  {"id": "1", "type": "video", "parent_id": "r"},
  {"id": "2", "type": "video", "parent_id": "r"},
  {"id": "c", "type": "quiz", "parent_id": "1"}
]}`)
	out := filepath.Join(t.TempDir(), "out.scene.json")

	_, err := execute(t, "layout", src, "-o", out, "--no-cache", "--reserve-own-width")
	require.NoError(t, err)

	sc, err := scene.ReadFile(out)
	require.NoError(t, err)
	one, _ := sc.Node("1")
	two, _ := sc.Node("2")
	assert.Equal(t, -400.0, one.X)
	assert.Equal(t, 700.0, two.X)
}

func TestRenderCommandWritesEachFormat(t *testing.T) {
	isolate(t)
	src := writeDoc(t, testDocument)
	base := filepath.Join(t.TempDir(), "canvas")

	_, err := execute(t, "render", src, "-f", "svg,json", "-o", base, "--no-cache")
	require.NoError(t, err)

	svg, err := os.ReadFile(base + ".svg")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(svg), "<?xml"))

	sc, err := scene.ReadFile(base + ".json")
	require.NoError(t, err)
	assert.Len(t, sc.Nodes, 3)
}

func TestRenderCommandRejectsUnknownTheme(t *testing.T) {
	isolate(t)
	src := writeDoc(t, testDocument)

	_, err := execute(t, "render", src, "--theme", "neon", "--no-cache", "-o", filepath.Join(t.TempDir(), "x.svg"))
	require.Error(t, err)
}

func TestValidateCommand(t *testing.T) {
	isolate(t)

	_, err := execute(t, "validate", writeDoc(t, testDocument), "--no-cache")
	require.NoError(t, err)

	twoRoots := `{"nodes": [{"id": "a", "type": "text", "parent_id": null}, {"id": "b", "type": "text", "parent_id": null}]}`
	_, err = execute(t, "validate", writeDoc(t, twoRoots), "--no-cache")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeMultipleRoots), "got %v", err)
}

func TestInspectCommandPlain(t *testing.T) {
	isolate(t)
	_, err := execute(t, "inspect", writeDoc(t, testDocument), "--plain", "--no-cache")
	require.NoError(t, err)
}

func TestConfigFlagMissingFile(t *testing.T) {
	isolate(t)
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "missing.toml"), "validate", writeDoc(t, testDocument))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound), "got %v", err)
}

func TestConfigFileSetsLayout(t *testing.T) {
	isolate(t)
	cfgPath := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[layout]\nhorizontal_spacing = 42\n\n[cache]\nbackend = \"none\"\n"), 0o644))

	c, err := execute(t, "--config", cfgPath, "validate", writeDoc(t, testDocument))
	require.NoError(t, err)
	assert.Equal(t, 42.0, c.Config.Layout.HorizontalSpacing)
	assert.Equal(t, cfgPath, c.Config.Path)
}

func TestCacheClearAfterRender(t *testing.T) {
	cacheHome := isolate(t)
	src := writeDoc(t, testDocument)

	_, err := execute(t, "render", src, "-f", "json", "-o", filepath.Join(t.TempDir(), "scene.json"))
	require.NoError(t, err)

	pipelineDir := filepath.Join(cacheHome, appName, "pipeline")
	before := countFiles(t, pipelineDir)
	require.Positive(t, before)

	_, err = execute(t, "cache", "clear")
	require.NoError(t, err)
	assert.Zero(t, countFiles(t, pipelineDir))
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	_ = filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			n++
		}
		return nil
	})
	return n
}

func TestCacheDirPrefersConfig(t *testing.T) {
	isolate(t)
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Dir = "/tmp/graphlearn-test"

	dir, err := c.cacheDir()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/graphlearn-test", dir)

	c.Config.Cache.Dir = ""
	dir, err = c.cacheDir()
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(dir, appName), dir)
}

func TestNewCacheNoneBackend(t *testing.T) {
	isolate(t)
	c := New(os.Stderr, LogInfo)
	c.Config.Cache.Backend = "none"

	store, err := c.newCache(context.Background(), false)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Set(context.Background(), "k", []byte("v"), 0))
	_, hit, err := store.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestParseFormats(t *testing.T) {
	assert.Equal(t, []string{"svg"}, parseFormats(""))
	assert.Equal(t, []string{"svg", "png"}, parseFormats("SVG, png"))
}

func TestOutputBase(t *testing.T) {
	tests := []struct {
		output, source, want string
	}{
		{"", "examples/nextjs.json", "examples/nextjs"},
		{"", "https://example.com/doc.json", appName},
		{"out/canvas.svg", "doc.json", "out/canvas"},
		{"out/canvas", "doc.json", "out/canvas"},
		{"out/canvas.v2", "doc.json", "out/canvas.v2"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, outputBase(tt.output, tt.source), "outputBase(%q, %q)", tt.output, tt.source)
	}
}

func TestDisplayAddr(t *testing.T) {
	assert.Equal(t, "http://localhost:8080", displayAddr(":8080"))
	assert.Equal(t, "http://127.0.0.1:9000", displayAddr("127.0.0.1:9000"))
}

func TestNodeListModel(t *testing.T) {
	doc := &content.Document{
		Title: "Course",
		Nodes: []content.Node{
			{ID: "root", Category: content.CategoryVideo},
			{ID: "child", Category: content.CategoryText, Text: "notes", ParentID: content.ParentRef("root")},
			{ID: "odd", Category: "quiz", ParentID: content.ParentRef("root")},
		},
	}
	res, err := layout.Compute(doc, layout.DefaultConfig())
	require.NoError(t, err)

	var m tea.Model = NewNodeListModel(res)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	nl := m.(NodeListModel)
	assert.Equal(t, 1, nl.Cursor)
	assert.True(t, nl.Expanded)

	view := nl.View()
	assert.Contains(t, view, "Course")
	assert.Contains(t, view, "child")
	assert.Contains(t, view, "notes")
	assert.Contains(t, view, "[2/3]")

	_, cmd := nl.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	assert.NotNil(t, cmd)
}

func TestNodeListModelCursorBounds(t *testing.T) {
	doc := &content.Document{Nodes: []content.Node{{ID: "only", Category: content.CategoryText}}}
	res, err := layout.Compute(doc, layout.DefaultConfig())
	require.NoError(t, err)

	var m tea.Model = NewNodeListModel(res)
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.(NodeListModel).Cursor)
	assert.Equal(t, "Layout", m.(NodeListModel).title())
}

func TestTreeDepth(t *testing.T) {
	doc := &content.Document{Nodes: []content.Node{
		{ID: "a", Category: content.CategoryText},
		{ID: "b", Category: content.CategoryText, ParentID: content.ParentRef("a")},
		{ID: "c", Category: content.CategoryText, ParentID: content.ParentRef("b")},
		{ID: "d", Category: content.CategoryText, ParentID: content.ParentRef("a")},
	}}
	tree, err := content.BuildTree(doc)
	require.NoError(t, err)
	assert.Equal(t, 2, treeDepth(tree))
}

func runRoot(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	root := New(os.Stderr, log.ErrorLevel).RootCommand()
	root.SetOut(&out)
	root.SetArgs(args)
	require.NoError(t, root.ExecuteContext(context.Background()))
	return out.String()
}

func TestCompletionScript(t *testing.T) {
	isolate(t)
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			assert.Contains(t, runRoot(t, "completion", shell), appName)
		})
	}
}

func TestFlagValueCompletion(t *testing.T) {
	isolate(t)
	tests := []struct {
		args []string
		want []string
	}{
		{[]string{"render", "doc.json", "--theme", ""}, []string{"light", "dark"}},
		{[]string{"render", "doc.json", "--type", ""}, []string{"canvas", "nodelink"}},
		{[]string{"layout", "doc.json", "--row-mode", ""}, []string{"parent", "fixed"}},
		{[]string{"serve", "doc.json", "--align", ""}, []string{"extent", "centers"}},
		{[]string{"validate", ""}, documentExtensions},
	}
	for _, tt := range tests {
		out := runRoot(t, append([]string{cobra.ShellCompRequestCmd}, tt.args...)...)
		for _, w := range tt.want {
			assert.Contains(t, out, w, "completing %v", tt.args)
		}
	}
}

func TestCategoryStyle(t *testing.T) {
	assert.Equal(t, colorRed, categoryStyle(content.CategoryVideo).GetForeground())
	assert.Equal(t, colorBlue, categoryStyle(content.CategoryWebpage).GetForeground())
	assert.Equal(t, colorDim, categoryStyle("quiz").GetForeground())
}
