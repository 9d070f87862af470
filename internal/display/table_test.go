package display

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harrison/stimgen/internal/controllers"
)

func TestControllerTableRender(t *testing.T) {
	root := filepath.FromSlash("/app/controllers")
	defs := []controllers.Definition{
		{Identifier: "test", BindingName: "test0", Path: filepath.Join(root, "test_controller.js")},
		{Identifier: "nested--test", BindingName: "nested__test1", Path: filepath.Join(root, "nested", "test_controller.js")},
	}

	var buf bytes.Buffer
	NewControllerTable(&buf, root).Render(defs)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 4)
	assert.Equal(t, "Controllers in "+root+":", lines[0])
	assert.Contains(t, lines[1], "[1/2] test")
	assert.Contains(t, lines[1], "test_controller.js")
	assert.Contains(t, lines[2], "[2/2] nested--test")
	assert.Contains(t, lines[2], "nested/test_controller.js")
	assert.Contains(t, lines[3], "Found 2 controllers")
}

func TestControllerTableRenderEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewControllerTable(&buf, "/app/controllers").Render(nil)

	assert.Contains(t, buf.String(), "(none)")
	assert.NotContains(t, buf.String(), "Found")
}

func TestControllerTableRenderSingular(t *testing.T) {
	var buf bytes.Buffer
	NewControllerTable(&buf, "/app").Render([]controllers.Definition{
		{Identifier: "hello", Path: "/app/hello_controller.js"},
	})

	assert.Contains(t, buf.String(), "Found 1 controller\n")
}
