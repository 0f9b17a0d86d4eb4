package email

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateManager_DefaultsEscapeInput(t *testing.T) {
	tm := NewTemplateManager()

	html, err := tm.Render(TemplateRejection, TemplateData{
		"RecipientName": "Tom",
		"Message":       "<script>x</script>",
		"Title":         "Move-in",
		"ViewURL":       "http://localhost:3000/reports/shared/abc",
	})
	require.NoError(t, err)
	assert.Contains(t, html, "rejected")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.Contains(t, html, "/reports/shared/abc")
}

func TestTemplateManager_LoadOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, TemplateCustom+".html"), []byte("custom {{.Message}}"), 0o600))

	tm := NewTemplateManager()
	require.NoError(t, tm.LoadTemplates(dir))

	out, err := tm.Render(TemplateCustom, TemplateData{"Message": "hi"})
	require.NoError(t, err)
	assert.Equal(t, "custom hi", out)

	_, err = tm.Render("missing", nil)
	assert.Error(t, err)
}
