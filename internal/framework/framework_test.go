package framework

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	t.Run("no package.json", func(t *testing.T) {
		dir := t.TempDir()
		assert.Equal(t, Generic, Detect(dir))
	})

	t.Run("next with app dir", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"dependencies":{"next":"14.0.0"}}`)
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "app"), 0o755))
		assert.Equal(t, AppRouter, Detect(dir))
	})

	t.Run("next without app dir", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `{"dependencies":{"next":"14.0.0"}}`)
		assert.Equal(t, PagesRouter, Detect(dir))
	})

	t.Run("malformed package.json", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "package.json", `not json`)
		assert.Equal(t, Generic, Detect(dir))
	})
}

func TestRouteForFile(t *testing.T) {
	assert.Equal(t, "/", RouteForFile(AppRouter, "src/app/page.tsx"))
	assert.Equal(t, "/settings/billing", RouteForFile(AppRouter, "src/app/settings/billing/page.tsx"))
	assert.Equal(t, "", RouteForFile(AppRouter, "src/app/settings/billing/layout.tsx"))
	assert.Equal(t, "", RouteForFile(PagesRouter, "src/app/page.tsx"))
	assert.Equal(t, "", RouteForFile(Generic, "app/page.jsx"))
	assert.Equal(t, "/", RouteForFile(AppRouter, "app/page.jsx"))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
