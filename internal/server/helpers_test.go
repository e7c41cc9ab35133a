package server

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"svgserve/internal/config"
	"svgserve/internal/logging"
)

const circleSVG = `<svg width="10" height="10"><circle r="4"/></svg>`

// newTestServer builds a Server over a temp SVG tree:
//
//	circle.svg
//	broken.svg
//	icons/star.svg
//	nested/icon.svg
//
// plus secret.txt and outside.svg one level above the root.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	parent := t.TempDir()
	root := filepath.Join(parent, "svgs")
	for _, dir := range []string{filepath.Join(root, "icons"), filepath.Join(root, "nested")} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create dir: %v", err)
		}
	}

	files := map[string]string{
		filepath.Join(root, "circle.svg"):         circleSVG,
		filepath.Join(root, "icons", "star.svg"):  `<svg><path d="M0 0"/></svg>`,
		filepath.Join(root, "nested", "icon.svg"): `<svg width="24" height="24"><rect/></svg>`,
		filepath.Join(root, "broken.svg"):         `not svg markup at all`,
		filepath.Join(parent, "secret.txt"):       "top secret",
		filepath.Join(parent, "outside.svg"):      `<svg width="1"/>`,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}

	cfg := config.Default()
	cfg.RootDir = root
	if err := cfg.CanonicalizeRoot(); err != nil {
		t.Fatalf("CanonicalizeRoot failed: %v", err)
	}

	logger := logging.NewLogger(logging.Config{
		Format: logging.HumanFormat,
		Level:  logging.ErrorLevel,
		Output: io.Discard,
	})

	return New(cfg, logger)
}
