//go:build !windows
// +build !windows

package multiwalllib

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestShellQuote(t *testing.T) {
	tests := map[string]string{
		"/tmp/wall.jpg": `'/tmp/wall.jpg'`,
		"it's spaced":  `'it'\''s spaced'`,
		"$HOME `x` \"": `'$HOME ` + "`x`" + ` "'`,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			if got := shellQuote(in); got != want {
				t.Errorf("shellQuote(%q) = %s, want %s", in, got, want)
			}
		})
	}
}

func TestWriteFallbackScript(t *testing.T) {
	dir := t.TempDir()
	wallpaper := filepath.Join(dir, "my wallpaper.jpg")

	// An existing script with the wrong mode is replaced and made executable
	stale := filepath.Join(dir, "apply_wallpaper.sh")
	if err := os.WriteFile(stale, []byte("old"), 0600); err != nil {
		t.Fatal(err)
	}

	script, err := writeFallbackScript(wallpaper)
	if err != nil {
		t.Fatalf("writeFallbackScript() error = %v", err)
	}
	if script != stale {
		t.Errorf("script = %q, want %q", script, stale)
	}

	fi, err := os.Stat(script)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm()&0100 == 0 {
		t.Errorf("script mode = %v, want executable", fi.Mode())
	}

	b, err := os.ReadFile(script)
	if err != nil {
		t.Fatal(err)
	}
	content := string(b)

	if !strings.HasPrefix(content, "#!/bin/bash\n") {
		t.Error("script has no bash shebang")
	}
	for _, want := range []string{
		"picture-uri '" + "file://" + wallpaper + "'",
		"picture-uri-dark '" + "file://" + wallpaper + "'",
		"picture-options 'spanned'",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("script does not contain %q:\n%s", want, content)
		}
	}
}

func TestApplyWallpaperMissingFile(t *testing.T) {
	r := ApplyWallpaper(filepath.Join(t.TempDir(), "missing.jpg"), zap.NewNop())
	if r.OK {
		t.Error("applying a missing wallpaper should fail")
	}
	if r.Script != "" {
		t.Errorf("no script should be written, got %q", r.Script)
	}
}
