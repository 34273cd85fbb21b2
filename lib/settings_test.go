package multiwalllib

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSettingsMissingFile(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if s.Monitors == nil || len(s.Monitors) != 0 {
		t.Errorf("expected empty monitors, got %v", s.Monitors)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	in := &Settings{
		Monitors: States{
			"0": {File: strPtr("/walls/a.png"), Mode: ModeTile, Background: "#112233"},
			"1": {Mode: ModeFit, Background: "#000000"},
		},
		LastDirectory: "/walls",
	}

	if err := SaveSettings(path, in); err != nil {
		t.Fatalf("SaveSettings() error = %v", err)
	}

	out, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}

	if out.LastDirectory != "/walls" {
		t.Errorf("LastDirectory = %q", out.LastDirectory)
	}

	st, ok := out.Monitors.For(0)
	if !ok || st.File == nil || *st.File != "/walls/a.png" || st.Mode != ModeTile || st.Background != "#112233" {
		t.Errorf("monitor 0 = %+v", st)
	}
	st, ok = out.Monitors.For(1)
	if !ok || st.File != nil || st.Mode != ModeFit {
		t.Errorf("monitor 1 = %+v", st)
	}
	if _, ok = out.Monitors.For(2); ok {
		t.Error("monitor 2 should have no settings")
	}
}

func TestSettingsFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := SaveSettings(path, &Settings{Monitors: States{"0": {Mode: ModeCenter, Background: "#ffffff"}}})
	if err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var raw map[string]interface{}
	if err = json.Unmarshal(b, &raw); err != nil {
		t.Fatal(err)
	}
	if _, ok := raw["last_directory"]; !ok {
		t.Error("missing last_directory")
	}
	m := raw["monitors"].(map[string]interface{})["0"].(map[string]interface{})
	if m["file"] != nil {
		t.Errorf("file = %v, want null", m["file"])
	}
	if m["mode"] != "center" || m["background"] != "#ffffff" {
		t.Errorf("monitor 0 = %v", m)
	}
}

func TestLoadSettingsToleratesUnknownModes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(path, []byte(`{
  "monitors": {"0": {"file": null, "mode": "zoom", "background": "#123456"}},
  "last_directory": ""
}`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	s, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings() error = %v", err)
	}
	if st, _ := s.Monitors.For(0); st.Mode != ModeFill {
		t.Errorf("mode = %v, want fill", st.Mode)
	}
}

func TestLoadSettingsCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSettings(path); err == nil {
		t.Error("expected an error for corrupt settings")
	}
}
