package multiwalllib

import (
	"path/filepath"
	"testing"
)

func TestNewRows(t *testing.T) {
	rects := []MonitorRect{
		{X: 0, Y: 0, Width: 1920, Height: 1080},
		{X: 1920, Y: 0, Width: 1920, Height: 1080},
	}
	saved := States{"1": {File: strPtr("/a.png"), Mode: ModeCenter}}
	defaults := MonitorState{Mode: ModeFit, Background: "#101010"}

	rows := NewRows(rects, saved, defaults)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}

	st := rows[0].State()
	if st.File != nil || st.Mode != ModeFit || st.Background != "#101010" {
		t.Errorf("row 0 = %+v, want the defaults", st)
	}

	st = rows[1].State()
	if st.File == nil || *st.File != "/a.png" || st.Mode != ModeCenter {
		t.Errorf("row 1 = %+v", st)
	}
	// Saved states without a background get the default
	if st.Background != "#101010" {
		t.Errorf("row 1 background = %q", st.Background)
	}
}

func TestRowEdits(t *testing.T) {
	row := NewRows([]MonitorRect{{Width: 10, Height: 10}}, States{}, MonitorState{})[0]

	before := row.State()

	if err := row.SetFile("relative.png"); err != nil {
		t.Fatal(err)
	}
	if err := row.SetMode("tile"); err != nil {
		t.Fatal(err)
	}
	if err := row.SetBackground("ABC"); err != nil {
		t.Fatal(err)
	}

	if before.File != nil || before.Mode != ModeFill {
		t.Errorf("earlier snapshot changed: %+v", before)
	}

	st := row.State()
	if st.File == nil || !filepath.IsAbs(*st.File) || filepath.Base(*st.File) != "relative.png" {
		t.Errorf("file = %v, want an absolute path", st.File)
	}
	if st.Mode != ModeTile {
		t.Errorf("mode = %v", st.Mode)
	}
	if st.Background != "#aabbcc" {
		t.Errorf("background = %q, want #aabbcc", st.Background)
	}

	for _, empty := range []string{"", "  "} {
		if err := row.SetFile(empty); err == nil {
			t.Errorf("SetFile(%q) should fail", empty)
		}
	}
	if st = row.State(); st.File == nil || filepath.Base(*st.File) != "relative.png" {
		t.Errorf("empty path replaced the file: %v", st.File)
	}

	if err := row.SetMode("zoom"); err == nil {
		t.Error("expected an error for an unknown mode")
	}
	if err := row.SetBackground("#zzzzzz"); err == nil {
		t.Error("expected an error for an invalid colour")
	}
	if st = row.State(); st.Mode != ModeTile || st.Background != "#aabbcc" {
		t.Errorf("failed edits changed the row: %+v", st)
	}

	row.ClearFile()
	if row.State().File != nil {
		t.Error("ClearFile did not remove the file")
	}
}

func TestGatherStates(t *testing.T) {
	rows := NewRows(make([]MonitorRect, 3), States{}, MonitorState{Mode: ModeStretch})
	states := GatherStates(rows)

	if len(states) != 3 {
		t.Fatalf("got %d states, want 3", len(states))
	}
	for _, k := range []string{"0", "1", "2"} {
		if st, ok := states[k]; !ok || st.Mode != ModeStretch {
			t.Errorf("state %s = %+v, %v", k, st, ok)
		}
	}
}
