package multiwalllib

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Row owns the settings of one monitor while they are being edited.
type Row struct {
	Index int
	Rect  MonitorRect

	file       string
	mode       Mode
	background string
}

// NewRows creates one row per monitor, seeded from the saved states.
func NewRows(rects []MonitorRect, saved States, defaults MonitorState) []*Row {
	rows := make([]*Row, len(rects))
	for i, r := range rects {
		st, ok := saved.For(i)
		if !ok {
			st = defaults
		}

		row := &Row{Index: i, Rect: r, mode: st.Mode, background: st.Background}
		if st.File != nil {
			row.file = *st.File
		}
		if row.background == "" {
			row.background = defaults.Background
		}
		rows[i] = row
	}
	return rows
}

func (r *Row) SetFile(path string) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("Empty file path, use clear to remove the image")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	r.file = abs
	return nil
}

func (r *Row) ClearFile() {
	r.file = ""
}

func (r *Row) SetMode(name string) error {
	m, ok := ParseMode(name)
	if !ok {
		return fmt.Errorf("Unknown mode [%s]", name)
	}
	r.mode = m
	return nil
}

func (r *Row) SetBackground(hex string) error {
	c, err := ParseColor(hex)
	if err != nil {
		return err
	}
	r.background = FormatColor(c)
	return nil
}

// State is a snapshot, later edits to the row do not affect it.
func (r *Row) State() MonitorState {
	st := MonitorState{Mode: r.mode, Background: r.background}
	if r.file != "" {
		f := r.file
		st.File = &f
	}
	return st
}

func (r *Row) String() string {
	file := "(none)"
	if r.file != "" {
		file = r.file
	}
	return fmt.Sprintf("Monitor %d: %dx%d @ (%d, %d) mode=%s background=%s file=%s",
		r.Index+1, r.Rect.Width, r.Rect.Height, r.Rect.X, r.Rect.Y,
		r.mode, r.background, file)
}

func GatherStates(rows []*Row) States {
	s := make(States, len(rows))
	for _, r := range rows {
		s[strconv.Itoa(r.Index)] = r.State()
	}
	return s
}
