package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	lib "github.com/awused/multiwall/lib"
	prompt "github.com/c-bata/go-prompt"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func interactiveCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "interactive"
	cmd.Usage = "Edit every monitor's settings, rendering a preview after each change"
	cmd.Flags = []cli.Flag{
		&cli.BoolFlag{
			Name:  show,
			Usage: "Draw the preview in the terminal after each change",
		},
		&cli.IntFlag{
			Name:  columns,
			Value: 100,
			Usage: "Width of the terminal preview in cells",
		},
	}
	cmd.Action = interactiveAction
	return cmd
}

// session is the state behind the prompt. Every change re-renders the
// preview and saves the settings.
type session struct {
	conf     *lib.Config
	settings *lib.Settings
	rows     []*lib.Row
	selected int
	show     bool
	columns  int
}

func interactiveAction(ctxt *cli.Context) error {
	c, s, err := loadSettings()
	if err != nil {
		return err
	}

	monitors, err := getMonitors(ctxt)
	if err != nil {
		return err
	}

	sess := &session{
		conf:     c,
		settings: s,
		rows:     lib.NewRows(monitors, s.Monitors, defaultState(c)),
		show:     ctxt.Bool(show),
		columns:  ctxt.Int(columns),
	}

	// Large buffered channel so it doesn't block signals if it's busy
	sigs := make(chan os.Signal, 100)
	promptChan := make(chan struct{}, 1)
	inputChan := make(chan string)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGHUP)

	go func() {
		sess.promptUntilDone(inputChan)
		promptChan <- struct{}{}
	}()

	for {
		select {
		case <-promptChan:
			return nil
		case <-sigs:
			inputChan <- "exit"
		}
	}
}

func completer(d prompt.Document) []prompt.Suggest {
	s := []prompt.Suggest{
		{Text: "exit", Description: "Exit the program"},
		{Text: "print", Description: "Print the settings of every monitor"},
		{Text: "preview", Description: "Render the preview again"},
		{Text: "apply", Description: "Write the full wallpaper and set it"},
		{Text: monitor, Description: "Select the monitor to edit by number"},
		{Text: file, Description: "Set the image for the selected monitor"},
		{Text: clearFile, Description: "Remove the image from the selected monitor"},
		{Text: mode, Description: "Set the mode: " + strings.Join(lib.ModeNames(), ", ")},
		{Text: background, Description: "Set the background colour as #RRGGBB"},
	}
	return prompt.FilterHasPrefix(s, d.TextBeforeCursor(), true)
}

func (s *session) row() *lib.Row {
	return s.rows[s.selected]
}

func (s *session) selectMonitor(input string) error {
	n, err := strconv.Atoi(input)
	if err != nil || n < 1 || n > len(s.rows) {
		return fmt.Errorf("Monitor must be between 1 and %d", len(s.rows))
	}
	s.selected = n - 1
	fmt.Println(s.row())
	return nil
}

func (s *session) setFile(input string) error {
	if err := s.row().SetFile(input); err != nil {
		return err
	}
	s.settings.LastDirectory = filepath.Dir(*s.row().State().File)
	return nil
}

func (s *session) setMode(input string) error {
	return s.row().SetMode(input)
}

func (s *session) setBackground(input string) error {
	return s.row().SetBackground(input)
}

// changed mirrors every edit to disk and to the preview.
func (s *session) changed() {
	for k, v := range lib.GatherStates(s.rows) {
		s.settings.Monitors[k] = v
	}
	if err := saveSettings(s.conf, s.settings); err != nil {
		fmt.Println("Error saving settings:", err)
	}
	s.preview()
}

func (s *session) preview() {
	img, err := renderPreview(
		s.conf, s.rects(), lib.GatherStates(s.rows), s.conf.PreviewSize, s.conf.PreviewFile)
	if err != nil {
		fmt.Println("Error rendering preview:", err)
		return
	}
	fmt.Println("Preview written to", s.conf.PreviewFile)

	if s.show {
		if err = showInTerminal(img, s.columns); err != nil {
			logger.Debug("Could not draw preview in terminal", zap.Error(err))
		}
	}
}

func (s *session) apply() {
	out := s.conf.OutputFile
	if err := writeWallpaper(s.conf, s.rects(), lib.GatherStates(s.rows), out); err != nil {
		fmt.Println("Error writing wallpaper:", err)
		return
	}
	reportApply(lib.ApplyWallpaper(out, logger), out)
}

func (s *session) rects() []lib.MonitorRect {
	rects := make([]lib.MonitorRect, len(s.rows))
	for i, r := range s.rows {
		rects[i] = r.Rect
	}
	return rects
}

func (s *session) promptUntilDone(inputChan chan string) {
	// Monitor selection does not change anything worth saving
	selectors := map[string]func(string) error{
		monitor + " ": s.selectMonitor,
		"m ":          s.selectMonitor,
	}
	executors := map[string]func(string) error{
		file + " ":       s.setFile,
		"f ":             s.setFile,
		mode + " ":       s.setMode,
		background + " ": s.setBackground,
		"bg ":            s.setBackground,
	}

	exit := prompt.OptionAddKeyBind(prompt.KeyBind{
		Key: prompt.ControlC,
		Fn: func(b *prompt.Buffer) {
			inputChan <- "exit"
		},
	})

	for _, r := range s.rows {
		fmt.Println(r)
	}
	fmt.Println("Previewing...")
	s.preview()

PromptLoop:
	for {
		label := fmt.Sprintf("monitor %d> ", s.selected+1)
		go func() {
			// prompt.Input is blocking, synchronous, and provides no way to abort it
			inputChan <- strings.TrimSpace(prompt.Input(label, completer, exit))
		}()
		in := <-inputChan

		switch strings.ToLower(in) {
		case "exit":
			return
		case "print":
			for _, r := range s.rows {
				fmt.Println(r)
			}
			continue
		case "preview":
			s.preview()
			continue
		case "apply":
			s.apply()
			continue
		case clearFile:
			s.row().ClearFile()
			s.changed()
			continue
		}

		lower := strings.ToLower(in)
		for p, e := range selectors {
			if strings.HasPrefix(lower, p) {
				if err := e(strings.TrimSpace(in[len(p):])); err != nil {
					fmt.Println(err)
				}
				continue PromptLoop
			}
		}

		for p, e := range executors {
			if strings.HasPrefix(lower, p) {
				// Paths keep their case
				if err := e(strings.TrimSpace(in[len(p):])); err != nil {
					fmt.Println(err)
					continue PromptLoop
				}
				s.changed()
				continue PromptLoop
			}
		}

		fmt.Println("Unknown command")
	}
}
