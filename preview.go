package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	lib "github.com/awused/multiwall/lib"
	"github.com/blacktop/go-termimg"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const output = "output"
const size = "size"
const show = "show"
const columns = "columns"

func previewCommand() *cli.Command {
	cmd := &cli.Command{}
	cmd.Name = "preview"
	cmd.Usage = "Render a scaled down, numbered preview of the wallpaper"
	cmd.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    output,
			Aliases: []string{"o"},
			Usage:   "Where to write the preview, defaults to PreviewFile from the config",
		},
		&cli.IntFlag{
			Name:    size,
			Aliases: []string{"s"},
			Usage:   "Largest dimension of the preview, defaults to PreviewSize from the config",
		},
		&cli.BoolFlag{
			Name:  show,
			Usage: "Also draw the preview in the terminal",
		},
		&cli.IntFlag{
			Name:  columns,
			Value: 100,
			Usage: "Width of the terminal preview in cells",
		},
	}
	cmd.Action = previewAction
	return cmd
}

func previewAction(ctxt *cli.Context) error {
	c, s, err := loadSettings()
	if err != nil {
		return err
	}

	monitors, err := getMonitors(ctxt)
	if err != nil {
		return err
	}

	maxSize := c.PreviewSize
	if ctxt.IsSet(size) {
		maxSize = ctxt.Int(size)
	}
	out := c.PreviewFile
	if ctxt.IsSet(output) {
		out = ctxt.String(output)
	}

	img, err := renderPreview(c, monitors, s.Monitors, maxSize, out)
	if err != nil {
		return err
	}
	fmt.Println(out)

	if ctxt.Bool(show) {
		return showInTerminal(img, ctxt.Int(columns))
	}
	return nil
}

func renderPreview(
	c *lib.Config,
	monitors []lib.MonitorRect,
	states lib.States,
	maxSize int,
	out string) (image.Image, error) {
	co := lib.NewComposerFromConfig(logger, c)

	img, ratio, err := co.Preview(monitors, states, maxSize)
	if err != nil {
		return nil, err
	}

	logger.Debug("Rendered preview",
		zap.Stringer("size", img.Bounds().Size()), zap.Float64("ratio", ratio))

	if err = lib.SavePreview(img, out); err != nil {
		return nil, fmt.Errorf("Error writing preview [%s]: %w", out, err)
	}
	return img, nil
}

func showInTerminal(img image.Image, cols int) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}

	ti, err := termimg.From(bytes.NewReader(buf.Bytes()))
	if err != nil {
		return err
	}

	// Terminal cells are roughly twice as tall as they are wide
	b := img.Bounds()
	rows := cols * b.Dy() / b.Dx() / 2
	if rows < 1 {
		rows = 1
	}

	ti.Protocol(termimg.DetectProtocol()).
		Width(cols).
		Height(rows).
		Scale(termimg.ScaleFit)

	rendered, err := ti.Render()
	if err != nil {
		return err
	}

	fmt.Println(rendered)
	return nil
}
