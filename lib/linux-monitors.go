//go:build !windows
// +build !windows

package multiwalllib

import (
	"errors"
	"io"
	"os"
	"regexp"
	"strings"
	"syscall"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"go.uber.org/zap"
)

type environment int

const (
	gnome environment = iota
	other
)

var sysProcAttr = &syscall.SysProcAttr{}

var displayRE = regexp.MustCompile(`^:[0-9]+`)

// Trims individual screens out of an X11 DISPLAY variable
func trimDisplay(display string) string {
	trimmed := displayRE.FindString(display)
	if trimmed != "" {
		return trimmed
	}
	return display
}

func quietXLogs() {
	// Stop polluting stdout
	xgb.Logger.SetOutput(io.Discard)
	xgbutil.Logger.SetOutput(io.Discard)
}

// detectEnvironment decides between gsettings and feh. The XDG variables are
// checked first, then the window manager name when X is available.
func detectEnvironment(log *zap.Logger) environment {
	desktop := strings.ToLower(
		os.Getenv("XDG_CURRENT_DESKTOP") + ":" + os.Getenv("DESKTOP_SESSION"))
	if strings.Contains(desktop, "gnome") || strings.Contains(desktop, "unity") {
		return gnome
	}

	quietXLogs()
	X, err := xgbutil.NewConnDisplay(trimDisplay(os.Getenv("DISPLAY")))
	if err != nil {
		log.Debug("No X connection, assuming a non-GNOME desktop", zap.Error(err))
		return other
	}
	defer X.Conn().Close()

	wm, err := ewmh.GetEwmhWM(X)
	if err != nil {
		log.Debug("Could not read window manager name", zap.Error(err))
		return other
	}

	wm = strings.ToLower(wm)
	log.Debug("Detected window manager", zap.String("wm", wm))
	if strings.Contains(wm, "gnome") || strings.Contains(wm, "mutter") {
		return gnome
	}
	return other
}

// GetMonitors lists active CRTCs through RandR in their desktop coordinates.
// Indices are only stable until the next call.
func GetMonitors() ([]MonitorRect, error) {
	quietXLogs()

	display := trimDisplay(os.Getenv("DISPLAY"))
	if display == "" {
		return nil, errors.New(
			"$DISPLAY is not set, pass monitor geometries or a layout file instead")
	}

	Xgb, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, err
	}
	defer Xgb.Close()

	if err = randr.Init(Xgb); err != nil {
		return nil, err
	}

	root := xproto.Setup(Xgb).DefaultScreen(Xgb).Root

	resources, err := randr.GetScreenResources(Xgb, root).Reply()
	if err != nil {
		return nil, err
	}

	monitors := []MonitorRect{}
	for _, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(Xgb, crtc, 0).Reply()
		if err != nil {
			return nil, err
		}

		// Disabled CRTCs have no mode and no size
		if info.Width == 0 || info.Height == 0 {
			continue
		}

		monitors = append(monitors, MonitorRect{
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	return monitors, nil
}
