//go:build !windows
// +build !windows

package multiwalllib

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

const dbusAddress = "DBUS_SESSION_BUS_ADDRESS"

func setDBUSAddress() error {
	dbus := os.Getenv(dbusAddress)
	if dbus == "" {
		// For now just assume we're dealing with per-user dbus sessions
		user, err := user.Current()
		if err != nil {
			return nil
		}
		uid := user.Uid
		if uid == "" {
			return errors.New("No $UID set")
		}
		return os.Setenv(dbusAddress, "unix:path=/run/user/"+uid+"/bus")
	}

	return nil
}

func inFlatpak() bool {
	_, err := os.Stat("/.flatpak-info")
	return err == nil
}

const commandTimeout = 10 * time.Second

func setGnomeWallpaper(wallpaper string, log *zap.Logger) error {
	uri := "file://" + wallpaper

	// Only picture-uri is mandatory, older GNOME has no dark variant
	_, err := runBash(`gsettings set org.gnome.desktop.background picture-uri ` +
		shellQuote(uri))
	if err != nil {
		return fmt.Errorf("Error setting picture-uri: %w", err)
	}

	if _, err = runBash(`gsettings set org.gnome.desktop.background picture-uri-dark ` +
		shellQuote(uri)); err != nil {
		log.Debug("Could not set picture-uri-dark", zap.Error(err))
	}

	_, err = runBash(`gsettings set org.gnome.desktop.background picture-options spanned`)
	if err != nil {
		return fmt.Errorf("Error setting picture-options: %w", err)
	}

	current, err := runBash(`gsettings get org.gnome.desktop.background picture-uri`)
	if err == nil {
		log.Debug("Current picture-uri", zap.String("uri", strings.TrimSpace(current)))
	}
	return nil
}

// One image spanning every monitor
func setFehWallpaper(wallpaper string) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "feh", "--bg-fill", "--no-xinerama", wallpaper)
	cmd.SysProcAttr = sysProcAttr
	return cmd.Run()
}

// ApplyWallpaper sets the desktop background to the image at path. Failures
// are reported in the result, along with a script the user can run outside
// of any sandbox.
func ApplyWallpaper(path string, log *zap.Logger) ApplyResult {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ApplyResult{Message: err.Error()}
	}
	if _, err = os.Stat(abs); err != nil {
		return ApplyResult{Message: fmt.Sprintf("Wallpaper [%s] does not exist", abs)}
	}

	flatpak := inFlatpak()
	log.Info("Applying wallpaper", zap.String("file", abs), zap.Bool("flatpak", flatpak))

	if err = setDBUSAddress(); err != nil {
		log.Debug("Could not set dbus address", zap.Error(err))
	}

	env := detectEnvironment(log)
	if env == gnome || flatpak {
		err = setGnomeWallpaper(abs, log)
	} else {
		err = setFehWallpaper(abs)
	}
	if err == nil {
		return ApplyResult{OK: true, Message: "Wallpaper applied"}
	}

	log.Warn("Could not apply wallpaper automatically", zap.Error(err))

	script, serr := writeFallbackScript(abs)
	if serr != nil {
		log.Error("Could not write fallback script", zap.Error(serr))
		return ApplyResult{Message: err.Error()}
	}

	msg := fmt.Sprintf("%s\nTo apply the wallpaper manually, run:\nbash %s", err, script)
	if flatpak {
		msg = fmt.Sprintf(
			"Could not apply the wallpaper from inside Flatpak.\n"+
				"Open a terminal outside of Flatpak and run:\nbash %s", script)
	}
	return ApplyResult{Message: msg, Script: script}
}

// writeFallbackScript creates apply_wallpaper.sh next to the wallpaper.
func writeFallbackScript(wallpaper string) (string, error) {
	uri := shellQuote("file://" + wallpaper)
	script := filepath.Join(filepath.Dir(wallpaper), "apply_wallpaper.sh")

	content := `#!/bin/bash
# Applies the wallpaper generated by multiwall
set -e

gsettings set org.gnome.desktop.background picture-uri ` + uri + `
gsettings set org.gnome.desktop.background picture-uri-dark ` + uri + ` || true
gsettings set org.gnome.desktop.background picture-options 'spanned'
echo Applied ` + shellQuote(wallpaper) + `
`

	if err := os.WriteFile(script, []byte(content), 0755); err != nil {
		return "", err
	}
	// WriteFile does not change the mode of an existing file
	return script, os.Chmod(script, 0755)
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// No-op
func AttachParentConsole() {}

func runBash(cmd string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	// See http://redsymbol.net/articles/unofficial-bash-strict-mode/
	command := `
		set -euo pipefail
		IFS=$'\n\t'
		` + cmd + "\n"

	bash := exec.CommandContext(ctx, "/usr/bin/env", "bash")
	bash.Stdin = strings.NewReader(command)
	bash.Stderr = os.Stderr

	bashOut, err := bash.Output()
	return string(bashOut), err
}
