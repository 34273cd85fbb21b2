package multiwalllib

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/awused/awconf"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "multiwall"

type Config struct {
	// JSON file holding the per-monitor settings
	StateFile string
	// Full resolution wallpaper, always written as a JPEG
	OutputFile  string
	PreviewFile string
	// Largest dimension of the preview image, 0 disables scaling
	PreviewSize int
	LogFile     string
	LogLevel    string
	// Used for monitors without their own settings
	DefaultMode       string
	DefaultBackground string
	// "top-left" or "top-right"
	LabelCorner string
	// Draw monitor labels on previews that did not need to be scaled down
	LabelUnscaled bool
	// Only used by the random command
	ImageDirectory      string
	DatabaseDir         string
	ImageFileExtensions []string
}

var conf *Config

func GetConfig() (*Config, error) {
	if conf != nil {
		return conf, nil
	}

	return nil, fmt.Errorf("Init never called")
}

// ConfigDir is where multiwall keeps its settings and generated images.
func ConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, appName)
}

func DefaultConfig() *Config {
	dir := ConfigDir()
	return &Config{
		StateFile:         filepath.Join(dir, "config.json"),
		OutputFile:        filepath.Join(dir, "current_wallpaper.jpg"),
		PreviewFile:       filepath.Join(os.TempDir(), "multiwall-preview.png"),
		PreviewSize:       1000,
		LogLevel:          "info",
		DefaultMode:       ModeFill.String(),
		DefaultBackground: DefaultBackground,
		LabelCorner:       CornerTopLeft.String(),
		ImageFileExtensions: []string{
			".png", ".jpg", ".jpeg", ".bmp", ".webp", ".gif", ".tif", ".tiff"},
	}
}

// Init loads multiwall.toml on top of the defaults. A missing or unreadable
// config is not fatal, the returned warning should be logged by the caller.
func Init() (c *Config, warning error, err error) {
	c = DefaultConfig()

	if lerr := awconf.LoadConfig(appName, c); lerr != nil {
		c = DefaultConfig()
		warning = lerr
	}

	if err = c.validate(); err != nil {
		return nil, warning, err
	}

	conf = c
	return c, warning, nil
}

func (c *Config) validate() error {
	if c.StateFile == "" {
		return fmt.Errorf("Config missing StateFile")
	}

	if c.OutputFile == "" {
		return fmt.Errorf("Config missing OutputFile")
	}
	fi, err := os.Stat(c.OutputFile)
	if err == nil && fi.IsDir() {
		return fmt.Errorf("OutputFile [%s] is a directory", c.OutputFile)
	} else if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf(
			"Error calling os.Stat on OutputFile [%s]: %s", c.OutputFile, err)
	}

	if c.PreviewFile == "" {
		c.PreviewFile = filepath.Join(os.TempDir(), "multiwall-preview.png")
	}

	if c.PreviewSize < 0 {
		return fmt.Errorf("PreviewSize must not be negative")
	}

	if _, err := ParseColor(c.DefaultBackground); err != nil {
		return fmt.Errorf("Invalid DefaultBackground: %w", err)
	}

	if _, ok := ParseMode(c.DefaultMode); !ok {
		return fmt.Errorf("Unknown DefaultMode [%s]", c.DefaultMode)
	}

	if _, ok := ParseCorner(c.LabelCorner); !ok {
		return fmt.Errorf("Unknown LabelCorner [%s]", c.LabelCorner)
	}

	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("Invalid LogLevel [%s]", c.LogLevel)
	}

	for i, ext := range c.ImageFileExtensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		c.ImageFileExtensions[i] = ext
	}

	if c.ImageDirectory != "" {
		fi, err := os.Stat(c.ImageDirectory)
		if err != nil {
			return fmt.Errorf(
				"Error calling os.Stat on ImageDirectory [%s]: %s", c.ImageDirectory, err)
		}
		if !fi.IsDir() {
			return fmt.Errorf("ImageDirectory [%s] is not a directory", c.ImageDirectory)
		}
	}

	return nil
}

// NewLogger builds the logger handed to the composer and the commands.
// Output always goes to stderr, and is also appended to LogFile when set.
func NewLogger(c *Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.DisableStacktrace = true
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}

	if c.LogFile != "" {
		err = os.MkdirAll(filepath.Dir(c.LogFile), 0755)
		if err != nil {
			return nil, err
		}
		zc.OutputPaths = append(zc.OutputPaths, c.LogFile)
	}

	return zc.Build()
}
