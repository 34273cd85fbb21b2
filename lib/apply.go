package multiwalllib

// ApplyResult is the outcome of asking the desktop to use a wallpaper.
// Script is set when a manual fallback was written.
type ApplyResult struct {
	OK      bool
	Message string
	Script  string
}
