package multiwalllib

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	// imaging registers gif, jpeg and png
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Quality of the full resolution wallpaper
const jpegQuality = 95

// loadImage decodes any registered format, honouring EXIF orientation.
// Formats without a decoder, like AVIF, fail here and the monitor falls back
// to its background colour.
func loadImage(path string) (image.Image, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !fi.Mode().IsRegular() {
		return nil, fmt.Errorf("Input image [%s] is not a regular file", path)
	}

	return imaging.Open(path, imaging.AutoOrientation(true))
}

// CheckImage decodes only the header of the image at path.
func CheckImage(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	_, _, err = image.DecodeConfig(f)
	return err
}

func createMissingDirectories(outFile string) error {
	return os.MkdirAll(filepath.Dir(outFile), 0755)
}

// SaveWallpaper writes the full resolution canvas as a JPEG whatever the
// extension of path.
func SaveWallpaper(img image.Image, path string) error {
	if err := createMissingDirectories(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	err = imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

// SavePreview picks the format from the extension, PNG is recommended.
func SavePreview(img image.Image, path string) error {
	if err := createMissingDirectories(path); err != nil {
		return err
	}
	return imaging.Save(img, path)
}
