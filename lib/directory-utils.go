package multiwalllib

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// GetAllImages returns the paths of every image under dir, relative to dir
// and slash separated so they stay valid keys across platforms.
func GetAllImages(dir string, extensions []string) ([]string, error) {
	if dir == "" {
		return nil, fmt.Errorf("Config missing ImageDirectory")
	}

	images := []string{}
	err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if !f.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}

		pathLower := strings.ToLower(path)
		for _, ext := range extensions {
			if strings.HasSuffix(pathLower, ext) {
				images = append(images, filepath.ToSlash(rel))
				break
			}
		}
		return nil
	})

	return images, err
}

func GetFullImagePath(dir, relPath string) (string, error) {
	return filepath.Abs(filepath.Join(dir, filepath.FromSlash(relPath)))
}

// ReadableImages decodes the header of every image in images, relative to
// dir, and returns the ones that succeed in sorted order. At most workers
// images are checked at once.
func ReadableImages(dir string, images []string, workers int, log *zap.Logger) []string {
	if workers < 1 {
		workers = 1
	}

	var failed int32
	valid := &sync.Map{}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for _, relPath := range images {
		wg.Add(1)
		sem <- struct{}{}

		go func(relPath string) {
			defer func() {
				<-sem
				wg.Done()
			}()

			absPath, err := GetFullImagePath(dir, relPath)
			if err == nil {
				err = CheckImage(absPath)
			}
			if err != nil {
				atomic.AddInt32(&failed, 1)
				log.Warn("Skipping unreadable image",
					zap.String("file", relPath), zap.Error(err))
				return
			}
			valid.Store(relPath, true)
		}(relPath)
	}

	wg.Wait()
	log.Debug("Checked images",
		zap.Int("total", len(images)), zap.Int32("failed", atomic.LoadInt32(&failed)))

	out := []string{}
	valid.Range(func(k, _ interface{}) bool {
		out = append(out, k.(string))
		return true
	})
	sort.Strings(out)
	return out
}

// ImageDB is the part of the random picker's database that tracks which
// images can be picked.
type ImageDB interface {
	AddAll([]string) error
	CleanDB() error
}

// SyncImageDB adds every readable image under dir to db and drops the rest,
// including images that were deleted. It returns the readable images and how
// many images were found in total.
func SyncImageDB(
	db ImageDB, dir string, extensions []string, workers int, log *zap.Logger) ([]string, int, error) {
	images, err := GetAllImages(dir, extensions)
	if err != nil {
		return nil, 0, err
	}

	valid := ReadableImages(dir, images, workers, log)

	if err = db.AddAll(valid); err != nil {
		return nil, 0, err
	}
	if err = db.CleanDB(); err != nil {
		return nil, 0, err
	}
	return valid, len(images), nil
}
