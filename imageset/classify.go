package imageset

import (
	"image"
	"os"
	"path/filepath"
	"strings"

	// Decoders consulted when sniffing files without a known extension.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Classifier decides whether a path is an image the viewer can show.
type Classifier interface {
	IsImage(path string) bool
}

// ClassifierFunc adapts a plain function to a Classifier.
type ClassifierFunc func(path string) bool

func (f ClassifierFunc) IsImage(path string) bool { return f(path) }

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
	".ico":  true,
	".avif": true,
	".heic": true,
}

// FileClassifier accepts regular files with a known image extension. Files whose
// extension is missing or unknown are accepted when their header decodes as an image.
type FileClassifier struct{}

func (FileClassifier) IsImage(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if imageExtensions[strings.ToLower(filepath.Ext(path))] {
		return true
	}
	return sniff(path)
}

func sniff(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	_, _, err = image.DecodeConfig(f)
	return err == nil
}
