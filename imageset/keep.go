package imageset

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Keep copies the image at src into destDir, creating the directory when needed,
// and returns the path of the copy. An existing file of the same name is replaced.
func Keep(src, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create destination folder: %w", err)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("failed to open image: %w", err)
	}
	defer in.Close()

	dest := filepath.Join(destDir, filepath.Base(src))
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("failed to create copy: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to copy image: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write copy: %w", err)
	}
	return dest, nil
}
