package imageset

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrTooManyArguments is returned when a pattern containing a space matched nothing,
// which almost always means several paths were typed where one was expected.
var ErrTooManyArguments = errors.New("newglob accepts only one argument, but more were provided")

// PatternError reports a malformed glob pattern.
type PatternError struct {
	Pattern string
	Err     error
}

func (e *PatternError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Pattern, e.Err)
}

func (e *PatternError) Unwrap() error { return e.Err }

// UnexpectedPathError reports a failure while enumerating the matches of a pattern.
type UnexpectedPathError struct {
	Err error
}

func (e *UnexpectedPathError) Error() string {
	return fmt.Sprintf("unexpected path %v", e.Err)
}

func (e *UnexpectedPathError) Unwrap() error { return e.Err }

// NoImagesError is returned when a path resolved but none of its matches are images.
type NoImagesError struct {
	Path string
}

func (e *NoImagesError) Error() string {
	return fmt.Sprintf("path %q had no images", e.Path)
}

// Globber turns user supplied paths into lists of image files.
type Globber struct {
	classifier Classifier
}

// NewGlobber creates a Globber. A nil classifier uses FileClassifier.
func NewGlobber(classifier Classifier) *Globber {
	if classifier == nil {
		classifier = FileClassifier{}
	}
	return &Globber{classifier: classifier}
}

// Resolve expands path into the image files it names. Matches are returned in
// enumeration order; callers sort them.
func (g *Globber) Resolve(path string) ([]string, error) {
	pattern, err := ToGlobable(path)
	if err != nil {
		return nil, err
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFailOnIOErrors())
	if err != nil {
		if errors.Is(err, doublestar.ErrBadPattern) {
			return nil, &PatternError{Pattern: pattern, Err: err}
		}
		return nil, &UnexpectedPathError{Err: err}
	}

	images := make([]string, 0, len(matches))
	for _, match := range matches {
		if g.classifier.IsImage(match) {
			images = append(images, match)
		}
	}

	if len(images) == 0 {
		if strings.Contains(path, " ") {
			return nil, ErrTooManyArguments
		}
		return nil, &NoImagesError{Path: path}
	}
	return images, nil
}

// ResolveAll resolves every path and returns the union of their images, keeping the
// first occurrence of duplicates. Paths without images are skipped; the error of the
// last failing path is returned only when nothing resolved at all.
func (g *Globber) ResolveAll(paths []string) ([]string, error) {
	var (
		images  []string
		lastErr error
	)
	seen := make(map[string]bool)
	for _, path := range paths {
		found, err := g.Resolve(path)
		if err != nil {
			lastErr = err
			continue
		}
		for _, image := range found {
			if !seen[image] {
				seen[image] = true
				images = append(images, image)
			}
		}
	}
	if len(images) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return images, nil
}
