// Package session holds the browsing state of imgview and the commands that change it.
//
// Every command either applies completely or returns an error and leaves the
// session untouched. A Session is not safe for concurrent use; the caller owns
// it and must serialize access.
package session

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strconv"

	"imgview/command"
	"imgview/imageset"
	"imgview/log"
	"imgview/sorting"
)

// DefaultKeepDirName is the folder below the base directory that kept images go to.
const DefaultKeepDirName = "keep"

// Sorter orders image lists.
type Sorter interface {
	Sort(images []string)
	SetOrder(order sorting.Order)
	Order() sorting.Order
}

// Globber expands a user supplied path into image files.
type Globber interface {
	Resolve(path string) ([]string, error)
}

// Options configures a new Session.
type Options struct {
	Images  []string
	BaseDir string
	// MaxImages caps the viewable window. 0 means no cap.
	MaxImages int
	// DestFolder, when set, overrides the folder derived from BaseDir for the
	// whole session.
	DestFolder  string
	KeepDirName string
	Sorter      Sorter
	Globber     Globber
}

// Session is the set of images being browsed and the selection within it.
type Session struct {
	images []string
	index  int

	requestedMax int
	viewable     int

	baseDir        string
	destFolder     string
	destOverridden bool
	keepDirName    string

	sorter  Sorter
	globber Globber
}

// New creates a Session. The initial images are sorted with opts.Sorter.
func New(opts Options) *Session {
	s := &Session{
		images:       slices.Clone(opts.Images),
		requestedMax: opts.MaxImages,
		baseDir:      opts.BaseDir,
		keepDirName:  opts.KeepDirName,
		sorter:       opts.Sorter,
		globber:      opts.Globber,
	}
	if s.keepDirName == "" {
		s.keepDirName = DefaultKeepDirName
	}
	if s.sorter == nil {
		s.sorter = sorting.NewSorter(sorting.Order{})
	}
	if s.globber == nil {
		s.globber = imageset.NewGlobber(nil)
	}

	s.sorter.Sort(s.images)
	s.viewable = viewableWindow(s.requestedMax, len(s.images))
	if opts.DestFolder != "" {
		s.destFolder = opts.DestFolder
		s.destOverridden = true
	} else {
		s.destFolder = filepath.Join(s.baseDir, s.keepDirName)
	}
	return s
}

// Images returns a copy of the full ordered image list.
func (s *Session) Images() []string { return slices.Clone(s.images) }

// Viewable returns the images inside the viewable window.
func (s *Session) Viewable() []string { return slices.Clone(s.images[:s.viewable]) }

// Len is the number of images, including those outside the viewable window.
func (s *Session) Len() int { return len(s.images) }

func (s *Session) Index() int { return s.index }

// ViewableWindow is the number of images currently considered in session.
func (s *Session) ViewableWindow() int { return s.viewable }

// RequestedMax is the cap set by the user, 0 when there is none.
func (s *Session) RequestedMax() int { return s.requestedMax }

func (s *Session) BaseDir() string { return s.baseDir }

func (s *Session) DestFolder() string { return s.destFolder }

// DestFolderOverridden reports whether the destination folder was set explicitly.
func (s *Session) DestFolderOverridden() bool { return s.destOverridden }

// Order is the sort order applied to the images.
func (s *Session) Order() sorting.Order { return s.sorter.Order() }

// Current returns the selected image. ok is false when there are no images.
func (s *Session) Current() (path string, ok bool) {
	if len(s.images) == 0 {
		return "", false
	}
	return s.images[s.index], true
}

// Next selects the following image, wrapping to the start of the viewable window.
func (s *Session) Next() {
	if s.viewable == 0 {
		return
	}
	s.index = (s.index + 1) % s.viewable
}

// Prev selects the preceding image, wrapping to the end of the viewable window.
func (s *Session) Prev() {
	if s.viewable == 0 {
		return
	}
	s.index = (s.index - 1 + s.viewable) % s.viewable
}

func (s *Session) First() {
	s.index = 0
}

// Last selects the final image of the viewable window.
func (s *Session) Last() {
	s.index = max(s.viewable-1, 0)
}

// Sort re-sorts the images. A non-empty argument first switches to the order it
// names. The selected image stays selected when it remains inside the viewable
// window; otherwise the first image is selected.
func (s *Session) Sort(argument string) error {
	order := s.sorter.Order()
	if argument != "" {
		parsed, err := sorting.ParseOrder(argument)
		if err != nil {
			return &InvalidArgumentError{Command: command.Sort, Value: argument, Err: err}
		}
		order = parsed
	}

	target, hadTarget := s.Current()
	s.sorter.SetOrder(order)
	images := slices.Clone(s.images)
	s.sorter.Sort(images)

	s.images = images
	s.index = relocate(images, target, hadTarget, s.viewable)
	log.InfoLog.Printf("sorted %d images by %s", len(images), order)
	return nil
}

// NewGlob replaces the images with those matching argument, keeping the current
// sort order, viewable cap and selection where possible.
func (s *Session) NewGlob(argument string) error {
	if argument == "" {
		return &MissingArgumentError{Command: command.NewGlob, Want: "a glob"}
	}

	images, err := s.globber.Resolve(argument)
	if err != nil {
		return err
	}

	target, hadTarget := s.Current()
	baseDir := s.baseDir
	if dir, ok := imageset.ResolveBaseDir(imageset.Unescape(argument)); ok {
		baseDir = dir
	}
	s.sorter.Sort(images)
	viewable := viewableWindow(s.requestedMax, len(images))

	s.images = images
	s.viewable = viewable
	s.index = relocate(images, target, hadTarget, viewable)
	s.baseDir = baseDir
	if !s.destOverridden {
		s.destFolder = filepath.Join(baseDir, s.keepDirName)
	}
	log.InfoLog.Printf("loaded %d images from %q, base dir %q", len(images), argument, baseDir)
	return nil
}

// Reverse reverses the images and mirrors the selection within the viewable window.
func (s *Session) Reverse() {
	slices.Reverse(s.images)
	if s.viewable == 0 {
		s.index = 0
		return
	}
	s.index = s.viewable - s.index - 1
}

// SetDestFolder sets the folder kept images are copied to. Once set, loading a new
// glob no longer moves it.
func (s *Session) SetDestFolder(argument string) error {
	if argument == "" {
		return &MissingArgumentError{Command: command.DestFolder, Want: "a path"}
	}
	dest, err := imageset.ExpandArgument(argument)
	if err != nil {
		return err
	}
	s.destFolder = dest
	s.destOverridden = true
	log.InfoLog.Printf("destination folder set to %q", dest)
	return nil
}

// errNotPositive keeps strconv's wording out of user facing messages.
var errNotPositive = errors.New("not a positive integer")

// SetMaximum caps the viewable window. "0" removes the cap.
func (s *Session) SetMaximum(argument string) error {
	if argument == "" {
		return &MissingArgumentError{Command: command.MaximumImages, Want: "a new maximum number of files to display"}
	}
	n, err := strconv.ParseUint(argument, 10, strconv.IntSize-1)
	if err != nil {
		return &InvalidArgumentError{
			Command: command.MaximumImages,
			Value:   argument,
			Err:     fmt.Errorf("%q is %w", argument, errNotPositive),
		}
	}

	s.requestedMax = int(n)
	s.viewable = viewableWindow(s.requestedMax, len(s.images))
	if s.index >= s.viewable {
		s.index = max(s.viewable-1, 0)
	}
	log.InfoLog.Printf("maximum images set to %d, %d viewable", s.requestedMax, s.viewable)
	return nil
}

// viewableWindow applies the requested cap to n images.
func viewableWindow(requested, n int) int {
	if requested == 0 || requested > n {
		return n
	}
	return requested
}

// relocate finds target in images and returns its index when it lies inside the
// viewable window, 0 otherwise.
func relocate(images []string, target string, ok bool, viewable int) int {
	if !ok {
		return 0
	}
	if i := slices.Index(images, target); i >= 0 && i < viewable {
		return i
	}
	return 0
}
