package sorting

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Key is the attribute images are compared by.
type Key int

const (
	Alphabetical Key = iota
	Date
	Size
)

func (k Key) String() string {
	switch k {
	case Alphabetical:
		return "alphabetical"
	case Date:
		return "date"
	case Size:
		return "size"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// Order is a sort key plus a direction.
type Order struct {
	Key        Key
	Descending bool
}

func (o Order) String() string {
	if o.Descending {
		return o.Key.String() + "-desc"
	}
	return o.Key.String()
}

var keyNames = map[string]Key{
	"alphabetical": Alphabetical,
	"alpha":        Alphabetical,
	"name":         Alphabetical,
	"date":         Date,
	"modified":     Date,
	"mtime":        Date,
	"size":         Size,
}

// ParseOrder reads an order such as "date" or "size-desc". Names are case-insensitive.
func ParseOrder(s string) (Order, error) {
	name := strings.ToLower(s)
	var order Order
	for _, suffix := range []string{"-desc", "-rev"} {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok {
			name = trimmed
			order.Descending = true
			break
		}
	}
	key, ok := keyNames[name]
	if !ok {
		return Order{}, fmt.Errorf("invalid sort order %q, expected one of alphabetical, date, size (optionally suffixed with -desc)", s)
	}
	order.Key = key
	return order, nil
}

// Sorter orders image paths by its current Order.
type Sorter struct {
	order Order
	stat  func(string) (os.FileInfo, error)
}

// NewSorter creates a Sorter using order.
func NewSorter(order Order) *Sorter {
	return &Sorter{order: order, stat: os.Stat}
}

// Order returns the current order.
func (s *Sorter) Order() Order {
	return s.order
}

// SetOrder replaces the order used by subsequent sorts.
func (s *Sorter) SetOrder(order Order) {
	s.order = order
}

// Sort sorts images in place. The sort is stable, so equal elements keep their
// relative order and repeated sorts are idempotent.
func (s *Sorter) Sort(images []string) {
	switch s.order.Key {
	case Date:
		times := make([]time.Time, len(images))
		for i, image := range images {
			if info, err := s.stat(image); err == nil {
				times[i] = info.ModTime()
			}
		}
		s.sortByIndex(images, func(a, b int) bool { return times[a].Before(times[b]) })
	case Size:
		sizes := make([]int64, len(images))
		for i, image := range images {
			if info, err := s.stat(image); err == nil {
				sizes[i] = info.Size()
			}
		}
		s.sortByIndex(images, func(a, b int) bool { return sizes[a] < sizes[b] })
	default:
		s.sortByIndex(images, func(a, b int) bool { return images[a] < images[b] })
	}
}

// sortByIndex stably sorts images using less, which compares positions in the
// unsorted slice. Metadata is therefore looked up once per image.
func (s *Sorter) sortByIndex(images []string, less func(a, b int) bool) {
	idx := make([]int, len(images))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		if s.order.Descending {
			return less(idx[j], idx[i])
		}
		return less(idx[i], idx[j])
	})

	sorted := make([]string, len(images))
	for i, from := range idx {
		sorted[i] = images[from]
	}
	copy(images, sorted)
}
