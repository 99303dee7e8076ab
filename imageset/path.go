package imageset

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
)

// ExpansionError reports a path that references something that cannot be expanded,
// usually an undefined environment variable.
type ExpansionError struct {
	Name  string
	Cause string
}

func (e *ExpansionError) Error() string {
	return fmt.Sprintf("%q: %s", e.Name, e.Cause)
}

// Expand expands a leading home directory reference and every $VAR, ${VAR} and
// ${VAR:-default} reference in path. The first undefined variable is reported.
func Expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := homedir.Expand(path)
		if err != nil {
			return "", &ExpansionError{Name: "~", Cause: err.Error()}
		}
		path = home
	}

	return expandVars(path)
}

// expandVars substitutes variable references. A "$" that does not start a name
// and an unterminated "${" are kept as written.
func expandVars(path string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(path); i++ {
		if path[i] != '$' || i+1 == len(path) {
			b.WriteByte(path[i])
			continue
		}

		if path[i+1] == '{' {
			end := strings.IndexByte(path[i+2:], '}')
			if end < 0 {
				b.WriteString(path[i:])
				break
			}
			value, err := lookupVar(path[i+2 : i+2+end])
			if err != nil {
				return "", err
			}
			b.WriteString(value)
			i += end + 2
			continue
		}

		n := 0
		for i+1+n < len(path) && isNameByte(path[i+1+n]) {
			n++
		}
		if n == 0 {
			b.WriteByte('$')
			continue
		}
		value, err := lookupVar(path[i+1 : i+1+n])
		if err != nil {
			return "", err
		}
		b.WriteString(value)
		i += n
	}
	return b.String(), nil
}

// lookupVar resolves NAME or NAME:-default.
func lookupVar(name string) (string, error) {
	if key, fallback, ok := strings.Cut(name, ":-"); ok {
		if value, found := os.LookupEnv(key); found && value != "" {
			return value, nil
		}
		return fallback, nil
	}
	value, found := os.LookupEnv(name)
	if !found {
		return "", &ExpansionError{Name: name, Cause: "environment variable not found"}
	}
	return value, nil
}

func isNameByte(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}

// Unescape turns every backslash-escaped space into a literal space. Command arguments
// are split on spaces, so paths containing spaces arrive escaped.
func Unescape(path string) string {
	return strings.ReplaceAll(path, `\ `, " ")
}

// ExpandArgument expands and unescapes a raw command argument.
func ExpandArgument(raw string) (string, error) {
	expanded, err := Expand(raw)
	if err != nil {
		return "", err
	}
	return Unescape(expanded), nil
}

// ToGlobable converts a user supplied path into a glob pattern. A path naming an
// existing directory matches all of its direct children; anything else is assumed
// to already be a pattern or a file path and is returned as is.
func ToGlobable(path string) (string, error) {
	resolved, err := ExpandArgument(path)
	if err != nil {
		return "", err
	}
	if isDir(resolved) {
		return filepath.Join(resolved, "*"), nil
	}
	return resolved, nil
}

// ResolveBaseDir returns the directory a new glob should be anchored to: the path
// itself when it is a directory, otherwise its nearest existing ancestor. It reports
// false when the path cannot be expanded or no ancestor exists.
func ResolveBaseDir(rawPath string) (string, bool) {
	expanded, err := Expand(rawPath)
	if err != nil {
		return "", false
	}
	for _, candidate := range ancestors(expanded) {
		if isDir(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// ancestors lists path followed by each of its parents. A relative path only
// includes the current directory when it was spelled out.
func ancestors(path string) []string {
	if path == "" {
		return nil
	}
	explicitDot := path == "." || strings.HasPrefix(path, "."+string(filepath.Separator))

	list := []string{path}
	for current := path; ; {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		if parent == "." && !explicitDot {
			break
		}
		list = append(list, parent)
		current = parent
	}
	return list
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
