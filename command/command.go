package command

import (
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind identifies one of the commands accepted in command mode.
type Kind int

const (
	Sort Kind = iota
	NewGlob
	Help
	Quit
	Reverse
	DestFolder
	MaximumImages
)

// Kinds lists every command in the order it is documented.
var Kinds = []Kind{Sort, NewGlob, Help, Quit, Reverse, DestFolder, MaximumImages}

type entry struct {
	aliases []string
	usage   string
	summary string
}

var table = map[Kind]entry{
	Sort: {
		aliases: []string{"sort"},
		usage:   "[order]",
		summary: "re-sort images, optionally switching to alphabetical, date or size (-desc to invert)",
	},
	NewGlob: {
		aliases: []string{"ng", "newglob"},
		usage:   "<glob>",
		summary: "load the images matching a new path or glob",
	},
	Help: {
		aliases: []string{"?", "help"},
		summary: "toggle the help overlay",
	},
	Quit: {
		aliases: []string{"q", "quit"},
		summary: "exit imgview",
	},
	Reverse: {
		aliases: []string{"r", "reverse"},
		summary: "reverse the image order",
	},
	DestFolder: {
		aliases: []string{"df", "destfolder"},
		usage:   "<path>",
		summary: "set the folder kept images are copied to",
	},
	MaximumImages: {
		aliases: []string{"m", "max"},
		usage:   "<n>",
		summary: "show at most n images, 0 for no limit",
	},
}

// lookup maps every alias to its command. Built from table so the two cannot drift.
var lookup = func() map[string]Kind {
	m := make(map[string]Kind)
	for kind, e := range table {
		for _, alias := range e.aliases {
			m[alias] = kind
		}
	}
	return m
}()

func (k Kind) String() string {
	if e, ok := table[k]; ok {
		return e.aliases[len(e.aliases)-1]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Aliases returns the tokens that select k, shortest first.
func (k Kind) Aliases() []string {
	return append([]string(nil), table[k].aliases...)
}

// Usage describes the argument k takes, or "" when it takes none.
func (k Kind) Usage() string {
	return table[k].usage
}

// Summary is a one-line description for help output.
func (k Kind) Summary() string {
	return table[k].summary
}

// Invocation is a parsed command line.
type Invocation struct {
	Kind Kind
	// Argument is everything after the first space, untrimmed.
	Argument string
}

// UnknownCommandError is returned by Parse when the token matches no alias.
type UnknownCommandError struct {
	Token string
	// Suggestion is the closest alias, empty when nothing is close enough.
	Suggestion string
}

func (e *UnknownCommandError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("no such command %q, did you mean %q?", e.Token, e.Suggestion)
	}
	return fmt.Sprintf("no such command %q", e.Token)
}

// Parse splits raw at its first space into a command token and an argument
// and resolves the token case-sensitively against the alias table.
func Parse(raw string) (Invocation, error) {
	token, argument, _ := strings.Cut(raw, " ")
	kind, ok := lookup[token]
	if !ok {
		return Invocation{}, &UnknownCommandError{Token: token, Suggestion: suggest(token)}
	}
	return Invocation{Kind: kind, Argument: argument}, nil
}

const maxSuggestionDistance = 2

// suggest returns the alias nearest to token, preferring earlier commands on ties.
// A suggestion must need fewer edits than retyping the whole token.
func suggest(token string) string {
	best, bestDist := "", maxSuggestionDistance+1
	for _, kind := range Kinds {
		for _, alias := range table[kind].aliases {
			d := levenshtein.ComputeDistance(token, alias)
			if d < bestDist && d < len(token) {
				best, bestDist = alias, d
			}
		}
	}
	return best
}
