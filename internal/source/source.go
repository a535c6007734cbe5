// Package source decides what each command line argument refers to.
package source

import "os"

// StdinArg is the argument that selects standard input.
const StdinArg = "-"

// Kind tells standard input and files apart.
type Kind int

const (
	Stdin Kind = iota
	File
)

func (k Kind) String() string {
	switch k {
	case Stdin:
		return "stdin"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// Spec is a resolved input: either standard input or a file path.
type Spec struct {
	Kind Kind
	Path string
}

// StdinSpec returns the Spec for standard input.
func StdinSpec() Spec {
	return Spec{Kind: Stdin}
}

// FileSpec returns the Spec for the file at path.
func FileSpec(path string) Spec {
	return Spec{Kind: File, Path: path}
}

func (s Spec) String() string {
	if s.Kind == Stdin {
		return StdinArg
	}
	return s.Path
}

// Resolve turns a raw argument into a Spec. "-" always means standard input;
// anything else must exist on the filesystem. No handle is kept open.
func Resolve(arg string) (Spec, error) {
	if arg == StdinArg {
		return StdinSpec(), nil
	}

	if _, err := os.Stat(arg); err != nil {
		return Spec{}, &PathError{Path: arg, Err: ErrNotFound}
	}
	return FileSpec(arg), nil
}

// Args applies the implicit standard input rule: no arguments reads "-".
func Args(args []string) []string {
	if len(args) == 0 {
		return []string{StdinArg}
	}
	return args
}
