package bundle

import (
	"log/slog"

	"schema-tools/internal/corpus"
)

// Options configures a bundle run.
type Options struct {
	// SchemaVersion overrides the detected dialect when non-empty.
	SchemaVersion string
	// Validate compiles the bundle with a JSON Schema compiler. Failure is
	// reported as a warning, never as an error.
	Validate bool
	// RefExceptions are schema file names whose references are neither checked
	// nor rewritten. nil selects refs.DefaultExceptions.
	RefExceptions []string
	// MemberPattern selects member files in the models directory.
	MemberPattern string
	// Logger receives progress records. nil uses slog.Default().
	Logger *slog.Logger
	// DryRun runs every stage except writing the artifacts.
	DryRun bool
}

// DefaultOptions returns the options used by the command line tool.
func DefaultOptions() Options {
	return Options{
		Validate:      true,
		MemberPattern: corpus.DefaultMemberPattern,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return slog.Default()
}
