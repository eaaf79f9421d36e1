package bundle

import (
	"context"
	"fmt"

	"schema-tools/internal/corpus"
	"schema-tools/internal/diagnostic"
	"schema-tools/internal/jsontree"
	"schema-tools/internal/refs"
)

const keywordSchema = "$schema"

// Result describes a completed bundle run.
type Result struct {
	// Merged is the bundled document.
	Merged jsontree.Value
	// Corpus the bundle was built from.
	Corpus *corpus.Corpus
	// Version is the dialect written to $schema.
	Version string
	// DefsKeyword holds the embedded documents.
	DefsKeyword string
	// Pretty and Minified are the serialized artifacts.
	Pretty   []byte
	Minified []byte
	// BundledPath and MinifiedPath are the artifact destinations.
	BundledPath  string
	MinifiedPath string
	// Stats counts the $ref values seen while rewriting.
	Stats refs.Stats
	// Diagnostics holds advisory findings.
	Diagnostics diagnostic.Diagnostics
}

// Merge assembles the bundle of c: the root document's rewritten keywords,
// then $schema, then the container keyword holding every rewritten document
// by name. Existing $schema and container members of the root are replaced
// in place.
func Merge(c *corpus.Corpus, exc refs.ExceptionSet) (*jsontree.Object, refs.Stats) {
	rw := refs.Rewriter{DefsKeyword: c.DefsKeyword, Exceptions: exc}

	var total refs.Stats

	defs := jsontree.NewObject()
	for _, d := range c.Documents {
		out, st := rw.Rewrite(d.Name, d.Root)
		total.Add(st)
		defs.Set(d.Name, out)
	}

	root, _ := defs.Get(c.Root().Name)

	merged := jsontree.NewObject()
	if obj, ok := root.(*jsontree.Object); ok {
		for k, v := range obj.All() {
			merged.Set(k, jsontree.Clone(v))
		}
	}

	merged.Set(keywordSchema, jsontree.String(c.Version))
	merged.Set(c.DefsKeyword, defs)

	return merged, total
}

// Run bundles the schemas of modelsDir around the root schema at rootPath
// and writes the pretty and minified artifacts beside the root. Any failed
// check stops the run before anything is written.
func Run(ctx context.Context, modelsDir, rootPath string, opts Options) (*Result, error) {
	log := opts.logger()

	res := &Result{}
	res.BundledPath, res.MinifiedPath = OutputPaths(rootPath)

	log.Info("bundling schemas", "models", modelsDir, "root", rootPath)
	log.Debug("output paths", "bundled", res.BundledPath, "minified", res.MinifiedPath)

	c, err := corpus.Load(ctx, modelsDir, rootPath, corpus.Options{
		SchemaVersion: opts.SchemaVersion,
		MemberPattern: opts.MemberPattern,
	})
	if err != nil {
		return nil, err
	}

	res.Corpus = c
	res.Version = c.Version
	res.DefsKeyword = c.DefsKeyword

	log.Info("loaded schemas", "files", len(c.Documents), "version", c.Version, "keyword", c.DefsKeyword)

	for _, d := range c.Documents {
		log.Debug("schema", "name", d.Name, "path", d.Path)
	}

	exc := refs.NewExceptionSet(opts.RefExceptions)

	log.Debug("validating external $ref targets")

	if err := PreCheck(c, exc); err != nil {
		return nil, err
	}

	merged, stats := Merge(c, exc)
	res.Merged = merged
	res.Stats = stats

	log.Debug("rewrote references",
		"external", stats.External, "excepted", stats.Excepted,
		"internal", stats.Internal, "opaque", stats.Opaque)
	log.Debug("validating internal ref pointers")

	if err := PostCheck(merged); err != nil {
		return nil, err
	}

	if res.Pretty, err = Pretty(merged); err != nil {
		return nil, fmt.Errorf("failed to encode bundle: %w", err)
	}

	if res.Minified, err = Minified(merged); err != nil {
		return nil, fmt.Errorf("failed to encode minified bundle: %w", err)
	}

	if opts.Validate {
		if err := Compile(res.Pretty); err != nil {
			res.Diagnostics.AddWarning(CodeCompile, "schema validation warning: "+err.Error(), c.Root().FileName, "$")
			log.Warn("schema validation warning", "error", err)
		} else {
			log.Info("schema validation passed")
		}
	}

	if opts.DryRun {
		log.Info("dry run, nothing written", "schemas", len(c.Documents))
		return res, nil
	}

	err = Write(
		Artifact{Name: "bundled", Path: res.BundledPath, Content: res.Pretty},
		Artifact{Name: "minified", Path: res.MinifiedPath, Content: res.Minified},
	)
	if err != nil {
		return res, err
	}

	log.Info("wrote bundle",
		"bundled", res.BundledPath,
		"bundledKB", kilobytes(len(res.Pretty)),
		"minified", res.MinifiedPath,
		"minifiedKB", kilobytes(len(res.Minified)),
		"smallerPct", compression(len(res.Pretty), len(res.Minified)),
		"schemas", len(c.Documents))

	return res, nil
}

func kilobytes(n int) string {
	return fmt.Sprintf("%.2f", float64(n)/1024)
}

func compression(pretty, minified int) string {
	if pretty == 0 {
		return "0.0"
	}

	return fmt.Sprintf("%.1f", (1-float64(minified)/float64(pretty))*100)
}
