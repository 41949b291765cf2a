package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/vk/phaselink/internal/config"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/vk/phaselink/internal/fsutil"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Extensions implements config.Loader.
func (l *Loader) Extensions() []string {
	return []string{".hcl"}
}

// parsedFile is one file after the first pass.
type parsedFile struct {
	path    string
	content *hcl.BodyContent
}

// Load orchestrates the HCL loading process. All files are parsed first so
// that locals from any file are visible to trajectories in every file.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	files, err := fsutil.FindFiles(paths, l.Extensions()...)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(files))

	parser := hclparse.NewParser()
	var parsed []parsedFile
	var localAttrs []*hcl.Attribute

	for _, file := range files {
		hclFile, diags := parser.ParseHCLFile(file)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse HCL file %s: %w", file, diags)
		}
		content, diags := hclFile.Body.Content(fileSchema)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
		}
		for _, block := range content.Blocks.OfType("locals") {
			attrs, diags := block.Body.JustAttributes()
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", file, diags)
			}
			for _, attr := range attrs {
				localAttrs = append(localAttrs, attr)
			}
		}
		parsed = append(parsed, parsedFile{path: file, content: content})
	}

	evalCtx, err := evalLocals(ctx, sortAttributes(localAttrs))
	if err != nil {
		return nil, err
	}

	model := &config.Model{}
	for _, pf := range parsed {
		for _, block := range pf.content.Blocks.OfType("trajectory") {
			traj, err := l.translateTrajectory(ctx, pf.path, block, evalCtx)
			if err != nil {
				return nil, fmt.Errorf("failed to decode HCL file %s: %w", pf.path, err)
			}
			if err := model.Merge(&config.Model{Trajectories: []*config.Trajectory{traj}}); err != nil {
				return nil, err
			}
		}
	}

	logger.Debug("HCL loading complete.", "files", len(files), "trajectories", len(model.Trajectories))
	return model, nil
}
