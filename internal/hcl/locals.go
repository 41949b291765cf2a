package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// evalLocals evaluates every `locals` attribute into an evaluation context
// exposing them as `local.<name>`. Locals may refer to each other in any
// order; evaluation repeats until no further local can be resolved.
func evalLocals(ctx context.Context, attrs []*hcl.Attribute) (*hcl.EvalContext, error) {
	logger := ctxlog.FromContext(ctx)
	values := make(map[string]cty.Value)
	evalCtx := &hcl.EvalContext{Variables: map[string]cty.Value{"local": cty.EmptyObjectVal}}

	seen := make(map[string]*hcl.Attribute, len(attrs))
	for _, attr := range attrs {
		if prev, ok := seen[attr.Name]; ok {
			return nil, fmt.Errorf("%s: duplicate local %q, first defined at %s", attr.NameRange, attr.Name, prev.NameRange)
		}
		seen[attr.Name] = attr
	}

	pending := attrs
	for len(pending) > 0 {
		var next []*hcl.Attribute
		var lastDiags hcl.Diagnostics
		for _, attr := range pending {
			val, diags := attr.Expr.Value(evalCtx)
			if diags.HasErrors() {
				next = append(next, attr)
				lastDiags = diags
				continue
			}
			values[attr.Name] = val
			evalCtx.Variables["local"] = cty.ObjectVal(values)
			logger.Debug("Evaluated local.", "name", attr.Name, "type", val.Type().FriendlyName())
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("failed to evaluate locals: %w", lastDiags)
		}
		pending = next
	}
	return evalCtx, nil
}
