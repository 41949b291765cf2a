package hcl

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/vk/phaselink/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// boundsType is the cty type every bounds attribute is converted to.
var boundsType = cty.List(cty.Number)

// decodeBounds evaluates a `[lower, upper]` expression. An omitted
// attribute evaluates to null and yields nil bounds.
func decodeBounds(ctx context.Context, expr hcl.Expression, evalCtx *hcl.EvalContext, attrName string) ([]float64, error) {
	logger := ctxlog.FromContext(ctx)

	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, diags
	}
	if val.IsNull() {
		logger.Debug("Bounds attribute not set.", "attribute", attrName)
		return nil, nil
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s: %s must be known at load time", expr.Range(), attrName)
	}

	converted, err := convert.Convert(val, boundsType)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot convert %s to required type %s for %s: %w",
			expr.Range(), val.Type().FriendlyName(), boundsType.FriendlyName(), attrName, err)
	}
	if !val.Type().Equals(converted.Type()) {
		logger.Debug("Implicitly converted bounds type.",
			"attribute", attrName,
			"from", val.Type().FriendlyName(),
			"to", converted.Type().FriendlyName(),
		)
	}

	var bounds []float64
	if err := gocty.FromCtyValue(converted, &bounds); err != nil {
		return nil, fmt.Errorf("%s: %s: %w", expr.Range(), attrName, err)
	}
	if len(bounds) != 2 {
		return nil, fmt.Errorf("%s: %s must have exactly two elements [lower, upper], got %d", expr.Range(), attrName, len(bounds))
	}
	return bounds, nil
}
