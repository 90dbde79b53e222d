package pipe

import "context"

// Fit runs the pipeline over data in fit mode. The full resulting context
// is returned, not just the payload, so that per-operation fitted state
// stored under the slot identities survives for later TransformWith calls.
func Fit(ctx context.Context, p *Pipeline, data any) (Context, error) {
	return p.Run(ctx, Context{KeyData: data, KeyMode: ModeFit})
}

// TransformWith runs the pipeline over new data in transform mode, carrying
// forward the per-operation state captured by a previous Fit. The new data
// and mode override the fitted ones; everything else in fitted, including
// every identity-keyed state entry, flows through.
func TransformWith(ctx context.Context, p *Pipeline, data any, fitted Context) (Context, error) {
	return p.Run(ctx, fitted.Merge(Context{KeyData: data, KeyMode: ModeTransform}))
}

// FitTransform fits the pipeline on data and immediately transforms the
// same data with the fitted state. The returned context ends in transform
// mode.
func FitTransform(ctx context.Context, p *Pipeline, data any) (Context, error) {
	fitted, err := Fit(ctx, p, data)
	if err != nil {
		return nil, err
	}
	return TransformWith(ctx, p, data, fitted)
}

// Apply composes the given steps, runs them over data in fit mode, and
// returns only the resulting payload. Intended for simple data-to-data
// chains with no fit/transform duality.
func Apply(ctx context.Context, data any, steps ...any) (any, error) {
	p, err := Compose(steps...)
	if err != nil {
		return nil, err
	}
	out, err := Fit(ctx, p, data)
	if err != nil {
		return nil, err
	}
	return out.Data(), nil
}
