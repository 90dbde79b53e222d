// Package pipe provides a context-threading pipeline engine that unifies
// plain data transforms and train/predict (fit/transform) steps under one
// abstraction.
//
// A pipeline is a left-to-right fold over operations. Each operation
// receives a context mapping and returns a new one; the reserved keys
// "data", "id" and "mode" carry the payload, the operation's build-time
// identity and the execution mode. Static mappings in the step sequence
// merge into the context as they are reached, which is how constants,
// modes and identity overrides are injected.
//
//	p, err := pipe.Compose(
//		pipe.Lift(strings.ToUpper),
//		pipe.Context{"mode": pipe.ModeFit},
//		scaler,
//	)
//	out, err := p.Run(ctx, []float64{1, 2, 3})
//
// Identities are drawn from the composer's IDSource once, at build time,
// and never change, so a fit run and a later transform run of the same
// pipeline address the same per-operation storage keys:
//
//	fitted, _ := pipe.Fit(ctx, p, train)
//	result, _ := pipe.TransformWith(ctx, p, test, fitted)
//
// The engine performs no I/O and holds no shared mutable state; a built
// Pipeline may be invoked concurrently on independent inputs.
package pipe
