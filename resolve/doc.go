// Package resolve turns declarative pipeline descriptions into the
// concrete step sequences the pipe composer accepts.
//
// Values are looked up in an explicit Registry rather than a live symbol
// table, with an alias table for namespace qualifiers. Declarations can be
// built programmatically or loaded from YAML files:
//
//	reg := resolve.NewRegistry()
//	reg.Register("math/multiply-by", ops.MultiplyBy)
//
//	r := resolve.New(reg)
//	p, err := r.BuildPipeline(nil,
//		map[string]any{"threshold": 5},
//		[]any{resolve.Ref("math/multiply-by"), resolve.Ref("ctx/threshold")},
//	)
//
// ctx-qualified parameters late-bind hyperparameters from the
// configuration mapping at build time, so a declaration is reusable across
// configurations without rewriting.
package resolve
