// Package observe provides OpenTelemetry tracing and metrics for pipeline
// execution.
//
// Tracing and metrics providers are initialized once per process:
//
//	tp, err := observe.InitTracer(ctx, observe.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observe.InitMeter(ctx, observe.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
// The Hook attaches to a composer and emits a span plus run/duration/
// missing-data metrics for every operation of every pipeline it builds:
//
//	hook, err := observe.NewHook("my-service")
//	c := pipe.NewComposer(pipe.WithHooks(hook))
package observe
