package logger

// Standard field key constants for structured logging.
const (
	FieldComponent = "component"
	FieldPipeline  = "pipeline"
	FieldSlot      = "slot"
	FieldOpID      = "op_id"
	FieldMode      = "mode"
	FieldRef       = "ref"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldStatus    = "status"
)

// Fields builds a map[string]interface{} from alternating key-value pairs.
//
//	logger.Info("resolved", logger.Fields(logger.FieldRef, "prep/scale"))
func Fields(kvs ...interface{}) map[string]interface{} {
	m := make(map[string]interface{}, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for an operation that failed.
func ErrorFields(op string, err error) map[string]interface{} {
	return map[string]interface{}{
		FieldOpID:  op,
		FieldError: err.Error(),
	}
}
