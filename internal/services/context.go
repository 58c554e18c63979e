package services

import "context"

type contextKey string

const (
	runIDKey       contextKey = "run_id"
	targetIndexKey contextKey = "target_index"
	stageKey       contextKey = "stage"
)

// WithRunID annotates context with the batch run identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithTargetIndex annotates context with the 1-based position of the target in the batch.
func WithTargetIndex(ctx context.Context, index int) context.Context {
	return context.WithValue(ctx, targetIndexKey, index)
}

// TargetIndexFromContext extracts the target position if present.
func TargetIndexFromContext(ctx context.Context) (int, bool) {
	v := ctx.Value(targetIndexKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int:
		return val, true
	case int64:
		return int(val), true
	default:
		return 0, false
	}
}

// WithStage annotates context with the batch phase name (gather, execute).
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}
