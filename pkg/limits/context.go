package limits

import (
	"context"

	"github.com/google/uuid"
)

type planIDCtxKey struct{}

// SetPlanIDToContext stores the plan ID in the context for downstream access.
// The tenant middleware sets it from the resolved tenant record.
func SetPlanIDToContext(ctx context.Context, planID string) context.Context {
	return context.WithValue(ctx, planIDCtxKey{}, planID)
}

// GetPlanIDFromContext retrieves the plan ID from the context, if present.
func GetPlanIDFromContext(ctx context.Context) (string, bool) {
	planID, ok := ctx.Value(planIDCtxKey{}).(string)
	return planID, ok
}

// PlanIDContextResolver is the default resolver: reads the plan ID installed
// in the request context.
func PlanIDContextResolver(ctx context.Context, _ uuid.UUID) (string, error) {
	planID, ok := GetPlanIDFromContext(ctx)
	if !ok {
		return "", ErrPlanIDNotInContext
	}
	return planID, nil
}
