package limits

import "errors"

var (
	ErrPlanNotFound             = errors.New("limits.errors.plan_not_found")
	ErrPlanIDNotInContext       = errors.New("limits.errors.plan_id_not_in_context")
	ErrInvalidPlanConfiguration = errors.New("limits.errors.invalid_plan_configuration")

	ErrLimitExceeded       = errors.New("limits.errors.limit_exceeded")
	ErrInvalidResource     = errors.New("limits.errors.invalid_resource")
	ErrNoCounterRegistered = errors.New("limits.errors.no_counter_registered")

	ErrFailedToLoadPlans          = errors.New("limits.errors.failed_to_load_plans")
	ErrFailedToCountResourceUsage = errors.New("limits.errors.failed_to_count_resource_usage")
)
