package limits

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service answers quota and module questions for the current tenant's plan.
type Service interface {
	// CanCreate checks if a tenant can create one more instance of a resource.
	CanCreate(ctx context.Context, tenantID uuid.UUID, res Resource) error

	// GetUsage returns the current usage and limit for a resource.
	GetUsage(ctx context.Context, tenantID uuid.UUID, res Resource) (used, limit int64, err error)

	// HasModule reports whether the tenant's plan enables a feature module.
	HasModule(ctx context.Context, tenantID uuid.UUID, m Module) bool

	// VerifyPlan checks that a plan ID exists in the catalog.
	VerifyPlan(ctx context.Context, planID string) error

	// GetAllUsage returns usage for every resource in the tenant's plan.
	GetAllUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]UsageInfo, error)
}

// PlanIDResolver resolves a plan ID for a given tenant.
type PlanIDResolver func(ctx context.Context, tenantID uuid.UUID) (string, error)

// service treats its plan map as immutable after initialization; that is
// what makes it safe for concurrent use.
type service struct {
	plans          map[string]Plan
	counters       CounterRegistry
	planIDResolver PlanIDResolver
}

// NewService loads the plan catalog from src and wires usage counters. A nil
// planIDResolver defaults to reading the plan ID from context.
func NewService(ctx context.Context, src Source, counters CounterRegistry, planIDResolver PlanIDResolver) (Service, error) {
	plans, err := src.Load(ctx)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadPlans, err)
	}
	if plans == nil {
		plans = make(map[string]Plan)
	}

	if err := validatePlans(plans); err != nil {
		return nil, err
	}

	if counters == nil {
		counters = NewRegistry()
	}
	if planIDResolver == nil {
		planIDResolver = PlanIDContextResolver
	}

	return &service{
		plans:          plans,
		counters:       counters,
		planIDResolver: planIDResolver,
	}, nil
}

func (s *service) CanCreate(ctx context.Context, tenantID uuid.UUID, res Resource) error {
	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return err
	}

	limit, exists := plan.Limits[res]
	if !exists {
		return ErrInvalidResource
	}
	if limit == Unlimited {
		return nil
	}

	counter, exists := s.counters[res]
	if !exists {
		return ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return errors.Join(ErrFailedToCountResourceUsage, err)
	}

	if current >= limit {
		return ErrLimitExceeded
	}
	return nil
}

func (s *service) GetUsage(ctx context.Context, tenantID uuid.UUID, res Resource) (int64, int64, error) {
	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return 0, 0, err
	}

	limit, exists := plan.Limits[res]
	if !exists {
		return 0, 0, ErrInvalidResource
	}

	counter, exists := s.counters[res]
	if !exists {
		return 0, 0, ErrNoCounterRegistered
	}

	current, err := counter(ctx, tenantID)
	if err != nil {
		return 0, 0, errors.Join(ErrFailedToCountResourceUsage, err)
	}
	return current, limit, nil
}

func (s *service) HasModule(ctx context.Context, tenantID uuid.UUID, m Module) bool {
	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return false
	}
	return plan.HasModule(m)
}

func (s *service) VerifyPlan(ctx context.Context, planID string) error {
	if _, exists := s.plans[planID]; !exists {
		return ErrPlanNotFound
	}
	return nil
}

func (s *service) GetAllUsage(ctx context.Context, tenantID uuid.UUID) (map[Resource]UsageInfo, error) {
	plan, err := s.planFor(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	usage := make(map[Resource]UsageInfo, len(plan.Limits))
	for res, limit := range plan.Limits {
		info := UsageInfo{Limit: limit}
		if counter, exists := s.counters[res]; exists {
			current, err := counter(ctx, tenantID)
			if err != nil {
				return nil, errors.Join(ErrFailedToCountResourceUsage, err)
			}
			info.Current = current
		}
		usage[res] = info
	}
	return usage, nil
}

func (s *service) planFor(ctx context.Context, tenantID uuid.UUID) (Plan, error) {
	planID, err := s.planIDResolver(ctx, tenantID)
	if err != nil {
		return Plan{}, err
	}
	plan, exists := s.plans[planID]
	if !exists {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

func validatePlans(plans map[string]Plan) error {
	for id, plan := range plans {
		if plan.ID != "" && plan.ID != id {
			return errors.Join(ErrInvalidPlanConfiguration,
				fmt.Errorf("plan keyed %q declares id %q", id, plan.ID))
		}
		for res, limit := range plan.Limits {
			if limit < Unlimited {
				return errors.Join(ErrInvalidPlanConfiguration,
					fmt.Errorf("plan %q has negative limit %d for %q", id, limit, res))
			}
		}
	}
	return nil
}
