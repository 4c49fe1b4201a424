package limits

import "time"

// Plan describes a subscription plan: resource quotas and enabled modules.
type Plan struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Limits      map[Resource]int64 `yaml:"limits"`
	Modules     []Module           `yaml:"modules"`
	Public      bool               `yaml:"public"`
	TrialDays   int                `yaml:"trial_days"`
}

// HasModule reports whether the plan enables the given feature module.
func (p Plan) HasModule(m Module) bool {
	for _, pm := range p.Modules {
		if pm == m {
			return true
		}
	}
	return false
}

// TrialEndsAt returns when a trial started at startedAt ends. If the plan has
// no trial, returns startedAt.
func (p Plan) TrialEndsAt(startedAt time.Time) time.Time {
	if p.TrialDays <= 0 {
		return startedAt
	}
	return startedAt.AddDate(0, 0, p.TrialDays).UTC()
}

// IsTrialActive reports whether a trial started at startedAt is still running.
func (p Plan) IsTrialActive(startedAt time.Time) bool {
	if p.TrialDays <= 0 {
		return false
	}
	return time.Now().UTC().Before(p.TrialEndsAt(startedAt))
}
