package limits

// Resource represents a countable tenant resource type.
type Resource string

// Resources counted against plan quotas.
const (
	ResourceProjects      Resource = "projects"
	ResourceUsers         Resource = "users"
	ResourceBeneficiaries Resource = "beneficiaries"
)

// Unlimited represents a resource with no limit (-1).
const Unlimited int64 = -1

// Module is a feature module that a plan can enable for a tenant.
type Module string

// Feature modules available to tenants.
const (
	ModuleCadastro    Module = "cadastro"
	ModuleAtendimento Module = "atendimento"
	ModuleFinanceiro  Module = "financeiro"
	ModuleSaude       Module = "saude"
	ModuleMarketing   Module = "marketing"
)

// UsageInfo contains the current usage and limit for a resource.
type UsageInfo struct {
	Current int64 `json:"current"`
	Limit   int64 `json:"limit"`
}
