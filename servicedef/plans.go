package servicedef

import "gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"

const (
	PlanFree     = "free"
	PlanPro      = "pro"
	PlanBusiness = "business"
)

// PlanLimits describes what a plan allows. A negative MaxQRCodes, or an undefined
// MaxScansPerMonth, means unlimited.
type PlanLimits struct {
	MaxQRCodes             ldvalue.OptionalInt `json:"maxQrCodes"`
	MaxScansPerMonth       ldvalue.OptionalInt `json:"maxScansPerMonth"`
	CustomDomains          bool                `json:"customDomains"`
	AnalyticsRetentionDays int                 `json:"analyticsRetentionDays"`
	PrioritySupport        bool                `json:"prioritySupport"`
	APIAccess              bool                `json:"apiAccess"`
	WhiteLabel             bool                `json:"whiteLabel"`
}

type Plan struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Price       ldvalue.Value `json:"price"`
	Interval    string        `json:"interval,omitempty"`
	Description string        `json:"description,omitempty"`
	Features    []string      `json:"features"`
	Limits      PlanLimits    `json:"limits"`
	Popular     bool          `json:"popular,omitempty"`
}

type PlansResponse struct {
	Plans []Plan `json:"plans"`
}

// UserPlan is the plan of the authenticated user, as returned by GET /user/plan.
type UserPlan struct {
	UserID        string     `json:"userId"`
	Plan          string     `json:"plan"`
	EffectivePlan string     `json:"effectivePlan"`
	Limits        PlanLimits `json:"limits"`
	IsActive      bool       `json:"isActive"`
}

type UserPlanResponse struct {
	Plan   *UserPlan `json:"plan"`
	IsDemo bool      `json:"isDemo,omitempty"`
}
