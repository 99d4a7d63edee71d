package entity

type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionCancelled SubscriptionStatus = "cancelled"
)

const DefaultTenantName = "Default"

type Tenant struct {
	Base
	Name               string             `db:"name"`
	Domain             *string            `db:"domain"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status"`
	Config             map[string]any     `db:"config"`
	IsDefault          bool               `db:"is_default"`
}
