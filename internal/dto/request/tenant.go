package request

type TenantRequest struct {
	Name               string         `json:"name" validate:"required,min=1,max=150"`
	Domain             *string        `json:"domain,omitempty" validate:"omitempty,fqdn,max=255"`
	SubscriptionStatus *string        `json:"subscription_status,omitempty" validate:"omitempty,oneof=trial active suspended cancelled"`
	Config             map[string]any `json:"config,omitempty"`
}

type TenantUpdateRequest struct {
	Name               *string        `json:"name,omitempty" validate:"omitempty,min=1,max=150"`
	Domain             *string        `json:"domain,omitempty" validate:"omitempty,fqdn,max=255"`
	SubscriptionStatus *string        `json:"subscription_status,omitempty" validate:"omitempty,oneof=trial active suspended cancelled"`
	Config             map[string]any `json:"config,omitempty"`
}
