package plan

// BuiltinRegistry returns the static plan table. Values mirror the published
// pricing tiers; -1 means unlimited.
func BuiltinRegistry() *Registry {
	return NewRegistry(
		&Plan{
			ID:          "free",
			DisplayName: "Free",
			Price:       0,
			MFALevel:    "basic",
			Limits: Limits{
				MaxUsers:        10000,
				MaxAdmins:       1,
				MaxRealms:       1,
				MaxOrgs:         0,
				MaxWebhooks:     0,
				MaxRoles:        2,
				SAMLConnections: 0,
				APIRateLimit:    100,
			},
			Features: Features{
				OIDCSSO:           true,
				SocialLogin:       true,
				SessionManagement: true,
				CustomBranding:    true,
			},
		},
		&Plan{
			ID:          "pro",
			DisplayName: "Pro",
			Price:       25,
			MFALevel:    "advanced",
			Limits: Limits{
				MaxUsers:        100000,
				MaxAdmins:       3,
				MaxRealms:       5,
				MaxOrgs:         50,
				MaxWebhooks:     3,
				MaxRoles:        20,
				SAMLConnections: 0,
				APIRateLimit:    1000,
			},
			Features: Features{
				OIDCSSO:                 true,
				SocialLogin:             true,
				MagicLinks:              true,
				Organizations:           true,
				Webhooks:                true,
				Analytics:               true,
				UserImpersonation:       true,
				SessionManagement:       true,
				DeviceTracking:          true,
				DisposableEmailBlocking: true,
				CustomRoles:             true,
				BotProtection:           true,
				PasswordBreachDetection: true,
				CustomBranding:          true,
				PrioritySupport:         true,
			},
		},
		&Plan{
			ID:          "business",
			DisplayName: "Business",
			Price:       99,
			MFALevel:    "advanced",
			Limits: Limits{
				MaxUsers:        500000,
				MaxAdmins:       10,
				MaxRealms:       Unlimited,
				MaxOrgs:         Unlimited,
				MaxWebhooks:     10,
				MaxRoles:        Unlimited,
				SAMLConnections: 3,
				APIRateLimit:    5000,
			},
			Features: Features{
				OIDCSSO:                 true,
				SocialLogin:             true,
				MagicLinks:              true,
				Organizations:           true,
				Webhooks:                true,
				Analytics:               true,
				UserImpersonation:       true,
				SessionManagement:       true,
				DeviceTracking:          true,
				DisposableEmailBlocking: true,
				CustomRoles:             true,
				BotProtection:           true,
				PasswordBreachDetection: true,
				CustomBranding:          true,
				PrioritySupport:         true,
				PremiumSupport:          true,
			},
		},
		&Plan{
			ID:          "enterprise",
			DisplayName: "Enterprise",
			Price:       499,
			MFALevel:    "full",
			Limits: Limits{
				MaxUsers:        Unlimited,
				MaxAdmins:       Unlimited,
				MaxRealms:       Unlimited,
				MaxOrgs:         Unlimited,
				MaxWebhooks:     Unlimited,
				MaxRoles:        Unlimited,
				SAMLConnections: Unlimited,
				APIRateLimit:    Unlimited,
			},
			Features: Features{
				OIDCSSO:                 true,
				SocialLogin:             true,
				MagicLinks:              true,
				Organizations:           true,
				Webhooks:                true,
				Analytics:               true,
				UserImpersonation:       true,
				SessionManagement:       true,
				DeviceTracking:          true,
				DisposableEmailBlocking: true,
				CustomRoles:             true,
				BotProtection:           true,
				PasswordBreachDetection: true,
				CustomBranding:          true,
				PrioritySupport:         true,
				PremiumSupport:          true,
			},
		},
	)
}
