package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	api := s.echo.Group("/api/v1")

	auth := api.Group("/auth")
	auth.POST("/register", s.register)
	auth.POST("/login", s.login)

	api.GET("/plans", s.listPlans)

	protected := api.Group("")
	protected.Use(s.middleware.JWT.RequireJWT())

	protected.GET("/auth/me", s.getProfile)
	protected.GET("/dashboard", s.getDashboard)

	tenants := protected.Group("/tenants")
	tenants.POST("", s.createTenant)
	tenants.GET("", s.listTenants)

	// Realm-scoped routes share the per-plan rate limiter.
	realm := tenants.Group("/:realm", s.middleware.RateLimit.Handler())
	realm.GET("", s.getTenant)
	realm.PUT("", s.updateTenant)
	realm.DELETE("", s.deleteTenant)
	realm.PUT("/auth-settings", s.updateAuthSettings)
	realm.PUT("/branding", s.updateBranding)

	realm.POST("/clients", s.createClient)
	realm.GET("/clients", s.listClients)
	realm.DELETE("/clients/:client_id", s.deleteClient)

	realm.POST("/users", s.createUser)
	realm.GET("/users", s.listUsers)
	realm.GET("/users/:user_id", s.getUser)
	realm.PUT("/users/:user_id", s.updateUser)
	realm.DELETE("/users/:user_id", s.deleteUser)

	realm.GET("/users/:user_id/sessions", s.getUserSessions)
	realm.DELETE("/users/:user_id/sessions", s.revokeUserSessions)
	realm.DELETE("/sessions/:session_id", s.revokeSession)
	realm.POST("/users/:user_id/impersonate", s.impersonateUser)

	realm.POST("/roles", s.createRole)
	realm.GET("/roles", s.listRoles)
	realm.DELETE("/roles/:role_name", s.deleteRole)
	realm.POST("/users/:user_id/roles/:role_name", s.assignRole)
	realm.DELETE("/users/:user_id/roles/:role_name", s.removeRole)

	realm.POST("/organizations", s.createOrganization)
	realm.GET("/organizations", s.listOrganizations)
	realm.GET("/organizations/:slug", s.getOrganization)
	realm.DELETE("/organizations/:slug", s.deleteOrganization)
	realm.POST("/organizations/:slug/members", s.addOrgMember)
	realm.DELETE("/organizations/:slug/members/:user_id", s.removeOrgMember)

	realm.POST("/invitations", s.createInvitation)
	realm.GET("/invitations", s.listInvitations)
	realm.DELETE("/invitations/:invitation_id", s.revokeInvitation)

	realm.POST("/sso/oidc", s.createOIDCProvider)
	realm.POST("/sso/saml", s.createSAMLProvider)
	realm.GET("/sso", s.listSSOProviders)
	realm.DELETE("/sso/:alias", s.deleteSSOProvider)

	realm.POST("/webhooks", s.createWebhook)
	realm.GET("/webhooks", s.listWebhooks)
	realm.DELETE("/webhooks/:webhook_id", s.deleteWebhook)
	realm.GET("/webhooks/:webhook_id/logs", s.getWebhookLogs)

	realm.GET("/analytics", s.getTenantAnalytics)
	realm.GET("/events", s.getTenantEvents)

	coupons := protected.Group("/coupons")
	coupons.POST("", s.createCoupon)
	coupons.GET("", s.listCoupons)
	coupons.GET("/:code/validate", s.validateCoupon)
	coupons.POST("/:code/toggle", s.toggleCoupon)
	coupons.DELETE("/:code", s.deleteCoupon)
	coupons.GET("/:code/redemptions", s.getCouponRedemptions)
}
