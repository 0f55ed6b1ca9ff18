// internal/i18n/keys.go
package i18n

// Translation keys constants
const (
	// Common
	KeySuccess = "success"
	KeyError   = "error"

	// Authentication
	KeyAuthRequired           = "auth.required"
	KeyAuthInvalidToken       = "auth.invalid_token"
	KeyAuthTokenExpired       = "auth.token_expired"
	KeyAuthInvalidCredentials = "auth.invalid_credentials"
	KeyAuthLoginSuccess       = "auth.login_success"
	KeyAuthLogoutSuccess      = "auth.logout_success"

	// Profile resolution
	KeyProfileNotFound   = "profile.not_found"
	KeyProfileLoadFailed = "profile.load_failed"

	// Leads
	KeyLeadCreated      = "lead.created"
	KeyLeadUpdated      = "lead.updated"
	KeyLeadNotFound     = "lead.not_found"
	KeyLeadAccessDenied = "lead.access_denied"
	KeyLeadUpdateFailed = "lead.update_failed"
	KeyLeadCreateFailed = "lead.create_failed"

	// Admin
	KeyAdminAccessDenied = "admin.access_denied"

	// Validation
	KeyValidationRequired = "validation.required"
	KeyValidationInvalid  = "validation.invalid"
)
