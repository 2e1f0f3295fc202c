package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// Clients map these codes to their own messages; the message field is a
// human-readable fallback.

const (
	// Authentication (AUTH_)
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login required
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // wrong email/password
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // malformed or unsigned token
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // logged out or user deleted
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // duplicate email

	// Authorization (AUTHZ_)
	AuthzForbidden = "AUTHZ_FORBIDDEN" // authenticated but not allowed
	AuthzAdminOnly = "AUTHZ_ADMIN_ONLY"

	// Validation (VALIDATION_)
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"

	// Resources (RESOURCE_)
	ResourceNotFound  = "RESOURCE_NOT_FOUND"
	UserNotFound      = "USER_NOT_FOUND"
	FranchiseNotFound = "FRANCHISE_NOT_FOUND"
	StoreNotFound     = "STORE_NOT_FOUND"
	EndpointNotFound  = "ENDPOINT_NOT_FOUND"

	// Fulfillment (FACTORY_)
	FactoryFulfillmentFailed = "FACTORY_FULFILLMENT_FAILED"

	// Internal (INTERNAL_)
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
