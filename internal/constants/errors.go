package constants

// User facing error messages
const (
	// auth
	ErrUnauthorized          = "authorization required"
	ErrInvalidToken          = "invalid token"
	ErrInvalidCredentials    = "invalid username or password"
	ErrRegistrationForbidden = "registration requires an administrator"
	ErrUsernameExists        = "username already exists"
	ErrCredentialsRequired   = "username and password are required"
	ErrUnsupportedAuthAction = "unsupported action"

	// request
	ErrInvalidRequest     = "invalid request body"
	ErrIDRequired         = "id is required"
	ErrInvalidStatus      = "status must be pending or approved"
	ErrInvalidDecision    = "status must be approved or rejected"
	ErrUnknownContentType = "unknown content type"
	ErrMethodNotAllowed   = "method not supported"
	ErrTooManyRequests    = "too many requests, try again later"

	// listings
	ErrListingNotFound   = "listing not found"
	ErrIllegalTransition = "listing has already been moderated"

	// content
	ErrNotFound      = "item not found"
	ErrDuplicateItem = "item already exists"

	// system
	ErrInternalServer = "internal server error"
)

// Success messages
const (
	SuccessLogin         = "login successful"
	SuccessRegister      = "administrator created"
	SuccessSubmitted     = "listing sent for moderation"
	SuccessStatusUpdated = "status updated"
	SuccessDeleted       = "deleted"
	SuccessCreated       = "created"
	SuccessUpdated       = "updated"
)
