package constant

const (
	ERR_VALIDATION_CODE                 = "VALIDATION_ERROR"
	ERR_INVALID_REQUEST_BODY_ERROR_CODE = "INVALID_REQUEST_BODY_ERROR"
	ERR_INTERNAL_SERVER_ERROR_CODE      = "INTERNAL_SERVER_ERROR"
	ERR_INTENRAL_SERVER_ERROR_MESSAGE   = "Something went wrong. If the problem persists, please contact support"
	ERR_INVALID_REQUEST_BODY_MESSAGE    = "The request is invalid or malformed"
	ERR_NOT_FOUND_ERROR                 = "NOT_FOUND_ERROR"
	ERR_UNATHORIZED_ERROR               = "UNAUTHORIEZED_ERROR"
	ERR_RATE_LIMITED                    = "RATE_LIMITED"
)

// Messages surfaced by the post, follower and account usecases.
const (
	MSG_INVALID_INPUT       = "Invalid input."
	MSG_INVALID_ID          = "Invalid id."
	MSG_INVALID_TOKEN       = "Invalid token."
	MSG_PROBLEM             = "Something unexpected occurred."
	MSG_POST_NOT_FOUND      = "Post not found."
	MSG_USER_NOT_FOUND      = "User not found."
	MSG_FOLLOWER_NOT_FOUND  = "Follower not found."
	MSG_SELF_FOLLOW         = "You cannot follow yourself."
	MSG_BAD_CREDENTIALS     = "Username or password is incorrect."
	MSG_EMAIL_NOT_CONFIRMED = "Email is not confirmed."
)
