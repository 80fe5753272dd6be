package apierr

var (
	BadRequest = APIError{
		Code:    "INVALID_REQUEST",
		Message: "invalid request body",
	}
	NotFound = APIError{
		Code:    "NOT_FOUND",
		Message: "resource not found",
	}
	InternalServerError = APIError{
		Code:    "INTERNAL_SERVER_ERROR",
		Message: "internal server error",
	}
	RoleFull = APIError{
		Code:    "ROLE_FULL",
		Message: "role is already at capacity",
	}
	DuplicateAssignment = APIError{
		Code:    "DUPLICATE_ASSIGNMENT",
		Message: "person already holds another role on this event",
	}
	SignupLocked = APIError{
		Code:    "SIGNUP_LOCKED",
		Message: "signup is locked by an assignment; unassign first",
	}
	StoreWriteFailed = APIError{
		Code:    "STORE_WRITE_FAILED",
		Message: "event store write failed",
	}
)
