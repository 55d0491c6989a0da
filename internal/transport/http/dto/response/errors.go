package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationFailed = ErrorResponse{
		Status: "error",
		Error:  "authentication_failed",
	}

	ErrNotFound = ErrorResponse{
		Status: "error",
		Error:  "not_found",
	}

	ErrInvalidImage = ErrorResponse{
		Status:  "error",
		Error:   "invalid_image_format",
		Details: "Uploaded payload is not a decodable image",
	}

	ErrDuplicateCategoryCode = ErrorResponse{
		Status:  "error",
		Error:   "duplicate_code",
		Details: "A category with this code already exists",
	}

	ErrUploadFailed = ErrorResponse{
		Status: "error",
		Error:  "storage_upload_failed",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
