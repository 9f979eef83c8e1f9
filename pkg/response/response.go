package response

// Response is the JSON envelope returned by every endpoint
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorData  `json:"error,omitempty"`
	Meta    interface{} `json:"meta,omitempty"`
}

type ErrorData struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Meta carries list metadata
type Meta struct {
	Total int `json:"total"`
}

func Success(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// SuccessWithMeta wraps a list payload together with its metadata
func SuccessWithMeta(data interface{}, meta interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
		Meta:    meta,
	}
}

func Error(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
		},
	}
}

func ErrorWithDetails(code, message, details string) Response {
	return Response{
		Success: false,
		Error: &ErrorData{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}

func BadRequest(message string) Response {
	return Error("BAD_REQUEST", message)
}

// ValidationError reports malformed input with the offending field detail
func ValidationError(details string) Response {
	return ErrorWithDetails("VALIDATION_ERROR", "Invalid request", details)
}

func NotFound(message string) Response {
	return Error("NOT_FOUND", message)
}

func Unauthorized(message string) Response {
	return Error("UNAUTHORIZED", message)
}

func Conflict(message string) Response {
	return Error("CONFLICT", message)
}

// InternalError never exposes the underlying error to the client
func InternalError() Response {
	return Error("INTERNAL_ERROR", "Internal server error")
}
