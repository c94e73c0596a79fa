package api

var (
	errorMessageMap = map[int64]string{
		1011: "cannot parse request",

		1100: "invalid route coordinates",
	}

	errorCannotParseRequest = errorJSON(1011)

	errorInvalidRouteCoordinates = errorJSON(1100)
)

type ErrorResponse struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	var message string
	if msg, ok := errorMessageMap[code]; ok {
		message = msg
	} else {
		message = "unknown"
	}

	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}
