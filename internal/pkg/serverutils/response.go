// FILE: internal/pkg/serverutils/response.go
package serverutils

type Response[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data,omitempty"`
}

type ErrorBody struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

func ErrorResponse(status int, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Status:  status,
		Message: message,
	}
}

func ErrorResponseWithCode(status int, code, message string) ErrorBody {
	return ErrorBody{
		Success: false,
		Status:  status,
		Code:    code,
		Message: message,
	}
}
