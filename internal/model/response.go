package model

// Response is the envelope every API reply is wrapped in. Data is only set
// when Success is true; Message is only set when it is false.
type Response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Code    string `json:"code,omitempty"`
}

// OK wraps a successful payload.
func OK(data any) Response {
	return Response{Success: true, Data: data}
}

// Fail wraps a failure message.
func Fail(code, message string) Response {
	return Response{Success: false, Message: message, Code: code}
}
