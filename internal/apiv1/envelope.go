package apiv1

// Envelope wraps every response body.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

// OK builds a successful envelope.
func OK[T any](status int, data T) Envelope[T] {
	return Envelope[T]{Success: true, Status: status, Message: "ok", Data: data}
}

// Fail builds an error envelope with no payload.
func Fail(status int, message string) Envelope[any] {
	return Envelope[any]{Success: false, Status: status, Message: message}
}
