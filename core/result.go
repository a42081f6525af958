package core

import "encoding/json"

// Result is what every action returns: either a success carrying Data,
// or a failure carrying the typed Err and the Message to show to the user.
type Result[T any] struct {
	Success bool
	Data    T
	Err     error
	Message string
}

func OK[T any](data T) Result[T] {
	return Result[T]{Success: true, Data: data}
}

// Fail builds a failed Result; msg is the user-facing message (see ErrorMessage).
func Fail[T any](err error, msg string) Result[T] {
	if msg == "" && err != nil {
		msg = err.Error()
	}
	return Result[T]{Err: err, Message: msg}
}

// WithMessage sets the user-facing message of r, shown on success too.
func (r Result[T]) WithMessage(msg string) Result[T] {
	r.Message = msg
	return r
}

// Error returns the user-facing message of a failed Result.
func (r Result[T]) Error() string {
	if r.Success {
		return ""
	}
	return r.Message
}

type resultJSON struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

func (r Result[T]) MarshalJSON() ([]byte, error) {
	out := resultJSON{Success: r.Success}
	if r.Success {
		out.Data = r.Data
		out.Message = r.Message
	} else {
		out.Error = r.Message
	}
	return json.Marshal(out)
}
