package services

import (
	"encoding/json"
	"fmt"
	"log"
)

// ID is the payload of a successful create. It marshals under "id" rather
// than "data".
type ID string

// Empty is the payload of operations that only report success.
type Empty struct{}

// Result is either Ok with a value or Fail with an error. Data-access
// functions return it instead of (T, error) so that API and page handlers
// can forward it unchanged.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](v T) Result[T] {
	return Result[T]{value: v}
}

func Fail[T any](err error) Result[T] {
	if err == nil {
		err = fmt.Errorf("unknown error")
	}
	return Result[T]{err: err}
}

func (r Result[T]) OK() bool   { return r.err == nil }
func (r Result[T]) Err() error { return r.err }

// Value is the zero T on failure.
func (r Result[T]) Value() T { return r.value }

func (r Result[T]) Unwrap() (T, error) { return r.value, r.err }

// MarshalJSON renders {success, data|id} or {success:false, error}.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		return json.Marshal(struct {
			Success bool   `json:"success"`
			Error   string `json:"error"`
		}{false, r.err.Error()})
	}
	switch v := any(r.value).(type) {
	case ID:
		return json.Marshal(struct {
			Success bool   `json:"success"`
			ID      string `json:"id"`
		}{true, string(v)})
	case Empty:
		return []byte(`{"success":true}`), nil
	}
	return json.Marshal(struct {
		Success bool `json:"success"`
		Data    T    `json:"data"`
	}{true, r.value})
}

// run converts errors and panics from fn into a failed Result and logs
// them under op.
func run[T any](op string, fn func() (T, error)) (res Result[T]) {
	defer func() {
		if p := recover(); p != nil {
			log.Printf("%s: panic: %v", op, p)
			res = Fail[T](fmt.Errorf("%s: %v", op, p))
		}
	}()
	v, err := fn()
	if err != nil {
		log.Printf("%s: %v", op, err)
		return Fail[T](err)
	}
	return Ok(v)
}
