package user

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Request carries the editable fields of a user. Identifier and photo URL are
// never taken from the client.
type Request struct {
	Name         string `json:"name"`
	Nickname     string `json:"nickname"`
	BirthDate    string `json:"birthDate"`
	Country      string `json:"country"`
	Province     string `json:"province"`
	Neighborhood string `json:"neighborhood"`
	Email        string `json:"email"`
}

var ErrEmptyPayload = errors.New("empty payload")

// DecodeError wraps any failure to turn the payload into a Request.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode user: %v", e.Err) }

func (e *DecodeError) Unwrap() error { return e.Err }

func DecodeRequest(data []byte) (Request, error) {
	var req Request

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return req, &DecodeError{Err: ErrEmptyPayload}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&req); err != nil {
		return Request{}, &DecodeError{Err: err}
	}
	if dec.More() {
		return Request{}, &DecodeError{Err: errors.New("unexpected data after JSON object")}
	}

	return req, nil
}
