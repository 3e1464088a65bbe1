package model

import (
	"bytes"
	"encoding/json"
)

// UserDetailDTO is the request body of POST /user-details.
type UserDetailDTO struct {
	DeviceToken *string  `json:"device_token"`
	Address     *string  `json:"address"`
	City        *string  `json:"city"`
	Lat         *float64 `json:"lat"`
	Lon         *float64 `json:"lon"`
}

// UserDetailUpdateDTO is the request body of PUT /user-details/:id. The device token is
// immutable, absent fields are kept and null clears a field.
type UserDetailUpdateDTO struct {
	Address Nullable[string]  `json:"address"`
	City    Nullable[string]  `json:"city"`
	Lat     Nullable[float64] `json:"lat"`
	Lon     Nullable[float64] `json:"lon"`
}

// Nullable tells an absent JSON field (Set false) from an explicit null (Set true, Value nil).
type Nullable[T any] struct {
	Set   bool
	Value *T
}

// Of returns a Nullable holding v.
func Of[T any](v T) Nullable[T] {
	return Nullable[T]{Set: true, Value: &v}
}

// Null returns an explicitly cleared Nullable.
func Null[T any]() Nullable[T] {
	return Nullable[T]{Set: true}
}

func (n *Nullable[T]) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	n.Value = &value
	return nil
}

// RegistrationSaved is published after a user detail is created or updated.
type RegistrationSaved struct {
	ID          uint   `json:"id"`
	DeviceToken string `json:"device_token"`
	City        string `json:"city"`
}
