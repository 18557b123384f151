package ppm

import (
	"errors"
	"reflect"
)

var (
	// ErrNullGrid is returned when an operation is handed a nil grid.
	ErrNullGrid = errors.New("ppm: null grid")

	// ErrEmptyGrid is returned when a grid has no rows.
	ErrEmptyGrid = errors.New("ppm: empty grid")

	// ErrInvalidShape is returned when the row length is not a multiple of 3.
	ErrInvalidShape = errors.New("ppm: invalid shape")

	// ErrJaggedShape is returned when rows differ in length.
	ErrJaggedShape = errors.New("ppm: jagged shape")

	// ErrNullStream is returned when Read is handed a nil reader, including a
	// typed nil pointer.
	ErrNullStream = errors.New("ppm: null stream")

	// ErrNullSink is returned when Write is handed a nil writer, including a
	// typed nil pointer.
	ErrNullSink = errors.New("ppm: null sink")
)

// isNil reports whether v is nil or an interface holding a nil pointer.
func isNil(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
