package jsonutil

import (
	"math"
	"reflect"
)

// Sanitize returns a copy of v in which every NaN or infinite float has
// been neutralized so the value marshals to valid JSON: pointer and
// interface-wrapped floats become null, plain float fields become 0.
// The structure is otherwise preserved. encoding/json rejects NaN and
// Inf outright, so this runs on every outbound payload.
func Sanitize(v interface{}) interface{} {
	if v == nil {
		return nil
	}
	cleaned := clean(reflect.ValueOf(v))
	if !cleaned.IsValid() {
		return nil
	}
	return cleaned.Interface()
}

func clean(rv reflect.Value) reflect.Value {
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		if notFinite(rv.Float()) {
			return reflect.Zero(rv.Type())
		}
		return rv

	case reflect.Ptr:
		if rv.IsNil() {
			return rv
		}
		if isFloatKind(rv.Type().Elem().Kind()) && notFinite(rv.Elem().Float()) {
			return reflect.Zero(rv.Type())
		}
		out := reflect.New(rv.Type().Elem())
		out.Elem().Set(clean(rv.Elem()))
		return out

	case reflect.Interface:
		if rv.IsNil() {
			return rv
		}
		elem := rv.Elem()
		if isFloatKind(elem.Kind()) && notFinite(elem.Float()) {
			return reflect.Zero(rv.Type())
		}
		out := reflect.New(rv.Type()).Elem()
		out.Set(clean(elem))
		return out

	case reflect.Struct:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.NumField(); i++ {
			if out.Field(i).CanSet() {
				out.Field(i).Set(clean(rv.Field(i)))
			}
		}
		return out

	case reflect.Slice:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(clean(rv.Index(i)))
		}
		return out

	case reflect.Array:
		out := reflect.New(rv.Type()).Elem()
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(clean(rv.Index(i)))
		}
		return out

	case reflect.Map:
		if rv.IsNil() {
			return rv
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out.SetMapIndex(iter.Key(), clean(iter.Value()))
		}
		return out

	default:
		return rv
	}
}

func isFloatKind(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

func notFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
