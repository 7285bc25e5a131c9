package numeric

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/GriffinCanCode/numcore/internal/numeric/dataset"
	"github.com/GriffinCanCode/numcore/internal/numeric/matrix"
	"github.com/GriffinCanCode/numcore/internal/numeric/montecarlo"
	"github.com/GriffinCanCode/numcore/internal/shared/types"
)

var (
	// ErrInvalidParams marks a malformed or missing tool parameter.
	ErrInvalidParams = errors.New("invalid parameters")
	// ErrLimitExceeded marks a request larger than the configured host limits.
	ErrLimitExceeded = errors.New("limit exceeded")
	// ErrNumericOverflow marks a result holding a value outside float64 range.
	ErrNumericOverflow = errors.New("numeric overflow")
)

// Success creates a successful result. Data holding NaN or an infinity
// cannot be encoded and becomes a numeric_overflow failure instead.
func Success(data map[string]interface{}) (*types.Result, error) {
	if path, ok := nonFinite(reflect.ValueOf(data)); ok {
		return FailureFrom(fmt.Errorf("%w: data%s is not a finite number", ErrNumericOverflow, path))
	}
	return &types.Result{Success: true, Data: data}, nil
}

// nonFinite reports whether v holds a NaN or infinite float, and the path
// to the first one relative to v.
func nonFinite(v reflect.Value) (string, bool) {
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		return "", math.IsNaN(f) || math.IsInf(f, 0)
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return "", false
		}
		return nonFinite(v.Elem())
	case reflect.Slice, reflect.Array:
		if v.CanInterface() {
			if fs, ok := v.Interface().([]float64); ok {
				for i, f := range fs {
					if math.IsNaN(f) || math.IsInf(f, 0) {
						return fmt.Sprintf("[%d]", i), true
					}
				}
				return "", false
			}
		}
		if !mayHoldFloat(v.Type().Elem()) {
			return "", false
		}
		for i := 0; i < v.Len(); i++ {
			if p, ok := nonFinite(v.Index(i)); ok {
				return fmt.Sprintf("[%d]%s", i, p), true
			}
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if p, ok := nonFinite(iter.Value()); ok {
				return fmt.Sprintf(".%v%s", iter.Key(), p), true
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if p, ok := nonFinite(v.Field(i)); ok {
				return "." + jsonName(t.Field(i)) + p, true
			}
		}
	}
	return "", false
}

func mayHoldFloat(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return false
	}
	return true
}

func jsonName(f reflect.StructField) string {
	if tag, _, _ := strings.Cut(f.Tag.Get("json"), ","); tag != "" && tag != "-" {
		return tag
	}
	return f.Name
}

// Failure creates a failed result tagged with reason
func Failure(reason types.Reason, message string) (*types.Result, error) {
	msg := message
	return &types.Result{Success: false, Error: &msg, Reason: reason}, nil
}

// FailureFrom converts a domain error into a tagged failed result.
func FailureFrom(err error) (*types.Result, error) {
	return Failure(ReasonFor(err), err.Error())
}

// ReasonFor classifies err by the sentinel it wraps.
func ReasonFor(err error) types.Reason {
	switch {
	case errors.Is(err, dataset.ErrNoData):
		return types.ReasonEmptyInput
	case errors.Is(err, matrix.ErrShapeMismatch):
		return types.ReasonShapeMismatch
	case errors.Is(err, montecarlo.ErrDegenerateIteration):
		return types.ReasonDegenerateIteration
	case errors.Is(err, ErrLimitExceeded):
		return types.ReasonLimitExceeded
	case errors.Is(err, ErrNumericOverflow):
		return types.ReasonNumericOverflow
	default:
		return types.ReasonInvalidParams
	}
}

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}

func exceeded(what string, got, max interface{}) error {
	return fmt.Errorf("%w: %s %v exceeds maximum %v", ErrLimitExceeded, what, got, max)
}

// GetString extracts a string parameter. A present empty string is valid.
func GetString(params map[string]interface{}, key string) (string, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return "", invalid("%s parameter required", key)
	}
	str, ok := val.(string)
	if !ok {
		return "", invalid("%s must be string", key)
	}
	return str, nil
}

// GetCount extracts a non-negative integral parameter that fits in uint32.
func GetCount(params map[string]interface{}, key string) (uint32, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return 0, invalid("%s parameter required", key)
	}
	n, ok := toFloat(val)
	if !ok {
		return 0, invalid("%s must be number", key)
	}
	if n < 0 || n != math.Trunc(n) || n > math.MaxUint32 {
		return 0, invalid("%s must be an integer between 0 and %d", key, uint32(math.MaxUint32))
	}
	return uint32(n), nil
}

// GetSeed extracts an optional non-negative integral seed.
func GetSeed(params map[string]interface{}, key string) (uint64, bool, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return 0, false, nil
	}
	switch v := val.(type) {
	case uint64:
		return v, true, nil
	case uint32:
		return uint64(v), true, nil
	}
	n, ok := toFloat(val)
	if !ok || n < 0 || n != math.Trunc(n) || n >= math.MaxUint64 {
		return 0, false, invalid("%s must be a non-negative integer", key)
	}
	return uint64(n), true, nil
}

// GetNumbers extracts an array of finite numbers.
func GetNumbers(params map[string]interface{}, key string) ([]float64, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, invalid("%s parameter required", key)
	}

	var numbers []float64
	switch arr := val.(type) {
	case []float64:
		numbers = append([]float64(nil), arr...)
	case []interface{}:
		numbers = make([]float64, 0, len(arr))
		for i, v := range arr {
			num, ok := toFloat(v)
			if !ok {
				return nil, invalid("%s[%d] must be number", key, i)
			}
			numbers = append(numbers, num)
		}
	default:
		return nil, invalid("%s must be array of numbers", key)
	}

	if !dataset.Finite(numbers) {
		return nil, invalid("%s must contain only finite numbers", key)
	}
	return numbers, nil
}

// GetMatrix extracts a rectangular matrix given as an array of rows.
func GetMatrix(params map[string]interface{}, key string) (matrix.Matrix, error) {
	val, ok := params[key]
	if !ok || val == nil {
		return nil, invalid("%s parameter required", key)
	}

	var m matrix.Matrix
	switch rows := val.(type) {
	case matrix.Matrix:
		m = rows
	case [][]float64:
		m = matrix.Matrix(rows)
	case []interface{}:
		m = make(matrix.Matrix, 0, len(rows))
		for i, r := range rows {
			row, err := GetNumbers(map[string]interface{}{"row": r}, "row")
			if err != nil {
				return nil, invalid("%s row %d must be array of finite numbers", key, i)
			}
			m = append(m, row)
		}
	default:
		return nil, invalid("%s must be array of rows", key)
	}

	for i, row := range m {
		if !dataset.Finite(row) {
			return nil, invalid("%s row %d must contain only finite numbers", key, i)
		}
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return m, nil
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
