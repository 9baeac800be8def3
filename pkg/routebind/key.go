package routebind

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NormalizeKey converts a raw route value into a natural key. Strings are
// trimmed; integers and integral floats use their decimal form. Anything
// else, or an empty result, is ErrInvalidNaturalKey.
func NormalizeKey(raw any) (string, error) {
	var key string
	switch v := raw.(type) {
	case string:
		key = strings.TrimSpace(v)
	case json.Number:
		key = strings.TrimSpace(v.String())
		if _, err := strconv.ParseInt(key, 10, 64); err != nil {
			f, ferr := v.Float64()
			if ferr != nil || !isIntegral(f) {
				return "", fmt.Errorf("%w: %q", ErrInvalidNaturalKey, key)
			}
			key = strconv.FormatFloat(f, 'f', 0, 64)
		}
	case int:
		key = strconv.FormatInt(int64(v), 10)
	case int8:
		key = strconv.FormatInt(int64(v), 10)
	case int16:
		key = strconv.FormatInt(int64(v), 10)
	case int32:
		key = strconv.FormatInt(int64(v), 10)
	case int64:
		key = strconv.FormatInt(v, 10)
	case uint:
		key = strconv.FormatUint(uint64(v), 10)
	case uint8:
		key = strconv.FormatUint(uint64(v), 10)
	case uint16:
		key = strconv.FormatUint(uint64(v), 10)
	case uint32:
		key = strconv.FormatUint(uint64(v), 10)
	case uint64:
		key = strconv.FormatUint(v, 10)
	case float32:
		if !isIntegral(float64(v)) {
			return "", fmt.Errorf("%w: %v", ErrInvalidNaturalKey, v)
		}
		key = strconv.FormatFloat(float64(v), 'f', 0, 32)
	case float64:
		if !isIntegral(v) {
			return "", fmt.Errorf("%w: %v", ErrInvalidNaturalKey, v)
		}
		key = strconv.FormatFloat(v, 'f', 0, 64)
	default:
		return "", fmt.Errorf("%w: unsupported type %T", ErrInvalidNaturalKey, raw)
	}

	if key == "" {
		return "", fmt.Errorf("%w: empty value", ErrInvalidNaturalKey)
	}
	return key, nil
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f) && f == math.Trunc(f)
}
