package config

import (
	"fmt"
	"math"
	"strconv"
)

type valueCache struct {
	stringVal      string
	stringArrayVal []string
	intVal         int64
	boolVal        bool
}

func (vc *valueCache) getData(opt *Option) interface{} {
	switch opt.OptType {
	case OptTypeBool:
		return vc.boolVal
	case OptTypeInt:
		return vc.intVal
	case OptTypeString:
		return vc.stringVal
	case OptTypeStringArray:
		return vc.stringArrayVal
	default:
		return nil
	}
}

func (option *Option) matches(s string) bool {
	return option.compiledRegex == nil || option.compiledRegex.MatchString(s)
}

func validateValue(option *Option, value interface{}) (*valueCache, error) {
	switch v := value.(type) {
	case string:
		if option.OptType != OptTypeString {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type string")
		}
		if !option.matches(v) {
			return nil, newInvalidValueError(option.Key, v, "validation regex failed")
		}
		return &valueCache{stringVal: v}, nil

	case []interface{}:
		// decoded json arrays
		converted := make([]string, len(v))
		for pos, entry := range v {
			s, ok := entry.(string)
			if !ok {
				return nil, newInvalidValueError(option.Key, fmt.Sprintf("element %+v at index %d", entry, pos), "not a string")
			}
			converted[pos] = s
		}
		return validateValue(option, converted)

	case []string:
		if option.OptType != OptTypeStringArray {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type []string")
		}
		for pos, entry := range v {
			if !option.matches(entry) {
				return nil, newInvalidValueError(option.Key, fmt.Sprintf("element %s at index %d", entry, pos), "validation regex failed")
			}
		}
		return &valueCache{stringArrayVal: v}, nil

	case bool:
		if option.OptType != OptTypeBool {
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type bool")
		}
		return &valueCache{boolVal: v}, nil

	default:
		i, isNumber, err := toInt64(v)
		switch {
		case !isNumber:
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "invalid value")
		case option.OptType != OptTypeInt:
			return nil, newInvalidValueError(option.Key, fmt.Sprintf("%T", v), "expected type int")
		case err != nil:
			return nil, newInvalidValueError(option.Key, v, err.Error())
		case !option.matches(strconv.FormatInt(i, 10)):
			return nil, newInvalidValueError(option.Key, v, "validation regex failed")
		}
		return &valueCache{intVal: i}, nil
	}
}

// toInt64 converts numeric values. Floats are accepted if they have no
// decimals, since json numbers decode to float64. uint64 is not accepted, as
// it does not fit into an int64.
func toInt64(value interface{}) (i int64, isNumber bool, err error) {
	switch v := value.(type) {
	case int:
		return int64(v), true, nil
	case int8:
		return int64(v), true, nil
	case int16:
		return int64(v), true, nil
	case int32:
		return int64(v), true, nil
	case int64:
		return v, true, nil
	case uint:
		return int64(v), true, nil
	case uint8:
		return int64(v), true, nil
	case uint16:
		return int64(v), true, nil
	case uint32:
		return int64(v), true, nil
	case float32:
		return floatToInt64(float64(v))
	case float64:
		return floatToInt64(v)
	case uint64:
		return 0, true, ErrUnsupportedType
	default:
		return 0, false, nil
	}
}

func floatToInt64(f float64) (int64, bool, error) {
	if math.Remainder(f, 1) != 0 || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, true, fmt.Errorf("cannot convert %v to int64", f)
	}
	return int64(f), true, nil
}
