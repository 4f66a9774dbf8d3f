package document

import (
	"fmt"
	"math"
	"reflect"
	"sort"
)

// FromValue converts a plain Go value into a Node. Maps become mappings
// with keys in sorted order since Go maps carry no order.
func FromValue(v any) (*Node, error) {
	switch x := v.(type) {
	case nil:
		return NewNull(), nil
	case *Node:
		return x, nil
	case bool:
		return NewBool(x), nil
	case string:
		return NewString(x), nil
	case int:
		return NewInt(int64(x)), nil
	case int8:
		return NewInt(int64(x)), nil
	case int16:
		return NewInt(int64(x)), nil
	case int32:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case uint8:
		return NewInt(int64(x)), nil
	case uint16:
		return NewInt(int64(x)), nil
	case uint32:
		return NewInt(int64(x)), nil
	case uint:
		return fromUint(uint64(x)), nil
	case uint64:
		return fromUint(x), nil
	case float32:
		return NewFloat(float64(x)), nil
	case float64:
		return NewFloat(x), nil
	case []any:
		items := make([]*Node, len(x))
		for i, it := range x {
			n, err := FromValue(it)
			if err != nil {
				return nil, fmt.Errorf("[%d]: %w", i, err)
			}
			items[i] = n
		}
		return NewSequence(items...), nil
	case []string:
		items := make([]*Node, len(x))
		for i, s := range x {
			items[i] = NewString(s)
		}
		return NewSequence(items...), nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]Pair, len(keys))
		for i, k := range keys {
			n, err := FromValue(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			pairs[i] = Field(k, n)
		}
		return NewMapping(pairs...)
	}
	return nil, fmt.Errorf("unsupported value of type %s", reflect.TypeOf(v))
}

// fromUint matches Parse: integers beyond int64 become floats.
func fromUint(u uint64) *Node {
	if u > math.MaxInt64 {
		return NewFloat(float64(u))
	}
	return NewInt(int64(u))
}

// FromMap builds a Document from nested plain Go values.
func FromMap(name string, m map[string]any) (*Document, error) {
	root, err := FromValue(m)
	if err != nil {
		return nil, err
	}
	return New(name, root)
}
