package config

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// IntersphinxTarget is one cross-project reference target. In the file
// it is written as a pair: [base-url, inventory-path-or-null].
type IntersphinxTarget struct {
	URL string
	// Inventory is the objects.inv location; nil means "<URL>/objects.inv".
	Inventory *string
}

// InventoryOrDefault returns the explicit inventory or "" when unset.
func (t IntersphinxTarget) InventoryOrDefault() string {
	if t.Inventory == nil {
		return ""
	}
	return *t.Inventory
}

// MarshalJSON writes the target back in its pair form.
func (t IntersphinxTarget) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{t.URL, t.Inventory})
}

var intersphinxTargetType = reflect.TypeOf(IntersphinxTarget{})

// decodeIntersphinxTarget converts the pair form into an IntersphinxTarget.
// A bare string is accepted as [url, null].
func decodeIntersphinxTarget(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != intersphinxTargetType {
		return data, nil
	}

	switch v := data.(type) {
	case string:
		return IntersphinxTarget{URL: v}, nil
	case []any:
		if len(v) == 0 || len(v) > 2 {
			return nil, fmt.Errorf("intersphinx target must be [url, inventory], got %d items", len(v))
		}
		url, ok := v[0].(string)
		if !ok {
			return nil, fmt.Errorf("intersphinx url must be a string, got %T", v[0])
		}
		t := IntersphinxTarget{URL: url}
		if len(v) == 2 && v[1] != nil {
			inv, ok := v[1].(string)
			if !ok {
				return nil, fmt.Errorf("intersphinx inventory must be a string or null, got %T", v[1])
			}
			t.Inventory = &inv
		}
		return t, nil
	case IntersphinxTarget:
		return v, nil
	default:
		return nil, fmt.Errorf("intersphinx target must be [url, inventory], got %s", from)
	}
}

// DecodeHook returns the mapstructure hooks needed to decode a Config.
func DecodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		decodeIntersphinxTarget,
		mapstructure.StringToSliceHookFunc(","),
		mapstructure.TextUnmarshallerHookFunc(),
	)
}
