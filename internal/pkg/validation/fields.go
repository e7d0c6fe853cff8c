package validation

import "encoding/json"

// Fields is the set of top-level keys present in a JSON object body
type Fields map[string]struct{}

// Has reports whether key was present. A nil set has no keys.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// FieldsOf returns the keys of a JSON object body, nil when raw is not an object
func FieldsOf(raw []byte) Fields {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil
	}
	return keysOf(obj)
}

// FieldsOfEach returns the keys of every object of a JSON array body
func FieldsOfEach(raw []byte) []Fields {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]Fields, len(items))
	for i, item := range items {
		out[i] = FieldsOf(item)
	}
	return out
}

func keysOf(obj map[string]json.RawMessage) Fields {
	if obj == nil {
		return nil
	}
	fields := make(Fields, len(obj))
	for k := range obj {
		fields[k] = struct{}{}
	}
	return fields
}
