package models

import (
	"bytes"
	"encoding/json"
)

// Canonical field labels shared by every extraction strategy.
const (
	FieldMedicalID  = "病歷號"
	FieldName       = "姓名"
	FieldGender     = "性別"
	FieldBirth      = "生日"
	FieldExamRegion = "檢查部位"
	FieldExamItems  = "檢查項目"
)

// FieldMap is an insertion-ordered label → value map filled by one
// extraction strategy. A populated key is never overwritten.
type FieldMap struct {
	keys   []string
	values map[string]string
}

// NewFieldMap returns an empty map.
func NewFieldMap() *FieldMap {
	return &FieldMap{values: make(map[string]string)}
}

// Set stores value under key unless the key is already populated.
// It reports whether the value was stored.
func (m *FieldMap) Set(key, value string) bool {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[key]; ok {
		return false
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
	return true
}

// Has reports whether key is populated.
func (m *FieldMap) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the value for key.
func (m *FieldMap) Get(key string) (string, bool) {
	if m == nil {
		return "", false
	}
	v, ok := m.values[key]
	return v, ok
}

// Len returns the number of populated keys.
func (m *FieldMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the populated keys in insertion order.
func (m *FieldMap) Keys() []string {
	if m == nil {
		return nil
	}
	return append([]string(nil), m.keys...)
}

// Each calls fn for every entry in insertion order.
func (m *FieldMap) Each(fn func(key, value string)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// Map returns a copy as a plain map, for JSON output.
func (m *FieldMap) Map() map[string]string {
	out := make(map[string]string, m.Len())
	m.Each(func(k, v string) { out[k] = v })
	return out
}

// MarshalJSON writes the map as a JSON object in insertion order.
func (m *FieldMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	var err error
	i := 0
	m.Each(func(k, v string) {
		if err != nil {
			return
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		i++
		var kb, vb []byte
		if kb, err = json.Marshal(k); err != nil {
			return
		}
		if vb, err = json.Marshal(v); err != nil {
			return
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
