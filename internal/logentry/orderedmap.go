// Package logentry defines the values that cross stage boundaries in the
// pipeline: raw LogEntry values from a reader, normalized Messages from a
// parser, and the Chunk trees a classifier produces.
package logentry

// OrderedMap is a string-to-string map that preserves insertion order when
// iterated. Message metadata must replay in the order keys first appeared
// (JSON object order, logrus token order, regex named-group order), which a
// plain map cannot guarantee.
type OrderedMap struct {
	keys   []string
	values map[string]string
}

// NewOrderedMap returns an empty OrderedMap.
func NewOrderedMap() *OrderedMap {
	return &OrderedMap{values: make(map[string]string)}
}

// Set inserts or updates key. Updating an existing key does not change its
// position in iteration order.
func (m *OrderedMap) Set(key, value string) {
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the value for key and whether it was present.
func (m *OrderedMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Delete removes key, if present.
func (m *OrderedMap) Delete(key string) {
	if _, exists := m.values[key]; !exists {
		return
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
}

// Keys returns the keys in insertion order.
func (m *OrderedMap) Keys() []string {
	return m.keys
}

// Len returns the number of entries.
func (m *OrderedMap) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Range calls fn for each key/value pair in insertion order.
func (m *OrderedMap) Range(fn func(key, value string)) {
	if m == nil {
		return
	}
	for _, k := range m.keys {
		fn(k, m.values[k])
	}
}

// ToMap returns a plain map copy, for callers (e.g. the JSON renderer) that
// only need key/value pairs and not ordering.
func (m *OrderedMap) ToMap() map[string]string {
	out := make(map[string]string, m.Len())
	m.Range(func(k, v string) { out[k] = v })
	return out
}
