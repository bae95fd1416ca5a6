package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Predicate reports whether item satisfies filterValue.
type Predicate[T any] func(item T, filterValue string) bool

// StringValueProvider extracts a single string value from an item of type T.
type StringValueProvider[T any] func(T) string

// BoolValueProvider extracts a single boolean value from an item of type T.
type BoolValueProvider[T any] func(T) bool

// Matchers maps a filter key to the predicate applied for it.
type Matchers[T any] map[string]Predicate[T]

// NormalizeString lowercases s and trims surrounding whitespace.
func NormalizeString(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Equals matches when the provided value equals the filter value (case-insensitive).
func Equals[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return NormalizeString(provider(item)) == NormalizeString(val)
	}
}

// EqualsBool matches when the provided value equals the filter value parsed as a bool.
// Values that do not parse never match.
func EqualsBool[T any](provider BoolValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		parsed, err := strconv.ParseBool(NormalizeString(val))
		if err != nil {
			return false
		}
		return provider(item) == parsed
	}
}

// Partial matches when the provided value contains the filter value (case-insensitive).
func Partial[T any](provider StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		return strings.Contains(NormalizeString(provider(item)), NormalizeString(val))
	}
}

// PartialAny matches when any of the provided values contains the filter value (case-insensitive).
func PartialAny[T any](providers ...StringValueProvider[T]) Predicate[T] {
	return func(item T, val string) bool {
		q := NormalizeString(val)
		for _, p := range providers {
			if strings.Contains(NormalizeString(p(item)), q) {
				return true
			}
		}
		return false
	}
}

// Parse converts 'key=value' pairs into a filter map with normalized keys.
// A later pair for the same key replaces an earlier one.
func Parse(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	filters := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = NormalizeString(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("invalid filter '%s', expected key=value", pair)
		}
		filters[k] = strings.TrimSpace(v)
	}

	return filters, nil
}

// Validate returns an error naming any filter keys that have no matcher.
func (m Matchers[T]) Validate(filters map[string]string) error {
	var unknown []string
	for k := range filters {
		if _, ok := m[NormalizeString(k)]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}

	slices.Sort(unknown)
	return fmt.Errorf("unsupported filter keys: %s (supported: %s)", strings.Join(unknown, ", "), strings.Join(m.Keys(), ", "))
}

// Keys returns the supported filter keys in sorted order.
func (m Matchers[T]) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Match reports whether item satisfies every filter. Keys without a matcher are ignored;
// callers wanting strictness should call Validate first.
func (m Matchers[T]) Match(item T, filters map[string]string) bool {
	for key, val := range filters {
		k := NormalizeString(key)
		if k == "" {
			continue
		}

		matcher, ok := m[k]
		if !ok {
			continue
		}
		if !matcher(item, val) {
			return false
		}
	}
	return true
}

// Apply returns the items that satisfy every filter, preserving order.
func Apply[T any](items []T, filters map[string]string, m Matchers[T]) ([]T, error) {
	if err := m.Validate(filters); err != nil {
		return nil, err
	}
	if len(filters) == 0 {
		return items, nil
	}

	out := make([]T, 0, len(items))
	for _, it := range items {
		if m.Match(it, filters) {
			out = append(out, it)
		}
	}
	return out, nil
}
