package enum

import (
	"fmt"
	"reflect"
	"sort"
)

var registry = map[reflect.Type]map[string]any{}

// New registers value as a member of its enum type. It is called when
// declaring package level variables, so the registry is never written after
// init.
func New[T ~string](value T) T {
	t := reflect.TypeOf(value)
	if _, ok := registry[t]; !ok {
		registry[t] = map[string]any{}
	}

	registry[t][string(value)] = value
	return value
}

// ToEnum converts a string to a registered member of enum T.
func ToEnum[T ~string](s string) (T, error) {
	var zero T
	members, ok := registry[reflect.TypeOf(zero)]
	if !ok {
		return zero, fmt.Errorf("not found enum type %T", zero)
	}

	v, ok := members[s]
	if !ok {
		return zero, fmt.Errorf("not found value %s in enum %T", s, zero)
	}

	return v.(T), nil
}

// Values returns all members of enum T in lexical order.
func Values[T ~string]() []T {
	var zero T
	members := registry[reflect.TypeOf(zero)]

	values := make([]T, 0, len(members))
	for _, v := range members {
		values = append(values, v.(T))
	}
	sort.Slice(values, func(i, j int) bool { return values[i] < values[j] })

	return values
}
