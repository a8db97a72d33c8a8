package validator

import (
	"reflect"

	"github.com/mitchellh/hashstructure/v2"
)

// MinItems accepts sequences with at least limit items.
func MinItems[T any](limit int) Rule[[]T] {
	return NewRule(func(value []T) Failure {
		if len(value) >= limit {
			return nil
		}
		return NewMinItemsFailure(limit)
	})
}

// MaxItems accepts sequences with at most limit items.
func MaxItems[T any](limit int) Rule[[]T] {
	return NewRule(func(value []T) Failure {
		if len(value) <= limit {
			return nil
		}
		return NewMaxItemsFailure(limit)
	})
}

// UniqueItems accepts sequences without two equal items. An empty sequence is unique.
func UniqueItems[T comparable]() Rule[[]T] {
	return NewRule(func(value []T) Failure {
		seen := make(map[T]struct{}, len(value))
		for _, item := range value {
			if _, ok := seen[item]; ok {
				return NewUniqueItemsFailure()
			}
			seen[item] = struct{}{}
		}
		return nil
	})
}

// UniqueItemsFunc is UniqueItems with a caller supplied equality. It compares
// every pair, so prefer UniqueItems or UniqueItemsHashed for long sequences.
func UniqueItemsFunc[T any](equal func(a, b T) bool) Rule[[]T] {
	return NewRule(func(value []T) Failure {
		if hasDuplicate(value, equal) {
			return NewUniqueItemsFailure()
		}
		return nil
	})
}

// UniqueItemsHashed handles items that are not comparable with == (maps,
// slices, decoded JSON values). Items are bucketed by structural hash and
// confirmed with deep equality.
func UniqueItemsHashed[T any]() Rule[[]T] {
	return NewRule(func(value []T) Failure {
		if hasDuplicateHashed(value) {
			return NewUniqueItemsFailure()
		}
		return nil
	})
}

func hasDuplicate[T any](items []T, equal func(a, b T) bool) bool {
	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			if equal(items[i], items[j]) {
				return true
			}
		}
	}
	return false
}

func hasDuplicateHashed[T any](items []T) bool {
	buckets := make(map[uint64][]int, len(items))
	for i, item := range items {
		h, err := hashstructure.Hash(item, hashstructure.FormatV2, nil)
		if err != nil {
			// unhashable kinds (funcs, channels) fall back to pairwise comparison
			return hasDuplicate(items, func(a, b T) bool { return reflect.DeepEqual(a, b) })
		}
		for _, j := range buckets[h] {
			if reflect.DeepEqual(items[j], item) {
				return true
			}
		}
		buckets[h] = append(buckets[h], i)
	}
	return false
}

// MinProperties accepts keyed objects with at least limit entries.
func MinProperties[K comparable, V any](limit int) Rule[map[K]V] {
	return NewRule(func(value map[K]V) Failure {
		if len(value) >= limit {
			return nil
		}
		return NewMinPropertiesFailure(limit)
	})
}

// MaxProperties accepts keyed objects with at most limit entries.
func MaxProperties[K comparable, V any](limit int) Rule[map[K]V] {
	return NewRule(func(value map[K]V) Failure {
		if len(value) <= limit {
			return nil
		}
		return NewMaxPropertiesFailure(limit)
	})
}
