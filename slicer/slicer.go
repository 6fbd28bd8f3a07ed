// Copyright (c) 2021 Patrick Ascher <development@fullhouse-productions.com>. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package slicer provides generic slice helpers.
package slicer

// Exists checks if the given element exists in the slice.
// If it exists, the position and a boolean `true` will return.
func Exists[T comparable](slice []T, search T) (int, bool) {
	for i, s := range slice {
		if s == search {
			return i, true
		}
	}
	return 0, false
}

// IndexFunc returns the position of the first element satisfying fn, or -1.
func IndexFunc[T any](slice []T, fn func(T) bool) int {
	for i, s := range slice {
		if fn(s) {
			return i
		}
	}
	return -1
}

// Filter returns a new slice with all elements satisfying fn.
func Filter[T any](slice []T, fn func(T) bool) []T {
	rv := make([]T, 0, len(slice))
	for _, s := range slice {
		if fn(s) {
			rv = append(rv, s)
		}
	}
	return rv
}

// Map returns a new slice with fn applied on every element.
func Map[T any, R any](slice []T, fn func(T) R) []R {
	rv := make([]R, 0, len(slice))
	for _, s := range slice {
		rv = append(rv, fn(s))
	}
	return rv
}
