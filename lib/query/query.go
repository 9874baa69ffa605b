// Package query is the in-memory filter/sort/paginate engine shared by the
// API handlers and any batch-loading caller, so a client slicing a fully
// fetched collection sees exactly the pages the API would have served.
package query

import (
	"sort"
	"strings"
)

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Filter keeps the items matching every predicate. Predicates are conjunctive;
// callers express "no constraint" by not passing a predicate.
func Filter[T any](items []T, preds ...func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		keep := true
		for _, pred := range preds {
			if !pred(item) {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, item)
		}
	}
	return result
}

// SortStable sorts a copy-free view of items with the given less function.
func SortStable[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}

// Paginate slices out the requested page. totalPages is ceil(total/pageSize);
// pages past the end yield an empty data slice, never an error.
func Paginate[T any](items []T, page, pageSize int) ([]T, Pagination) {
	total := len(items)
	totalPages := (total + pageSize - 1) / pageSize
	p := Pagination{Page: page, PageSize: pageSize, Total: total, TotalPages: totalPages}
	start := (page - 1) * pageSize
	if start >= total {
		return []T{}, p
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return items[start:end], p
}

// ContainsFold reports whether any of the fields contains the search term,
// case-insensitively. An empty term matches everything.
func ContainsFold(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// ParseSort splits a "field:direction" sort expression. Direction defaults
// to ascending.
func ParseSort(expr string) (field string, desc bool) {
	field, dir, found := strings.Cut(expr, ":")
	if !found {
		return field, false
	}
	return field, strings.EqualFold(dir, "desc")
}
