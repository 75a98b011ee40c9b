package testutils

import (
	"reflect"
	"sort"
	"testing"
)

// Compare checks two string slices ignoring order.
func Compare(t *testing.T, got, want []string) {
	t.Helper()
	got = sorted(got)
	want = sorted(want)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
		t.Errorf("difference %+v", Difference(got, want))
	}
}

// CompareKeys checks that the keys of m are exactly want.
func CompareKeys[V any](t *testing.T, m map[string]V, want []string) {
	t.Helper()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	Compare(t, keys, want)
}

// Difference between two slices
func Difference(slice1, slice2 []string) []string {
	diff := []string{}
	m := map[string]int{}

	for _, v := range slice1 {
		m[v] = 1
	}
	for _, v := range slice2 {
		m[v] = m[v] + 1
	}

	for k, v := range m {
		if v == 1 {
			diff = append(diff, k)
		}
	}
	sort.Strings(diff)
	return diff
}

func sorted(s []string) []string {
	out := append([]string{}, s...)
	sort.Strings(out)
	return out
}
