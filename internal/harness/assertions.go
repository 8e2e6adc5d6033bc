package harness

import (
	"fmt"
	"reflect"
	"slices"
	"sort"
	"strings"

	"github.com/roach88/providers/internal/mirror"
	"github.com/roach88/providers/internal/provider"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s %v -> %s %v\n", event.Seq, event.Action, event.Args, event.Outcome, event.Stored)
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against the final state and
// returns one message per failure.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		if err := evaluate(result, a); err != nil {
			failures = append(failures, fmt.Sprintf("assertion %d: %s", i, err.Error()))
		}
	}
	return failures
}

func evaluate(result *Result, a Assertion) error {
	fail := func(expected, actual string) error {
		return &AssertionError{Type: a.Type, Expected: expected, Actual: actual, Trace: result.Trace}
	}

	switch a.Type {
	case AssertStoreCount:
		if len(result.Records) != a.Count {
			return fail(fmt.Sprintf("%d records", a.Count), fmt.Sprintf("%d records", len(result.Records)))
		}

	case AssertStoreOrder:
		got := storedIDs(result.Records)
		want := a.IDs
		if want == nil {
			want = []int64{}
		}
		if !reflect.DeepEqual(got, want) {
			return fail(fmt.Sprintf("ids %v", want), fmt.Sprintf("ids %v", got))
		}

	case AssertStoreContains:
		r, ok := find(result.Records, a.ID)
		if !ok {
			return fail(fmt.Sprintf("record %d", a.ID), "not found")
		}
		if diff := mismatches(r, a.Expect); diff != "" {
			return fail(fmt.Sprintf("record %d with %v", a.ID, a.Expect), diff)
		}

	case AssertStoreMissing:
		if _, ok := find(result.Records, a.ID); ok {
			return fail(fmt.Sprintf("no record %d", a.ID), "present")
		}

	case AssertMode:
		if result.Mode != a.Mode {
			return fail(a.Mode, result.Mode)
		}

	case AssertDraft:
		if diff := mismatches(result.Draft, a.Expect); diff != "" {
			return fail(fmt.Sprintf("draft with %v", a.Expect), diff)
		}

	case AssertPersisted:
		if !reflect.DeepEqual(result.Persisted, result.Records) {
			return fail(fmt.Sprintf("persisted ids %v", storedIDs(result.Records)),
				fmt.Sprintf("persisted ids %v", storedIDs(result.Persisted)))
		}
		if want := []string{mirror.DefaultKey}; !slices.Equal(result.StorageKeys, want) {
			return fail(fmt.Sprintf("storage keys %v", want),
				fmt.Sprintf("storage keys %v", result.StorageKeys))
		}

	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	return nil
}

func find(records []provider.Record, id int64) (provider.Record, bool) {
	for _, r := range records {
		if r.ID == id {
			return r, true
		}
	}
	return provider.Record{}, false
}

// mismatches describes every expected field that differs, in sorted key
// order, or returns "" when all match.
func mismatches(r provider.Record, expect map[string]string) string {
	keys := make([]string, 0, len(expect))
	for k := range expect {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var diffs []string
	for _, k := range keys {
		field, err := provider.ParseField(k)
		if err != nil {
			diffs = append(diffs, err.Error())
			continue
		}
		if got := r.Get(field); got != expect[k] {
			diffs = append(diffs, fmt.Sprintf("%s=%q", k, got))
		}
	}
	return strings.Join(diffs, ", ")
}
