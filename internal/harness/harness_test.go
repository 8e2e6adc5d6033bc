package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/providers/internal/provider"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		name := strings.TrimSuffix(filepath.Base(f), ".yaml")
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(f)
			require.NoError(t, err)
			require.Equal(t, name, s.Name, "scenario name must match its file")

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

func TestRun_AddAssignsSequentialIDs(t *testing.T) {
	s := &Scenario{
		Name:        "two_adds",
		Description: "two adds",
		Steps: []Step{
			{Action: ActionFill, Fields: map[string]string{"name": "A", "contact": "c", "address": "a", "phone": "1", "email": "a@b.c"}},
			{Action: ActionSubmit},
			{Action: ActionFill, Fields: map[string]string{"name": "B", "contact": "c", "address": "a", "phone": "2", "email": "a@b.c"}},
			{Action: ActionSubmit},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Records, 2)
	assert.Equal(t, int64(1), result.Records[0].ID)
	assert.Equal(t, int64(2), result.Records[1].ID)
	assert.Equal(t, result.Records, result.Persisted)
	assert.Equal(t, provider.Blank(), result.Draft)
	assert.Equal(t, "creating", result.Mode)
}

func TestRun_IDsContinueAfterSeed(t *testing.T) {
	s := &Scenario{
		Name:        "after_seed",
		Description: "ids continue after the largest seeded id",
		Seed:        []provider.Record{{ID: 40, Name: "old"}, {ID: 12, Name: "older"}},
		Steps: []Step{
			{Action: ActionFill, Fields: map[string]string{"name": "N", "contact": "c", "address": "a", "phone": "1", "email": "a@b.c"}},
			{Action: ActionSubmit, Expect: &Expect{Outcome: OutcomeOK}},
		},
		Assertions: []Assertion{
			{Type: AssertStoreOrder, IDs: []int64{40, 12, 41}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
}

func TestRun_TraceRecordsNotices(t *testing.T) {
	s := &Scenario{
		Name:        "notices",
		Description: "only steps that notify carry a notice",
		Steps: []Step{
			{Action: ActionChange, Field: "name", Value: "x"},
			{Action: ActionSubmit},
			{Action: ActionReset},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.Len(t, result.Trace, 3)

	assert.Nil(t, result.Trace[0].Notice)
	require.NotNil(t, result.Trace[1].Notice)
	assert.Equal(t, "error", result.Trace[1].Notice.Kind)
	assert.Equal(t, "contact required", result.Trace[1].Notice.Message)
	assert.Equal(t, OutcomeRejected, result.Trace[1].Outcome)
	assert.Nil(t, result.Trace[2].Notice)
	assert.Equal(t, provider.Blank(), result.Draft)
}

func TestRun_ExpectMismatchFails(t *testing.T) {
	s := &Scenario{
		Name:        "wrong_expect",
		Description: "a blank draft is not accepted",
		Steps: []Step{
			{Action: ActionSubmit, Expect: &Expect{Outcome: OutcomeOK, Message: "provider added", Mode: "editing"}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 3)
	assert.Contains(t, result.Errors[0], `expected outcome "ok", got "rejected"`)
	assert.Contains(t, result.Errors[1], `expected message "provider added", got "name required"`)
	assert.Contains(t, result.Errors[2], `expected mode "editing", got "creating"`)
}

func TestRun_EditUnknownIsNotFound(t *testing.T) {
	s := &Scenario{
		Name:        "edit_unknown",
		Description: "editing a missing id changes nothing",
		Steps:       []Step{{Action: ActionEdit, ID: 99}},
	}

	result, err := Run(s)
	require.NoError(t, err)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, OutcomeNotFound, result.Trace[0].Outcome)
	assert.Equal(t, "creating", result.Trace[0].Mode)
	assert.Equal(t, map[string]string{"id": "99"}, result.Trace[0].Args)
}

func TestRun_UnknownActionErrors(t *testing.T) {
	s := &Scenario{
		Name:        "bad",
		Description: "not validated",
		Steps:       []Step{{Action: "jump"}},
	}

	_, err := Run(s)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 0")
}

func TestRun_Deterministic(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/id_collision.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	a, err := MarshalSnapshot(TraceSnapshot{ScenarioName: s.Name, Trace: first.Trace})
	require.NoError(t, err)
	b, err := MarshalSnapshot(TraceSnapshot{ScenarioName: s.Name, Trace: second.Trace})
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}
