package harness

import "github.com/roach88/providers/internal/provider"

// TraceEvent records one applied step.
type TraceEvent struct {
	Seq    int64             `json:"seq"`
	Action string            `json:"action"`
	Args   map[string]string `json:"args,omitempty"`
	// Outcome is one of the Outcome* constants.
	Outcome string `json:"outcome"`
	// Notice is the notification raised by the step, if any.
	Notice *Notice `json:"notice,omitempty"`
	// Mode is the controller mode after the step.
	Mode string `json:"mode"`
	// Stored lists the store's ids, in order, after the step.
	Stored []int64 `json:"stored"`
}

// Notice is a notification as it appears in the trace.
type Notice struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause and assertion held.
	Pass bool `json:"pass"`

	// Trace contains one event per step.
	Trace []TraceEvent `json:"trace"`

	// Errors contains expectation and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Records, Mode and Draft are the final state.
	Records []provider.Record `json:"records"`
	Mode    string            `json:"mode"`
	Draft   provider.Record   `json:"draft"`

	// Persisted is the durable copy decoded after the last step.
	Persisted []provider.Record `json:"persisted"`

	// StorageKeys lists every key in the database after the last step.
	StorageKeys []string `json:"storage_keys"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:        true,
		Trace:       []TraceEvent{},
		Errors:      []string{},
		Records:     []provider.Record{},
		Persisted:   []provider.Record{},
		StorageKeys: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
