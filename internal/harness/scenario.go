package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/providers/internal/provider"
)

// Scenario is one scripted form session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Seed records are stored before the session starts.
	Seed []provider.Record `yaml:"seed,omitempty"`

	// FirstID overrides the first id handed to a new record. By default ids
	// continue after the largest seeded id.
	FirstID int64 `yaml:"first_id,omitempty"`

	// Steps are the user intents, applied in order.
	Steps []Step `yaml:"steps"`

	// Assertions are checked against the final state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one user intent.
type Step struct {
	// Action is one of the Action* constants.
	Action string `yaml:"action"`

	// Field and Value are used by change.
	Field string `yaml:"field,omitempty"`
	Value string `yaml:"value,omitempty"`

	// Fields is used by fill; entries are applied in form field order.
	Fields map[string]string `yaml:"fields,omitempty"`

	// ID is used by edit and delete.
	ID int64 `yaml:"id,omitempty"`

	// Expect optionally checks the step's outcome.
	Expect *Expect `yaml:"expect,omitempty"`
}

// Expect checks a single step. Empty fields are not checked.
type Expect struct {
	Outcome string `yaml:"outcome,omitempty"`
	Message string `yaml:"message,omitempty"`
	Mode    string `yaml:"mode,omitempty"`
}

// Step actions.
const (
	ActionChange = "change"
	ActionFill   = "fill"
	ActionSubmit = "submit"
	ActionEdit   = "edit"
	ActionDelete = "delete"
	ActionReset  = "reset"
)

// Step outcomes as recorded in the trace.
const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
	OutcomeNotFound = "not_found"
)

// Assertion validates the final state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Count is used by store_count.
	Count int `yaml:"count,omitempty"`

	// IDs is used by store_order.
	IDs []int64 `yaml:"ids,omitempty"`

	// ID is used by store_contains and store_missing.
	ID int64 `yaml:"id,omitempty"`

	// Mode is used by mode.
	Mode string `yaml:"mode,omitempty"`

	// Expect holds field values for store_contains and draft (subset match).
	Expect map[string]string `yaml:"expect,omitempty"`
}

// Assertion type constants.
const (
	AssertStoreCount    = "store_count"
	AssertStoreOrder    = "store_order"
	AssertStoreContains = "store_contains"
	AssertStoreMissing  = "store_missing"
	AssertMode          = "mode"
	AssertDraft         = "draft"
	AssertPersisted     = "persisted"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	seen := make(map[int64]bool, len(s.Seed))
	for i, r := range s.Seed {
		if !r.HasID() {
			return fmt.Errorf("seed %d: id is required", i)
		}
		if seen[r.ID] {
			return fmt.Errorf("seed %d: duplicate id %d", i, r.ID)
		}
		seen[r.ID] = true
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(a); err != nil {
			return fmt.Errorf("assertion %d: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step) error {
	switch step.Action {
	case ActionChange:
		if _, err := provider.ParseField(step.Field); err != nil {
			return err
		}
	case ActionFill:
		if len(step.Fields) == 0 {
			return fmt.Errorf("fill requires fields")
		}
		for name := range step.Fields {
			if _, err := provider.ParseField(name); err != nil {
				return err
			}
		}
	case ActionEdit, ActionDelete:
		if step.ID == 0 {
			return fmt.Errorf("%s requires id", step.Action)
		}
	case ActionSubmit, ActionReset:
	case "":
		return fmt.Errorf("action is required")
	default:
		return fmt.Errorf("unknown action %q", step.Action)
	}
	return nil
}

func validateAssertion(a Assertion) error {
	switch a.Type {
	case AssertStoreCount, AssertStoreOrder, AssertPersisted:
	case AssertStoreContains, AssertStoreMissing:
		if a.ID == 0 {
			return fmt.Errorf("%s requires id", a.Type)
		}
	case AssertMode:
		if a.Mode == "" {
			return fmt.Errorf("mode requires mode")
		}
	case AssertDraft:
		if len(a.Expect) == 0 {
			return fmt.Errorf("draft requires expect")
		}
	case "":
		return fmt.Errorf("type is required")
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
	for name := range a.Expect {
		if _, err := provider.ParseField(name); err != nil {
			return err
		}
	}
	return nil
}
