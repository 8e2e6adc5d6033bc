// Package harness runs scripted form sessions against the real provider
// stack and checks the outcome.
//
// Each scenario gets a fresh in-memory SQLite key-value store, the mirror
// over it, the provider store, a notification center and a form controller
// with sequential ids (1, 2, 3, ...). Seed records are written through the
// mirror and loaded back the same way the CLI does at startup.
//
// # Scenario Format
//
//	name: scenario_name
//	description: "What this scenario validates"
//	seed:
//	  - {id: 7, name: Acme, contact: Jo, address: 1 Rd, phone: "555", email: a@b.com}
//	steps:
//	  - action: fill
//	    fields: {name: Globex, contact: Hank}
//	  - action: change
//	    field: phone
//	    value: "777"
//	  - action: submit
//	    expect: {outcome: rejected, message: email invalid}
//	  - action: edit
//	    id: 7
//	  - action: delete
//	    id: 7
//	  - action: reset
//	assertions:
//	  - type: store_count
//	    count: 1
//	  - type: store_contains
//	    id: 7
//	    expect: {phone: "555"}
//
// # Assertion Types
//
//   - store_count: the store holds exactly count records
//   - store_order: the store ids, in order, equal ids
//   - store_contains: record id exists and its fields match expect (subset)
//   - store_missing: no record has id
//   - mode: the controller's final mode ("creating" or "editing")
//   - draft: the final draft's fields match expect (subset)
//   - persisted: the durable copy decodes to exactly the store's contents
//     and the list is the only key in the database
//
// Every step is recorded in a trace of compact, deterministic events that
// RunWithGolden compares against testdata/golden.
package harness
