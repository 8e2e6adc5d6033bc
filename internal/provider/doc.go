// Package provider defines the provider (vendor) record, the draft fields the
// form edits, the validation rule set, and identity generation.
//
// # Validation precedence
//
// Rules run in field declaration order and the first failure wins:
//
//  1. name trimmed non-empty      -> "name required"
//  2. contact trimmed non-empty   -> "contact required"
//  3. address trimmed non-empty   -> "address required"
//  4. phone matches ^[0-9]+$      -> "phone must be numeric"
//  5. email looks like a@b.c      -> "email invalid"
//
// # Identity
//
// A record's ID is assigned once, when the record is first committed, and is
// never reused or mutated. ID zero means "unset" and only appears on drafts.
package provider
