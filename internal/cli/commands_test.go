package cli

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/providers/internal/kv"
	"github.com/roach88/providers/internal/mirror"
	"github.com/roach88/providers/internal/provider"
)

type recordsResponse struct {
	Status        string            `json:"status"`
	Data          []provider.Record `json:"data"`
	Notifications []NoticeJSON      `json:"notifications"`
}

type recordResponse struct {
	Status        string          `json:"status"`
	Data          provider.Record `json:"data"`
	Error         *CLIError       `json:"error"`
	Notifications []NoticeJSON    `json:"notifications"`
}

var acmeArgs = []string{"--name", "Acme", "--contact", "Jo", "--address", "1 Rd", "--phone", "5551234", "--email", "a@b.com"}

func addAcme(t *testing.T, db string) provider.Record {
	t.Helper()
	out, err := execute(t, append([]string{"--db", db, "--format", "json", "add"}, acmeArgs...)...)
	require.NoError(t, err)
	var resp recordResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Equal(t, "ok", resp.Status)
	return resp.Data
}

func listJSON(t *testing.T, db string) []provider.Record {
	t.Helper()
	out, err := execute(t, "--db", db, "--format", "json", "list")
	require.NoError(t, err)
	var resp recordsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	return resp.Data
}

func TestList_Empty(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "--db", db, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No providers registered")

	assert.Empty(t, listJSON(t, db))
}

func TestAdd_Text(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, append([]string{"--db", db, "add"}, acmeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ provider added")
	assert.Contains(t, out, "Acme")
	assert.Contains(t, out, "a@b.com")
}

func TestAdd_PersistsAcrossRuns(t *testing.T) {
	db := tempDB(t)
	added := addAcme(t, db)
	assert.True(t, added.HasID())
	assert.Equal(t, "Acme", added.Name)

	records := listJSON(t, db)
	require.Len(t, records, 1)
	assert.Equal(t, added, records[0])

	// The list is stored under the default key in the stored shape.
	store, err := kv.Open(db)
	require.NoError(t, err)
	defer store.Close()
	raw, ok, err := store.Get(context.Background(), mirror.DefaultKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(raw, `[{"id":`+strconv.FormatInt(added.ID, 10)+`,"name":"Acme"`))
}

func TestAdd_IDsAreUniqueAndOrdered(t *testing.T) {
	db := tempDB(t)
	first := addAcme(t, db)
	second := addAcme(t, db)
	assert.Greater(t, second.ID, first.ID)

	records := listJSON(t, db)
	require.Len(t, records, 2)
	assert.Equal(t, first.ID, records[0].ID)
	assert.Equal(t, second.ID, records[1].ID)
}

func TestAdd_ValidationFailure(t *testing.T) {
	db := tempDB(t)
	args := append([]string{"--db", db, "add"}, acmeArgs...)
	args = append(args, "--phone", "555abc")

	out, err := execute(t, args...)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ phone must be numeric")
	assert.Contains(t, out, "Error [E_VALIDATION]: phone must be numeric")

	assert.Empty(t, listJSON(t, db))
}

func TestAdd_ValidationFailureJSON(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "--db", db, "--format", "json", "add", "--contact", "Jo")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	var resp recordResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeValidation, resp.Error.Code)
	assert.Equal(t, "name required", resp.Error.Message)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "error", resp.Notifications[0].Kind)
}

func TestAdd_Spanish(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "--db", db, "--lang", "es", "add", "--name", "Acme")
	require.Error(t, err)
	assert.Contains(t, out, "El contacto es obligatorio")

	out, err = execute(t, append([]string{"--db", db, "--lang", "es", "add"}, acmeArgs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Proveedor agregado correctamente")
	assert.Contains(t, out, "Nombre")
}

func TestEdit_ChangesOnlyGivenFields(t *testing.T) {
	db := tempDB(t)
	added := addAcme(t, db)
	id := strconv.FormatInt(added.ID, 10)

	out, err := execute(t, "--db", db, "--format", "json", "edit", id, "--phone", "9999999")
	require.NoError(t, err)
	var resp recordResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "9999999", resp.Data.Phone)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, "provider updated", resp.Notifications[0].Message)

	records := listJSON(t, db)
	require.Len(t, records, 1)
	want := added
	want.Phone = "9999999"
	assert.Equal(t, want, records[0])
}

func TestEdit_ValidationFailureKeepsRecord(t *testing.T) {
	db := tempDB(t)
	added := addAcme(t, db)

	_, err := execute(t, "--db", db, "edit", strconv.FormatInt(added.ID, 10), "--email", "nope")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	records := listJSON(t, db)
	require.Len(t, records, 1)
	assert.Equal(t, added, records[0])
}

func TestEdit_Errors(t *testing.T) {
	db := tempDB(t)

	out, err := execute(t, "--db", db, "edit", "42", "--phone", "1")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, out, "provider 42 not found")

	_, err = execute(t, "--db", db, "edit", "abc")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `invalid provider id "abc"`)

	_, err = execute(t, "--db", db, "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestDelete(t *testing.T) {
	db := tempDB(t)
	first := addAcme(t, db)
	second := addAcme(t, db)

	out, err := execute(t, "--db", db, "delete", strconv.FormatInt(first.ID, 10))
	require.NoError(t, err)
	assert.Contains(t, out, "✓ provider deleted")

	records := listJSON(t, db)
	require.Len(t, records, 1)
	assert.Equal(t, second, records[0])
}

func TestDelete_MissingIDSucceeds(t *testing.T) {
	db := tempDB(t)
	addAcme(t, db)

	out, err := execute(t, "--db", db, "--format", "json", "delete", "7")
	require.NoError(t, err)

	var resp struct {
		Status string       `json:"status"`
		Data   DeleteResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, DeleteResult{ID: 7, Found: false}, resp.Data)
	assert.Len(t, listJSON(t, db), 1)
}

func TestCustomKey(t *testing.T) {
	db := tempDB(t)
	addAcme(t, db)

	assert.Empty(t, listJSON(t, db+"x"))
	out, err := execute(t, "--db", db, "--key", "other", "--format", "json", "list")
	require.NoError(t, err)
	var resp recordsResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Empty(t, resp.Data)
}

func TestMalformedStoredListStartsEmpty(t *testing.T) {
	db := tempDB(t)
	store, err := kv.Open(db)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), mirror.DefaultKey, "{not json"))
	require.NoError(t, store.Close())

	assert.Empty(t, listJSON(t, db))

	added := addAcme(t, db)
	records := listJSON(t, db)
	require.Len(t, records, 1)
	assert.Equal(t, added.ID, records[0].ID)
}
