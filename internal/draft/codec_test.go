package draft

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeObjectShape(t *testing.T) {
	v := Decode(`{"items":[{"id":"a"}],"note":"x"}`)

	require.NotNil(t, v)
	assert.Empty(t, v.History)
	assert.Equal(t, "x", v.Head["note"])
	assert.Len(t, v.Items(), 1)
}

func TestDecodeArrayShape(t *testing.T) {
	v := Decode(`[{"items":[{"id":"new"}]},{"items":[{"id":"old"}]},{"items":[]}]`)

	require.NotNil(t, v)
	assert.Len(t, v.History, 2)
	items := v.Items()
	require.Len(t, items, 1)
	first, ok := items[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "new", first["id"])
}

func TestDecodeInvalidInputFallsBackToEmpty(t *testing.T) {
	cases := []string{
		"",
		"   ",
		"not json",
		"{broken",
		"[]",
		`["just a string"]`,
		"42",
		"null",
	}
	for _, raw := range cases {
		v := Decode(raw)
		require.NotNil(t, v, "input: %q", raw)
		assert.Empty(t, v.History, "input: %q", raw)
		assert.Empty(t, v.Items(), "input: %q", raw)
	}
}

func TestMigrateEntriesRenamesLegacyField(t *testing.T) {
	v := Decode(`{"entries":[{"id":"e1"}]}`)
	v.MigrateEntries()

	_, hasEntries := v.Head["entries"]
	assert.False(t, hasEntries)
	assert.Len(t, v.Items(), 1)
}

func TestMigrateEntriesKeepsExistingItems(t *testing.T) {
	v := Decode(`{"items":[{"id":"i1"}],"entries":[{"id":"e1"},{"id":"e2"}]}`)
	v.MigrateEntries()

	// items đã tồn tại → giữ nguyên, entries chỉ bị xóa
	_, hasEntries := v.Head["entries"]
	assert.False(t, hasEntries)
	assert.Len(t, v.Items(), 1)
}

func TestEncodeWithHistoryWrapsInArray(t *testing.T) {
	v := Decode(`[{"items":[1]},{"items":[]}]`)
	v.PrependItem(float64(2))

	encoded, err := v.Encode(true)
	require.NoError(t, err)

	var parts []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(encoded), &parts))
	// head + 1 phần tử history giữ nguyên
	assert.Len(t, parts, 2)
}

func TestEncodeWithoutHistoryReturnsBareObject(t *testing.T) {
	v := Decode(`[{"items":[1]},{"items":[]}]`)

	encoded, err := v.Encode(false)
	require.NoError(t, err)
	assert.Equal(t, byte('{'), encoded[0])

	var head map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(encoded), &head))
	assert.Contains(t, head, "items")
}

func TestEncodeEmptyHistoryStillArrayWhenRequested(t *testing.T) {
	v := Decode(`{"items":[]}`)

	encoded, err := v.Encode(true)
	require.NoError(t, err)
	assert.Equal(t, byte('['), encoded[0])
}

func TestPrependItemPutsNewestFirst(t *testing.T) {
	v := Decode(`{"items":["old"]}`)
	v.PrependItem("new")

	items := v.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0])
	assert.Equal(t, "old", items[1])
}

func TestItemsWrongTypeReturnsEmpty(t *testing.T) {
	v := Decode(`{"items":"not an array"}`)
	assert.Empty(t, v.Items())
}
