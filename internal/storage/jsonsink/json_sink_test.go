package jsonsink

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgetd/evgetd/pkg/event"
)

func TestStoreEmptyBatchWritesNothing(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)
	require.NoError(t, s.Store(context.Background(), nil))
	assert.Zero(t, buf.Len())
}

func TestStoreWritesOneEntryPerSchemaField(t *testing.T) {
	var buf bytes.Buffer
	s := New(&buf)

	data := event.NewMouseClickBuilder().
		Action(event.ActionPress).
		Button(1, "Left").
		Modifier(event.ModShift).
		Build()

	require.NoError(t, s.Store(context.Background(), []event.Data{data}))

	var decoded struct {
		Entries []struct {
			Type      string   `json:"type"`
			Name      string   `json:"name"`
			Data      string   `json:"data"`
			Modifiers []string `json:"modifiers"`
		} `json:"entries"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Len(t, decoded.Entries, len(data.Primary.Schema()))
	for _, e := range decoded.Entries {
		assert.Equal(t, "MouseClick", e.Type)
		assert.Equal(t, []string{"Shift"}, e.Modifiers)
	}
}
