package iojson

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteWith(t *testing.T) {
	t.Run("writes indented json", func(t *testing.T) {
		var out, errOut strings.Builder

		require.NoError(t, WriteWith(&out, &errOut, map[string]int{"total": 3}))

		assert.Equal(t, "{\n  \"total\": 3\n}\n", out.String())
		assert.Empty(t, errOut.String())
	})

	t.Run("marshal failure emits json on the error stream", func(t *testing.T) {
		var out, errOut strings.Builder

		// channels cannot be marshaled
		require.NoError(t, WriteWith(&out, &errOut, make(chan int)))

		assert.Empty(t, out.String())

		var blob struct {
			Message string         `json:"message"`
			Data    map[string]any `json:"data"`
		}
		require.NoError(t, json.Unmarshal([]byte(errOut.String()), &blob))
		assert.Contains(t, blob.Message, "error marshaling")
		assert.Contains(t, blob.Data, "json_error")
	})
}
