package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListOpenLoops(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/open-loops", r.URL.Path)
		w.Write(jsonResponse([]map[string]any{
			{"id": "l-1", "title": "Reply to Ada", "entity_name": "Ada", "due_at": "2026-10-20T09:00:00Z"},
			{"id": "l-2", "title": "Plan Q4"},
		}))
	})

	loops, err := client.ListOpenLoops()
	require.NoError(t, err)
	require.Len(t, loops, 2)
	require.NotNil(t, loops[0].DueAt)
	assert.Equal(t, 20, loops[0].DueAt.Day())
	require.NotNil(t, loops[0].EntityName)
	assert.Equal(t, "Ada", *loops[0].EntityName)
	assert.Nil(t, loops[1].DueAt)
}
