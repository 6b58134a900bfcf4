package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryEntitiesByType(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "project", r.URL.Query().Get("type"))
		w.Write(jsonResponse([]map[string]any{
			{"id": "1", "name": "one", "type": "project", "tags": []string{}},
			{"id": "2", "name": "two", "type": "project", "tags": []string{}},
		}))
	})

	entities, err := client.QueryEntities(QueryParams{"type": EntityProject})
	require.NoError(t, err)
	assert.Len(t, entities, 2)
}

func TestUpdateEntityTagsSendsFullSet(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/entities/ent-1", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"work", "urgent"}, body["tags"])
		_, hasName := body["name"]
		assert.False(t, hasName)
		w.Write(jsonResponse(map[string]any{"id": "ent-1", "name": "x", "tags": body["tags"]}))
	})

	entity, err := client.UpdateEntityTags("ent-1", []string{"work", "urgent"})
	require.NoError(t, err)
	assert.Equal(t, []string{"work", "urgent"}, entity.Tags)
}

func TestUpdateEntityTagsNilSendsEmptyArray(t *testing.T) {
	_, client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{}, body["tags"])
		w.Write(jsonResponse(map[string]any{"id": "ent-1", "tags": []string{}}))
	})

	_, err := client.UpdateEntityTags("ent-1", nil)
	require.NoError(t, err)
}

func TestEntityMetadataAcceptsJSONString(t *testing.T) {
	var e Entity
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","metadata":"{\"mood\":\"calm\"}"}`), &e))
	assert.Equal(t, "calm", e.Metadata["mood"])

	require.NoError(t, json.Unmarshal([]byte(`{"id":"2","metadata":""}`), &e))
	assert.NotNil(t, e.Metadata)
	assert.Len(t, e.Metadata, 0)
}
