package pathstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_PutNode(t *testing.T) {
	var got NodeRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/kv/directories/doc-1/meta", r.URL.Path)
		assert.Equal(t, "Bearer ps-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "ps-key")
	defer c.Close()

	err := c.PutNode(context.Background(), "directories/doc-1/meta", NodeRequest{
		Value:  map[string]any{"records": 3},
		Source: "dirgest:doc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "dirgest:doc-1", got.Source)
}

func TestClient_PutNodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").PutNode(context.Background(), "a/b", NodeRequest{Value: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 403")
	assert.Contains(t, err.Error(), "nope")
}

func TestClient_GetNode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/kv/missing" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"key_path": "a.b", "value": "x"})
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "k")

	node, err := c.GetNode(context.Background(), "a/b")
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "a.b", node.Key)

	node, err = c.GetNode(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, node)
}

func TestClient_ListChildrenAndDelete(t *testing.T) {
	var deleted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			assert.Equal(t, "/kv/directories/by_hash/abc/*", r.URL.Path)
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			_ = json.NewEncoder(w).Encode(map[string]any{
				"nodes": []map[string]any{{"key_path": "directories.by_hash.abc.doc-9", "value": nil}},
			})
		case http.MethodDelete:
			deleted = r.URL.Path + "?" + r.URL.RawQuery
			w.WriteHeader(http.StatusNoContent)
		}
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "k")

	nodes, err := c.ListChildren(context.Background(), "directories/by_hash/abc", 1)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "doc-9", LastSegment(nodes[0].Key))

	require.NoError(t, c.DeleteNode(context.Background(), "directories/doc-9", true))
	assert.Equal(t, "/kv/directories/doc-9?children=true", deleted)
}

func TestClient_PutLink(t *testing.T) {
	var got LinkRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/links", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, "k").PutLink(context.Background(), LinkRequest{From: "a", To: "b", Weight: 1})
	require.NoError(t, err)
	assert.Equal(t, "b", got.To)
}

func TestSegment(t *testing.T) {
	tests := map[string]string{
		"SAWAI MADHOPUR":     "sawai-madhopur",
		"  Joint Director  ": "joint-director",
		"DoIT&C":             "doit-c",
		"--":                 "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Segment(in), in)
	}
}

func TestLastSegment(t *testing.T) {
	assert.Equal(t, "doc-1", LastSegment("directories/by_hash/h/doc-1"))
	assert.Equal(t, "doc-1", LastSegment("directories.by_hash.h.doc-1"))
	assert.Equal(t, "doc-1", LastSegment("doc-1"))
}
