package chromem

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/flarexio/simstore/embedding"
)

func newOllamaServer(t *testing.T, table map[string][]float32) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			http.NotFound(w, r)
			return
		}

		var req struct {
			Model  string `json:"model"`
			Prompt string `json:"prompt"`
		}

		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		v, ok := table[req.Prompt]
		if !ok {
			http.Error(w, "unknown prompt", http.StatusInternalServerError)
			return
		}

		json.NewEncoder(w).Encode(map[string]any{"embedding": v})
	}))
}

func TestOllamaProviderEncode(t *testing.T) {
	assert := assert.New(t)

	srv := newOllamaServer(t, map[string][]float32{
		"cats": {1, 0, 0},
		"dogs": {0, 1, 0},
		"fish": {0, 0, 1},
	})
	defer srv.Close()

	provider, err := NewEmbeddingProvider(embedding.Config{
		Provider: embedding.ProviderTypeOllama,
		Model:    "all-minilm",
		BaseURL:  srv.URL,
	})

	if err != nil {
		assert.Fail(err.Error())
		return
	}

	vectors, err := provider.Encode(context.Background(), []string{"fish", "cats", "dogs"})
	if err != nil {
		assert.Fail(err.Error())
		return
	}

	assert.Equal([][]float32{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, vectors)
}

func TestOllamaProviderFailure(t *testing.T) {
	assert := assert.New(t)

	srv := newOllamaServer(t, map[string][]float32{
		"cats": {1, 0, 0},
	})
	defer srv.Close()

	provider, err := NewEmbeddingProvider(embedding.Config{
		Provider: embedding.ProviderTypeOllama,
		Model:    "all-minilm",
		BaseURL:  srv.URL,
	})

	if err != nil {
		assert.Fail(err.Error())
		return
	}

	vectors, err := provider.Encode(context.Background(), []string{"cats", "unknown"})
	assert.Error(err)
	assert.Nil(vectors)
}

func TestProviderStopsAtFirstError(t *testing.T) {
	assert := assert.New(t)

	errBoom := errors.New("boom")

	calls := 0
	provider := NewProvider(func(ctx context.Context, text string) ([]float32, error) {
		calls++
		if text == "bad" {
			return nil, errBoom
		}

		return []float32{1}, nil
	})

	_, err := provider.Encode(context.Background(), []string{"a", "bad", "c"})
	assert.ErrorIs(err, errBoom)
	assert.Equal(2, calls)
}

func TestUnsupportedProvider(t *testing.T) {
	assert := assert.New(t)

	_, err := NewEmbeddingProvider(embedding.Config{
		Provider: embedding.ProviderTypeOpenAI,
	})

	assert.ErrorIs(err, ErrUnsupportedProvider)
}
