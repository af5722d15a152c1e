package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/sashabaranov/go-openai"

	"github.com/flarexio/simstore/embedding"
)

const maxBatch = 100

var ErrMissingEmbedding = errors.New("missing embedding in response")

func NewEmbeddingProvider(cfg embedding.Config) embedding.Provider {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	config := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	if timeout := cfg.Timeout.Duration(); timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: timeout}
	}

	return NewProvider(openai.NewClientWithConfig(config), cfg.Model)
}

func NewProvider(client *openai.Client, model string) embedding.Provider {
	m := openai.SmallEmbedding3
	if model != "" {
		m = openai.EmbeddingModel(model)
	}

	return &provider{client, m}
}

type provider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func (p *provider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, 0, len(texts))

	for start := 0; start < len(texts); start += maxBatch {
		end := min(start+maxBatch, len(texts))

		batch, err := p.encodeBatch(ctx, texts[start:end])
		if err != nil {
			return nil, err
		}

		vectors = append(vectors, batch...)
	}

	return vectors, nil
}

func (p *provider) encodeBatch(ctx context.Context, texts []string) ([][]float32, error) {
	req := openai.EmbeddingRequest{
		Input: texts,
		Model: p.model,
	}

	resp, err := p.client.CreateEmbeddings(ctx, req)
	if err != nil {
		return nil, err
	}

	// the API reports each vector's input position; do not trust response order
	vectors := make([][]float32, len(texts))
	for _, data := range resp.Data {
		if data.Index < 0 || data.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", data.Index)
		}

		vectors[data.Index] = data.Embedding
	}

	for i, v := range vectors {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: input %d", ErrMissingEmbedding, i)
		}
	}

	return vectors, nil
}
