package chromem

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/philippgille/chromem-go"

	"github.com/flarexio/simstore/embedding"
)

var ErrUnsupportedProvider = errors.New("unsupported chromem provider")

// NewEmbeddingProvider builds a provider backed by one of chromem-go's
// embedding functions.
func NewEmbeddingProvider(cfg embedding.Config) (embedding.Provider, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var fn chromem.EmbeddingFunc

	switch cfg.Provider {
	case embedding.ProviderTypeChromemOpenAI:
		model := chromem.EmbeddingModelOpenAI3Small
		if cfg.Model != "" {
			model = chromem.EmbeddingModelOpenAI(cfg.Model)
		}

		fn = chromem.NewEmbeddingFuncOpenAI(apiKey, model)

	case embedding.ProviderTypeOllama:
		fn = chromem.NewEmbeddingFuncOllama(cfg.Model, cfg.BaseURL)

	case embedding.ProviderTypeOpenAICompat:
		fn = chromem.NewEmbeddingFuncOpenAICompat(cfg.BaseURL, apiKey, cfg.Model, nil)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.Provider)
	}

	return NewProvider(fn, cfg.Timeout.Duration()), nil
}

// NewProvider wraps a single-text chromem.EmbeddingFunc. A positive timeout
// bounds each Encode call.
func NewProvider(fn chromem.EmbeddingFunc, timeout ...time.Duration) embedding.Provider {
	p := &provider{fn: fn}
	if len(timeout) > 0 {
		p.timeout = timeout[0]
	}

	return p
}

type provider struct {
	fn      chromem.EmbeddingFunc
	timeout time.Duration
}

func (p *provider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, err := p.fn(ctx, text)
		if err != nil {
			return nil, err
		}

		vectors[i] = v
	}

	return vectors, nil
}
