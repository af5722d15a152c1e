// Package lookup provides a deterministic embedding provider backed by a fixed
// table of text to vector, for exercising ranking without a model.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/flarexio/simstore/embedding"
)

var ErrUnknownText = errors.New("text not in lookup table")

type Table map[string][]float32

func NewProvider(table Table) *Provider {
	t := make(Table, len(table))
	for text, v := range table {
		t[text] = v
	}

	return &Provider{table: t}
}

// Provider is safe for concurrent use.
type Provider struct {
	table Table
	calls int
	fail  error
	mu    sync.Mutex
}

var _ embedding.Provider = (*Provider)(nil)

func (p *Provider) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++

	if p.fail != nil {
		return nil, p.fail
	}

	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		v, ok := p.table[text]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownText, text)
		}

		vectors[i] = append([]float32(nil), v...)
	}

	return vectors, nil
}

// Set adds or replaces the vector for text.
func (p *Provider) Set(text string, v []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.table[text] = v
}

// FailWith makes every subsequent Encode return err. A nil err restores
// normal behaviour.
func (p *Provider) FailWith(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.fail = err
}

// Calls reports how many times Encode has been invoked.
func (p *Provider) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.calls
}
