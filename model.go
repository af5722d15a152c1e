package simstore

import (
	"errors"
	"fmt"

	"github.com/flarexio/simstore/embedding"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("no data found")
	ErrEmbeddingFailure    = errors.New("embedding failure")
	ErrEmptyRecord         = errors.New("record has no items")
	ErrUndefinedSimilarity = errors.New("similarity undefined for zero-magnitude vectors")
	ErrServiceClosed       = errors.New("service closed")
)

type Config struct {
	Embedding embedding.Config `yaml:"embedding"`
}

// Record holds an owner's strings and their embeddings as parallel slices.
// A record is immutable once installed in the store.
type Record struct {
	Owner   string
	Items   []string
	Vectors [][]float32
}

func (r *Record) Len() int {
	return len(r.Items)
}

// Match is the stored string most similar to a query.
type Match struct {
	Query string  `json:"query"`
	Text  string  `json:"text"`
	Index int     `json:"index"`
	Score float64 `json:"score"`
}

func validateOwner(owner string) error {
	if owner == "" {
		return fmt.Errorf("%w: user_name is required", ErrInvalidInput)
	}

	return nil
}

func validateItems(items []string) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: string_list is required", ErrInvalidInput)
	}

	for i, item := range items {
		if item == "" {
			return fmt.Errorf("%w: string_list[%d] is empty", ErrInvalidInput, i)
		}
	}

	return nil
}

func validateText(text string) error {
	if text == "" {
		return fmt.Errorf("%w: query_string is required", ErrInvalidInput)
	}

	return nil
}
