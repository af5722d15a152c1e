package embedding

import (
	"context"
	"encoding/json"
	"time"

	"gopkg.in/yaml.v3"
)

// Provider maps a batch of texts to dense vectors of a fixed dimension.
// The result has one vector per input text, in the same order.
type Provider interface {
	Encode(ctx context.Context, texts []string) ([][]float32, error)
}

// ProviderFunc adapts an ordinary function to a Provider.
type ProviderFunc func(ctx context.Context, texts []string) ([][]float32, error)

func (f ProviderFunc) Encode(ctx context.Context, texts []string) ([][]float32, error) {
	return f(ctx, texts)
}

type ProviderType string

const (
	ProviderTypeOpenAI        ProviderType = "openai"
	ProviderTypeChromemOpenAI ProviderType = "chromem-openai"
	ProviderTypeOllama        ProviderType = "ollama"
	ProviderTypeOpenAICompat  ProviderType = "openai-compat"
)

type Config struct {
	Provider ProviderType `json:"provider" yaml:"provider"`
	Model    string       `json:"model" yaml:"model"`
	BaseURL  string       `json:"baseURL" yaml:"baseURL"`
	APIKey   string       `json:"apiKey" yaml:"apiKey"`
	Timeout  Duration     `json:"timeout" yaml:"timeout"`
}

type Duration time.Duration

func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	str := d.Duration().String()
	return json.Marshal(str)
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return d.Duration().String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}

	duration, err := time.ParseDuration(str)
	if err != nil {
		return err
	}

	*d = Duration(duration)
	return nil
}
