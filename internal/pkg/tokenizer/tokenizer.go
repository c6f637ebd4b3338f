package tokenizer

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Counter counts prompt tokens with the cl100k_base encoding. The count is recorded on
// cached results for cost accounting; it is an estimate for non-OpenAI providers.
type Counter struct {
	codec tokenizer.Codec
}

func New() (*Counter, error) {
	codec, err := tokenizer.Get(tokenizer.Cl100kBase)
	if err != nil {
		return nil, fmt.Errorf("load tokenizer: %w", err)
	}
	return &Counter{codec: codec}, nil
}

// Count returns the total number of tokens across texts.
func (c *Counter) Count(texts ...string) (int, error) {
	total := 0
	for _, t := range texts {
		if t == "" {
			continue
		}
		ids, _, err := c.codec.Encode(t)
		if err != nil {
			return 0, fmt.Errorf("encode: %w", err)
		}
		total += len(ids)
	}
	return total, nil
}
