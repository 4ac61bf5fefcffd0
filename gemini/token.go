package gemini

import (
	"context"

	"github.com/fwojciec/profilescan"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

var _ profilescan.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts prompt tokens offline with the Gemini tokenizer.
// The Analyzer uses it to keep prompts for content-heavy profiles within a
// token budget.
type TokenCounter struct {
	tok *tokenizer.LocalTokenizer
}

// NewTokenCounter creates a TokenCounter for model. The tokenizer vocabulary
// is fetched and cached on first use.
func NewTokenCounter(model string) (*TokenCounter, error) {
	tok, err := tokenizer.NewLocalTokenizer(model)
	if err != nil {
		return nil, profilescan.WrapError(profilescan.EINVALID, err, "no local tokenizer for model %q", model)
	}
	return &TokenCounter{tok: tok}, nil
}

// CountTokens returns the number of tokens text occupies as a user turn.
func (tc *TokenCounter) CountTokens(ctx context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	result, err := tc.tok.CountTokens([]*genai.Content{genai.NewContentFromText(text, genai.RoleUser)}, nil)
	if err != nil {
		return 0, profilescan.WrapError(profilescan.EINTERNAL, err, "counting tokens")
	}
	return int(result.TotalTokens), nil
}
