package completion

import (
	"context"
	"fmt"
	"strings"
)

// Completer is the upstream the service drafts with
type Completer interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// SuggestionResult carries the raw reply plus its parsed variants. Raw is
// what the operator panel shows verbatim; the variants are a convenience
// split on the "||" delimiter, at most three.
type SuggestionResult struct {
	Raw             string   `json:"suggestion"`
	OriginalContext string   `json:"original_context,omitempty"`
	Variants        []string `json:"variants"`
}

type Service interface {
	Suggest(ctx context.Context, prompt string) (*SuggestionResult, error)
	CommentFeedback(ctx context.Context, content string, selectedText string) (*SuggestionResult, error)
}

type DefaultService struct {
	completer Completer
}

func NewService(completer Completer) Service {
	return &DefaultService{completer: completer}
}

// Suggest drafts a continuation of the writer's text. The trailing sentence
// fragment is extracted and echoed back so the operator can see what the
// model was asked to continue from.
func (s *DefaultService) Suggest(ctx context.Context, prompt string) (*SuggestionResult, error) {
	fragment := trailingFragment(prompt)

	userPrompt := fmt.Sprintf(
		"Writer's text so far: %s\n\nContinue directly from the final fragment %q without repeating it.",
		prompt,
		fragment,
	)

	raw, err := s.completer.Complete(ctx, SystemPrompts.Suggestion, userPrompt)
	if err != nil {
		return nil, err
	}

	return &SuggestionResult{
		Raw:             raw,
		OriginalContext: fragment,
		Variants:        splitVariants(raw),
	}, nil
}

// CommentFeedback drafts a reader reaction to a selected span of the document.
func (s *DefaultService) CommentFeedback(ctx context.Context, content string, selectedText string) (*SuggestionResult, error) {
	userPrompt := fmt.Sprintf(
		"I am reading a document and want your honest, short reaction to a passage, as an ordinary reader would give it.\n\nDocument content: %s\n\nSelected text: %q\n\nReply conversationally, in casual language, with your first reaction (1-2 sentences).",
		content,
		selectedText,
	)

	raw, err := s.completer.Complete(ctx, SystemPrompts.Comment, userPrompt)
	if err != nil {
		return nil, err
	}

	return &SuggestionResult{
		Raw:      raw,
		Variants: splitVariants(raw),
	}, nil
}

// trailingFragment returns the last clause of the prompt, split on sentence
// and clause punctuation (latin and CJK) and whitespace
func trailingFragment(prompt string) string {
	parts := strings.FieldsFunc(prompt, func(r rune) bool {
		switch r {
		case '.', ',', '。', '，', ' ', '\t', '\n', '\r':
			return true
		}
		return false
	})
	if len(parts) == 0 {
		return ""
	}
	return parts[len(parts)-1]
}

// splitVariants cuts the raw reply on the literal delimiter into at most
// three trimmed variants. A reply without delimiters is a single variant.
func splitVariants(raw string) []string {
	parts := strings.Split(raw, variantDelimiter)
	variants := make([]string, 0, 3)
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		variants = append(variants, trimmed)
		if len(variants) == 3 {
			break
		}
	}
	return variants
}
