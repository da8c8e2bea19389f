package completion

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/internal/extraction/imaging"
	apperrors "github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/errors"
	"github.com/thirumurugan2001/extract-seal-stamp-data--from-image/pkg/logger"
)

var errNoChoices = errors.New("no response generated")

// Options configures an OpenAICompleter
type Options struct {
	BaseURL    string
	APIKey     string
	Model      string
	MaxTokens  int
	Timeout    time.Duration
	DetectMIME bool
}

// OpenAICompleter calls an OpenAI-compatible chat-completion API
// (OpenAI, Azure OpenAI's v1 surface, or a local server).
type OpenAICompleter struct {
	client     *openai.Client
	model      string
	maxTokens  int
	detectMIME bool
	log        *logger.Logger
}

// NewOpenAICompleter creates a completer. An empty BaseURL keeps the
// library's default endpoint; a zero Timeout keeps its default HTTP client.
func NewOpenAICompleter(opts Options, log *logger.Logger) *OpenAICompleter {
	config := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		config.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Timeout > 0 {
		config.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	return &OpenAICompleter{
		client:     openai.NewClientWithConfig(config),
		model:      opts.Model,
		maxTokens:  opts.MaxTokens,
		detectMIME: opts.DetectMIME,
		log:        log.WithComponent("completion"),
	}
}

func (c *OpenAICompleter) Name() string { return "openai" }

// Complete issues a single, non-streaming chat completion
func (c *OpenAICompleter) Complete(ctx context.Context, img *imaging.Encoded) (string, error) {
	start := time.Now()

	resp, err := c.client.CreateChatCompletion(ctx, c.buildRequest(img))
	if err != nil {
		c.log.Error().Err(err).
			Str("model", c.model).
			Dur("duration", time.Since(start)).
			Msg("chat completion failed")
		return "", apperrors.CompletionFailed(err)
	}

	if len(resp.Choices) == 0 {
		return "", apperrors.CompletionFailed(errNoChoices)
	}

	c.log.Debug().
		Str("model", resp.Model).
		Str("finish_reason", string(resp.Choices[0].FinishReason)).
		Int("completion_tokens", resp.Usage.CompletionTokens).
		Dur("duration", time.Since(start)).
		Msg("chat completion received")

	return resp.Choices[0].Message.Content, nil
}

func (c *OpenAICompleter) buildRequest(img *imaging.Encoded) openai.ChatCompletionRequest {
	mimeType := DefaultImageMIMEType
	if c.detectMIME && strings.HasPrefix(img.MIMEType, "image/") {
		mimeType = img.MIMEType
	}

	return openai.ChatCompletionRequest{
		Model:     c.model,
		MaxTokens: c.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: SystemPrompt,
			},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type: openai.ChatMessagePartTypeText,
						Text: ExtractionPrompt,
					},
					{
						Type: openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{
							URL: DataURI(mimeType, img.Data),
						},
					},
				},
			},
		},
	}
}
