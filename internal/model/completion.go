package model

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"mawja-backend/internal/config"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/qwen"
	einoModel "github.com/cloudwego/eino/components/model"
)

// ErrNotConfigured signals a missing provider credential. The UI routes
// this to the settings screen instead of the generic retry path, so it must
// stay distinguishable from transient completion failures.
var ErrNotConfigured = errors.New("completion provider not configured")

// NewCompletionModel builds the configured chat model. The provider switch
// is resolved once at startup; all callers go through the eino ChatModel
// interface and never see the concrete provider.
func NewCompletionModel(ctx context.Context) (einoModel.ChatModel, error) {
	cfg := config.Get()

	switch cfg.Model.Provider {
	case "qwen":
		return newQwenModel(ctx, cfg.Qwen)
	case "ark":
		return newArkModel(ctx, cfg.Ark)
	case "openai":
		return newOpenAIChatModel(ctx, cfg.OpenAI)
	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Model.Provider)
	}
}

func newQwenModel(ctx context.Context, cfg config.QwenConfig) (einoModel.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: qwen api_key is empty", ErrNotConfigured)
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}

	chatModel, err := qwen.NewChatModel(ctx, &qwen.ChatModelConfig{
		BaseURL:     cfg.BaseURL,
		APIKey:      cfg.APIKey,
		Model:       cfg.Model,
		MaxTokens:   &cfg.MaxTokens,
		Temperature: &cfg.Temperature,
		TopP:        &cfg.TopP,
		Timeout:     cfg.Timeout,
		HTTPClient:  httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qwen model: %w", err)
	}

	return chatModel, nil
}

func newArkModel(ctx context.Context, cfg config.ArkConfig) (einoModel.ChatModel, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: ark api_key is empty", ErrNotConfigured)
	}

	chatModel, err := ark.NewChatModel(ctx, &ark.ChatModelConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ark model: %w", err)
	}

	return chatModel, nil
}
