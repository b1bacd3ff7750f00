// Package service 提供业务服务的组装
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/redis/go-redis/v9"

	"github.com/hvglabs/hvg-assist/internal/config"
	"github.com/hvglabs/hvg-assist/internal/repository"
	"github.com/hvglabs/hvg-assist/internal/service/assistant"
	"github.com/hvglabs/hvg-assist/internal/service/auth"
)

// Services 服务集合
type Services struct {
	Auth          *auth.Service
	Assistant     *assistant.Orchestrator
	Conversations *assistant.ConversationStore

	Config *config.Config
}

// NewServices 创建所有服务
func NewServices(repo *repository.Repositories, cfg *config.Config, redisClient *redis.Client) (*Services, error) {
	ctx := context.Background()

	chatModel, err := newToolCallingChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	store := assistant.NewConversationStore(
		repo.Conversation,
		redisClient,
		time.Duration(cfg.Assistant.HistoryCacheTTL)*time.Second,
	)
	executor := assistant.NewExecutor(repo.Tenant, repo.User)

	return &Services{
		Auth:          auth.NewService(repo, cfg.Auth.JWTSecret),
		Assistant:     assistant.NewOrchestrator(chatModel, executor, store, cfg.Assistant.HistoryLimit),
		Conversations: store,

		Config: cfg,
	}, nil
}

// newToolCallingChatModel 创建支持工具调用的 ChatModel
func newToolCallingChatModel(ctx context.Context, cfg *config.Config) (model.ToolCallingChatModel, error) {
	aiCfg := cfg.AI

	var apiKey, baseURL, modelName string

	switch aiCfg.Provider {
	case "openai":
		apiKey = aiCfg.OpenAI.APIKey
		baseURL = aiCfg.OpenAI.BaseURL
		modelName = aiCfg.OpenAI.Model
	case "alibaba", "qwen", "dashscope":
		apiKey = aiCfg.Alibaba.AccessKeySecret
		baseURL = "https://dashscope.aliyuncs.com/compatible-mode/v1"
		modelName = aiCfg.Alibaba.Model
	case "deepseek":
		apiKey = aiCfg.DeepSeek.APIKey
		baseURL = aiCfg.DeepSeek.BaseURL
		modelName = aiCfg.DeepSeek.Model
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", aiCfg.Provider)
	}

	if apiKey == "" {
		return nil, fmt.Errorf("api_key is required for provider: %s", aiCfg.Provider)
	}

	if modelName == "" {
		modelName = "gpt-4o-mini"
	}

	temperature := float32(0.7)

	return openai.NewChatModel(ctx, &openai.ChatModelConfig{
		APIKey:      apiKey,
		BaseURL:     baseURL,
		Model:       modelName,
		Temperature: &temperature,
	})
}
