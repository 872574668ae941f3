package advisor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"
)

const chainSystemTemplate = `You are an equity research assistant for a market dashboard.
Respond with ONLY a JSON object, no markdown fences and no commentary, with exactly these keys:
"summary" (2-3 sentence plain-English view), "action" ("Buy", "Sell" or "Hold"),
"confidence" (number between 0 and 1), "reasons" (array of at most 3 short strings),
"riskLevel" ("Low", "Medium" or "High"), "shortTermOutlook" (one sentence),
"longTermOutlook" (one sentence).

Today's date is {current_date}. The stock under review is {symbol}.`

type chainInput struct {
	Symbol  string
	Request string
}

func buildMessages(ctx context.Context, input chainInput, opts ...any) ([]*schema.Message, error) {
	promptTemp := prompt.FromMessages(schema.FString,
		schema.SystemMessage(chainSystemTemplate),
		schema.UserMessage("{request}"),
	)
	return promptTemp.Format(ctx, map[string]any{
		"current_date": time.Now().Format("2006-01-02"),
		"symbol":       input.Symbol,
		"request":      input.Request,
	})
}

func extractContent(ctx context.Context, response *schema.Message, opts ...any) (string, error) {
	if response == nil || response.Content == "" {
		return "", errors.New("model returned an empty message")
	}
	return response.Content, nil
}

// ChainBackend runs a compiled eino chain: prompt template, chat model,
// content extraction. The chain compiles once at construction and is
// invoked per advice request.
type ChainBackend struct {
	name     string
	runnable compose.Runnable[chainInput, string]
}

func newChainBackend(ctx context.Context, name string, chatModel model.ChatModel) (*ChainBackend, error) {
	chain := compose.NewChain[chainInput, string]()
	chain.AppendLambda(compose.InvokableLambdaWithOption(buildMessages))
	chain.AppendChatModel(chatModel)
	chain.AppendLambda(compose.InvokableLambdaWithOption(extractContent))

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile advice chain: %w", err)
	}
	return &ChainBackend{name: name, runnable: runnable}, nil
}

// NewDeepSeek builds an advice chain over DeepSeek's native API. model
// defaults to deepseek-chat.
func NewDeepSeek(ctx context.Context, apiKey, modelName string) (*ChainBackend, error) {
	if modelName == "" {
		modelName = "deepseek-chat"
	}
	chatModel, err := deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: 2000,
	})
	if err != nil {
		return nil, fmt.Errorf("create deepseek model: %w", err)
	}
	return newChainBackend(ctx, "deepseek", chatModel)
}

// NewOpenAI builds an advice chain over an OpenAI-compatible endpoint.
// baseURL may be empty for api.openai.com; model defaults to
// gpt-4o-mini.
func NewOpenAI(ctx context.Context, baseURL, apiKey, modelName string) (*ChainBackend, error) {
	if modelName == "" {
		modelName = "gpt-4o-mini"
	}
	maxTokens := 2000
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:   baseURL,
		APIKey:    apiKey,
		Model:     modelName,
		MaxTokens: &maxTokens,
	})
	if err != nil {
		return nil, fmt.Errorf("create openai model: %w", err)
	}
	return newChainBackend(ctx, "openai", chatModel)
}

func (b *ChainBackend) Name() string { return b.name }

func (b *ChainBackend) Generate(ctx context.Context, symbol, request string) (string, error) {
	return b.runnable.Invoke(ctx, chainInput{Symbol: symbol, Request: request})
}
