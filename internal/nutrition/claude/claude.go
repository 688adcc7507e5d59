package claude

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"

	"github.com/vbonduro/nutrisnap/internal/domain"
	"github.com/vbonduro/nutrisnap/internal/nutrition"
)

// toolName is the single tool Claude is forced to call; its input schema is
// the declared nutrition output, so the tool input is the result payload.
const toolName = "record_nutrition"

// maxTokens leaves room for the eleven fields plus a one-sentence tip.
const maxTokens = 1024

type ClaudeAnalyzer struct {
	client *anthropic.Client
	model  string
}

func NewClaudeAnalyzer(apiKey, model string, opts ...anthropic.ClientOption) *ClaudeAnalyzer {
	return &ClaudeAnalyzer{
		client: anthropic.NewClient(apiKey, opts...),
		model:  model,
	}
}

func (a *ClaudeAnalyzer) Analyze(ctx context.Context, query string) (*domain.NutritionResult, error) {
	resp, err := a.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:     anthropic.Model(a.model),
		MaxTokens: maxTokens,
		Messages: []anthropic.Message{
			anthropic.NewUserTextMessage(nutrition.BuildPrompt(query)),
		},
		Tools: []anthropic.ToolDefinition{{
			Name:        toolName,
			Description: "Record the estimated nutrition facts for the described food.",
			InputSchema: nutrition.Schema.JSONSchema(),
		}},
		ToolChoice: &anthropic.ToolChoice{Type: "tool", Name: toolName},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to call claude: %w", err)
	}

	return nutrition.ParseResult(payload(resp.Content))
}

// payload returns the forced tool call's input, or the first text block when
// the model answered in prose instead.
func payload(blocks []anthropic.MessageContent) string {
	var text string
	for _, blk := range blocks {
		switch blk.Type {
		case anthropic.MessagesContentTypeToolUse:
			if use := blk.MessageContentToolUse; use != nil && use.Name == toolName {
				return string(use.Input)
			}
		case anthropic.MessagesContentTypeText:
			if text == "" {
				text = blk.GetText()
			}
		}
	}
	return text
}
