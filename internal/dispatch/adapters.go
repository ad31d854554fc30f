package dispatch

import (
	"context"

	"github.com/baalimago/lockbot/internal/vendors/cohere"
	"github.com/baalimago/lockbot/internal/vendors/openai"
	"github.com/baalimago/lockbot/internal/vendors/xai"
)

// Adapter translates the uniform call contract into one backend call.
type Adapter interface {
	// Accepts is the adapter's declared call signature. Reply only ever
	// sees the parameters within it.
	Accepts() ParamSet
	Reply(ctx context.Context, p Params) (string, error)
}

type xaiAdapter struct{}

func (xaiAdapter) Accepts() ParamSet {
	return ParamPrompt | ParamModel | ParamDeepSearch | ParamHistory | ParamXAIClient
}

func (xaiAdapter) Reply(ctx context.Context, p Params) (string, error) {
	return p.XAI.Reply(ctx, xai.Request{
		Prompt:     p.Prompt,
		Model:      p.Model,
		DeepSearch: p.DeepSearch,
		History:    p.History,
	})
}

type openaiAdapter struct{}

func (openaiAdapter) Accepts() ParamSet {
	return ParamPrompt | ParamModel | ParamHistory | ParamOpenAIClient
}

func (openaiAdapter) Reply(ctx context.Context, p Params) (string, error) {
	return p.OpenAI.Reply(ctx, openai.Request{
		Prompt:  p.Prompt,
		Model:   p.Model,
		History: p.History,
	})
}

type cohereAdapter struct{}

func (cohereAdapter) Accepts() ParamSet {
	return ParamPrompt | ParamModel | ParamHistory | ParamCohereClient
}

func (cohereAdapter) Reply(ctx context.Context, p Params) (string, error) {
	return p.Cohere.Reply(ctx, cohere.Request{
		Prompt:  p.Prompt,
		Model:   p.Model,
		History: p.History,
	})
}
