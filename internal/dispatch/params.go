package dispatch

import (
	"strings"

	"github.com/baalimago/lockbot/internal/models"
	"github.com/baalimago/lockbot/internal/vendors/cohere"
	"github.com/baalimago/lockbot/internal/vendors/openai"
	"github.com/baalimago/lockbot/internal/vendors/xai"
)

// Param names one member of the common argument set.
type Param uint

const (
	ParamPrompt Param = 1 << iota
	ParamModel
	ParamDeepSearch
	ParamHistory
	ParamXAIClient
	ParamOpenAIClient
	ParamCohereClient
)

var paramNames = []struct {
	p    Param
	name string
}{
	{ParamPrompt, "prompt"},
	{ParamModel, "model"},
	{ParamDeepSearch, "deep_search"},
	{ParamHistory, "history"},
	{ParamXAIClient, "xai_client"},
	{ParamOpenAIClient, "openai_client"},
	{ParamCohereClient, "cohere_client"},
}

// ParamSet is the set of parameters an adapter declares that it accepts.
type ParamSet = Param

func (s Param) Has(p Param) bool {
	return s&p == p
}

func (s Param) String() string {
	var names []string
	for _, pn := range paramNames {
		if s.Has(pn.p) {
			names = append(names, pn.name)
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}

// Params is the full argument set assembled for every dispatch.
type Params struct {
	Prompt     string
	Model      string
	DeepSearch bool
	History    []models.Message
	XAI        *xai.Client
	OpenAI     *openai.Client
	Cohere     *cohere.Client
}

// Filter returns a copy of p where every parameter outside of accepted
// is left at its zero value.
func (p Params) Filter(accepted ParamSet) Params {
	var ret Params
	if accepted.Has(ParamPrompt) {
		ret.Prompt = p.Prompt
	}
	if accepted.Has(ParamModel) {
		ret.Model = p.Model
	}
	if accepted.Has(ParamDeepSearch) {
		ret.DeepSearch = p.DeepSearch
	}
	if accepted.Has(ParamHistory) {
		ret.History = p.History
	}
	if accepted.Has(ParamXAIClient) {
		ret.XAI = p.XAI
	}
	if accepted.Has(ParamOpenAIClient) {
		ret.OpenAI = p.OpenAI
	}
	if accepted.Has(ParamCohereClient) {
		ret.Cohere = p.Cohere
	}
	return ret
}
