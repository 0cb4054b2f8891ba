package llm

import (
	"context"
	"testing"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"fridjy/internal/config"
)

func TestNewProviders(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.LLMConfig
	}{
		{"openai", config.LLMConfig{Provider: config.ProviderOpenAI, APIKey: "sk-test"}},
		{"github", config.LLMConfig{Provider: config.ProviderGitHub, APIKey: "gh-test"}},
		{"ollama", config.LLMConfig{Provider: config.ProviderOllama, BaseURL: "http://localhost:11434"}},
		{"azure", config.LLMConfig{
			Provider: config.ProviderAzure,
			APIKey:   "az-test",
			BaseURL:  "https://example.openai.azure.com",
			Model:    "vision",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(context.Background(), tt.cfg)
			require.NoError(t, err)
			assert.NotNil(t, m)
		})
	}
}

func TestNewUnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "bard"})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestNewAzureNeedsDeployment(t *testing.T) {
	_, err := NewAzure("https://example.openai.azure.com", "az-test", "")
	assert.Error(t, err)
}

func TestAzurePartsInlinesImages(t *testing.T) {
	parts, err := azureParts([]llms.MessageContent{{
		Role: llms.ChatMessageTypeHuman,
		Parts: []llms.ContentPart{
			llms.TextPart("what is in the fridge?"),
			llms.BinaryPart("image/jpeg", []byte{0xff, 0xd8}),
		},
	}})
	require.NoError(t, err)
	require.Len(t, parts, 2)

	text, ok := parts[0].(*azopenai.ChatCompletionRequestMessageContentPartText)
	require.True(t, ok)
	assert.Equal(t, "what is in the fridge?", *text.Text)

	img, ok := parts[1].(*azopenai.ChatCompletionRequestMessageContentPartImage)
	require.True(t, ok)
	assert.Equal(t, "data:image/jpeg;base64,/9g=", *img.ImageURL.URL)
}

func TestAzureChatOptionsJSONMode(t *testing.T) {
	m := &AzureModel{deploymentName: "vision"}

	req := m.chatOptions(nil, llms.CallOptions{MaxTokens: 100, Temperature: 0.2, JSONMode: true})
	require.NotNil(t, req.ResponseFormat)
	_, ok := req.ResponseFormat.(*azopenai.ChatCompletionsJSONResponseFormat)
	assert.True(t, ok)
	assert.Equal(t, "vision", *req.DeploymentName)
	assert.Equal(t, int32(100), *req.MaxTokens)

	req = m.chatOptions(nil, llms.CallOptions{MaxTokens: 100})
	assert.Nil(t, req.ResponseFormat)
}
