package llm

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/ai/azopenai"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/tmc/langchaingo/llms"
)

// Azure completion defaults
const (
	azureTemperature = 0.7
	azureMaxTokens   = 4096
)

// AzureModel serves llms.Model from an Azure OpenAI deployment.
type AzureModel struct {
	client         *azopenai.Client
	deploymentName string
}

var _ llms.Model = (*AzureModel)(nil)

// NewAzure creates a client for the deployment at endpoint.
func NewAzure(endpoint, apiKey, deploymentName string) (*AzureModel, error) {
	if endpoint == "" || apiKey == "" || deploymentName == "" {
		return nil, errors.New("Azure OpenAI configuration missing: endpoint, api key and deployment name are required")
	}

	keyCredential := azcore.NewKeyCredential(apiKey)
	client, err := azopenai.NewClientWithKeyCredential(endpoint, keyCredential, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure OpenAI client: %w", err)
	}
	return &AzureModel{client: client, deploymentName: deploymentName}, nil
}

// Call implements llms.Model.
func (m *AzureModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

// GenerateContent sends every part of messages as a single user turn.
func (m *AzureModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	opts := llms.CallOptions{Temperature: azureTemperature, MaxTokens: azureMaxTokens}
	for _, o := range options {
		o(&opts)
	}

	parts, err := azureParts(messages)
	if err != nil {
		return nil, err
	}

	resp, err := m.client.GetChatCompletions(ctx, m.chatOptions(parts, opts), nil)
	if err != nil {
		return nil, fmt.Errorf("Azure OpenAI completion failed: %w", err)
	}

	out := &llms.ContentResponse{}
	for _, c := range resp.Choices {
		if c.Message == nil || c.Message.Content == nil {
			continue
		}
		out.Choices = append(out.Choices, &llms.ContentChoice{Content: *c.Message.Content})
	}
	if len(out.Choices) == 0 {
		return nil, errors.New("no response from Azure OpenAI")
	}
	return out, nil
}

// chatOptions builds the completion request for one user turn. JSON mode
// maps to the json_object response format.
func (m *AzureModel) chatOptions(parts []azopenai.ChatCompletionRequestMessageContentPartClassification, opts llms.CallOptions) azopenai.ChatCompletionsOptions {
	req := azopenai.ChatCompletionsOptions{
		Messages: []azopenai.ChatRequestMessageClassification{
			&azopenai.ChatRequestUserMessage{Content: azopenai.NewChatRequestUserMessageContent(parts)},
		},
		MaxTokens:      to.Ptr(int32(opts.MaxTokens)),
		Temperature:    to.Ptr(float32(opts.Temperature)),
		DeploymentName: to.Ptr(m.deploymentName),
	}
	if opts.JSONMode {
		req.ResponseFormat = &azopenai.ChatCompletionsJSONResponseFormat{}
	}
	return req
}

// azureParts flattens text and image parts of all messages in order.
// Binary images are inlined as data URLs.
func azureParts(messages []llms.MessageContent) ([]azopenai.ChatCompletionRequestMessageContentPartClassification, error) {
	var parts []azopenai.ChatCompletionRequestMessageContentPartClassification
	for _, msg := range messages {
		for _, p := range msg.Parts {
			switch v := p.(type) {
			case llms.TextContent:
				parts = append(parts, &azopenai.ChatCompletionRequestMessageContentPartText{Text: to.Ptr(v.Text)})
			case llms.BinaryContent:
				url := "data:" + v.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(v.Data)
				parts = append(parts, imagePart(url))
			case llms.ImageURLContent:
				parts = append(parts, imagePart(v.URL))
			default:
				return nil, fmt.Errorf("unsupported message part %T", p)
			}
		}
	}
	return parts, nil
}

func imagePart(url string) *azopenai.ChatCompletionRequestMessageContentPartImage {
	return &azopenai.ChatCompletionRequestMessageContentPartImage{
		ImageURL: &azopenai.ChatCompletionRequestMessageContentPartImageURL{URL: to.Ptr(url)},
	}
}
