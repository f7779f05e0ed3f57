package gemini

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Cyclone1070/vizagent/internal/models"
	provider "github.com/Cyclone1070/vizagent/internal/provider/models"
	"github.com/Cyclone1070/vizagent/internal/tool"
	"google.golang.org/genai"
)

// toGeminiContents wraps the prompt as a single user turn.
func toGeminiContents(prompt string) []*genai.Content {
	if prompt == "" {
		return nil
	}
	return []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{genai.NewPartFromText(prompt)},
		},
	}
}

// toGeminiConfig converts the request's options, system instruction and tools.
func toGeminiConfig(req *provider.GenerateRequest) *genai.GenerateContentConfig {
	geminiConfig := &genai.GenerateContentConfig{
		SafetySettings: defaultSafetySettings(),
	}

	if req.SystemInstruction != "" {
		geminiConfig.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{genai.NewPartFromText(req.SystemInstruction)},
		}
	}

	if len(req.Tools) > 0 {
		geminiConfig.Tools = toGeminiTools(req.Tools)
	}

	if config := req.Config; config != nil {
		if config.Temperature != nil {
			geminiConfig.Temperature = config.Temperature
		}
		if config.TopP != nil {
			geminiConfig.TopP = config.TopP
		}
		if config.MaxOutputTokens != nil {
			geminiConfig.MaxOutputTokens = *config.MaxOutputTokens
		}
	}

	return geminiConfig
}

// defaultSafetySettings returns safety settings with BLOCK_NONE for all categories.
func defaultSafetySettings() []*genai.SafetySetting {
	return []*genai.SafetySetting{
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdOff},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdOff},
	}
}

// toGeminiTools converts tool declarations to Gemini tools.
func toGeminiTools(decls []tool.Declaration) []*genai.Tool {
	if len(decls) == 0 {
		return nil
	}

	functionDeclarations := make([]*genai.FunctionDeclaration, 0, len(decls))
	for _, decl := range decls {
		fd := &genai.FunctionDeclaration{
			Name:        decl.Name,
			Description: decl.Description,
		}
		if decl.Parameters != nil {
			fd.Parameters = toGeminiSchema(decl.Parameters)
		}
		functionDeclarations = append(functionDeclarations, fd)
	}

	return []*genai.Tool{
		{FunctionDeclarations: functionDeclarations},
	}
}

// toGeminiSchema converts a tool schema to a Gemini schema, recursing into
// properties and array items.
func toGeminiSchema(s *tool.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	schema := &genai.Schema{
		Type:        toGeminiType(s.Type),
		Description: s.Description,
	}

	if len(s.Properties) > 0 {
		schema.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			schema.Properties[name] = toGeminiSchema(prop)
		}
	}
	if s.Items != nil {
		schema.Items = toGeminiSchema(s.Items)
	}
	if len(s.Enum) > 0 {
		schema.Enum = s.Enum
	}
	if len(s.Required) > 0 {
		schema.Required = s.Required
	}

	return schema
}

// toGeminiType converts a schema type to Gemini Type.
func toGeminiType(t tool.Type) genai.Type {
	switch t {
	case tool.TypeString:
		return genai.TypeString
	case tool.TypeNumber:
		return genai.TypeNumber
	case tool.TypeInteger:
		return genai.TypeInteger
	case tool.TypeBoolean:
		return genai.TypeBoolean
	case tool.TypeArray:
		return genai.TypeArray
	case tool.TypeObject:
		return genai.TypeObject
	default:
		return genai.TypeString
	}
}

// fromGeminiResponse converts Gemini response to internal format.
// Safety blocks become refusals rather than errors so the caller can report them.
func fromGeminiResponse(resp *genai.GenerateContentResponse, modelUsed string) (*provider.GenerateResponse, error) {
	if resp == nil {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "nil response",
		}
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" && fb.BlockReason != genai.BlockedReasonUnspecified {
		reason := string(fb.BlockReason)
		if fb.BlockReasonMessage != "" {
			reason = fmt.Sprintf("%s: %s", reason, fb.BlockReasonMessage)
		}
		return refusal(reason, resp.UsageMetadata, modelUsed), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, &provider.ProviderError{
			Code:    provider.ErrorCodeEmptyResponse,
			Message: "no candidates in response",
		}
	}

	candidate := resp.Candidates[0]

	switch candidate.FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonProhibitedContent, genai.FinishReasonBlocklist:
		return refusal("content blocked by safety filters", resp.UsageMetadata, modelUsed), nil
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.FunctionCall != nil {
				return buildToolCallResponse(candidate, resp.UsageMetadata, modelUsed), nil
			}
		}
	}

	return buildResponse(candidate, resp.UsageMetadata, modelUsed), nil
}

func refusal(reason string, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:          provider.ResponseTypeRefusal,
			RefusalReason: reason,
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildResponse builds a text response from a candidate.
func buildResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	var text strings.Builder
	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				text.WriteString(part.Text)
			}
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type: provider.ResponseTypeText,
			Text: text.String(),
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildToolCallResponse collects every function call in the candidate. The
// caller decides what to do when there is more than one.
func buildToolCallResponse(candidate *genai.Candidate, usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) *provider.GenerateResponse {
	toolCalls := make([]models.ToolCall, 0, 1)

	for _, part := range candidate.Content.Parts {
		if part != nil && part.FunctionCall != nil {
			toolCalls = append(toolCalls, models.ToolCall{
				ID:   part.FunctionCall.ID,
				Name: part.FunctionCall.Name,
				Args: part.FunctionCall.Args,
			})
		}
	}

	return &provider.GenerateResponse{
		Content: provider.ResponseContent{
			Type:      provider.ResponseTypeToolCall,
			ToolCalls: toolCalls,
		},
		Metadata: buildMetadata(usage, modelUsed),
	}
}

// buildMetadata builds response metadata from usage data.
func buildMetadata(usage *genai.GenerateContentResponseUsageMetadata, modelUsed string) provider.ResponseMetadata {
	metadata := provider.ResponseMetadata{
		ModelUsed: modelUsed,
	}

	if usage != nil {
		metadata.PromptTokens = int(usage.PromptTokenCount)
		metadata.CompletionTokens = int(usage.CandidatesTokenCount)
		metadata.TotalTokens = int(usage.TotalTokenCount)
	}

	return metadata
}

// mapGeminiError maps Gemini API errors to provider errors.
func mapGeminiError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return &provider.ProviderError{
			Code:       provider.ErrorCodeTimeout,
			Message:    "request timeout",
			Underlying: err,
			Retryable:  true,
		}
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return mapAPIError(&apiErr, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return mapAPIError(apiErrPtr, err)
	}

	// Generic network error
	return &provider.ProviderError{
		Code:       provider.ErrorCodeNetwork,
		Message:    "network error",
		Underlying: err,
		Retryable:  true,
	}
}

func mapAPIError(apiErr *genai.APIError, err error) error {
	switch apiErr.Code {
	case 401, 403:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeAuth,
			Message:    "authentication failed",
			Underlying: err,
		}
	case 429:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeRateLimit,
			Message:    "rate limit exceeded",
			Underlying: err,
			Retryable:  true,
			RetryAfter: parseRetryAfter(apiErr),
		}
	case 400:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeInvalidRequest,
			Message:    fmt.Sprintf("invalid request: %s", apiErr.Message),
			Underlying: err,
		}
	case 500, 502, 503, 504:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeUnavailable,
			Message:    "service unavailable",
			Underlying: err,
			Retryable:  true,
		}
	default:
		return &provider.ProviderError{
			Code:       provider.ErrorCodeNetwork,
			Message:    fmt.Sprintf("API error: %s", apiErr.Message),
			Underlying: err,
			Retryable:  true,
		}
	}
}

// parseRetryAfter looks for a retryDelay entry in the error details.
func parseRetryAfter(apiErr *genai.APIError) *time.Duration {
	if apiErr == nil {
		return nil
	}
	for _, detail := range apiErr.Details {
		if v, ok := detail["retryDelay"]; ok {
			if d := parseRetryValue(v); d != nil {
				return d
			}
		}
	}
	return nil
}

// parseRetryValue accepts seconds as a number, a numeric string, a duration
// string such as "30s", or a {seconds, nanos} map.
func parseRetryValue(v any) *time.Duration {
	var d time.Duration
	switch val := v.(type) {
	case int:
		d = time.Duration(val) * time.Second
	case int64:
		d = time.Duration(val) * time.Second
	case float64:
		d = time.Duration(val * float64(time.Second))
	case string:
		if parsed, err := time.ParseDuration(val); err == nil {
			d = parsed
		} else if secs, err := strconv.ParseFloat(val, 64); err == nil {
			d = time.Duration(secs * float64(time.Second))
		} else {
			return nil
		}
	case map[string]any:
		secs, _ := toInt64(val["seconds"])
		nanos, _ := toInt64(val["nanos"])
		d = time.Duration(secs)*time.Second + time.Duration(nanos)
	default:
		return nil
	}
	if d <= 0 {
		return nil
	}
	return &d
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
