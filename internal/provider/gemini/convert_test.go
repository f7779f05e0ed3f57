package gemini

import (
	"testing"
	"time"

	"github.com/Cyclone1070/vizagent/internal/tool"
	"github.com/Cyclone1070/vizagent/internal/tool/plot"
	"google.golang.org/genai"
)

func durationPtr(d time.Duration) *time.Duration {
	return &d
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		name     string
		apiErr   *genai.APIError
		expected *time.Duration
	}{
		{
			name:     "nil error",
			apiErr:   nil,
			expected: nil,
		},
		{
			name:     "empty details",
			apiErr:   &genai.APIError{Code: 429, Details: []map[string]any{}},
			expected: nil,
		},
		{
			name: "retryDelay as duration string",
			apiErr: &genai.APIError{
				Code:    429,
				Details: []map[string]any{{"@type": "type.googleapis.com/google.rpc.RetryInfo", "retryDelay": "17s"}},
			},
			expected: durationPtr(17 * time.Second),
		},
		{
			name: "retryDelay in a later detail",
			apiErr: &genai.APIError{
				Code:    429,
				Details: []map[string]any{{"reason": "quota"}, {"retryDelay": 30.0}},
			},
			expected: durationPtr(30 * time.Second),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseRetryAfter(tt.apiErr)
			assertDuration(t, tt.expected, got)
		})
	}
}

func TestParseRetryValue(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		expected *time.Duration
	}{
		{name: "int value", value: 60, expected: durationPtr(60 * time.Second)},
		{name: "int64 value", value: int64(120), expected: durationPtr(120 * time.Second)},
		{name: "float64 value", value: 45.0, expected: durationPtr(45 * time.Second)},
		{name: "string number", value: "30", expected: durationPtr(30 * time.Second)},
		{name: "string float", value: "2.5", expected: durationPtr(2500 * time.Millisecond)},
		{
			name:     "Google duration format - seconds and nanos",
			value:    map[string]any{"seconds": 5, "nanos": 500000000},
			expected: durationPtr(5*time.Second + 500*time.Millisecond),
		},
		{name: "zero", value: 0, expected: nil},
		{name: "garbage string", value: "soon", expected: nil},
		{name: "unsupported type", value: true, expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDuration(t, tt.expected, parseRetryValue(tt.value))
		})
	}
}

func assertDuration(t *testing.T, expected, got *time.Duration) {
	t.Helper()
	if expected == nil {
		if got != nil {
			t.Errorf("expected nil, got %v", *got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected %v, got nil", *expected)
	}
	if *got != *expected {
		t.Errorf("expected %v, got %v", *expected, *got)
	}
}

func TestToGeminiSchema_PlotDeclaration(t *testing.T) {
	result := toGeminiSchema(plot.Declare().Parameters)

	if result.Type != genai.TypeObject {
		t.Errorf("expected object, got %v", result.Type)
	}
	data := result.Properties["data"]
	if data == nil {
		t.Fatal("missing 'data' property")
	}
	if data.Type != genai.TypeArray {
		t.Errorf("data type: expected array, got %v", data.Type)
	}

	items := data.Items
	if items == nil {
		t.Fatal("missing items schema for data array")
	}
	if items.Type != genai.TypeObject {
		t.Errorf("items type: expected object, got %v", items.Type)
	}
	for _, axis := range []string{"x", "y"} {
		prop := items.Properties[axis]
		if prop == nil || prop.Type != genai.TypeNumber {
			t.Errorf("%q property missing or wrong type", axis)
		}
	}
	if len(items.Required) != 2 {
		t.Errorf("expected 2 required item fields, got %d", len(items.Required))
	}
	if len(result.Required) != 1 || result.Required[0] != "data" {
		t.Errorf("unexpected required fields %v", result.Required)
	}
}

func TestToGeminiSchema_AllTypes(t *testing.T) {
	tests := map[tool.Type]genai.Type{
		tool.TypeString:  genai.TypeString,
		tool.TypeNumber:  genai.TypeNumber,
		tool.TypeInteger: genai.TypeInteger,
		tool.TypeBoolean: genai.TypeBoolean,
		tool.TypeArray:   genai.TypeArray,
		tool.TypeObject:  genai.TypeObject,
		tool.Type("?"):   genai.TypeString,
	}

	for in, want := range tests {
		if got := toGeminiType(in); got != want {
			t.Errorf("toGeminiType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestToGeminiSchema_WithEnums(t *testing.T) {
	result := toGeminiSchema(&tool.Schema{Type: tool.TypeString, Enum: []string{"png", "svg"}})

	if len(result.Enum) != 2 || result.Enum[0] != "png" {
		t.Errorf("unexpected enum %v", result.Enum)
	}
}

func TestToGeminiSchema_NilInput(t *testing.T) {
	if toGeminiSchema(nil) != nil {
		t.Error("expected nil schema for nil input")
	}
}

func TestToGeminiTools_Empty(t *testing.T) {
	if toGeminiTools(nil) != nil {
		t.Error("expected nil tools for no declarations")
	}
}

func TestFromGeminiResponse_NilResponse(t *testing.T) {
	if _, err := fromGeminiResponse(nil, "m"); err == nil {
		t.Error("expected error for nil response")
	}
}

func TestFromGeminiResponse_NilContentIsEmptyText(t *testing.T) {
	resp, err := fromGeminiResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}},
	}, "m")

	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if resp.Content.Text != "" {
		t.Errorf("expected empty text, got %q", resp.Content.Text)
	}
}
