package ai

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
)

func TestCollectText(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		want string
	}{
		{
			name: "nil response",
			resp: nil,
			want: "",
		},
		{
			name: "no candidates",
			resp: &genai.GenerateContentResponse{},
			want: "",
		},
		{
			name: "candidate without content",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{}},
			},
			want: "",
		},
		{
			name: "single text part",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{genai.Text(`{"growthRate": 3.1}`)}},
				}},
			},
			want: `{"growthRate": 3.1}`,
		},
		{
			name: "multiple text parts are concatenated",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []genai.Part{
						genai.Text("```json\n"),
						genai.Text(`{"demandLevel": "High"}`),
						genai.Text("\n```"),
					}},
				}},
			},
			want: "```json\n{\"demandLevel\": \"High\"}\n```",
		},
		{
			name: "only first candidate is read",
			resp: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("first")}}},
					{Content: &genai.Content{Parts: []genai.Part{genai.Text("second")}}},
				},
			},
			want: "first",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := collectText(tt.resp); got != tt.want {
				t.Errorf("collectText() = %q, want %q", got, tt.want)
			}
		})
	}
}
