package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/akale/trivio/internal/answers"
	"github.com/akale/trivio/internal/llm"
)

func testGenConfig() GeneratorConfig {
	return GeneratorConfig{
		MaxTokens:        4096,
		MaxPromptAnswers: MaxPromptAnswers,
	}
}

func quizJSON(t *testing.T, qs ...questionOutput) json.RawMessage {
	t.Helper()
	b, err := json.Marshal(quizOutput{Questions: qs})
	if err != nil {
		t.Fatalf("marshal quiz JSON: %v", err)
	}
	return b
}

func TestLLMGenerator_HappyPath(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		questionOutput{Question: "What is the capital of France?", Answer: "Paris"},
		questionOutput{Question: "Who painted the Mona Lisa?", Answer: "Da Vinci", AlternativeAnswers: []string{"Leonardo da Vinci"}},
	)})
	gen := New(mock, testGenConfig())

	qs, err := gen.Generate(context.Background(), GenerateInput{
		Count:      2,
		Difficulty: DifficultyEasy,
		Topic:      "art",
		Tuning:     Tuning{Temperature: 0.7},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if qs[1].Alternatives[0] != "Leonardo da Vinci" {
		t.Errorf("alternative = %q, want %q", qs[1].Alternatives[0], "Leonardo da Vinci")
	}

	req := mock.Calls[0]
	if req.Schema == nil {
		t.Error("expected schema to be set")
	}
	if req.Temperature != 0.7 {
		t.Errorf("temperature = %v, want 0.7", req.Temperature)
	}
	if req.MaxTokens != 4096 {
		t.Errorf("max tokens = %d, want 4096", req.MaxTokens)
	}
	if !strings.Contains(req.Messages[0].Content, "2 easy trivia questions about art") {
		t.Errorf("unexpected user message: %q", req.Messages[0].Content)
	}
}

func TestLLMGenerator_AvoidListInjected(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		questionOutput{Question: "Capital of Japan?", Answer: "Tokyo"},
	)})
	gen := New(mock, testGenConfig())

	avoid := answers.FromMembers([]string{"paris", "london"})
	_, err := gen.Generate(context.Background(), GenerateInput{
		Count:      1,
		Difficulty: DifficultyEasy,
		Avoid:      avoid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	system := mock.Calls[0].System
	if !strings.Contains(system, "- paris") || !strings.Contains(system, "- london") {
		t.Errorf("expected avoid list in system prompt, got:\n%s", system)
	}
	if !strings.Contains(mock.Calls[0].Messages[0].Content, "Do not use any of the listed answers") {
		t.Errorf("expected avoid reminder in user message: %q", mock.Calls[0].Messages[0].Content)
	}
}

func TestLLMGenerator_OversizedAvoidListOmitted(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		questionOutput{Question: "Capital of Japan?", Answer: "Tokyo"},
	)})
	gen := New(mock, testGenConfig())

	avoid := answers.NewSet()
	for i := 0; i < MaxPromptAnswers+1; i++ {
		avoid.Add(strings.Repeat("x", 3) + string(rune('a'+i%26)) + strings.Repeat("y", i/26+1))
	}
	penalty := 0.6
	_, err := gen.Generate(context.Background(), GenerateInput{
		Count:      1,
		Difficulty: DifficultyMedium,
		Avoid:      avoid,
		Tuning:     Tuning{Temperature: 0.9, PresencePenalty: penalty},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := mock.Calls[0]
	if strings.Contains(req.System, "Avoid generating") {
		t.Error("oversized avoid list should not be injected into the prompt")
	}
	if req.PresencePenalty != penalty {
		t.Errorf("presence penalty = %v, want %v", req.PresencePenalty, penalty)
	}
	if req.Temperature != 0.9 {
		t.Errorf("temperature = %v, want 0.9", req.Temperature)
	}
}

func TestLLMGenerator_MalformedEntriesSkipped(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		questionOutput{Question: "Capital of Japan?", Answer: "Tokyo"},
		questionOutput{Question: "   ", Answer: "Osaka"},
		questionOutput{Question: "Capital of Korea?", Answer: ""},
		questionOutput{Question: "Capital of China?", Answer: "Beijing", AlternativeAnswers: []string{"  ", "Peking"}},
	)})
	gen := New(mock, testGenConfig())

	qs, err := gen.Generate(context.Background(), GenerateInput{Count: 4, Difficulty: DifficultyEasy})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(qs) != 2 {
		t.Fatalf("got %d questions, want 2", len(qs))
	}
	if len(qs[1].Alternatives) != 1 || qs[1].Alternatives[0] != "Peking" {
		t.Errorf("blank alternatives should be dropped, got %v", qs[1].Alternatives)
	}
}

func TestLLMGenerator_AllEntriesMalformed(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: quizJSON(t,
		questionOutput{Question: "", Answer: "Tokyo"},
	)})
	gen := New(mock, testGenConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Count: 1, Difficulty: DifficultyEasy})
	if err == nil {
		t.Fatal("expected error when no usable entries remain")
	}
}

func TestLLMGenerator_EmptyList(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"questions":[]}`)})
	gen := New(mock, testGenConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Count: 3, Difficulty: DifficultyHard})
	if err == nil {
		t.Fatal("expected error for empty question list")
	}
}

func TestLLMGenerator_ProviderErrorWrapped(t *testing.T) {
	provErr := &llm.ErrRateLimit{}
	mock := llm.NewMockProvider(llm.MockResponse{Err: provErr})
	gen := New(mock, testGenConfig())

	_, err := gen.Generate(context.Background(), GenerateInput{Count: 1, Difficulty: DifficultyEasy})
	if err == nil {
		t.Fatal("expected error")
	}
	var rl *llm.ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected wrapped ErrRateLimit, got: %v", err)
	}
}
