package analytics

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"golang.org/x/time/rate"

	"github.com/iksnae/chatlens/internal"
)

// ContextualScorer is the remote sentiment capability. Implementations
// return one score in [-1,1] per input text. Failures surface as
// *internal.RemoteServiceError and omit the sub-score from fusion; they
// never abort the analysis.
type ContextualScorer interface {
	Name() string
	ScoreTexts(ctx context.Context, texts []string) ([]float64, error)
}

// contextualBatchSize bounds prompt length per remote call.
const contextualBatchSize = 10

// openAIScorer scores message batches through the chat completions API.
type openAIScorer struct {
	client  openai.Client
	model   string
	limiter *rate.Limiter
}

// NewOpenAIScorer builds a ContextualScorer from an explicit credential.
// The engine never reads the key from the environment itself.
func NewOpenAIScorer(credential, model string) ContextualScorer {
	return &openAIScorer{
		client: openai.NewClient(option.WithAPIKey(credential)),
		model:  model,
		// Chat exports can be large; keep request bursts polite.
		limiter: rate.NewLimiter(rate.Limit(2), 2),
	}
}

func (s *openAIScorer) Name() string { return "openai" }

func (s *openAIScorer) ScoreTexts(ctx context.Context, texts []string) ([]float64, error) {
	scores := make([]float64, 0, len(texts))
	for start := 0; start < len(texts); start += contextualBatchSize {
		end := start + contextualBatchSize
		if end > len(texts) {
			end = len(texts)
		}
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &internal.RemoteServiceError{Service: s.Name(), Err: err}
		}
		batch, err := s.scoreBatch(ctx, texts[start:end])
		if err != nil {
			return nil, &internal.RemoteServiceError{Service: s.Name(), Err: err}
		}
		scores = append(scores, batch...)
	}
	return scores, nil
}

func (s *openAIScorer) scoreBatch(ctx context.Context, texts []string) ([]float64, error) {
	var sb strings.Builder
	sb.WriteString("Rate the sentiment of each chat message below.\n")
	sb.WriteString("Respond with ONLY one number per line, from -1 (very negative) to 1 (very positive), no explanation.\n\nMessages:\n")
	for i, t := range texts {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, strings.ReplaceAll(t, "\n", " "))
	}

	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(s.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(sb.String()),
		},
		Temperature: openai.Float(0.3),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("empty completion")
	}
	return parseScoreLines(resp.Choices[0].Message.Content, len(texts)), nil
}

// parseScoreLines extracts n clamped scores, one per line. Unparseable or
// missing lines score neutral rather than failing the whole batch.
func parseScoreLines(content string, n int) []float64 {
	scores := make([]float64, 0, n)
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		line = strings.TrimSpace(line)
		// Models sometimes echo the numbering ("3. -0.5") despite the prompt.
		if dot := strings.Index(line, ". "); dot > 0 {
			if _, err := strconv.Atoi(line[:dot]); err == nil {
				line = strings.TrimSpace(line[dot+2:])
			}
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			continue
		}
		scores = append(scores, clamp(v, -1, 1))
		if len(scores) == n {
			break
		}
	}
	for len(scores) < n {
		scores = append(scores, 0)
	}
	return scores
}
