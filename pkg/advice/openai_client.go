// pkg/advice/openai_client.go

package advice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Nano867/prediction-crop/entities"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
	log      *zap.Logger
}

// NewOpenAI returns a summarizer backed by an OpenAI-compatible chat endpoint.
// Any failure falls back to the offline template.
func NewOpenAI(endpoint, key, model string, log *zap.Logger) Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &openAI{
		endpoint: endpoint,
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: 25 * time.Second},
		log:      log,
	}
}

func (c *openAI) Summarize(rec *entities.Recommendation) string {
	if rec == nil || !rec.RegionKnown {
		return renderSummary(rec)
	}
	content, err := c.complete(renderSummaryPrompt(rec))
	if err != nil {
		c.log.Warn("llm summary failed, using template", zap.Error(err))
		return renderSummary(rec)
	}
	return content
}

func (c *openAI) complete(prompt string) (string, error) {
	type chatReq struct {
		Model       string              `json:"model"`
		Messages    []map[string]string `json:"messages"`
		Temperature float64             `json:"temperature"`
	}
	b, err := json.Marshal(chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": "You are an agronomist who writes concise, practical planting advice in Markdown."},
			{"role": "user", "content": prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("chat completions: http %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("empty completion")
	}
	return content, nil
}

func renderSummaryPrompt(rec *entities.Recommendation) string {
	return fmt.Sprintf(`
Summarize this rule-based crop recommendation in at most 6 Markdown bullet points.
- Keep the crops and their order exactly as given; do not add crops.
- Mention water needs and soils where they matter.
- Remind the grower that temperatures are approximate regional means.

RESULT:
%s
`, renderSummary(rec))
}
