// Package coach forwards productivity questions to a generative-text API and
// degrades to fixed fallback strings on any failure. Callers always get a
// usable string back; nothing in here is allowed to surface an error.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/Madhesh247/Zenfocus/internal/model"
)

const (
	fallbackMissingKey  = "AI Configuration Missing: Please set your API Key."
	fallbackUnreachable = "Unable to connect to AI Coach. Stay focused internally!"
	fallbackEmptyReply  = "Keep focused. You're doing great."

	fallbackDayMissingKey  = "AI unavailable."
	fallbackDayEmptyReply  = "Great work today."
	fallbackDayUnreachable = "Could not analyze data at this time."

	defaultQuery  = "Give me a quick productivity tip based on my status."
	recentLogsMax = 5
)

// Gateway issues single request/response calls against a Gemini-style
// generateContent endpoint. No retries, no streaming.
type Gateway struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewGateway(apiKey, baseURL, modelName string, client *http.Client) *Gateway {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &Gateway{
		apiKey:  apiKey,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		model:   modelName,
		client:  client,
	}
}

// Ask builds a bounded coaching context from the current engine state and the
// most recent logs, then forwards the user's text. With no user text it asks
// for a short contextual tip.
func (g *Gateway) Ask(ctx context.Context, focusing bool, recentLogs []model.SessionLog, userText string) string {
	if g.apiKey == "" {
		return fallbackMissingKey
	}

	state := "Idle"
	if focusing {
		state = "Focusing"
	}

	query := strings.TrimSpace(userText)
	if query == "" {
		query = defaultQuery
	}

	reply, err := g.generate(ctx, systemInstruction(state, recentLogs), query)
	if err != nil {
		log.Printf("coach request failed: %v", err)
		return fallbackUnreachable
	}
	if reply == "" {
		return fallbackEmptyReply
	}
	return reply
}

// AnalyzeDay asks for a short review of today's sessions.
func (g *Gateway) AnalyzeDay(ctx context.Context, logs []model.SessionLog) string {
	if g.apiKey == "" {
		return fallbackDayMissingKey
	}

	totalMinutes := 0
	for _, entry := range logs {
		totalMinutes += entry.Duration
	}
	totalMinutes /= 60

	query := fmt.Sprintf(
		"I have focused for %d minutes today across %d sessions. Give me a brief summary analysis of my cognitive load and a recommendation for tomorrow. Return as Markdown.",
		totalMinutes,
		len(logs),
	)

	reply, err := g.generate(ctx, "", query)
	if err != nil {
		log.Printf("day review request failed: %v", err)
		return fallbackDayUnreachable
	}
	if reply == "" {
		return fallbackDayEmptyReply
	}
	return reply
}

func systemInstruction(state string, recentLogs []model.SessionLog) string {
	if len(recentLogs) > recentLogsMax {
		recentLogs = recentLogs[:recentLogsMax]
	}

	var history strings.Builder
	for _, entry := range recentLogs {
		fmt.Fprintf(&history, "- %s session (%d mins) on %s\n",
			entry.Mode,
			entry.Duration/60,
			time.UnixMilli(entry.Timestamp).Format("3:04:05 PM"),
		)
	}
	summary := strings.TrimRight(history.String(), "\n")
	if summary == "" {
		summary = "No recent sessions today."
	}

	return fmt.Sprintf(`You are ZenFocus, an elite productivity coach and AI assistant.
Your tone is calm, concise, and scientifically grounded (neuroscience/psychology).
Your goal is to help the user enter a flow state, avoid burnout, and reflect on their work.

Context:
The user is currently: %s.
Recent activity:
%s

If the user asks a specific question, answer it.
If not, provide a very short (under 30 words) actionable tip or motivational thought based on their context.
Do not be generic. Be specific to deep work and focus management.`, state, summary)
}

type generateRequest struct {
	SystemInstruction *content  `json:"system_instruction,omitempty"`
	Contents          []content `json:"contents"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *Gateway) generate(ctx context.Context, system, query string) (string, error) {
	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: query}}}},
	}
	if system != "" {
		payload.SystemInstruction = &content{Parts: []part{{Text: system}}}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, g.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	var out strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, p := range parsed.Candidates[0].Content.Parts {
			out.WriteString(p.Text)
		}
	}
	return strings.TrimSpace(out.String()), nil
}
