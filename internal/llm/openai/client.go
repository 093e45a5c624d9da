package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/joseph-ayodele/invoice-analyzer/constants"
	"github.com/joseph-ayodele/invoice-analyzer/internal/common"
	"github.com/joseph-ayodele/invoice-analyzer/internal/llm"
)

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"` // string, or []contentPart for the image route
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Temperature    float32        `json:"temperature"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat map[string]any `json:"response_format,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content json.RawMessage `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ExtractFields implements llm.FieldExtractor against an OpenAI-compatible chat/completions endpoint.
// It returns the raw content of the first choice; parsing is left to llm.ParseInvoice.
func (c *Client) ExtractFields(ctx context.Context, req llm.ExtractRequest) ([]byte, error) {
	rid := common.RequestIDFromContext(ctx)
	start := time.Now()

	c.log.Info("llm.extract.start",
		"req_id", rid,
		"model", c.cfg.Model,
		"temp", c.cfg.Temperature,
		"format", req.Format,
		"text_len", len(req.Text),
		"image_len", len(req.ImageDataURL),
	)

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	body := c.buildRequest(req)
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	raw, status, err := llm.SendJSON(ctx, c.httpClient, endpoint, body, headers, c.log)
	if err != nil {
		classified := classifyError(ctx, status, err)
		c.log.Error("llm.extract.http_error",
			"req_id", rid, "status", status, "code", common.CodeOf(classified), "error", err,
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, classified
	}

	var cc chatResponse
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.log.Error("llm.extract.decode_error",
			"req_id", rid, "error", err, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.ModelError("malformed model response", fmt.Errorf("decode openai response: %w", err))
	}
	if len(cc.Choices) == 0 {
		c.log.Error("llm.extract.no_choices",
			"req_id", rid, "raw_bytes", len(raw),
			"elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.ModelError("model response has no choices", nil)
	}

	content := strings.TrimSpace(contentText(cc.Choices[0].Message.Content))
	if content == "" {
		c.log.Error("llm.extract.empty_content",
			"req_id", rid, "elapsed_ms", time.Since(start).Milliseconds(),
		)
		return nil, common.ModelError("model response is empty", nil)
	}

	c.log.Info("llm.extract.ok",
		"req_id", rid,
		"content_len", len(content),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return []byte(content), nil
}

func (c *Client) buildRequest(req llm.ExtractRequest) chatRequest {
	prompt := llm.BuildUserPrompt(req)

	var user chatMessage
	if req.Format == constants.IMAGE {
		user = chatMessage{Role: "user", Content: []contentPart{
			{Type: "text", Text: prompt},
			{Type: "image_url", ImageURL: &imageURL{URL: req.ImageDataURL}},
		}}
	} else {
		user = chatMessage{Role: "user", Content: prompt}
	}

	out := chatRequest{
		Model:       c.cfg.Model,
		Temperature: c.cfg.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: llm.BuildSystemPrompt(req.Format)},
			user,
		},
	}
	if c.cfg.JSONMode {
		out.ResponseFormat = map[string]any{"type": "json_object"}
	}
	return out
}

// classifyError maps a failed call onto the model error kinds.
func classifyError(ctx context.Context, status int, err error) error {
	var se *llm.StatusError
	if errors.As(err, &se) {
		switch se.Status {
		case http.StatusUnauthorized, http.StatusForbidden:
			return common.ModelAuthError(se.Status)
		default:
			return common.ModelError(fmt.Sprintf("model endpoint returned status %d", se.Status), err)
		}
	}
	var netErr net.Error
	timeout := errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout())
	if !timeout && status != 0 {
		// reply arrived but the body could not be read
		return common.ModelError("could not read model response", err)
	}
	return common.ModelUnavailableError(err, timeout)
}

// contentText accepts both a plain string and the array-of-parts form some compatible servers return.
func contentText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var parts []contentPart
	if err := json.Unmarshal(raw, &parts); err == nil {
		var b strings.Builder
		for _, p := range parts {
			if p.Type == "text" || p.Type == "" {
				b.WriteString(p.Text)
			}
		}
		return b.String()
	}
	return ""
}
