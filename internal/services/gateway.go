package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/genai"

	"alfredoptarigan/resume-analyzer/internal/analysis"
	"alfredoptarigan/resume-analyzer/internal/logger"
)

const gatewayTemperature = 0.2

type jsonGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, temperature float32) (string, error)
}

// geminiGateway serves analysis gateway calls from Gemini. Calls are spaced
// by at least minInterval and are never retried here.
type geminiGateway struct {
	generator jsonGenerator
	prompts   *PromptBuilder
	limiter   *rate.Limiter
	log       *zap.Logger
}

func NewGeminiGateway(generator jsonGenerator, minInterval time.Duration, log *zap.Logger) analysis.Gateway {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	return &geminiGateway{
		generator: generator,
		prompts:   NewPromptBuilder(),
		limiter:   rate.NewLimiter(limit, 1),
		log:       logger.OrNop(log),
	}
}

func (g *geminiGateway) Call(ctx context.Context, model, input string, timeout time.Duration) (analysis.Response, error) {
	prompt, ok := g.prompts.Build(model, input)
	if !ok {
		return nil, analysis.NewGatewayError(analysis.GatewayNotFound, model, fmt.Errorf("no prompt for model key %q", model))
	}

	if err := g.limiter.Wait(ctx); err != nil {
		return nil, analysis.NewGatewayError(analysis.GatewayTimeout, model, err)
	}

	if timeout <= 0 {
		timeout = analysis.DefaultGatewayTimeout
	}
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	started := time.Now()
	raw, err := g.generator.GenerateJSON(callCtx, prompt, gatewayTemperature)
	if err != nil {
		return nil, classifyGatewayError(err, model)
	}

	resp, err := parseGatewayResponse(raw)
	if err != nil {
		g.log.Debug("unparseable gateway response",
			zap.String(logger.FieldModel, model),
			zap.String("raw", logger.TruncateForLog(raw, 200)),
		)
		return nil, analysis.NewGatewayError(analysis.GatewayOther, model, err)
	}

	g.log.Debug("gateway call finished",
		zap.String(logger.FieldModel, model),
		zap.Duration("latency", time.Since(started)),
	)
	return resp, nil
}

func classifyGatewayError(err error, model string) *analysis.GatewayError {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return analysis.NewGatewayError(analysis.GatewayAuth, model, err)
		case http.StatusNotFound:
			return analysis.NewGatewayError(analysis.GatewayNotFound, model, err)
		case http.StatusTooManyRequests:
			return analysis.NewGatewayError(analysis.GatewayRateLimited, model, err)
		case http.StatusServiceUnavailable:
			return analysis.NewGatewayError(analysis.GatewayLoading, model, err)
		case http.StatusGatewayTimeout, http.StatusRequestTimeout:
			return analysis.NewGatewayError(analysis.GatewayTimeout, model, err)
		}
	}
	return analysis.AsGatewayError(err, model)
}

func parseGatewayResponse(raw string) (analysis.Response, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(extractJSON(raw))))
	dec.UseNumber()

	var resp analysis.Response
	if err := dec.Decode(&resp); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %w", err)
	}
	return resp, nil
}

// extractJSON strips Markdown code fences and any text around the outermost
// JSON object.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
		raw = strings.TrimSpace(raw)
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
