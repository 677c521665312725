// Package generation turns a prompt into a schema-valid structured result.
//
// Each call invokes the model once, validates the reply against the task schema and,
// if enabled, re-prompts a single time with the validation errors before failing.
// Remote errors are never retried here.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"studybuddy/internal/llm"
)

// ErrGeneration wraps every failure: remote call, timeout, or a reply that cannot be coerced.
var ErrGeneration = errors.New("generation failed")

// Options configures a Client. Zero values disable the timeout, the re-prompt and metrics.
type Options struct {
	Timeout  time.Duration
	Reprompt bool
	Metrics  *Metrics
	Logger   *zap.Logger
	Tracer   trace.Tracer
}

// Client runs structured generation against a single model backend.
// It holds no per-request state and is safe for concurrent use.
type Client struct {
	model    llm.Model
	timeout  time.Duration
	reprompt bool
	metrics  *Metrics
	logger   *zap.Logger
	tracer   trace.Tracer
}

// NewClient constructs a Client around model.
func NewClient(model llm.Model, opts Options) *Client {
	c := &Client{
		model:    model,
		timeout:  opts.Timeout,
		reprompt: opts.Reprompt,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		tracer:   opts.Tracer,
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	if c.tracer == nil {
		c.tracer = otel.Tracer("studybuddy/internal/generation")
	}
	return c
}

// IsTimeout reports whether err came from the generation deadline expiring.
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// Generate sends userPrompt with the task persona and decodes the validated reply into out,
// which must be a non-nil pointer. out is only meaningful when the returned error is nil.
func (c *Client) Generate(ctx context.Context, task Task, userPrompt string, out any) (err error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	ctx, span := c.tracer.Start(ctx, "generation.Generate",
		trace.WithAttributes(attribute.String("generation.task", string(task.Kind))))
	defer span.End()

	start := time.Now()
	outcome := outcomeSuccess
	defer func() {
		c.metrics.observe(task.Kind, outcome, time.Since(start))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, outcome)
		}
	}()

	req := llm.Request{
		System:     task.Persona,
		Prompt:     withReplyFormat(userPrompt, task.Schema),
		SchemaName: task.SchemaName,
		Schema:     task.Schema,
	}

	attempts := 1
	if c.reprompt {
		attempts = 2
	}

	var invalid error
	for attempt := 1; attempt <= attempts; attempt++ {
		span.SetAttributes(attribute.Int("generation.attempts", attempt))

		raw, callErr := c.model.Complete(ctx, req)
		if callErr != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				outcome = outcomeCanceled
				if errors.Is(ctxErr, context.DeadlineExceeded) {
					outcome = outcomeTimeout
				}
				return fmt.Errorf("%w: %s: %w", ErrGeneration, task.Kind, ctxErr)
			}
			outcome = outcomeModelError
			return fmt.Errorf("%w: %s: model call: %w", ErrGeneration, task.Kind, callErr)
		}

		invalid = coerce(raw, task.Schema, out)
		if invalid == nil {
			return nil
		}
		c.logger.Warn("model reply rejected",
			zap.String("task", string(task.Kind)),
			zap.Int("attempt", attempt),
			zap.Error(invalid),
		)
		req.Prompt = withCorrection(userPrompt, task.Schema, invalid)
	}

	outcome = outcomeInvalidReply
	return fmt.Errorf("%w: %s: invalid reply after %d attempt(s): %w", ErrGeneration, task.Kind, attempts, invalid)
}

func withReplyFormat(userPrompt string, schema map[string]any) string {
	b, _ := json.MarshalIndent(schema, "", "  ")
	return userPrompt + "\nRespond with a single JSON object that matches this JSON schema, with no text before or after it:\n" + string(b) + "\n"
}

func withCorrection(userPrompt string, schema map[string]any, invalid error) string {
	return withReplyFormat(userPrompt, schema) +
		"\nYour previous reply was rejected: " + invalid.Error() +
		"\nReturn the corrected JSON object only.\n"
}
