package insight

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shahbhavya7/Ace-360/internal/model"
)

// Completer produces a raw text completion for a prompt. Implemented by
// ai.Client; tests substitute fakes.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Generator runs the prompt → complete → sanitize → validate pipeline for
// one industry. It holds no state beyond the upstream client, so the read
// path and the scheduler share one instance.
type Generator struct {
	completer Completer
}

// NewGenerator returns a Generator backed by the given Completer.
func NewGenerator(c Completer) *Generator {
	return &Generator{completer: c}
}

// Generate produces a validated insight field set for industry. Upstream
// and validation failures propagate untouched apart from context wrapping;
// nothing is persisted here.
func (g *Generator) Generate(ctx context.Context, industry string) (*model.GeneratedInsight, error) {
	raw, err := g.completer.Complete(ctx, BuildPrompt(industry))
	if err != nil {
		return nil, fmt.Errorf("complete insight for %q: %w", industry, err)
	}

	gen, err := ParseInsight(StripCodeFences(raw))
	if err != nil {
		// The raw text is the evidence needed for prompt tuning.
		slog.Error("insight validation failed",
			"industry", industry, "err", err, "raw", truncate(raw, 500))
		return nil, fmt.Errorf("validate insight for %q: %w", industry, err)
	}
	return gen, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
