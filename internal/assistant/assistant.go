package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"crypto-assistant/internal/interfaces"
	"crypto-assistant/internal/logger"
	"crypto-assistant/internal/toolcall"
	"crypto-assistant/internal/trace"
	"crypto-assistant/internal/types"
)

// apology is the only thing the caller sees when a stage fails outright;
// no error ever crosses the Respond boundary.
const apology = "Sorry, I encountered an error while processing your query. Please try again."

// endpointMissingText substitutes for the tool result when the model emitted
// an invocation without an endpoint.
const endpointMissingText = "Endpoint not specified in arguments"

// Turn paths, recorded per completed turn.
const (
	pathTool        = "tool"
	pathPassthrough = "passthrough"
	pathApology     = "apology"
)

// Assistant runs the four-stage turn pipeline: tool selection, parsing,
// fetch or passthrough, and answer synthesis. It is stateless across turns;
// the caller owns the conversation history.
type Assistant struct {
	chat    interfaces.ChatClient
	market  interfaces.MarketData
	news    interfaces.Headlines // optional, nil disables enrichment
	window  int
	newsMax int
}

var _ interfaces.Responder = (*Assistant)(nil)

// Respond processes one user turn and always returns a printable answer.
func (a *Assistant) Respond(ctx context.Context, message string, history []types.Turn) string {
	turnID := uuid.NewString()
	start := time.Now()

	ctx, span := trace.StartSpan(ctx, "assistant-turn")
	defer span.End()
	span.SetAttributes(attribute.String("turn_id", turnID))

	raw, err := a.selectTool(ctx, message, history)
	if err != nil {
		logger.ErrorWithErr(ctx, "Tool selection failed", err, "turn_id", turnID)
		logger.Turn(ctx, turnID, pathApology, time.Since(start).Milliseconds())
		return apology
	}

	parsed := toolcall.Parse(raw)
	toolResult, path := a.resolveToolResult(ctx, parsed)

	answer, err := a.synthesize(ctx, message, history, toolResult)
	if err != nil {
		logger.ErrorWithErr(ctx, "Answer synthesis failed", err, "turn_id", turnID)
		logger.Turn(ctx, turnID, pathApology, time.Since(start).Milliseconds())
		return apology
	}

	logger.Turn(ctx, turnID, path, time.Since(start).Milliseconds())
	return answer
}

// selectTool asks the model whether the query needs a market data lookup.
// Message sequence: tool-definition system prompt, bounded history window,
// the new user query.
func (a *Assistant) selectTool(ctx context.Context, message string, history []types.Turn) (string, error) {
	ctx, span := trace.StartSpan(ctx, "select-tool")
	defer span.End()

	msgs := make([]types.Turn, 0, a.window+2)
	msgs = append(msgs, types.Turn{Role: types.RoleSystem, Content: toolSelectionPrompt})
	msgs = append(msgs, lastTurns(history, a.window)...)
	msgs = append(msgs, types.Turn{Role: types.RoleUser, Content: message})

	return a.chat.Complete(ctx, msgs)
}

// resolveToolResult turns the parsed model output into the text fed to
// synthesis, fetching market data when a supported invocation was emitted
// and passing the text through otherwise. Fetch failures are stringified,
// never propagated; the final answer should acknowledge them in natural
// language.
func (a *Assistant) resolveToolResult(ctx context.Context, parsed toolcall.Result) (string, string) {
	switch parsed.Kind {
	case toolcall.KindPlainText, toolcall.KindFailure:
		return parsed.Text, pathPassthrough
	}

	inv := parsed.Invocation
	if inv.Name != toolName {
		logger.Warn(ctx, "Model invoked unknown tool, passing output through", "tool", inv.Name)
		return parsed.Text, pathPassthrough
	}
	if inv.Arguments.Endpoint == "" {
		return endpointMissingText, pathTool
	}

	body, err := a.market.Fetch(ctx, inv.Arguments.Endpoint, inv.Arguments.Params)
	if err != nil {
		return fmt.Sprintf("Error fetching cryptocurrency data: %v", err), pathTool
	}

	result := string(body)
	if headlines := a.enrich(ctx, inv.Arguments.Params); headlines != "" {
		result += headlines
	}
	return result, pathTool
}

// enrich appends recent headlines for the first requested symbol to the
// tool result. Appending to the string (rather than adding a message) keeps
// the synthesis message sequence bounded.
func (a *Assistant) enrich(ctx context.Context, params map[string]string) string {
	if a.news == nil {
		return ""
	}
	symbols, ok := params["symbol"]
	if !ok || symbols == "" {
		return ""
	}
	symbol := strings.TrimSpace(strings.SplitN(symbols, ",", 2)[0])
	if symbol == "" {
		return ""
	}

	articles, err := a.news.Headlines(ctx, symbol, a.newsMax)
	if err != nil || len(articles) == 0 {
		if err != nil {
			logger.Warn(ctx, "Headline enrichment failed", "symbol", symbol, "error", err)
		}
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n\nRecent headlines for %s:\n", symbol)
	for _, art := range articles {
		fmt.Fprintf(&b, "- %s (%s)\n", art.Title, art.Source)
	}
	return b.String()
}

// synthesize produces the final natural-language answer. Message sequence:
// synthesis system prompt, bounded history window, the stringified tool
// result as an assistant turn, the user query again.
func (a *Assistant) synthesize(ctx context.Context, message string, history []types.Turn, toolResult string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "synthesize-answer")
	defer span.End()

	msgs := make([]types.Turn, 0, a.window+3)
	msgs = append(msgs, types.Turn{Role: types.RoleSystem, Content: synthesisPrompt})
	msgs = append(msgs, lastTurns(history, a.window)...)
	msgs = append(msgs, types.Turn{Role: types.RoleAssistant, Content: toolResult})
	msgs = append(msgs, types.Turn{Role: types.RoleUser, Content: message})

	return a.chat.Complete(ctx, msgs)
}

// lastTurns returns at most n of the most recent turns
func lastTurns(history []types.Turn, n int) []types.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
