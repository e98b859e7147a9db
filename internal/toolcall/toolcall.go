package toolcall

import (
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"crypto-assistant/internal/types"
)

// The model is instructed to wrap invocations in <tool_call></tool_call>
// tags; both the opening and closing tag are stripped wherever they appear.
var tagPattern = regexp.MustCompile(`</?tool_call>`)

// Kind classifies the outcome of parsing one model response.
type Kind int

const (
	// KindInvocation means the response decoded into a structured tool call.
	KindInvocation Kind = iota
	// KindPlainText means the response was not a tool call; the model chose
	// to answer directly and Text carries the stripped response verbatim.
	KindPlainText
	// KindFailure means the response looked like a tool call but could not
	// be decoded; Text carries a fixed human-readable error string.
	KindFailure
)

// FailureText substitutes for the tool result when decoding breaks down.
const FailureText = "There was some error parsing the tool output"

// Result is the outcome of parsing one model response. Callers switch on
// Kind rather than catching errors; parsing never aborts a turn.
type Result struct {
	Kind       Kind
	Invocation types.ToolInvocation
	Text       string
}

// Parse strips tool_call markup from raw model output and attempts to
// decode the remainder as a structured invocation.
//
// The fallback is two-tier: text that is not a well-formed invocation is
// returned unchanged as plain text (it may itself be the final answer),
// and an invocation-shaped payload with malformed arguments yields a fixed
// error string. Parse is idempotent on text containing no markup.
func Parse(raw string) Result {
	clean := strings.TrimSpace(tagPattern.ReplaceAllString(raw, ""))

	if !gjson.Valid(clean) {
		return Result{Kind: KindPlainText, Text: clean}
	}

	name := gjson.Get(clean, "name")
	if name.Type != gjson.String || name.String() == "" {
		return Result{Kind: KindPlainText, Text: clean}
	}

	inv := types.ToolInvocation{Name: name.String()}

	args := gjson.Get(clean, "arguments")
	if args.Exists() {
		if !args.IsObject() {
			return Result{Kind: KindFailure, Text: FailureText}
		}
		inv.Arguments.Endpoint = args.Get("endpoint").String()
		params := args.Get("params")
		if params.Exists() {
			if !params.IsObject() {
				return Result{Kind: KindFailure, Text: FailureText}
			}
			inv.Arguments.Params = make(map[string]string)
			params.ForEach(func(k, v gjson.Result) bool {
				// Models occasionally emit numeric values; coerce to string
				inv.Arguments.Params[k.String()] = v.String()
				return true
			})
		}
	}

	return Result{Kind: KindInvocation, Invocation: inv, Text: clean}
}
