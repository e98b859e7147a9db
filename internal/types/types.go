package types

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is a single role-tagged message in a conversation. The JSON shape
// matches the chat-completion wire format so a []Turn can be marshaled as
// the request's messages field directly.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ToolInvocation is a structured function call extracted from model output.
type ToolInvocation struct {
	Name      string        `json:"name"`
	Arguments ToolArguments `json:"arguments"`
}

// ToolArguments carries the endpoint and query parameters for a market data
// lookup. Param values are strings on the wire regardless of how the model
// typed them.
type ToolArguments struct {
	Endpoint string            `json:"endpoint"`
	Params   map[string]string `json:"params"`
}

// NewsArticle is a scraped headline used to enrich answers with recent
// market context.
type NewsArticle struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at,omitempty"`
	ScrapedAt   int64  `json:"scraped_at"`
}
