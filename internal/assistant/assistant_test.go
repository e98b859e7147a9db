package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"crypto-assistant/internal/types"
)

// scriptedChat returns canned completions in order and records every
// message sequence it was sent.
type scriptedChat struct {
	responses []string
	err       error
	calls     [][]types.Turn
}

func (s *scriptedChat) Complete(_ context.Context, msgs []types.Turn) (string, error) {
	recorded := make([]types.Turn, len(msgs))
	copy(recorded, msgs)
	s.calls = append(s.calls, recorded)

	if s.err != nil {
		return "", s.err
	}
	i := len(s.calls) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	return s.responses[i], nil
}

type fetchCall struct {
	endpoint string
	params   map[string]string
}

type fakeMarket struct {
	body  json.RawMessage
	err   error
	calls []fetchCall
}

func (f *fakeMarket) Fetch(_ context.Context, endpoint string, params map[string]string) (json.RawMessage, error) {
	f.calls = append(f.calls, fetchCall{endpoint: endpoint, params: params})
	if f.err != nil {
		return nil, f.err
	}
	return f.body, nil
}

const listingsCall = `<tool_call>{"name":"get_cmc_data","arguments":{"endpoint":"/v1/cryptocurrency/listings/latest","params":{"limit":"10"}}}</tool_call>`

func TestRespondInvocationFetchesExactly(t *testing.T) {
	chat := &scriptedChat{responses: []string{listingsCall, "Bitcoin leads the market."}}
	market := &fakeMarket{body: json.RawMessage(`{"data":[{"name":"Bitcoin"}]}`)}
	a := NewWithClients(chat, market, nil, 3, 0)

	answer := a.Respond(context.Background(), "Show me the top 10 cryptocurrencies", nil)

	if answer != "Bitcoin leads the market." {
		t.Errorf("unexpected answer %q", answer)
	}
	if len(market.calls) != 1 {
		t.Fatalf("expected exactly one fetch, got %d", len(market.calls))
	}
	call := market.calls[0]
	if call.endpoint != "/v1/cryptocurrency/listings/latest" {
		t.Errorf("unexpected endpoint %q", call.endpoint)
	}
	if call.params["limit"] != "10" {
		t.Errorf("expected limit=10, got %v", call.params)
	}

	// Synthesis must carry the raw payload as an assistant turn
	if len(chat.calls) != 2 {
		t.Fatalf("expected two chat calls, got %d", len(chat.calls))
	}
	synth := chat.calls[1]
	assistantTurn := synth[len(synth)-2]
	if assistantTurn.Role != types.RoleAssistant {
		t.Errorf("expected assistant turn before final query, got %s", assistantTurn.Role)
	}
	if !strings.Contains(assistantTurn.Content, "Bitcoin") {
		t.Errorf("expected payload in synthesis input, got %q", assistantTurn.Content)
	}
}

func TestRespondPlainTextSkipsFetch(t *testing.T) {
	plain := "Bitcoin is a peer-to-peer digital currency."
	chat := &scriptedChat{responses: []string{plain, "final answer"}}
	market := &fakeMarket{}
	a := NewWithClients(chat, market, nil, 3, 0)

	answer := a.Respond(context.Background(), "What is Bitcoin?", nil)

	if answer != "final answer" {
		t.Errorf("unexpected answer %q", answer)
	}
	if len(market.calls) != 0 {
		t.Errorf("expected no fetch on passthrough, got %d calls", len(market.calls))
	}

	synth := chat.calls[1]
	if got := synth[len(synth)-2].Content; got != plain {
		t.Errorf("expected passthrough text unchanged, got %q", got)
	}
}

func TestRespondUnknownToolPassesThrough(t *testing.T) {
	raw := `{"name":"get_weather","arguments":{"endpoint":"/weather"}}`
	chat := &scriptedChat{responses: []string{raw, "done"}}
	market := &fakeMarket{}
	a := NewWithClients(chat, market, nil, 3, 0)

	a.Respond(context.Background(), "weather?", nil)

	if len(market.calls) != 0 {
		t.Errorf("expected no fetch for unknown tool, got %d calls", len(market.calls))
	}
	synth := chat.calls[1]
	if got := synth[len(synth)-2].Content; got != raw {
		t.Errorf("expected raw invocation text passed through, got %q", got)
	}
}

func TestRespondMissingEndpoint(t *testing.T) {
	raw := `<tool_call>{"name":"get_cmc_data","arguments":{"params":{"limit":"5"}}}</tool_call>`
	chat := &scriptedChat{responses: []string{raw, "done"}}
	market := &fakeMarket{}
	a := NewWithClients(chat, market, nil, 3, 0)

	a.Respond(context.Background(), "top 5?", nil)

	if len(market.calls) != 0 {
		t.Errorf("expected no fetch without endpoint, got %d calls", len(market.calls))
	}
	synth := chat.calls[1]
	if got := synth[len(synth)-2].Content; got != endpointMissingText {
		t.Errorf("expected endpoint-missing text, got %q", got)
	}
}

func TestRespondFetchErrorFedToSynthesis(t *testing.T) {
	chat := &scriptedChat{responses: []string{listingsCall, "sorry, data is unavailable right now"}}
	market := &fakeMarket{err: errors.New("CoinMarketCap API key not found")}
	a := NewWithClients(chat, market, nil, 3, 0)

	answer := a.Respond(context.Background(), "top 10?", nil)

	if answer == "" || answer == apology {
		t.Errorf("expected synthesized answer despite fetch error, got %q", answer)
	}
	synth := chat.calls[1]
	got := synth[len(synth)-2].Content
	if !strings.Contains(got, "Error fetching cryptocurrency data") {
		t.Errorf("expected error marker fed to synthesis, got %q", got)
	}
	if !strings.Contains(got, "API key not found") {
		t.Errorf("expected cause in tool result, got %q", got)
	}
}

func TestRespondChatFailureYieldsApology(t *testing.T) {
	chat := &scriptedChat{err: errors.New("connection refused")}
	a := NewWithClients(chat, &fakeMarket{}, nil, 3, 0)

	answer := a.Respond(context.Background(), "hello", nil)

	if answer != apology {
		t.Errorf("expected apology on chat failure, got %q", answer)
	}
}

func TestRespondHistoryWindowBounded(t *testing.T) {
	history := []types.Turn{
		{Role: types.RoleUser, Content: "q1"},
		{Role: types.RoleAssistant, Content: "a1"},
		{Role: types.RoleUser, Content: "q2"},
		{Role: types.RoleAssistant, Content: "a2"},
		{Role: types.RoleUser, Content: "q3"},
	}

	chat := &scriptedChat{responses: []string{"plain text", "done"}}
	a := NewWithClients(chat, &fakeMarket{}, nil, 3, 0)

	a.Respond(context.Background(), "new question", history)

	// Selection: system + 3 history + user query
	sel := chat.calls[0]
	if len(sel) != 5 {
		t.Fatalf("expected 5 selection messages, got %d", len(sel))
	}
	if sel[1].Content != "q2" || sel[2].Content != "a2" || sel[3].Content != "q3" {
		t.Errorf("expected last 3 history turns, got %+v", sel[1:4])
	}

	// Synthesis: system + 3 history + assistant tool result + user query
	synth := chat.calls[1]
	if len(synth) != 6 {
		t.Fatalf("expected 6 synthesis messages, got %d", len(synth))
	}
	if synth[0].Role != types.RoleSystem || synth[5].Role != types.RoleUser {
		t.Errorf("unexpected synthesis framing: %+v", synth)
	}
}

// fakeHeadlines returns fixed articles for any symbol
type fakeHeadlines struct {
	calls []string
}

func (f *fakeHeadlines) Headlines(_ context.Context, symbol string, _ int) ([]types.NewsArticle, error) {
	f.calls = append(f.calls, symbol)
	return []types.NewsArticle{{Title: "BTC holds steady", Source: "CoinDesk"}}, nil
}

func TestRespondHeadlineEnrichment(t *testing.T) {
	raw := `<tool_call>{"name":"get_cmc_data","arguments":{"endpoint":"/v1/cryptocurrency/quotes/latest","params":{"symbol":"BTC,ETH","convert":"USD"}}}</tool_call>`
	chat := &scriptedChat{responses: []string{raw, "done"}}
	market := &fakeMarket{body: json.RawMessage(`{"data":{"BTC":{}}}`)}
	headlines := &fakeHeadlines{}
	a := NewWithClients(chat, market, headlines, 3, 5)

	a.Respond(context.Background(), "tell me about BTC", nil)

	if len(headlines.calls) != 1 || headlines.calls[0] != "BTC" {
		t.Fatalf("expected headlines for first symbol BTC, got %v", headlines.calls)
	}
	synth := chat.calls[1]
	got := synth[len(synth)-2].Content
	if !strings.Contains(got, "BTC holds steady") {
		t.Errorf("expected headlines appended to tool result, got %q", got)
	}
	// Enrichment must not add messages
	if len(synth) != 3 {
		t.Errorf("expected 3 synthesis messages with empty history, got %d", len(synth))
	}
}
