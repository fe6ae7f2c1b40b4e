// Package agent turns free-text customer messages into replies and tool
// invocations against the order lifecycle. The model only ever proposes;
// every item code and customer field it produces is re-validated by the
// lifecycle service before anything is priced, created, or dispatched.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"

	"maitred/internal/lifecycle"
	"maitred/internal/menu"
	"maitred/internal/monitoring"
)

const defaultRestaurant = "Bella Vista"

// Reply is the outcome of one conversation turn.
type Reply struct {
	SessionID   string       `json:"session_id"`
	Text        string       `json:"text"`
	ToolResults []ToolResult `json:"tool_results,omitempty"`
}

// envelope is the JSON contract the model is instructed to answer with.
type envelope struct {
	Reply string          `json:"reply"`
	Tool  string          `json:"tool,omitempty"`
	Args  json.RawMessage `json:"args,omitempty"`
}

// Config carries the driver's construction parameters.
type Config struct {
	Model   llms.Model
	Service *lifecycle.Service
	Catalog *menu.Catalog
	Monitor *monitoring.Monitor
	Logger  *zap.Logger

	// Restaurant names the house in the persona. Empty means Bella Vista.
	Restaurant string
	// HistoryLimit caps retained conversation lines per session. Zero means
	// the default window of 15.
	HistoryLimit int
}

// Driver runs the conversation loop for all sessions.
type Driver struct {
	model   llms.Model
	service *lifecycle.Service
	catalog *menu.Catalog
	monitor *monitoring.Monitor
	log     *zap.Logger

	persona      string
	historyLimit int

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewDriver creates the conversation driver.
func NewDriver(cfg Config) *Driver {
	if cfg.Restaurant == "" {
		cfg.Restaurant = defaultRestaurant
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Driver{
		model:        cfg.Model,
		service:      cfg.Service,
		catalog:      cfg.Catalog,
		monitor:      cfg.Monitor,
		log:          cfg.Logger,
		persona:      buildPersona(cfg.Restaurant, cfg.Catalog),
		historyLimit: cfg.HistoryLimit,
		sessions:     make(map[string]*Session),
	}
}

// Interpret handles one conversation turn. An empty session id starts a new
// session; the returned reply carries the id to continue it.
func (d *Driver) Interpret(ctx context.Context, sessionID, userText string) (Reply, error) {
	session := d.session(sessionID)
	session.mu.Lock()
	defer session.mu.Unlock()

	session.Remember("Customer", userText)

	resp, err := d.model.GenerateContent(ctx, d.prompt(session, userText),
		llms.WithTemperature(0.7),
		llms.WithJSONMode())
	if err != nil {
		return Reply{}, fmt.Errorf("generating reply: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return Reply{}, fmt.Errorf("empty response from model")
	}

	raw := resp.Choices[0].Content
	reply := Reply{SessionID: session.ID}

	var env envelope
	fellBack := false
	if err := json.Unmarshal([]byte(raw), &env); err == nil && env.Reply != "" {
		reply.Text = env.Reply
		if env.Tool != "" {
			call, err := decodeToolCall(env.Tool, env.Args)
			if err != nil {
				d.log.Warn("model proposed an undecodable tool call",
					zap.String("session_id", session.ID),
					zap.String("tool", env.Tool),
					zap.Error(err))
			} else {
				reply.ToolResults = append(reply.ToolResults, d.execute(ctx, call))
			}
		}
	} else {
		// The model dropped the JSON contract. Use its text as-is and keep
		// collecting order details the scripted way.
		fellBack = true
		reply.Text = raw
		updateDraft(&session.draft, d.catalog, userText)
	}

	session.Remember("Agent", reply.Text)

	if fellBack && session.draft.Complete() {
		if summary := d.renderDraftSummary(session.draft); summary != "" {
			reply.Text = reply.Text + "\n" + summary
		}
	}

	return reply, nil
}

// session returns the conversation for id, creating it on first use. An
// empty id allocates a fresh session.
func (d *Driver) session(id string) *Session {
	d.mu.Lock()
	defer d.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	s, ok := d.sessions[id]
	if !ok {
		s = newSession(id, d.historyLimit)
		d.sessions[id] = s
	}
	return s
}

func (d *Driver) prompt(session *Session, userText string) []llms.MessageContent {
	var b strings.Builder
	if history := session.History(); history != "" {
		b.WriteString("Conversation so far:\n")
		b.WriteString(history)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "The customer's latest message: %s", userText)

	return []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, d.persona),
		llms.TextParts(llms.ChatMessageTypeHuman, b.String()),
	}
}

// renderDraftSummary prices the collected draft and formats the order recap
// shown once every required detail is in hand.
func (d *Driver) renderDraftSummary(draft Draft) string {
	quote, err := d.service.Quote(draft.ItemCodes)
	if err != nil {
		return ""
	}

	divider := strings.Repeat("=", 50)

	var b strings.Builder
	b.WriteString(divider + "\n")
	b.WriteString("📋 ORDER SUMMARY\n")
	b.WriteString(divider + "\n")
	fmt.Fprintf(&b, "Customer: %s\n", draft.Name)
	fmt.Fprintf(&b, "Location: %s\n", draft.Location)
	fmt.Fprintf(&b, "Phone: %s\n", draft.Phone)
	b.WriteString("\nItems:\n")
	for _, code := range draft.ItemCodes {
		if item, ok := d.catalog.Lookup(code); ok {
			fmt.Fprintf(&b, "  • %s\n", item.Name)
		}
	}
	fmt.Fprintf(&b, "\nSubtotal: $%s\n", quote.Subtotal.StringFixed(2))
	fmt.Fprintf(&b, "Tax: $%s\n", quote.Tax.StringFixed(2))
	fmt.Fprintf(&b, "Total: $%s\n", quote.GrandTotal.StringFixed(2))
	b.WriteString(divider)
	return b.String()
}

// buildPersona renders the system prompt: the maître d' role, the menu, the
// tool surface, and the JSON answer contract.
func buildPersona(restaurant string, catalog *menu.Catalog) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are Alfredo, the maître d' of %s.\n", restaurant)
	b.WriteString("You greet customers warmly, guide them through the menu, capture their order with any customizations, collect their name, service location, and contact phone, and repeat the full order back before it is final.\n")
	b.WriteString("Always be polite, warm, and professional. Use the customer's name once you know it. Proactively ask for missing required information. Suggest popular dishes when it helps.\n")

	b.WriteString("\nMENU\n")
	for _, item := range catalog.Items() {
		fmt.Fprintf(&b, "- %s [%s] $%s (%s): %s\n",
			item.Name, item.Code, item.Price.StringFixed(2), item.Category, item.Description)
	}

	b.WriteString("\nTOOLS\n")
	fmt.Fprintf(&b, "- %s {category}: list menu items (appetizer, main, dessert, drink, all)\n", ToolFetchMenu)
	fmt.Fprintf(&b, "- %s {item_codes}: price a list of item codes\n", ToolCalculateTotal)
	fmt.Fprintf(&b, "- %s {customer_name, service_location, contact_phone, item_codes, customer_email?, customizations?}: create the order once the customer confirms it\n", ToolCreateOrder)
	fmt.Fprintf(&b, "- %s {order_id, recipient?}: send a created order to the kitchen\n", ToolDispatch)
	fmt.Fprintf(&b, "- %s {order_id}: record a created order in the order log\n", ToolLogOrder)
	fmt.Fprintf(&b, "- %s {order_id}: look up an order\n", ToolGetStatus)

	b.WriteString("\nAnswer with a single JSON object: {\"reply\": \"<message to the customer>\", \"tool\": \"<tool name or empty>\", \"args\": {<tool arguments>}}. Invoke at most one tool per turn, and only after the customer has confirmed the details it needs.\n")

	return b.String()
}
