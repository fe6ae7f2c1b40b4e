package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"maitred/internal/ledger"
	"maitred/internal/lifecycle"
	"maitred/internal/menu"
	"maitred/internal/models"
	"maitred/internal/monitoring"
	"maitred/internal/notify"
	"maitred/internal/pricing"
	"maitred/internal/store"
)

// MockLLM is a mock implementation of the model interface
type MockLLM struct {
	mock.Mock
}

func (m *MockLLM) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockLLM) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func contentResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

type stubNotifier struct{ err error }

func (s stubNotifier) Send(context.Context, notify.Message) error { return s.err }

type stubLedger struct{ err error }

func (s stubLedger) Append(context.Context, ledger.Row) error { return s.err }

func newTestDriver(t *testing.T, model llms.Model) *Driver {
	t.Helper()

	catalog := menu.Default()
	svc := lifecycle.New(lifecycle.Deps{
		Catalog:          catalog,
		Pricing:          pricing.New(catalog, decimal.RequireFromString("0.10")),
		Store:            store.New(),
		Notifier:         stubNotifier{},
		Ledger:           stubLedger{},
		DefaultRecipient: "kitchen@bellavista.example",
	})

	return NewDriver(Config{
		Model:   model,
		Service: svc,
		Catalog: catalog,
		Monitor: monitoring.New(),
	})
}

func TestInterpretExecutesToolEnvelope(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(contentResponse(`{"reply":"Here are our desserts!","tool":"fetch_menu","args":{"category":"dessert"}}`), nil)

	driver := newTestDriver(t, mockLLM)

	reply, err := driver.Interpret(context.Background(), "", "What desserts do you have?")
	require.NoError(t, err)

	assert.NotEmpty(t, reply.SessionID)
	assert.Equal(t, "Here are our desserts!", reply.Text)

	require.Len(t, reply.ToolResults, 1)
	assert.Equal(t, ToolFetchMenu, reply.ToolResults[0].Tool)
	assert.Empty(t, reply.ToolResults[0].Err)

	items, ok := reply.ToolResults[0].Outcome.([]models.MenuItem)
	require.True(t, ok)
	assert.Len(t, items, 2)
}

func TestInterpretCreatesOrderThroughTool(t *testing.T) {
	payload := `{"reply":"Your order is in!","tool":"create_new_order","args":{` +
		`"customer_name":"Maria Lopez","service_location":"Table 12",` +
		`"contact_phone":"555-867-5309","item_codes":["APP_001","MAIN_001","DESS_001","DRINK_001"]}}`

	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(contentResponse(payload), nil)

	driver := newTestDriver(t, mockLLM)

	reply, err := driver.Interpret(context.Background(), "", "Yes, place the order please")
	require.NoError(t, err)

	require.Len(t, reply.ToolResults, 1)
	result, ok := reply.ToolResults[0].Outcome.(lifecycle.CreateResult)
	require.True(t, ok)
	assert.Equal(t, "ORD-00001", result.OrderID)
	assert.Equal(t, "57.16", result.Order.GrandTotal.StringFixed(2))
}

func TestInterpretRevalidatesModelProposedItems(t *testing.T) {
	payload := `{"reply":"Coming right up","tool":"create_new_order","args":{` +
		`"customer_name":"Maria Lopez","service_location":"Table 12",` +
		`"contact_phone":"555-867-5309","item_codes":["SUSHI_001"]}}`

	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(contentResponse(payload), nil)

	driver := newTestDriver(t, mockLLM)

	reply, err := driver.Interpret(context.Background(), "", "I want the sushi")
	require.NoError(t, err)

	require.Len(t, reply.ToolResults, 1)
	assert.Contains(t, reply.ToolResults[0].Err, "invalid menu item")
	assert.Empty(t, driver.service.Orders(), "a hallucinated item code must never create an order")
}

func TestInterpretIgnoresUnknownTool(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(contentResponse(`{"reply":"On it!","tool":"drop_database","args":{}}`), nil)

	driver := newTestDriver(t, mockLLM)

	reply, err := driver.Interpret(context.Background(), "", "hello")
	require.NoError(t, err)
	assert.Equal(t, "On it!", reply.Text)
	assert.Empty(t, reply.ToolResults)
}

func TestInterpretFallsBackToSlotFilling(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(contentResponse("Wonderful choice! May I have your details?"), nil)

	driver := newTestDriver(t, mockLLM)
	ctx := context.Background()

	reply, err := driver.Interpret(ctx, "session-1", "I'd like a Fresh-Squeezed Lemonade and a Molten Chocolate Lava Cake")
	require.NoError(t, err)
	assert.Equal(t, "session-1", reply.SessionID)
	assert.NotContains(t, reply.Text, "ORDER SUMMARY")

	reply, err = driver.Interpret(ctx, "session-1", "My name is Maria Lopez, table 12, phone 555-867-5309")
	require.NoError(t, err)
	assert.Contains(t, reply.Text, "ORDER SUMMARY")
	assert.Contains(t, reply.Text, "Customer: Maria Lopez")
	assert.Contains(t, reply.Text, "Location: table 12")
	assert.Contains(t, reply.Text, "Fresh-Squeezed Lemonade")
	assert.Contains(t, reply.Text, "Total: $16.48")
}

func TestInterpretModelFailure(t *testing.T) {
	mockLLM := new(MockLLM)
	mockLLM.On("GenerateContent", mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited"))

	driver := newTestDriver(t, mockLLM)

	_, err := driver.Interpret(context.Background(), "", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestSessionHistoryWindow(t *testing.T) {
	s := newSession("s", 3)
	s.Remember("Customer", "first")
	s.Remember("Agent", "second")
	s.Remember("Customer", "third")
	s.Remember("Agent", "fourth")

	history := s.History()
	assert.NotContains(t, history, "first")
	assert.Contains(t, history, "Agent: second")
	assert.Contains(t, history, "Agent: fourth")
}
