package agent

import (
	"context"
	"encoding/json"
	"fmt"

	"maitred/internal/models"
)

// Tool wire names, the closed set the model may invoke.
const (
	ToolFetchMenu      = "fetch_menu"
	ToolCalculateTotal = "calculate_order_total"
	ToolCreateOrder    = "create_new_order"
	ToolDispatch       = "send_order_to_kitchen"
	ToolLogOrder       = "log_order"
	ToolGetStatus      = "get_order_status"
)

// ToolCall is the closed union of actions the model may request. The sealed
// marker keeps the set closed at compile time; unknown names never reach the
// dispatch switch.
type ToolCall interface {
	isToolCall()
}

// FetchMenu asks for the menu, optionally filtered by category.
type FetchMenu struct {
	Category string `json:"category"`
}

// CalculateTotal prices a sequence of item codes.
type CalculateTotal struct {
	ItemCodes []string `json:"item_codes"`
}

// CreateOrder registers a new order from the collected customer details.
type CreateOrder struct {
	models.OrderRequest
}

// Dispatch sends a created order to the kitchen.
type Dispatch struct {
	OrderID   string `json:"order_id"`
	Recipient string `json:"recipient,omitempty"`
}

// LogOrder appends a created order to the durable ledger.
type LogOrder struct {
	OrderID string `json:"order_id"`
}

// GetStatus looks up an order record.
type GetStatus struct {
	OrderID string `json:"order_id"`
}

func (FetchMenu) isToolCall()      {}
func (CalculateTotal) isToolCall() {}
func (CreateOrder) isToolCall()    {}
func (Dispatch) isToolCall()       {}
func (LogOrder) isToolCall()       {}
func (GetStatus) isToolCall()      {}

// ToolResult pairs an executed call with its outcome.
type ToolResult struct {
	Tool    string      `json:"tool"`
	Outcome interface{} `json:"outcome,omitempty"`
	Err     string      `json:"error,omitempty"`
}

// decodeToolCall maps a wire name and raw arguments onto a typed call.
// Unknown names are rejected here, before anything executes.
func decodeToolCall(name string, args json.RawMessage) (ToolCall, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	case ToolFetchMenu:
		var call FetchMenu
		if err := json.Unmarshal(args, &call); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return call, nil
	case ToolCalculateTotal:
		var call CalculateTotal
		if err := json.Unmarshal(args, &call); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return call, nil
	case ToolCreateOrder:
		var call CreateOrder
		if err := json.Unmarshal(args, &call); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return call, nil
	case ToolDispatch:
		var call Dispatch
		if err := json.Unmarshal(args, &call); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return call, nil
	case ToolLogOrder:
		var call LogOrder
		if err := json.Unmarshal(args, &call); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return call, nil
	case ToolGetStatus:
		var call GetStatus
		if err := json.Unmarshal(args, &call); err != nil {
			return nil, fmt.Errorf("decoding %s arguments: %w", name, err)
		}
		return call, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}

// execute runs one tool call through the lifecycle service. Every variant of
// the union is handled; domain failures ride in the result, never panic.
func (d *Driver) execute(ctx context.Context, call ToolCall) ToolResult {
	switch c := call.(type) {
	case FetchMenu:
		d.monitor.RecordToolCall(ToolFetchMenu)
		category := c.Category
		if category == "" {
			category = "all"
		}
		items, ok := d.service.Menu(category)
		if !ok {
			return ToolResult{Tool: ToolFetchMenu, Err: fmt.Sprintf("category %q not found", c.Category)}
		}
		return ToolResult{Tool: ToolFetchMenu, Outcome: items}

	case CalculateTotal:
		d.monitor.RecordToolCall(ToolCalculateTotal)
		quote, err := d.service.Quote(c.ItemCodes)
		if err != nil {
			return ToolResult{Tool: ToolCalculateTotal, Err: err.Error()}
		}
		return ToolResult{Tool: ToolCalculateTotal, Outcome: quote}

	case CreateOrder:
		d.monitor.RecordToolCall(ToolCreateOrder)
		result, err := d.service.CreateOrder(c.OrderRequest)
		if err != nil {
			return ToolResult{Tool: ToolCreateOrder, Err: err.Error()}
		}
		return ToolResult{Tool: ToolCreateOrder, Outcome: result}

	case Dispatch:
		d.monitor.RecordToolCall(ToolDispatch)
		result, err := d.service.Dispatch(ctx, c.OrderID, c.Recipient)
		if err != nil {
			return ToolResult{Tool: ToolDispatch, Err: err.Error()}
		}
		return ToolResult{Tool: ToolDispatch, Outcome: result}

	case LogOrder:
		d.monitor.RecordToolCall(ToolLogOrder)
		result, err := d.service.Log(ctx, c.OrderID)
		if err != nil {
			return ToolResult{Tool: ToolLogOrder, Err: err.Error()}
		}
		return ToolResult{Tool: ToolLogOrder, Outcome: result}

	case GetStatus:
		d.monitor.RecordToolCall(ToolGetStatus)
		order, err := d.service.Status(c.OrderID)
		if err != nil {
			return ToolResult{Tool: ToolGetStatus, Err: err.Error()}
		}
		return ToolResult{Tool: ToolGetStatus, Outcome: order}

	default:
		return ToolResult{Err: fmt.Sprintf("unhandled tool call %T", call)}
	}
}
