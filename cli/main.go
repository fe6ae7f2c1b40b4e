package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Styling
var (
	docStyle = lipgloss.NewStyle().Margin(1, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#0a84ff")).
			Padding(0, 1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#30d158")).
			Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#ff453a")).
			Padding(0, 1)
)

// Model defines the application state
type Model struct {
	mainMenu  list.Model
	menuView  table.Model
	orderList list.Model

	chatView    viewport.Model
	chatInput   textinput.Model
	chatHistory []string
	sessionID   string

	spinner     spinner.Model
	client      *ApiClient
	loading     bool
	currentView string
	status      string
	error       string
}

// item represents a list item
type item struct {
	title, desc string
}

// FilterValue implements list.Item interface
func (i item) FilterValue() string { return i.title }

// Title implements list.Item interface
func (i item) Title() string { return i.title }

// Description implements list.Item interface
func (i item) Description() string { return i.desc }

// Initialize the model
func initialModel() Model {
	// Initialize spinner
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	// Initialize main menu items
	items := []list.Item{
		item{title: "Chat with Alfredo", desc: "Place an order through the maître d'"},
		item{title: "Menu", desc: "Browse the menu"},
		item{title: "Orders", desc: "Review orders and send them to the kitchen"},
		item{title: "Exit", desc: "Exit the application"},
	}

	// Initialize main menu
	mainMenu := list.New(items, list.NewDefaultDelegate(), 0, 0)
	mainMenu.Title = "Maitred CLI"

	// Initialize menu table
	columns := []table.Column{
		{Title: "Code", Width: 10},
		{Title: "Dish", Width: 32},
		{Title: "Category", Width: 10},
		{Title: "Price", Width: 10},
	}
	menuTable := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	// Initialize order list view
	orderList := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	orderList.Title = "Orders"

	// Initialize chat widgets
	ti := textinput.New()
	ti.Placeholder = "Say something to Alfredo..."
	ti.Focus()
	ti.CharLimit = 280
	ti.Width = 60

	vp := viewport.New(80, 16)

	// Initialize API client
	client := NewApiClient()

	return Model{
		mainMenu:    mainMenu,
		menuView:    menuTable,
		orderList:   orderList,
		chatView:    vp,
		chatInput:   ti,
		spinner:     s,
		client:      client,
		currentView: "main",
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tea.EnterAltScreen)
}

// Update handles UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.mainMenu.SetSize(msg.Width-h, msg.Height-v)
		m.orderList.SetSize(msg.Width-h, msg.Height-v)
		m.chatView.Width = msg.Width - h
		m.chatView.Height = msg.Height - v - 6
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			// The chat needs the letter; everywhere else it quits.
			if m.currentView != "chat" {
				return m, tea.Quit
			}
		case "enter":
			switch m.currentView {
			case "main":
				selected, ok := m.mainMenu.SelectedItem().(item)
				if ok {
					switch selected.title {
					case "Exit":
						return m, tea.Quit
					case "Chat with Alfredo":
						m.currentView = "chat"
						m.error = ""
						return m, textinput.Blink
					case "Menu":
						m.currentView = "menu"
						m.loading = true
						return m, tea.Batch(m.spinner.Tick, fetchMenu(m.client))
					case "Orders":
						m.currentView = "orders"
						m.loading = true
						return m, tea.Batch(m.spinner.Tick, fetchOrders(m.client))
					}
				}
			case "chat":
				text := strings.TrimSpace(m.chatInput.Value())
				if text == "" || m.loading {
					return m, nil
				}
				m.chatHistory = append(m.chatHistory, infoStyle.Render("You")+" "+text)
				m.refreshChatView()
				m.chatInput.SetValue("")
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, sendChat(m.client, m.sessionID, text))
			}
		case "esc":
			if m.currentView != "main" {
				m.currentView = "main"
				m.error = ""
				m.status = ""
			}
			return m, nil
		case "r":
			if m.currentView == "orders" {
				m.loading = true
				return m, tea.Batch(m.spinner.Tick, fetchOrders(m.client))
			}
		case "d":
			if m.currentView == "orders" {
				if selected, ok := m.orderList.SelectedItem().(orderItem); ok {
					m.loading = true
					return m, tea.Batch(m.spinner.Tick, dispatchOrder(m.client, selected.id))
				}
			}
		}

	case menuMsg:
		m.loading = false
		m.error = ""
		m.menuView.SetRows(convertMenuToRows(msg.items))
		return m, nil

	case ordersMsg:
		m.loading = false
		m.error = ""
		m.orderList.SetItems(convertOrdersToItems(msg.orders))
		return m, nil

	case chatMsg:
		m.loading = false
		m.error = ""
		m.sessionID = msg.reply.SessionID
		m.chatHistory = append(m.chatHistory, successStyle.Render("Alfredo")+" "+msg.reply.Text)
		m.refreshChatView()
		return m, nil

	case dispatchMsg:
		m.loading = false
		if msg.result.Delivered {
			m.status = successStyle.Render(fmt.Sprintf("Order %s sent to the kitchen", msg.result.OrderID))
		} else {
			m.status = errorStyle.Render(fmt.Sprintf("Order %s not delivered: %s", msg.result.OrderID, msg.result.FailureReason))
		}
		return m, fetchOrders(m.client)

	case errorMsg:
		m.loading = false
		m.error = msg.err
		return m, nil

	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	var cmd tea.Cmd
	switch m.currentView {
	case "main":
		m.mainMenu, cmd = m.mainMenu.Update(msg)
	case "menu":
		m.menuView, cmd = m.menuView.Update(msg)
	case "orders":
		m.orderList, cmd = m.orderList.Update(msg)
	case "chat":
		m.chatInput, cmd = m.chatInput.Update(msg)
	}

	return m, cmd
}

// refreshChatView rewrites the viewport from the chat transcript.
func (m *Model) refreshChatView() {
	m.chatView.SetContent(strings.Join(m.chatHistory, "\n\n"))
	m.chatView.GotoBottom()
}

// View renders the UI
func (m Model) View() string {
	switch m.currentView {
	case "main":
		return docStyle.Render(m.mainMenu.View())
	case "menu":
		view := titleStyle.Render("Menu") + "\n\n" + m.menuView.View()
		if m.loading {
			view += "\n" + m.spinner.View() + " Loading..."
		}
		if m.error != "" {
			view += "\n" + errorStyle.Render(m.error)
		}
		view += "\n\nPress 'esc' to go back\n"
		return docStyle.Render(view)
	case "orders":
		help := "\nPress 'd' to send the selected order to the kitchen, 'r' to refresh, 'esc' to go back\n"
		if m.status != "" {
			help += m.status + "\n"
		}
		if m.error != "" {
			help += errorStyle.Render(m.error) + "\n"
		}
		if m.loading {
			help += m.spinner.View() + " Working...\n"
		}
		return docStyle.Render(titleStyle.Render("Orders") + "\n\n" + m.orderList.View() + help)
	case "chat":
		view := titleStyle.Render("Bella Vista") + "\n\n" + m.chatView.View() + "\n\n" + m.chatInput.View() + "\n"
		if m.loading {
			view += m.spinner.View() + " Alfredo is thinking...\n"
		}
		if m.error != "" {
			view += errorStyle.Render(m.error) + "\n"
		}
		view += "\nPress 'esc' to go back, 'ctrl+c' to quit\n"
		return docStyle.Render(view)
	default:
		return "Loading..."
	}
}

// Custom message types for the tea.Model
type menuMsg struct {
	items []MenuItem
}

type ordersMsg struct {
	orders []Order
}

type chatMsg struct {
	reply ChatReply
}

type dispatchMsg struct {
	result DispatchResult
}

type errorMsg struct {
	err string
}

// orderItem represents an order in the list
type orderItem struct {
	id     string
	title  string
	desc   string
	status string
}

func (i orderItem) Title() string       { return i.title }
func (i orderItem) Description() string { return i.desc }
func (i orderItem) FilterValue() string { return i.title }

// fetchMenu retrieves the menu from the API
func fetchMenu(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		items, err := client.GetMenu("all")
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching menu: %v", err)}
		}
		return menuMsg{items: items}
	}
}

// fetchOrders retrieves orders from the API
func fetchOrders(client *ApiClient) tea.Cmd {
	return func() tea.Msg {
		orders, err := client.GetOrders()
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error fetching orders: %v", err)}
		}
		return ordersMsg{orders: orders}
	}
}

// sendChat sends one conversation turn to the API
func sendChat(client *ApiClient, sessionID, message string) tea.Cmd {
	return func() tea.Msg {
		reply, err := client.Chat(sessionID, message)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error talking to Alfredo: %v", err)}
		}
		return chatMsg{reply: *reply}
	}
}

// dispatchOrder sends an order to the kitchen
func dispatchOrder(client *ApiClient, id string) tea.Cmd {
	return func() tea.Msg {
		result, err := client.DispatchOrder(id)
		if err != nil {
			return errorMsg{err: fmt.Sprintf("Error dispatching order: %v", err)}
		}
		return dispatchMsg{result: *result}
	}
}

// convertMenuToRows converts API menu items to table rows
func convertMenuToRows(items []MenuItem) []table.Row {
	rows := make([]table.Row, len(items))
	for i, entry := range items {
		price := "$" + entry.Price
		if !entry.Available {
			price = "sold out"
		}
		rows[i] = table.Row{entry.Code, entry.Name, entry.Category, price}
	}
	return rows
}

// convertOrdersToItems converts API orders to list items
func convertOrdersToItems(orders []Order) []list.Item {
	items := make([]list.Item, len(orders))
	for i, order := range orders {
		items[i] = orderItem{
			id:     order.ID,
			title:  fmt.Sprintf("%s (%s)", order.ID, order.CustomerName),
			desc:   fmt.Sprintf("%s - %d items - $%s - %s", order.ServiceLocation, len(order.ItemCodes), order.GrandTotal, order.Status),
			status: order.Status,
		}
	}
	return items
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v", err)
		os.Exit(1)
	}
}
