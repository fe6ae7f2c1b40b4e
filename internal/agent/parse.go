package agent

import (
	"regexp"
	"strings"

	"maitred/internal/menu"
)

// phonePattern tries the ten-digit form first so a full number is never
// truncated to its seven-digit tail.
var phonePattern = regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}|\d{3}[-.\s]?\d{4}`)

var nameTriggers = []string{"name is", "i'm", "i am", "my name"}

// updateDraft folds whatever order details the message reveals into the
// draft: menu items by name, the customer's name, a table or room, a phone
// number. Later mentions overwrite earlier ones; items are deduplicated.
func updateDraft(draft *Draft, catalog *menu.Catalog, message string) {
	lower := strings.ToLower(message)

	for _, item := range catalog.Items() {
		if !strings.Contains(lower, strings.ToLower(item.Name)) {
			continue
		}
		if !containsCode(draft.ItemCodes, item.Code) {
			draft.ItemCodes = append(draft.ItemCodes, item.Code)
		}
	}

	if name := extractName(message); name != "" {
		draft.Name = name
	}
	if location := extractLocation(message); location != "" {
		draft.Location = location
	}
	if phone := phonePattern.FindString(message); phone != "" {
		draft.Phone = phone
	}
}

// extractName pulls a customer name out of phrases like "my name is Maria
// Lopez" or "I'm Alex", taking up to two words after the trigger.
func extractName(message string) string {
	lower := strings.ToLower(message)

	triggered := false
	for _, trigger := range nameTriggers {
		if strings.Contains(lower, trigger) {
			triggered = true
			break
		}
	}
	if !triggered {
		return ""
	}

	words := strings.Fields(message)
	for i, word := range words {
		switch strings.ToLower(word) {
		case "is", "i'm", "im", "am":
			if i+1 >= len(words) {
				continue
			}
			end := i + 3
			if end > len(words) {
				end = len(words)
			}
			name := strings.Trim(strings.Join(words[i+1:end], " "), ",.")
			if len(name) > 2 {
				return name
			}
		}
	}
	return ""
}

// extractLocation captures "table N" or "room N" style service locations.
func extractLocation(message string) string {
	lower := strings.ToLower(message)
	if !strings.Contains(lower, "table") && !strings.Contains(lower, "room") {
		return ""
	}

	words := strings.Fields(message)
	for i, word := range words {
		switch strings.ToLower(strings.Trim(word, ",.")) {
		case "table", "room":
			if i+1 < len(words) {
				return strings.Trim(words[i]+" "+words[i+1], ",.")
			}
		}
	}
	return ""
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
