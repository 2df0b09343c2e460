package views

import (
	"fmt"
	"strings"
)

// Notice lists the required fields still missing from an application
type Notice struct {
	Title string   `json:"title"`
	Items []string `json:"items"`
	Text  string   `json:"text"`
}

// IncompleteFieldsNotice enumerates missing field names in their given order.
// It returns nil when nothing is missing.
func IncompleteFieldsNotice(missing []string) *Notice {
	if len(missing) == 0 {
		return nil
	}

	n := &Notice{
		Title: "The following required fields are incomplete:",
		Items: make([]string, len(missing)),
	}

	var b strings.Builder
	b.WriteString(n.Title)
	for i, field := range missing {
		n.Items[i] = fmt.Sprintf("%d. %s", i+1, field)
		b.WriteString("\n")
		b.WriteString(n.Items[i])
	}
	n.Text = b.String()

	return n
}
