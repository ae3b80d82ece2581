package report

import (
	"bufio"
	"io"
	"strings"

	"github.com/saulo-duarte/quizsolver/internal/discovery"
	"golang.org/x/net/html"
)

// Write prints every question with its choices, marking the known correct
// choice with an arrow.
func Write(w io.Writer, kb *discovery.KnowledgeBase) error {
	bw := bufio.NewWriter(w)

	bw.WriteString("Results:\n\n")
	for _, q := range kb.Questions {
		bw.WriteString(StripMarkup(q.Text) + ":\n")
		for _, c := range q.Choices {
			marker := "   "
			if q.CorrectID != nil && *q.CorrectID == c.ID {
				marker = "-> "
			}
			bw.WriteString("   " + marker + StripMarkup(c.Text) + "\n")
		}
		bw.WriteString("\n")
	}
	return bw.Flush()
}

// StripMarkup returns the text content of an HTML fragment with entities
// decoded.
func StripMarkup(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(sb.String())
		case html.TextToken:
			sb.Write(z.Text())
		}
	}
}
