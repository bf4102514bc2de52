package session

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/US-AEON/Us-Backend/logger"
	"github.com/US-AEON/Us-Backend/metrics"
	"github.com/US-AEON/Us-Backend/types"
)

// maxTitleRunes is the hard cap on generated titles. The prompt asks for it
// too, but providers don't always comply.
const maxTitleRunes = 15

// generateTitle asks the text provider for a short summary title over the
// whole conversation. It never fails: provider errors fall back to a
// deterministic date-based title.
func (m *Manager) generateTitle(ctx context.Context, pairs []types.ConversationPair) string {
	title, err := m.titles.Generate(ctx, buildTitlePrompt(pairs))
	if err != nil {
		logger.Warn("title generation failed, using fallback", "error", err)
		metrics.RecordTitleFallback()
		return m.fallbackTitle()
	}

	title = strings.TrimSpace(strings.Trim(strings.TrimSpace(title), `"`))
	if title == "" {
		metrics.RecordTitleFallback()
		return m.fallbackTitle()
	}

	return truncateTitle(title)
}

// buildTitlePrompt concatenates all pairs into a text block and wraps it in
// the summarization instruction.
func buildTitlePrompt(pairs []types.ConversationPair) string {
	var sb strings.Builder
	for _, pair := range pairs {
		fmt.Fprintf(&sb, "[%s] %s", pair.OriginalLanguage.Code(), pair.OriginalText)
		if pair.HasTranslation() {
			fmt.Fprintf(&sb, " → [%s] %s", pair.TranslatedLanguage.Code(), pair.TranslatedText)
		}
		sb.WriteString("\n")
	}

	return fmt.Sprintf(
		"Based on the following conversation, generate a simple and clear title. "+
			"Keep the title within %d characters:\n\n%s\nReturn only the title.",
		maxTitleRunes, sb.String(),
	)
}

// truncateTitle hard-truncates overlong titles with an ellipsis.
func truncateTitle(title string) string {
	if utf8.RuneCountInString(title) <= maxTitleRunes {
		return title
	}
	runes := []rune(title)
	return string(runes[:maxTitleRunes]) + "..."
}

// fallbackTitle is the deterministic title used when generation fails.
func (m *Manager) fallbackTitle() string {
	return "Conversation " + m.now().Format("2006-01-02")
}
