package conversation

import (
	"fmt"
	"strings"

	"github.com/US-AEON/Us-Backend/language"
	"github.com/US-AEON/Us-Backend/types"
)

// contextWindow is how many recent pairs are included in the translation
// prompt. Older pairs are dropped.
const contextWindow = 5

// TranslationPlan describes what a turn's translation step must do.
type TranslationPlan struct {
	// Transcript is the source text to translate.
	Transcript string

	// Source is the language the transcript was spoken in.
	Source language.Language

	// Target is the language to translate into. Equal to Source when the
	// speaker already spoke the requested foreign language's counterpart,
	// in which case no translation call is made.
	Target language.Language
}

// NeedsTranslation reports whether the plan requires a provider call.
func (p TranslationPlan) NeedsTranslation() bool {
	return p.Source != p.Target
}

// PlanTranslation decides the translation direction for a detection.
// Speech in the default language is translated to the requested foreign
// language; speech in any other language is translated to the default.
func PlanTranslation(det Detection, foreign language.Language) TranslationPlan {
	target := language.Default
	if det.Language == language.Default {
		target = foreign
	}
	return TranslationPlan{
		Transcript: det.Transcript,
		Source:     det.Language,
		Target:     target,
	}
}

// BuildTranslationPrompt renders the translation instruction for a plan,
// prefixed with up to the last contextWindow pairs of the conversation so
// the provider can resolve pronouns and topic continuity.
func BuildTranslationPrompt(plan TranslationPlan, history []types.ConversationPair) string {
	var sb strings.Builder

	if len(history) > 0 {
		recent := history
		if len(recent) > contextWindow {
			recent = recent[len(recent)-contextWindow:]
		}
		sb.WriteString("The previous conversation so far:\n\n")
		for i, pair := range recent {
			fmt.Fprintf(&sb, "[%d] original(%s): %q\n", i+1, pair.OriginalLanguage.Code(), pair.OriginalText)
			if pair.HasTranslation() {
				fmt.Fprintf(&sb, "    translated(%s): %q\n", pair.TranslatedLanguage.Code(), pair.TranslatedText)
			}
			sb.WriteString("\n")
		}
	}

	fmt.Fprintf(&sb,
		"Considering the conversation context above, translate the following %s (%s) text to %s (%s).\n"+
			"Return only the translated text:\n\n%q",
		plan.Source.DisplayName(), plan.Source.Code(),
		plan.Target.DisplayName(), plan.Target.Code(),
		plan.Transcript,
	)
	return sb.String()
}
