package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/US-AEON/Us-Backend/language"
	"github.com/US-AEON/Us-Backend/providers"
	"github.com/US-AEON/Us-Backend/statestore"
	"github.com/US-AEON/Us-Backend/types"
)

func testPair(text string) types.ConversationPair {
	return types.ConversationPair{
		ID:                 "pair-" + text,
		OriginalText:       text,
		OriginalLanguage:   language.Korean,
		TranslatedText:     "translated " + text,
		TranslatedLanguage: language.English,
		Timestamp:          time.Now(),
		Confidence:         0.9,
	}
}

func newTestManager(titleResponse string) (*Manager, *providers.MockProvider) {
	titles := providers.NewMockProvider("mock-titles", titleResponse)
	manager := NewManager(statestore.NewMemoryStore(), titles,
		WithClock(func() time.Time {
			return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
		}),
	)
	return manager, titles
}

func TestAddPair_GeneratesID(t *testing.T) {
	manager, _ := newTestManager("Title")
	ctx := context.Background()

	id, err := manager.AddPair(ctx, "", testPair("hello"))
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	// Second pair with the returned id lands in the same session.
	id2, err := manager.AddPair(ctx, id, testPair("again"))
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	history := manager.History(ctx, id)
	assert.Len(t, history, 2)
}

func TestAddPair_KeepsClientSuppliedID(t *testing.T) {
	manager, _ := newTestManager("Title")

	id, err := manager.AddPair(context.Background(), "client-id", testPair("hello"))
	require.NoError(t, err)
	assert.Equal(t, "client-id", id)
}

func TestAddPair_OrderPreserved(t *testing.T) {
	manager, _ := newTestManager("Title")
	ctx := context.Background()

	for i := 0; i < 6; i++ {
		_, err := manager.AddPair(ctx, "sess", testPair(fmt.Sprintf("%d", i)))
		require.NoError(t, err)
	}

	history := manager.History(ctx, "sess")
	require.Len(t, history, 6)
	for i, pair := range history {
		assert.Equal(t, fmt.Sprintf("%d", i), pair.OriginalText)
	}
}

func TestAddPair_ConcurrentAppends(t *testing.T) {
	manager, _ := newTestManager("Title")
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = manager.AddPair(ctx, "sess", testPair(fmt.Sprintf("%d", i)))
		}(i)
	}
	wg.Wait()

	assert.Len(t, manager.History(ctx, "sess"), n)
}

func TestSave_HappyPath(t *testing.T) {
	manager, titles := newTestManager("Lunch plans")
	ctx := context.Background()

	id, err := manager.AddPair(ctx, "", testPair("what should we eat"))
	require.NoError(t, err)

	result, err := manager.Save(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, result.SessionID)
	assert.Equal(t, "Lunch plans", result.Title)

	// The title prompt carries the conversation content.
	prompt := titles.LastPrompt()
	assert.Contains(t, prompt, "what should we eat")
	assert.Contains(t, prompt, "[ko-KR]")
	assert.Contains(t, prompt, "[en-US]")

	detail, err := manager.Detail(ctx, id)
	require.NoError(t, err)
	assert.False(t, detail.IsTemporary)
	assert.Equal(t, "Lunch plans", detail.Title)
	require.NotNil(t, detail.SavedAt)
}

func TestSave_EmptySession(t *testing.T) {
	manager, _ := newTestManager("Title")

	_, err := manager.Save(context.Background(), "does-not-exist")
	assert.ErrorIs(t, err, ErrEmptySession)
}

func TestSave_AlreadySaved(t *testing.T) {
	manager, _ := newTestManager("Title")
	ctx := context.Background()

	id, _ := manager.AddPair(ctx, "", testPair("hi"))
	_, err := manager.Save(ctx, id)
	require.NoError(t, err)

	_, err = manager.Save(ctx, id)
	assert.ErrorIs(t, err, ErrAlreadySaved)
}

func TestSave_TitleGenerationFailureFallsBack(t *testing.T) {
	manager, titles := newTestManager("unused")
	titles.FailWith(errors.New("provider down"))
	ctx := context.Background()

	id, _ := manager.AddPair(ctx, "", testPair("hi"))

	result, err := manager.Save(ctx, id)
	require.NoError(t, err, "title generation failure must not fail the save")
	assert.Equal(t, "Conversation 2025-03-14", result.Title)

	detail, err := manager.Detail(ctx, id)
	require.NoError(t, err)
	assert.False(t, detail.IsTemporary, "session must still transition to saved")
}

func TestSave_LongTitleTruncated(t *testing.T) {
	manager, _ := newTestManager("이것은 매우 매우 매우 긴 대화 제목입니다")
	ctx := context.Background()

	id, _ := manager.AddPair(ctx, "", testPair("hi"))
	result, err := manager.Save(ctx, id)
	require.NoError(t, err)

	assert.True(t, strings.HasSuffix(result.Title, "..."))
	assert.Equal(t, 15+3, len([]rune(result.Title)))
}

func TestSave_QuotedTitleCleaned(t *testing.T) {
	manager, _ := newTestManager("\"Trip plans\"\n")
	ctx := context.Background()

	id, _ := manager.AddPair(ctx, "", testPair("hi"))
	result, err := manager.Save(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Trip plans", result.Title)
}

func TestListSaved_OnlySavedSessions(t *testing.T) {
	manager, _ := newTestManager("Title")
	ctx := context.Background()

	savedID, _ := manager.AddPair(ctx, "", testPair("saved"))
	_, err := manager.Save(ctx, savedID)
	require.NoError(t, err)

	_, err = manager.AddPair(ctx, "", testPair("temporary"))
	require.NoError(t, err)

	summaries, err := manager.ListSaved(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, savedID, summaries[0].ID)
	assert.Equal(t, 1, summaries[0].PairCount)
}

func TestDetail_TemporarySession(t *testing.T) {
	manager, _ := newTestManager("Title")
	ctx := context.Background()

	id, _ := manager.AddPair(ctx, "", testPair("hi"))

	_, err := manager.Detail(ctx, id)
	assert.ErrorIs(t, err, ErrSessionNotSaved)
}

func TestDetail_NotFound(t *testing.T) {
	manager, _ := newTestManager("Title")

	_, err := manager.Detail(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestHistory_SwallowsFailures(t *testing.T) {
	manager, _ := newTestManager("Title")

	assert.Empty(t, manager.History(context.Background(), "missing"))
	assert.Empty(t, manager.History(context.Background(), ""))
}

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"short", "short"},
		{"exactly 15 char", "exactly 15 char"},
		{"this one is definitely too long", "this one is def..."},
		{"한국어 제목이 아주 아주 길어요", "한국어 제목이 아주 아주 길..."},
	}
	for _, tt := range tests {
		if got := truncateTitle(tt.in); got != tt.want {
			t.Errorf("truncateTitle(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildTitlePrompt_OmitsMissingTranslation(t *testing.T) {
	pair := testPair("solo")
	pair.TranslatedText = ""
	pair.TranslatedLanguage = language.Unknown

	prompt := buildTitlePrompt([]types.ConversationPair{pair})
	assert.Contains(t, prompt, "[ko-KR] solo")
	assert.NotContains(t, prompt, "→")
}
