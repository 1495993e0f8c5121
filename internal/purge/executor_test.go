package purge

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/bwmarrin/discordgo"
)

// fakeChannel serves a fixed history, most recent first, and records calls.
type fakeChannel struct {
	history []*discordgo.Message

	messagesErr   error
	bulkDeleteErr error

	messagesCalls int
	pageLimits    []int
	deleted       []string
}

func (f *fakeChannel) Messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error) {
	f.messagesCalls++
	f.pageLimits = append(f.pageLimits, limit)
	if f.messagesErr != nil {
		return nil, f.messagesErr
	}

	start := 0
	if beforeID != "" {
		for i, m := range f.history {
			if m.ID == beforeID {
				start = i + 1
				break
			}
		}
	}
	end := start + limit
	if end > len(f.history) {
		end = len(f.history)
	}
	if start >= len(f.history) {
		return nil, nil
	}
	return f.history[start:end], nil
}

func (f *fakeChannel) BulkDelete(channelID string, messageIDs []string) error {
	if f.bulkDeleteErr != nil {
		return f.bulkDeleteErr
	}
	f.deleted = append(f.deleted, messageIDs...)
	return nil
}

func makeHistory(n int, authorOf func(i int) string) []*discordgo.Message {
	msgs := make([]*discordgo.Message, 0, n)
	for i := 0; i < n; i++ {
		msgs = append(msgs, &discordgo.Message{
			ID:     fmt.Sprintf("msg-%04d", n-i), // descending IDs, most recent first
			Author: &discordgo.User{ID: authorOf(i)},
		})
	}
	return msgs
}

func restError(status, code int) error {
	return &discordgo.RESTError{
		Response: &http.Response{StatusCode: status},
		Message:  &discordgo.APIErrorMessage{Code: code},
	}
}

func TestExecuteRejectsAmountBeforePlatformCalls(t *testing.T) {
	for _, amount := range []int{0, -1, 101} {
		ch := &fakeChannel{}
		_, err := Execute(ch, Request{ChannelID: "c", Amount: amount})
		if !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("amount %d: expected ErrInvalidAmount, got %v", amount, err)
		}
		if ch.messagesCalls != 0 || len(ch.deleted) != 0 {
			t.Fatalf("amount %d: expected no platform calls, got %d fetches", amount, ch.messagesCalls)
		}
	}
}

func TestExecuteUnfilteredDeletesRequestedAmount(t *testing.T) {
	ch := &fakeChannel{history: makeHistory(50, func(int) string { return "a" })}
	deleted, err := Execute(ch, Request{ChannelID: "c", Amount: 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 20 || len(ch.deleted) != 20 {
		t.Fatalf("expected 20 deletions, got %d (%d ids)", deleted, len(ch.deleted))
	}
	if ch.messagesCalls != 1 {
		t.Fatalf("expected a single fetch, got %d", ch.messagesCalls)
	}
}

func TestExecuteUnfilteredShortChannel(t *testing.T) {
	// Fewer messages than requested: delete what exists, no error.
	ch := &fakeChannel{history: makeHistory(7, func(int) string { return "a" })}
	deleted, err := Execute(ch, Request{ChannelID: "c", Amount: 50})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 7 {
		t.Fatalf("expected 7 deletions, got %d", deleted)
	}
}

func TestExecuteUnfilteredEmptyChannel(t *testing.T) {
	ch := &fakeChannel{}
	deleted, err := Execute(ch, Request{ChannelID: "c", Amount: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 0 || len(ch.deleted) != 0 {
		t.Fatalf("expected no deletions on empty channel, got %d", deleted)
	}
}

func TestExecuteFilteredCollectsAcrossPages(t *testing.T) {
	// Target authored every third message in a 300-message history.
	ch := &fakeChannel{history: makeHistory(300, func(i int) string {
		if i%3 == 0 {
			return "target"
		}
		return "other"
	})}
	deleted, err := Execute(ch, Request{ChannelID: "c", Amount: 100, AuthorID: "target"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 100 {
		t.Fatalf("expected 100 deletions, got %d", deleted)
	}
	if ch.messagesCalls != 3 {
		t.Fatalf("expected 3 pages, got %d", ch.messagesCalls)
	}
}

func TestExecuteFilteredStopsAtScanDepth(t *testing.T) {
	// Target messages only exist beyond the scan ceiling: none are found.
	ch := &fakeChannel{history: makeHistory(700, func(i int) string {
		if i >= 600 {
			return "target"
		}
		return "other"
	})}
	_, err := Execute(ch, Request{ChannelID: "c", Amount: 10, AuthorID: "target"})
	if !errors.Is(err, ErrNoMatchingMessages) {
		t.Fatalf("expected ErrNoMatchingMessages, got %v", err)
	}

	total := 0
	for _, l := range ch.pageLimits {
		total += l
	}
	if total != scanDepth {
		t.Fatalf("expected fetches capped at %d messages, got %d", scanDepth, total)
	}
	if len(ch.deleted) != 0 {
		t.Fatalf("expected no deletions, got %d", len(ch.deleted))
	}
}

func TestExecuteFilteredPartialFindSucceeds(t *testing.T) {
	// Only 4 of the requested 10 exist within the window: delete the 4.
	ch := &fakeChannel{history: makeHistory(200, func(i int) string {
		if i < 4 {
			return "target"
		}
		return "other"
	})}
	deleted, err := Execute(ch, Request{ChannelID: "c", Amount: 10, AuthorID: "target"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deleted != 4 {
		t.Fatalf("expected 4 deletions, got %d", deleted)
	}
}

func TestExecuteFilteredStopsOnShortPage(t *testing.T) {
	// History shorter than a page: scanning must stop rather than loop.
	ch := &fakeChannel{history: makeHistory(30, func(int) string { return "other" })}
	_, err := Execute(ch, Request{ChannelID: "c", Amount: 5, AuthorID: "target"})
	if !errors.Is(err, ErrNoMatchingMessages) {
		t.Fatalf("expected ErrNoMatchingMessages, got %v", err)
	}
	if ch.messagesCalls != 1 {
		t.Fatalf("expected a single fetch on short history, got %d", ch.messagesCalls)
	}
}

func TestExecuteClassifiesTooOld(t *testing.T) {
	ch := &fakeChannel{
		history:       makeHistory(10, func(int) string { return "a" }),
		bulkDeleteErr: restError(400, discordgo.ErrCodeMessageProvidedTooOldForBulkDelete),
	}
	_, err := Execute(ch, Request{ChannelID: "c", Amount: 10})
	if !errors.Is(err, ErrMessagesTooOld) {
		t.Fatalf("expected ErrMessagesTooOld, got %v", err)
	}
}

func TestExecuteClassifiesMissingPermission(t *testing.T) {
	for _, e := range []error{
		restError(403, 0),
		restError(403, discordgo.ErrCodeMissingPermissions),
		restError(400, discordgo.ErrCodeMissingPermissions),
	} {
		ch := &fakeChannel{messagesErr: e}
		_, err := Execute(ch, Request{ChannelID: "c", Amount: 10})
		if !errors.Is(err, ErrMissingBulkDeletePermission) {
			t.Fatalf("expected ErrMissingBulkDeletePermission for %v, got %v", e, err)
		}
	}
}

func TestExecuteWrapsUnknownPlatformFailure(t *testing.T) {
	ch := &fakeChannel{messagesErr: restError(500, 0)}
	_, err := Execute(ch, Request{ChannelID: "c", Amount: 10})
	var pe *PlatformError
	if !errors.As(err, &pe) {
		t.Fatalf("expected PlatformError, got %v", err)
	}
	if pe.Status != 500 {
		t.Fatalf("expected status 500, got %d", pe.Status)
	}
}

func TestExecutePassesThroughNonRESTError(t *testing.T) {
	sentinel := errors.New("connection reset")
	ch := &fakeChannel{messagesErr: sentinel}
	_, err := Execute(ch, Request{ChannelID: "c", Amount: 10})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected raw error passthrough, got %v", err)
	}
}
