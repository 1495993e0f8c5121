// Package purge executes bounded bulk message deletions: a straight "last N
// messages" purge and an author-filtered variant with a fixed scan-depth
// ceiling. Every request is attempted exactly once; failures are classified,
// never retried.
package purge

import (
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const (
	// MaxAmount is the platform bulk-delete ceiling per call.
	MaxAmount = 100
	// scanDepth bounds how far back a filtered purge will look. Fixed, not
	// per-request: it exists to bound worst-case work in an unbounded
	// channel history.
	scanDepth = 500
	pageSize  = 100
)

var (
	ErrInvalidAmount               = errors.New("amount must be between 1 and 100")
	ErrMissingBulkDeletePermission = errors.New("missing permission to manage messages in this channel")
	ErrMessagesTooOld              = errors.New("cannot bulk delete messages older than 14 days")
	ErrNoMatchingMessages          = errors.New("no matching messages found")
)

// PlatformError carries an unclassified platform failure verbatim.
type PlatformError struct {
	Status  int
	Code    int
	Message string
}

func (e *PlatformError) Error() string {
	return fmt.Sprintf("platform error: HTTP %d, code %d: %s", e.Status, e.Code, e.Message)
}

// Channel is the capability the executor needs from the platform client.
type Channel interface {
	// Messages returns up to limit messages, most recent first, older than
	// beforeID when it is non-empty.
	Messages(channelID string, limit int, beforeID string) ([]*discordgo.Message, error)
	// BulkDelete removes the given messages in one platform call.
	BulkDelete(channelID string, messageIDs []string) error
}

// Request describes one bulk deletion. AuthorID, when set, restricts the
// purge to messages by that author.
type Request struct {
	ChannelID string
	Amount    int
	AuthorID  string
}

// Execute performs the deletion and returns the number of messages deleted.
// Validation happens before any platform call.
func Execute(ch Channel, req Request) (int, error) {
	if req.Amount < 1 || req.Amount > MaxAmount {
		return 0, ErrInvalidAmount
	}

	var ids []string
	if req.AuthorID == "" {
		msgs, err := ch.Messages(req.ChannelID, req.Amount, "")
		if err != nil {
			return 0, classify(err)
		}
		for _, m := range msgs {
			ids = append(ids, m.ID)
		}
	} else {
		var err error
		ids, err = collectByAuthor(ch, req)
		if err != nil {
			return 0, err
		}
		if len(ids) == 0 {
			return 0, ErrNoMatchingMessages
		}
	}

	if len(ids) == 0 {
		return 0, nil
	}
	if err := ch.BulkDelete(req.ChannelID, ids); err != nil {
		return 0, classify(err)
	}
	return len(ids), nil
}

// collectByAuthor scans channel history from most recent backward, up to
// scanDepth messages, collecting at most req.Amount messages by the author.
func collectByAuthor(ch Channel, req Request) ([]string, error) {
	var (
		ids     []string
		before  string
		scanned int
	)
	for scanned < scanDepth && len(ids) < req.Amount {
		limit := pageSize
		if remaining := scanDepth - scanned; remaining < limit {
			limit = remaining
		}

		msgs, err := ch.Messages(req.ChannelID, limit, before)
		if err != nil {
			return nil, classify(err)
		}
		if len(msgs) == 0 {
			break
		}

		for _, m := range msgs {
			if len(ids) == req.Amount {
				break
			}
			if m.Author != nil && m.Author.ID == req.AuthorID {
				ids = append(ids, m.ID)
			}
		}

		scanned += len(msgs)
		before = msgs[len(msgs)-1].ID
		if len(msgs) < limit {
			break
		}
	}
	return ids, nil
}

// classify maps platform failures onto the executor's error taxonomy.
func classify(err error) error {
	var rest *discordgo.RESTError
	if !errors.As(err, &rest) {
		return err
	}

	code := 0
	message := ""
	if rest.Message != nil {
		code = rest.Message.Code
		message = rest.Message.Message
	}
	status := 0
	if rest.Response != nil {
		status = rest.Response.StatusCode
	}

	switch {
	case code == discordgo.ErrCodeMessageProvidedTooOldForBulkDelete:
		return ErrMessagesTooOld
	case code == discordgo.ErrCodeMissingPermissions || status == 403:
		return ErrMissingBulkDeletePermission
	default:
		return &PlatformError{Status: status, Code: code, Message: message}
	}
}
