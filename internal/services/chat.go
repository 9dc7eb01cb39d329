package services

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/logging"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/records"
	"github.com/dmitrijs2005/rapidblood/internal/session"
)

// ThreadSeparator joins the two identities of a thread id.
const ThreadSeparator = "|"

// ThreadID is the same for (a, b) and (b, a).
func ThreadID(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + ThreadSeparator + b
}

// participants splits a thread id back into its identities.
func participants(threadID string) (string, string, bool) {
	return strings.Cut(threadID, ThreadSeparator)
}

// ChatService stores two-party conversations.
type ChatService interface {
	AppendMessage(ctx context.Context, threadID, sender, text string) (models.Message, error)
	Thread(ctx context.Context, threadID string) ([]models.Message, error)
	Send(ctx context.Context, sess *session.Session, peerID, text string) (models.Message, error)
	Conversation(ctx context.Context, sess *session.Session, peerID string) ([]models.Message, error)
	Threads(ctx context.Context, identity string) ([]models.ThreadSummary, error)
	SearchThreads(ctx context.Context, identity, query string) ([]models.ThreadSummary, error)
	ClearThread(ctx context.Context, sess *session.Session, peerID string) error
}

type chatService struct {
	recs *records.Records
	log  logging.Logger
}

// NewChatService constructs a ChatService over the chatMessages collection.
func NewChatService(recs *records.Records, log logging.Logger) ChatService {
	return &chatService{recs: recs, log: log}
}

// AppendMessage adds text to the end of the thread, creating it if needed.
// The timestamp never goes backwards within a thread even if the clock does.
func (s *chatService) AppendMessage(ctx context.Context, threadID, sender, text string) (models.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.Message{}, fmt.Errorf("%w: message is empty", common.ErrValidation)
	}
	if common.Blank(threadID) || common.Blank(sender) {
		return models.Message{}, fmt.Errorf("%w: thread and sender are required", common.ErrValidation)
	}

	var msg models.Message
	err := s.recs.UpdateThreads(ctx, func(threads records.Threads) error {
		msgs := threads[threadID]
		ts := now().UTC()
		if n := len(msgs); n > 0 && ts.Before(msgs[n-1].Timestamp) {
			ts = msgs[n-1].Timestamp
		}
		msg = models.Message{ID: newID(), Text: text, Sender: sender, Timestamp: ts}
		threads[threadID] = append(msgs, msg)
		return nil
	})
	if err != nil {
		return models.Message{}, err
	}

	s.log.Debug(ctx, "message appended", "thread", threadID, "sender", sender)
	return msg, nil
}

// Thread returns the messages of threadID in order; unknown ids give an
// empty slice.
func (s *chatService) Thread(ctx context.Context, threadID string) ([]models.Message, error) {
	threads, err := s.recs.Threads(ctx)
	if err != nil {
		return nil, err
	}
	msgs := threads[threadID]
	if msgs == nil {
		return []models.Message{}, nil
	}
	return msgs, nil
}

func (s *chatService) peerThread(sess *session.Session, peerID string) (models.User, string, error) {
	me, err := sess.Require()
	if err != nil {
		return models.User{}, "", err
	}
	peerID = strings.TrimSpace(peerID)
	if peerID == "" || peerID == me.Email {
		return models.User{}, "", fmt.Errorf("%w: choose someone else to chat with", common.ErrValidation)
	}
	if strings.Contains(peerID, ThreadSeparator) || strings.Contains(me.Email, ThreadSeparator) {
		return models.User{}, "", fmt.Errorf("%w: identity may not contain %q", common.ErrValidation, ThreadSeparator)
	}
	return me, ThreadID(me.Email, peerID), nil
}

// Send appends text from the current user to the thread with peerID.
func (s *chatService) Send(ctx context.Context, sess *session.Session, peerID, text string) (models.Message, error) {
	me, id, err := s.peerThread(sess, peerID)
	if err != nil {
		return models.Message{}, err
	}
	return s.AppendMessage(ctx, id, me.Email, text)
}

// Conversation reads the thread between the current user and peerID.
func (s *chatService) Conversation(ctx context.Context, sess *session.Session, peerID string) ([]models.Message, error) {
	_, id, err := s.peerThread(sess, peerID)
	if err != nil {
		return nil, err
	}
	return s.Thread(ctx, id)
}

// Threads summarises every non-empty thread identity takes part in, most
// recent activity first.
func (s *chatService) Threads(ctx context.Context, identity string) ([]models.ThreadSummary, error) {
	threads, err := s.recs.Threads(ctx)
	if err != nil {
		return nil, err
	}

	out := []models.ThreadSummary{}
	for id, msgs := range threads {
		if len(msgs) == 0 {
			continue
		}
		a, b, ok := participants(id)
		if !ok {
			continue
		}
		var peer string
		switch identity {
		case a:
			peer = b
		case b:
			peer = a
		default:
			continue
		}
		out = append(out, models.ThreadSummary{
			ThreadID: id,
			Peer:     peer,
			Last:     msgs[len(msgs)-1],
			Count:    len(msgs),
		})
	}

	slices.SortFunc(out, func(x, y models.ThreadSummary) int {
		if c := y.Last.Timestamp.Compare(x.Last.Timestamp); c != 0 {
			return c
		}
		return strings.Compare(x.ThreadID, y.ThreadID)
	})
	return out, nil
}

// SearchThreads keeps the summaries whose peer or last message contains
// query, ignoring case. A blank query returns every thread.
func (s *chatService) SearchThreads(ctx context.Context, identity, query string) ([]models.ThreadSummary, error) {
	all, err := s.Threads(ctx, identity)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return all, nil
	}

	out := []models.ThreadSummary{}
	for _, t := range all {
		if containsFold(t.Peer, query) || containsFold(t.Last.Text, query) {
			out = append(out, t)
		}
	}
	return out, nil
}

// ClearThread drops every message between the current user and peerID.
func (s *chatService) ClearThread(ctx context.Context, sess *session.Session, peerID string) error {
	me, id, err := s.peerThread(sess, peerID)
	if err != nil {
		return err
	}
	err = s.recs.UpdateThreads(ctx, func(threads records.Threads) error {
		delete(threads, id)
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info(ctx, "thread cleared", "thread", id, "by", me.Email)
	return nil
}
