package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/rapidblood/internal/models"
)

// Peers lists users the current user can contact, optionally filtered.
//
//	peers [query]
func (a *App) Peers(ctx context.Context, args []string) error {
	peers, err := a.svc.Users.SearchPeers(ctx, a.sess, strings.Join(args, " "))
	if err != nil {
		return err
	}
	renderPeers(a.out, peers)
	return nil
}

// Reach prints a peer's phone number.
//
//	reach <email>
func (a *App) Reach(ctx context.Context, args []string) error {
	if _, err := a.sess.Require(models.RoleDonor, models.RoleRecipient); err != nil {
		return err
	}
	peerID, err := a.argOr(args, 0, "Email")
	if err != nil {
		return err
	}
	u, err := a.svc.Users.Contact(ctx, a.sess, peerID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Call %s at %s\n", u.Name, u.Phone)
	return nil
}

// Chat shows the conversation with a peer.
//
//	chat <email>
func (a *App) Chat(ctx context.Context, args []string) error {
	me, err := a.sess.Require(models.RoleDonor, models.RoleRecipient)
	if err != nil {
		return err
	}
	peerID, err := a.argOr(args, 0, "Email")
	if err != nil {
		return err
	}
	msgs, err := a.svc.Chat.Conversation(ctx, a.sess, peerID)
	if err != nil {
		return err
	}
	renderConversation(a.out, me.Email, msgs)
	return nil
}

// Send appends a message to the thread with a peer.
//
//	send <email> <text>
func (a *App) Send(ctx context.Context, args []string) error {
	if _, err := a.sess.Require(models.RoleDonor, models.RoleRecipient); err != nil {
		return err
	}
	peerID, err := a.argOr(args, 0, "Email")
	if err != nil {
		return err
	}
	text, err := a.restOr(args, 1, "Message")
	if err != nil {
		return err
	}
	if _, err := a.svc.Chat.Send(ctx, a.sess, peerID, text); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Message sent.")
	return nil
}

// Threads lists the user's conversations, newest first.
//
//	threads [query]
func (a *App) Threads(ctx context.Context, args []string) error {
	me, err := a.sess.Require(models.RoleDonor, models.RoleRecipient)
	if err != nil {
		return err
	}
	threads, err := a.svc.Chat.SearchThreads(ctx, me.Email, strings.Join(args, " "))
	if err != nil {
		return err
	}
	renderThreads(a.out, me.Email, threads)
	return nil
}

// ClearChat deletes the conversation with a peer.
//
//	clear <email>
func (a *App) ClearChat(ctx context.Context, args []string) error {
	if _, err := a.sess.Require(models.RoleDonor, models.RoleRecipient); err != nil {
		return err
	}
	peerID, err := a.argOr(args, 0, "Email")
	if err != nil {
		return err
	}
	if err := a.svc.Chat.ClearThread(ctx, a.sess, peerID); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Chat with %s cleared.\n", strings.TrimSpace(peerID))
	return nil
}
