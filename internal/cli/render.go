package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/rapidblood/internal/bloodtype"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/dmitrijs2005/rapidblood/internal/services"
)

const timeLayout = "2006-01-02 15:04"

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func joinTypes(types []bloodtype.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}

func renderProfile(w io.Writer, u models.User) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Name:\t%s\n", u.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", u.Email)
	fmt.Fprintf(tw, "Role:\t%s\n", u.Role)
	if u.Role != models.RoleAdmin {
		fmt.Fprintf(tw, "Phone:\t%s\n", u.Phone)
		fmt.Fprintf(tw, "Blood type:\t%s\n", u.BloodType)
		fmt.Fprintf(tw, "Location:\t%s\n", u.Location)
	}
	switch u.Role {
	case models.RoleDonor:
		fmt.Fprintf(tw, "Available:\t%s\n", yesNo(u.Available))
		fmt.Fprintf(tw, "Can give to:\t%s\n", joinTypes(bloodtype.RecipientsFor(u.BloodType)))
	case models.RoleRecipient:
		fmt.Fprintf(tw, "Can receive from:\t%s\n", joinTypes(bloodtype.DonorsFor(u.BloodType)))
	}
	if !u.RegisteredAt.IsZero() {
		fmt.Fprintf(tw, "Registered:\t%s\n", u.RegisteredAt.Format(timeLayout))
	}
	tw.Flush()
}

func renderDonors(w io.Writer, donors []models.User) {
	if len(donors) == 0 {
		fmt.Fprintln(w, "No compatible donors found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tEMAIL\tBLOOD\tLOCATION\tPHONE")
	for _, d := range donors {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", d.Name, d.Email, d.BloodType, d.Location, d.Phone)
	}
	tw.Flush()
}

func renderPeers(w io.Writer, peers []models.User) {
	if len(peers) == 0 {
		fmt.Fprintln(w, "No users found.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "NAME\tEMAIL\tROLE\tBLOOD\tLOCATION")
	for _, p := range peers {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", p.Name, p.Email, p.Role, p.BloodType, p.Location)
	}
	tw.Flush()
}

// renderRequests shows the counterpart column from the viewer's side.
func renderRequests(w io.Writer, reqs []models.BloodRequest, viewer models.Role) {
	if len(reqs) == 0 {
		fmt.Fprintln(w, "No blood requests.")
		return
	}
	tw := newTable(w)
	if viewer == models.RoleDonor {
		fmt.Fprintln(tw, "ID\tFROM\tBLOOD\tLOCATION\tDATE\tSTATUS\tMESSAGE")
	} else {
		fmt.Fprintln(tw, "ID\tTO\tBLOOD\tLOCATION\tDATE\tSTATUS\tMESSAGE")
	}
	for _, r := range reqs {
		who := r.ToName
		if viewer == models.RoleDonor {
			who = r.FromName
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, who, r.BloodType, r.Location, r.CreatedAt.Format(timeLayout), r.Status, r.Message)
	}
	tw.Flush()
}

func renderConversation(w io.Writer, self string, msgs []models.Message) {
	if len(msgs) == 0 {
		fmt.Fprintln(w, "No messages yet.")
		return
	}
	for _, m := range msgs {
		who := m.Sender
		if m.Sender == self {
			who = "you"
		}
		fmt.Fprintf(w, "[%s] %s: %s\n", m.Timestamp.Format(timeLayout), who, m.Text)
	}
}

func renderThreads(w io.Writer, self string, threads []models.ThreadSummary) {
	if len(threads) == 0 {
		fmt.Fprintln(w, "No conversations.")
		return
	}
	tw := newTable(w)
	fmt.Fprintln(tw, "PEER\tMESSAGES\tLAST\tWHEN")
	for _, th := range threads {
		last := th.Last.Text
		if th.Last.Sender == self {
			last = "you: " + last
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", th.Peer, th.Count, last, th.Last.Timestamp.Format(timeLayout))
	}
	tw.Flush()
}

func renderStats(w io.Writer, st services.Stats) {
	tw := newTable(w)
	fmt.Fprintf(tw, "Donors:\t%d\t(%d available)\n", st.Donors, st.AvailableDonors)
	fmt.Fprintf(tw, "Recipients:\t%d\n", st.Recipients)
	fmt.Fprintf(tw, "Requests:\t%d\t(%d pending, %d accepted, %d declined)\n",
		st.Requests, st.PendingRequests, st.AcceptedRequests, st.DeclinedRequests)
	fmt.Fprintf(tw, "Chats:\t%d\t(%d messages)\n", st.Threads, st.Messages)
	tw.Flush()

	fmt.Fprintln(w)
	tw = newTable(w)
	fmt.Fprintln(tw, "BLOOD\tDONORS\tRECIPIENTS")
	for _, t := range bloodtype.All() {
		fmt.Fprintf(tw, "%s\t%d\t%d\n", t, st.DonorBloodTypes[t], st.RecipientBloodTypes[t])
	}
	tw.Flush()
}
