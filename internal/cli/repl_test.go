package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/dmitrijs2005/rapidblood/internal/common"
	"github.com/dmitrijs2005/rapidblood/internal/models"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	r     models.Role
	calls []string
	fail  map[string]error
}

func (f *fakeExec) role() models.Role { return f.r }

func (f *fakeExec) rec(name string, args []string) error {
	f.calls = append(f.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return f.fail[name]
}

func (f *fakeExec) Register(_ context.Context, a []string) error { return f.rec("register", a) }
func (f *fakeExec) Login(_ context.Context, a []string) error {
	f.r = models.RoleDonor
	return f.rec("login", a)
}
func (f *fakeExec) Logout(_ context.Context, a []string) error {
	f.r = ""
	return f.rec("logout", a)
}
func (f *fakeExec) Profile(_ context.Context, a []string) error      { return f.rec("profile", a) }
func (f *fakeExec) Availability(_ context.Context, a []string) error { return f.rec("available", a) }
func (f *fakeExec) Requests(_ context.Context, a []string) error     { return f.rec("requests", a) }
func (f *fakeExec) Respond(_ context.Context, a []string) error      { return f.rec("respond", a) }
func (f *fakeExec) Search(_ context.Context, a []string) error       { return f.rec("search", a) }
func (f *fakeExec) Request(_ context.Context, a []string) error      { return f.rec("request", a) }
func (f *fakeExec) Peers(_ context.Context, a []string) error        { return f.rec("peers", a) }
func (f *fakeExec) Reach(_ context.Context, a []string) error        { return f.rec("reach", a) }
func (f *fakeExec) Chat(_ context.Context, a []string) error         { return f.rec("chat", a) }
func (f *fakeExec) Send(_ context.Context, a []string) error         { return f.rec("send", a) }
func (f *fakeExec) Threads(_ context.Context, a []string) error      { return f.rec("threads", a) }
func (f *fakeExec) ClearChat(_ context.Context, a []string) error    { return f.rec("clear", a) }
func (f *fakeExec) Stats(_ context.Context, a []string) error        { return f.rec("stats", a) }
func (f *fakeExec) Seed(_ context.Context, a []string) error         { return f.rec("seed", a) }
func (f *fakeExec) Reset(_ context.Context, a []string) error        { return f.rec("reset", a) }

// capturePrintln swaps printlnFn and returns the printed lines.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	reader := readerFromLines(
		"",
		"login donor ayesha@example.com",
		"AVAILABLE off",
		"requests",
		"accept 0192",
		"decline",
		"send rafiq@example.com see you at 5",
		"threads",
		"logout",
		"exit",
		"profile",
	)

	runREPL(context.Background(), exec, func() string { return "" }, reader)

	assert.Equal(t, []string{
		"login donor ayesha@example.com",
		"available off",
		"requests",
		"respond 0192 accept",
		"respond  decline",
		"send rafiq@example.com see you at 5",
		"threads",
		"logout",
	}, exec.calls)
}

func TestRunREPL_ErrorsDoNotStopTheLoop(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{fail: map[string]error{
		"search": fmt.Errorf("%w: location query is required", common.ErrValidation),
		"login":  common.ErrInvalidCredentials,
	}}
	reader := readerFromLines("search", "login", "frobnicate", "stats")

	runREPL(context.Background(), exec, func() string { return "(x)" }, reader)

	assert.Equal(t, []string{"search", "login", "stats"}, exec.calls)
	assert.Contains(t, *lines, "Error: validation error: location query is required")
	assert.Contains(t, *lines, "Error: Invalid email or password.")
	assert.Contains(t, *lines, "Unknown command: frobnicate")
	assert.Contains(t, *lines, "rapidblood (x)> ")
}

func TestRunREPL_HelpFollowsRole(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, readerFromLines("help", "login", "help", "quit"))

	assert.Contains(t, *lines, helpText(""))
	assert.Contains(t, *lines, helpText(models.RoleDonor))
	assert.Contains(t, *lines, "Bye!")
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "Email already registered.", describe(fmt.Errorf("wrap: %w", common.ErrAlreadyRegistered)))
	assert.Contains(t, describe(common.ErrUnauthorized), "Please log in")
	assert.Equal(t, "boom", describe(errors.New("boom")))
}
