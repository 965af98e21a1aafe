package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// replStub records each dispatched command with its args.
type replStub struct {
	loggedIn bool
	calls    []string
}

func (s *replStub) record(name string, args ...string) error {
	s.calls = append(s.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (s *replStub) isLoggedIn() bool { return s.loggedIn }

func (s *replStub) Login(context.Context) error    { return s.record("login") }
func (s *replStub) Register(context.Context) error { return s.record("register") }
func (s *replStub) Verify(_ context.Context, args []string) error {
	return s.record("verify", args...)
}
func (s *replStub) Resend(_ context.Context, args []string) error {
	return s.record("resend", args...)
}
func (s *replStub) Forgot(context.Context) error { return s.record("forgot") }
func (s *replStub) Reset(context.Context) error  { return s.record("reset") }
func (s *replStub) List(_ context.Context, args []string) error {
	return s.record("list", args...)
}
func (s *replStub) Board(context.Context) error { return s.record("board") }
func (s *replStub) MoveJob(_ context.Context, args []string) error {
	return s.record("move", args...)
}
func (s *replStub) Show(_ context.Context, args []string) error {
	return s.record("show", args...)
}
func (s *replStub) Add(context.Context) error { return s.record("add") }
func (s *replStub) Edit(_ context.Context, args []string) error {
	return s.record("edit", args...)
}
func (s *replStub) Delete(_ context.Context, args []string) error {
	return s.record("delete", args...)
}
func (s *replStub) AddNote(_ context.Context, args []string) error {
	return s.record("note", args...)
}
func (s *replStub) DeleteNote(_ context.Context, args []string) error {
	return s.record("delnote", args...)
}
func (s *replStub) Theme(context.Context) error  { return s.record("theme") }
func (s *replStub) Status(context.Context) error { return s.record("status") }
func (s *replStub) Logout(context.Context) error { return s.record("logout") }

func runScript(t *testing.T, stub *replStub, script string) string {
	t.Helper()
	var out bytes.Buffer
	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), stub, func() string { return "(jane)" }, scanner, &out)
	return out.String()
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	stub := &replStub{loggedIn: true}
	out := runScript(t, stub, strings.Join([]string{
		"list status=offer",
		"board",
		"move 42 interview 0",
		"show 42",
		"note 42",
		"theme",
		"status",
		"logout",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{
		"list status=offer",
		"board",
		"move 42 interview 0",
		"show 42",
		"note 42",
		"theme",
		"status",
		"logout",
	}, stub.calls)
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_ListAlias(t *testing.T) {
	stub := &replStub{loggedIn: true}
	runScript(t, stub, "l\nexit\n")
	assert.Equal(t, []string{"list"}, stub.calls)
}

func TestRunREPL_AuthCommands(t *testing.T) {
	stub := &replStub{}
	runScript(t, stub, strings.Join([]string{
		"login",
		"register",
		"verify login",
		"resend register",
		"forgot",
		"reset",
		"exit",
	}, "\n"))

	assert.Equal(t, []string{
		"login",
		"register",
		"verify login",
		"resend register",
		"forgot",
		"reset",
	}, stub.calls)
}

func TestRunREPL_UnknownCommand(t *testing.T) {
	stub := &replStub{}
	out := runScript(t, stub, "frobnicate\nexit\n")
	assert.Contains(t, out, "Unknown command: frobnicate")
	assert.Empty(t, stub.calls)
}

func TestRunREPL_BlankLinesIgnored(t *testing.T) {
	stub := &replStub{}
	runScript(t, stub, "\n   \nexit\n")
	assert.Empty(t, stub.calls)
}

func TestRunREPL_EOFExits(t *testing.T) {
	stub := &replStub{}
	out := runScript(t, stub, "")
	assert.Contains(t, out, "jt (jane)> ")
}

func TestRunREPL_HelpMatchesAuthState(t *testing.T) {
	out := runScript(t, &replStub{loggedIn: true}, "help\nexit\n")
	assert.Contains(t, out, "board")
	assert.Contains(t, out, "move <job-id> <status> [index]")

	out = runScript(t, &replStub{}, "help\nexit\n")
	assert.Contains(t, out, "login, register")
	assert.NotContains(t, out, "delnote")
}
