package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Sync(ctx context.Context) error { f.calls = append(f.calls, "sync"); return nil }
func (f *fakeExec) Board(ctx context.Context) error {
	f.calls = append(f.calls, "board")
	return nil
}
func (f *fakeExec) ListReminders(ctx context.Context) error {
	f.calls = append(f.calls, "reminders")
	return nil
}
func (f *fakeExec) AddReminder(ctx context.Context) error {
	f.calls = append(f.calls, "remind")
	return nil
}
func (f *fakeExec) EditReminder(ctx context.Context) error {
	f.calls = append(f.calls, "edit")
	return nil
}
func (f *fakeExec) DeleteReminder(ctx context.Context) error {
	f.calls = append(f.calls, "unremind")
	return nil
}
func (f *fakeExec) ListFeedback(ctx context.Context) error {
	f.calls = append(f.calls, "feedback")
	return nil
}
func (f *fakeExec) SendFeedback(ctx context.Context) error {
	f.calls = append(f.calls, "report")
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"whoami",
		"sync",
		"board",
		"reminders",
		"remind",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "whoami", "sync", "board", "reminders", "remind", "logout"}
	if len(exec.calls) != len(wantOrder) {
		t.Fatalf("calls mismatch: got %v, want %v", exec.calls, wantOrder)
	}
	for i, c := range exec.calls {
		if c != wantOrder[i] {
			t.Fatalf("commands order mismatch: got %v, want %v", exec.calls, wantOrder)
		}
	}
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	exec := &fakeExec{}
	sc := bufio.NewScanner(strings.NewReader("whoami\n"))

	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "whoami" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
