package commands_test

import (
	"errors"
	"testing"

	"github.com/sirupsen/logrus"

	"sigil/internal/commands"
	"sigil/internal/domain"
	"sigil/internal/wallet"
)

func newTestExecutor(t *testing.T) *commands.Executor {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	e := commands.NewExecutor(wallet.NewMemoryBackend(), log)
	t.Cleanup(e.Shutdown)
	return e
}

// noopCommand returns a command whose callback records its completion. A
// malformed verkey keeps CryptoVerify away from wallet and primitives while
// still exercising the full dispatch path.
func noopCommand(done func()) commands.Command {
	return commands.Crypto{Cmd: commands.CryptoVerify{
		TheirVerkey: "not-a-verkey!",
		Msg:         []byte("msg"),
		Signature:   []byte("sig"),
		Done:        func(bool, error) { done() },
	}}
}

func TestExecutor_FIFO(t *testing.T) {
	e := newTestExecutor(t)

	var order []int
	for i := 0; i < 10; i++ {
		i := i
		if err := e.Send(noopCommand(func() { order = append(order, i) })); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	e.Shutdown()

	if len(order) != 10 {
		t.Fatalf("completed %d commands, want 10", len(order))
	}
	for i, got := range order {
		if got != i {
			t.Fatalf("completion order %v is not enqueue order", order)
		}
	}
}

func TestExecutor_ShutdownDrainsQueuedCommands(t *testing.T) {
	e := newTestExecutor(t)

	var completed int
	for i := 0; i < 100; i++ {
		if err := e.Send(noopCommand(func() { completed++ })); err != nil {
			t.Fatalf("send %d: %v", i, err)
		}
	}
	e.Shutdown()

	if completed != 100 {
		t.Fatalf("%d commands completed, want all 100 enqueued before shutdown", completed)
	}
}

func TestExecutor_SendAfterShutdown(t *testing.T) {
	e := newTestExecutor(t)
	e.Shutdown()

	err := e.Send(noopCommand(func() { t.Error("command ran after shutdown") }))
	if !errors.Is(err, domain.ErrExecutorClosed) {
		t.Fatalf("want ErrExecutorClosed, got %v", err)
	}
}

func TestExecutor_ShutdownTwice(t *testing.T) {
	e := newTestExecutor(t)
	e.Shutdown()
	e.Shutdown() // must not hang or panic
}

func TestExecutor_DoneClosesAfterExit(t *testing.T) {
	e := newTestExecutor(t)

	select {
	case <-e.Done():
		t.Fatal("Done closed before shutdown")
	default:
	}

	e.Shutdown()

	select {
	case <-e.Done():
	default:
		t.Fatal("Done not closed after shutdown")
	}
}
