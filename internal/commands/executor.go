package commands

import (
	"sync"

	"github.com/sirupsen/logrus"

	"sigil/internal/crypto"
	"sigil/internal/domain"
	"sigil/internal/wallet"
)

// Executor owns the worker goroutine that serializes all access to the
// stateful services. Construct it with NewExecutor, feed it with Send, stop
// it with Shutdown. One Executor per process is the intended shape, owned by
// whoever bootstraps it; there is no package-level instance.
type Executor struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Command
	closed bool

	done chan struct{}
	log  *logrus.Logger
}

// NewExecutor spawns the worker goroutine. The worker constructs the wallet
// and crypto services and both domain executors exactly once, takes ownership
// of backend (closing it on exit), then enters its receive loop.
func NewExecutor(backend wallet.Backend, log *logrus.Logger) *Executor {
	if log == nil {
		log = logrus.New()
	}
	e := &Executor{
		done: make(chan struct{}),
		log:  log,
	}
	e.cond = sync.NewCond(&e.mu)
	go e.run(backend)
	return e
}

// Send enqueues cmd and returns immediately; it never blocks on a full queue.
// It fails with domain.ErrExecutorClosed once Exit has been enqueued or the
// worker has stopped.
func (e *Executor) Send(cmd Command) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return domain.ErrExecutorClosed
	}
	if _, isExit := cmd.(Exit); isExit {
		e.closed = true
	}
	e.queue = append(e.queue, cmd)
	e.cond.Signal()
	return nil
}

// Shutdown enqueues the Exit sentinel and blocks until the worker has drained
// every previously enqueued command and terminated. Safe to call more than
// once.
func (e *Executor) Shutdown() {
	// A failed send means Exit is already in flight; just wait.
	_ = e.Send(Exit{})
	<-e.done
}

// Done is closed when the worker goroutine has terminated.
func (e *Executor) Done() <-chan struct{} { return e.done }

func (e *Executor) run(backend wallet.Backend) {
	defer close(e.done)
	defer func() {
		if err := backend.Close(); err != nil {
			e.log.WithError(err).Error("closing wallet backend")
		}
	}()

	e.log.Info("command executor worker started")

	walletService := wallet.NewService(backend, e.log)
	cryptoService := crypto.NewService()

	cryptoExecutor := NewCryptoExecutor(walletService, cryptoService, e.log)
	walletExecutor := NewWalletExecutor(walletService, e.log)

	for {
		switch cmd := e.next().(type) {
		case Crypto:
			e.log.Debug("crypto command received")
			cryptoExecutor.Execute(cmd.Cmd)
		case Wallet:
			e.log.Debug("wallet command received")
			walletExecutor.Execute(cmd.Cmd)
		case Exit:
			e.log.Info("exit command received")
			return
		default:
			// The variant set is closed; anything else is an internal
			// invariant violation.
			e.log.Panicf("unroutable command %T", cmd)
		}
	}
}

// next blocks until a command is available and dequeues it.
func (e *Executor) next() Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	for len(e.queue) == 0 {
		e.cond.Wait()
	}
	cmd := e.queue[0]
	e.queue = e.queue[1:]
	return cmd
}
