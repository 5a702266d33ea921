package commands_test

import (
	"bytes"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sirupsen/logrus"

	"sigil/internal/commands"
	"sigil/internal/crypto"
	"sigil/internal/domain"
	"sigil/internal/wallet"
)

// ---------- synchronous dispatch helpers ----------

func createWallet(t *testing.T, e *commands.Executor, name, pass string) {
	t.Helper()
	ch := make(chan error, 1)
	send(t, e, commands.Wallet{Cmd: commands.CreateWallet{
		Name: name, Passphrase: pass,
		Done: func(err error) { ch <- err },
	}})
	if err := <-ch; err != nil {
		t.Fatalf("create wallet %q: %v", name, err)
	}
}

func openWallet(t *testing.T, e *commands.Executor, name, pass string) domain.WalletHandle {
	t.Helper()
	type result struct {
		handle domain.WalletHandle
		err    error
	}
	ch := make(chan result, 1)
	send(t, e, commands.Wallet{Cmd: commands.OpenWallet{
		Name: name, Passphrase: pass,
		Done: func(handle domain.WalletHandle, err error) { ch <- result{handle, err} },
	}})
	r := <-ch
	if r.err != nil {
		t.Fatalf("open wallet %q: %v", name, r.err)
	}
	return r.handle
}

func createKey(t *testing.T, e *commands.Executor, handle domain.WalletHandle, info domain.KeyInfo) domain.Verkey {
	t.Helper()
	vk, err := tryCreateKey(e, handle, info)
	if err != nil {
		t.Fatalf("create key: %v", err)
	}
	return vk
}

func tryCreateKey(e *commands.Executor, handle domain.WalletHandle, info domain.KeyInfo) (domain.Verkey, error) {
	type result struct {
		verkey domain.Verkey
		err    error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.CreateKey{
		Wallet: handle, Info: info,
		Done: func(verkey domain.Verkey, err error) { ch <- result{verkey, err} },
	}})
	r := <-ch
	return r.verkey, r.err
}

func sign(e *commands.Executor, handle domain.WalletHandle, vk domain.Verkey, msg []byte) ([]byte, error) {
	type result struct {
		sig []byte
		err error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.CryptoSign{
		Wallet: handle, MyVerkey: vk, Msg: msg,
		Done: func(sig []byte, err error) { ch <- result{sig, err} },
	}})
	r := <-ch
	return r.sig, r.err
}

func verify(e *commands.Executor, vk domain.Verkey, msg, sig []byte) (bool, error) {
	type result struct {
		valid bool
		err   error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.CryptoVerify{
		TheirVerkey: vk, Msg: msg, Signature: sig,
		Done: func(valid bool, err error) { ch <- result{valid, err} },
	}})
	r := <-ch
	return r.valid, r.err
}

func setMetadata(e *commands.Executor, handle domain.WalletHandle, vk domain.Verkey, metadata string) error {
	ch := make(chan error, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.SetKeyMetadata{
		Wallet: handle, Verkey: vk, Metadata: metadata,
		Done: func(err error) { ch <- err },
	}})
	return <-ch
}

func getMetadata(e *commands.Executor, handle domain.WalletHandle, vk domain.Verkey) (string, error) {
	type result struct {
		value string
		err   error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.GetKeyMetadata{
		Wallet: handle, Verkey: vk,
		Done: func(value string, err error) { ch <- result{value, err} },
	}})
	r := <-ch
	return r.value, r.err
}

func authEncrypt(e *commands.Executor, handle domain.WalletHandle, my, their domain.Verkey, msg []byte) ([]byte, error) {
	type result struct {
		ct  []byte
		err error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.AuthenticatedEncrypt{
		Wallet: handle, MyVerkey: my, TheirVerkey: their, Msg: msg,
		Done: func(ct []byte, err error) { ch <- result{ct, err} },
	}})
	r := <-ch
	return r.ct, r.err
}

func authDecrypt(e *commands.Executor, handle domain.WalletHandle, my domain.Verkey, ct []byte) (domain.Verkey, []byte, error) {
	type result struct {
		sender domain.Verkey
		pt     []byte
		err    error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.AuthenticatedDecrypt{
		Wallet: handle, MyVerkey: my, Ciphertext: ct,
		Done: func(sender domain.Verkey, pt []byte, err error) { ch <- result{sender, pt, err} },
	}})
	r := <-ch
	return r.sender, r.pt, r.err
}

func anonEncrypt(e *commands.Executor, their domain.Verkey, msg []byte) ([]byte, error) {
	type result struct {
		ct  []byte
		err error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.AnonymousEncrypt{
		TheirVerkey: their, Msg: msg,
		Done: func(ct []byte, err error) { ch <- result{ct, err} },
	}})
	r := <-ch
	return r.ct, r.err
}

func anonDecrypt(e *commands.Executor, handle domain.WalletHandle, my domain.Verkey, ct []byte) ([]byte, error) {
	type result struct {
		pt  []byte
		err error
	}
	ch := make(chan result, 1)
	_ = e.Send(commands.Crypto{Cmd: commands.AnonymousDecrypt{
		Wallet: handle, MyVerkey: my, Ciphertext: ct,
		Done: func(pt []byte, err error) { ch <- result{pt, err} },
	}})
	r := <-ch
	return r.pt, r.err
}

func send(t *testing.T, e *commands.Executor, cmd commands.Command) {
	t.Helper()
	if err := e.Send(cmd); err != nil {
		t.Fatalf("send: %v", err)
	}
}

// foreignVerkey mints a well-formed verkey with no record in any wallet.
func foreignVerkey(t *testing.T) domain.Verkey {
	t.Helper()
	key, err := crypto.NewService().CreateKey(domain.KeyInfo{})
	if err != nil {
		t.Fatalf("create foreign key: %v", err)
	}
	return key.Verkey
}

// ---------- tests ----------

// The end-to-end happy path: create a key, sign, verify, reject tampering.
func TestCryptoExecutor_SignVerifyScenario(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	vk := createKey(t, e, handle, domain.KeyInfo{})

	sig, err := sign(e, handle, vk, []byte("hello"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	valid, err := verify(e, vk, []byte("hello"), sig)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !valid {
		t.Fatal("signature did not verify")
	}
	valid, err = verify(e, vk, []byte("tampered"), sig)
	if err != nil {
		t.Fatalf("verify tampered: %v", err)
	}
	if valid {
		t.Fatal("tampered message verified")
	}
}

func TestCryptoExecutor_CreateKeyTwice(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	seed := "00000000000000000000000000000000"
	createKey(t, e, handle, domain.KeyInfo{Seed: seed})

	// The same seed maps to the same verkey, so the record name collides.
	_, err := tryCreateKey(e, handle, domain.KeyInfo{Seed: seed})
	if !errors.Is(err, domain.ErrWalletItemAlreadyExists) {
		t.Fatalf("want ErrWalletItemAlreadyExists, got %v", err)
	}
}

func TestCryptoExecutor_SignUnknownKey(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	// Valid format, but no Key record in this wallet.
	vk := foreignVerkey(t)
	_, err := sign(e, handle, vk, []byte("msg"))
	if !errors.Is(err, domain.ErrWalletItemNotFound) {
		t.Fatalf("want ErrWalletItemNotFound, got %v", err)
	}
}

func TestCryptoExecutor_MetadataRoundTrip(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")
	vk := createKey(t, e, handle, domain.KeyInfo{})

	if _, err := getMetadata(e, handle, vk); !errors.Is(err, domain.ErrWalletItemNotFound) {
		t.Fatalf("want ErrWalletItemNotFound before set, got %v", err)
	}

	if err := setMetadata(e, handle, vk, "first"); err != nil {
		t.Fatalf("set metadata: %v", err)
	}
	got, err := getMetadata(e, handle, vk)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if got != "first" {
		t.Fatalf("got %q, want %q", got, "first")
	}

	// Upsert semantics: the second set overwrites.
	if err := setMetadata(e, handle, vk, "second"); err != nil {
		t.Fatalf("set metadata again: %v", err)
	}
	got, err = getMetadata(e, handle, vk)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if got != "second" {
		t.Fatalf("got %q, want %q", got, "second")
	}
}

func TestCryptoExecutor_MetadataWithoutKeyRecord(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	// Metadata only validates the verkey's format, not its presence as a Key.
	vk := foreignVerkey(t)

	if err := setMetadata(e, handle, vk, "note"); err != nil {
		t.Fatalf("set metadata for foreign verkey: %v", err)
	}
	got, err := getMetadata(e, handle, vk)
	if err != nil {
		t.Fatalf("get metadata: %v", err)
	}
	if got != "note" {
		t.Fatalf("got %q, want %q", got, "note")
	}
}

func TestCryptoExecutor_AuthenticatedRoundTrip(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	alice := createKey(t, e, handle, domain.KeyInfo{})
	bob := createKey(t, e, handle, domain.KeyInfo{})
	msg := []byte("meet at the usual place")

	ct, err := authEncrypt(e, handle, alice, bob, msg)
	if err != nil {
		t.Fatalf("authenticated encrypt: %v", err)
	}
	sender, pt, err := authDecrypt(e, handle, bob, ct)
	if err != nil {
		t.Fatalf("authenticated decrypt: %v", err)
	}
	if sender != alice {
		t.Fatalf("recovered sender %s, want %s", sender, alice)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("plaintext mismatch: %q", pt)
	}
}

func TestCryptoExecutor_AnonymousRoundTrip(t *testing.T) {
	e := newTestExecutor(t)
	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	bob := createKey(t, e, handle, domain.KeyInfo{})
	msg := []byte("anonymous tip")

	// Encryption needs no wallet; decryption does.
	ct, err := anonEncrypt(e, bob, msg)
	if err != nil {
		t.Fatalf("anonymous encrypt: %v", err)
	}
	pt, err := anonDecrypt(e, handle, bob, ct)
	if err != nil {
		t.Fatalf("anonymous decrypt: %v", err)
	}
	if !bytes.Equal(pt, msg) {
		t.Fatalf("plaintext mismatch: %q", pt)
	}
}

// spyBackend fails the test if it is touched while armed. It proves that a
// malformed verkey is rejected before any storage access.
type spyBackend struct {
	*wallet.MemoryBackend
	t     *testing.T
	armed atomic.Bool
}

func (s *spyBackend) Put(key string, value []byte) error {
	s.check()
	return s.MemoryBackend.Put(key, value)
}

func (s *spyBackend) Get(key string) ([]byte, bool, error) {
	s.check()
	return s.MemoryBackend.Get(key)
}

func (s *spyBackend) Delete(key string) error {
	s.check()
	return s.MemoryBackend.Delete(key)
}

func (s *spyBackend) check() {
	if s.armed.Load() {
		s.t.Error("wallet backend touched after malformed input")
	}
}

func TestCryptoExecutor_ValidationBeforeStorage(t *testing.T) {
	spy := &spyBackend{MemoryBackend: wallet.NewMemoryBackend(), t: t}
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	e := commands.NewExecutor(spy, log)
	t.Cleanup(e.Shutdown)

	createWallet(t, e, "w", "pass")
	handle := openWallet(t, e, "w", "pass")

	spy.armed.Store(true)

	const malformed = domain.Verkey("not-a-verkey!")
	if _, err := sign(e, handle, malformed, []byte("msg")); !errors.Is(err, domain.ErrInvalidKeyFormat) {
		t.Fatalf("sign: want ErrInvalidKeyFormat, got %v", err)
	}
	if err := setMetadata(e, handle, malformed, "m"); !errors.Is(err, domain.ErrInvalidKeyFormat) {
		t.Fatalf("set metadata: want ErrInvalidKeyFormat, got %v", err)
	}
	if _, err := getMetadata(e, handle, malformed); !errors.Is(err, domain.ErrInvalidKeyFormat) {
		t.Fatalf("get metadata: want ErrInvalidKeyFormat, got %v", err)
	}
	if _, err := authEncrypt(e, handle, malformed, malformed, []byte("msg")); !errors.Is(err, domain.ErrInvalidKeyFormat) {
		t.Fatalf("authenticated encrypt: want ErrInvalidKeyFormat, got %v", err)
	}
	if _, _, err := authDecrypt(e, handle, malformed, []byte("ct")); !errors.Is(err, domain.ErrInvalidKeyFormat) {
		t.Fatalf("authenticated decrypt: want ErrInvalidKeyFormat, got %v", err)
	}
	if _, err := anonDecrypt(e, handle, malformed, []byte("ct")); !errors.Is(err, domain.ErrInvalidKeyFormat) {
		t.Fatalf("anonymous decrypt: want ErrInvalidKeyFormat, got %v", err)
	}
}
