package wallet

import (
	"crypto/rand"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"sigil/internal/crypto"
	"sigil/internal/domain"
)

// accessCheck is the known plaintext sealed at create time and re-opened at
// open time to verify the passphrase.
var accessCheck = []byte("sigil.wallet.v1")

// walletMeta is the plaintext per-wallet bootstrap record.
type walletMeta struct {
	Salt  []byte `json:"salt"`
	Check []byte `json:"check"`
}

// storedRecord is the plaintext form of a record before sealing.
type storedRecord struct {
	Value []byte            `json:"value"`
	Tags  map[string]string `json:"tags,omitempty"`
}

type openWallet struct {
	name   string
	master []byte
}

// Service implements domain.WalletService over a Backend.
type Service struct {
	backend Backend
	log     *logrus.Logger
	next    domain.WalletHandle
	open    map[domain.WalletHandle]*openWallet
}

// NewService returns a wallet service over backend.
func NewService(backend Backend, log *logrus.Logger) *Service {
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		backend: backend,
		log:     log,
		next:    1,
		open:    make(map[domain.WalletHandle]*openWallet),
	}
}

// Create provisions a new named wallet protected by passphrase.
func (s *Service) Create(name, passphrase string) error {
	if _, ok, err := s.backend.Get(metaKey(name)); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%w: %q", domain.ErrWalletAlreadyExists, name)
	}

	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	master, err := deriveMasterKey(passphrase, salt)
	if err != nil {
		return err
	}
	defer crypto.Wipe(master)

	check, err := sealRecord(master, accessCheck)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(walletMeta{Salt: salt, Check: check})
	if err != nil {
		return err
	}
	if err := s.backend.Put(metaKey(name), raw); err != nil {
		return err
	}
	s.log.WithField("wallet", name).Info("wallet created")
	return nil
}

// Open derives the wallet's master key, verifies it against the access check
// and mints a fresh handle.
func (s *Service) Open(name, passphrase string) (domain.WalletHandle, error) {
	raw, ok, err := s.backend.Get(metaKey(name))
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%w: %q", domain.ErrWalletNotFound, name)
	}
	var meta walletMeta
	if err := json.Unmarshal(raw, &meta); err != nil {
		return 0, err
	}
	master, err := deriveMasterKey(passphrase, meta.Salt)
	if err != nil {
		return 0, err
	}
	if _, err := openRecord(master, meta.Check); err != nil {
		crypto.Wipe(master)
		return 0, fmt.Errorf("%w: %q", domain.ErrWalletAccessFailed, name)
	}

	handle := s.next
	s.next++
	s.open[handle] = &openWallet{name: name, master: master}
	s.log.WithField("wallet", name).Info("wallet opened")
	return handle, nil
}

// Close invalidates the handle and wipes the cached master key.
func (s *Service) Close(handle domain.WalletHandle) error {
	w, err := s.wallet(handle)
	if err != nil {
		return err
	}
	crypto.Wipe(w.master)
	delete(s.open, handle)
	s.log.WithField("wallet", w.name).Info("wallet closed")
	return nil
}

// AddRecord stores a new record, rejecting duplicates by (type, name).
func (s *Service) AddRecord(handle domain.WalletHandle, typ, name string, value []byte, tags map[string]string) error {
	w, err := s.wallet(handle)
	if err != nil {
		return err
	}
	key := recordKey(w.name, typ, name)
	if _, ok, err := s.backend.Get(key); err != nil {
		return err
	} else if ok {
		return fmt.Errorf("%w: %s %q", domain.ErrWalletItemAlreadyExists, typ, name)
	}
	return s.putRecord(w, key, value, tags)
}

// GetRecord fetches a record, failing with ErrWalletItemNotFound if absent.
func (s *Service) GetRecord(handle domain.WalletHandle, typ, name string) (domain.Record, error) {
	w, err := s.wallet(handle)
	if err != nil {
		return domain.Record{}, err
	}
	blob, ok, err := s.backend.Get(recordKey(w.name, typ, name))
	if err != nil {
		return domain.Record{}, err
	}
	if !ok {
		return domain.Record{}, fmt.Errorf("%w: %s %q", domain.ErrWalletItemNotFound, typ, name)
	}
	raw, err := openRecord(w.master, blob)
	if err != nil {
		return domain.Record{}, err
	}
	var rec storedRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Record{}, err
	}
	return domain.Record{Type: typ, Name: name, Value: rec.Value, Tags: rec.Tags}, nil
}

// UpsertRecord creates or replaces a record. It never fails on absence.
func (s *Service) UpsertRecord(handle domain.WalletHandle, typ, name string, value []byte) error {
	w, err := s.wallet(handle)
	if err != nil {
		return err
	}
	return s.putRecord(w, recordKey(w.name, typ, name), value, nil)
}

func (s *Service) putRecord(w *openWallet, key string, value []byte, tags map[string]string) error {
	raw, err := json.Marshal(storedRecord{Value: value, Tags: tags})
	if err != nil {
		return err
	}
	blob, err := sealRecord(w.master, raw)
	if err != nil {
		return err
	}
	return s.backend.Put(key, blob)
}

func (s *Service) wallet(handle domain.WalletHandle) (*openWallet, error) {
	w, ok := s.open[handle]
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidWalletHandle, handle)
	}
	return w, nil
}

func metaKey(wallet string) string { return "wallet/" + wallet + "/meta" }

func recordKey(wallet, typ, name string) string {
	return "wallet/" + wallet + "/record/" + typ + "/" + name
}

// Compile-time assertion that Service implements domain.WalletService.
var _ domain.WalletService = (*Service)(nil)
