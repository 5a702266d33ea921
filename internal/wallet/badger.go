package wallet

import (
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/sirupsen/logrus"
)

// BadgerBackend is the on-disk Backend, one Badger instance for all wallets.
type BadgerBackend struct {
	db  *badger.DB
	log *logrus.Logger
}

// OpenBadger opens (or creates) a Badger store rooted at dir.
func OpenBadger(dir string, log *logrus.Logger) (*BadgerBackend, error) {
	if log == nil {
		log = logrus.New()
	}
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	log.WithField("dir", dir).Info("wallet storage opened")
	return &BadgerBackend{db: db, log: log}, nil
}

func (b *BadgerBackend) Put(key string, value []byte) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (b *BadgerBackend) Get(key string) ([]byte, bool, error) {
	var out []byte
	err := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (b *BadgerBackend) Delete(key string) error {
	return b.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

func (b *BadgerBackend) Close() error {
	b.log.Info("wallet storage closed")
	return b.db.Close()
}

// Compile-time assertion that BadgerBackend implements Backend.
var _ Backend = (*BadgerBackend)(nil)
