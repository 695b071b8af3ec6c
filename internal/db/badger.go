// ABOUTME: Badger-backed persistence slot.
// ABOUTME: Default local KV store; badger's own logging is routed to slog.

package db

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v3"
)

type BadgerSlot struct {
	kv *badger.DB
}

// OpenBadger opens (or creates) a badger database in dir.
func OpenBadger(dir string, logger *slog.Logger) (*BadgerSlot, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(dir).WithLogger(badgerLogger{logger: loggerOrDefault(logger)})
	kv, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerSlot{kv: kv}, nil
}

func (s *BadgerSlot) Get(key string) ([]byte, error) {
	var val []byte
	err := s.kv.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		val, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrKeyNotFound
	}
	return val, err
}

func (s *BadgerSlot) Set(key string, value []byte) error {
	return s.kv.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

func (s *BadgerSlot) Close() error {
	return s.kv.Close()
}

// badgerLogger adapts slog to badger.Logger. Badger is chatty at info level,
// so everything below warnings goes to debug.
type badgerLogger struct {
	logger *slog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(badgerMsg(format, args), slog.String("component", "badger"))
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(badgerMsg(format, args), slog.String("component", "badger"))
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug(badgerMsg(format, args), slog.String("component", "badger"))
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(badgerMsg(format, args), slog.String("component", "badger"))
}

func badgerMsg(format string, args []interface{}) string {
	return strings.TrimSpace(fmt.Sprintf(format, args...))
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
