package mailstore

import (
	"errors"
	"fmt"
	"io"
	"os"

	mboxlib "github.com/emersion/go-mbox"
)

// MboxStore serves messages from a local mbox archive, for offline runs and
// for replaying exports. Ids are 1-based positions in the file.
type MboxStore struct {
	messages [][]byte
}

// NewMboxStore loads the archive at path into memory.
func NewMboxStore(path string) (*MboxStore, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mbox: %w", err)
	}
	defer file.Close()

	store := &MboxStore{}
	reader := mboxlib.NewReader(file)
	for {
		msgReader, err := reader.NextMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("message %d: %w", len(store.messages), err)
		}

		raw, err := io.ReadAll(msgReader)
		if err != nil {
			return nil, fmt.Errorf("message %d read: %w", len(store.messages), err)
		}
		store.messages = append(store.messages, raw)
	}

	return store, nil
}

func (s *MboxStore) ListRecentMessageIDs(limit int) ([]uint32, error) {
	start := 0
	if limit > 0 && len(s.messages) > limit {
		start = len(s.messages) - limit
	}

	ids := make([]uint32, 0, len(s.messages)-start)
	for i := start; i < len(s.messages); i++ {
		ids = append(ids, uint32(i+1))
	}

	return ids, nil
}

func (s *MboxStore) FetchRawMessage(id uint32) ([]byte, error) {
	if id == 0 || int(id) > len(s.messages) {
		return nil, fmt.Errorf("no message with id %d", id)
	}
	return s.messages[id-1], nil
}

func (s *MboxStore) Close() error {
	return nil
}
