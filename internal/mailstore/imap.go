package mailstore

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
)

// IMAPStore reads a live mailbox over IMAP with TLS.
type IMAPStore struct {
	client  *client.Client
	timeout time.Duration
}

// NewIMAPStore creates a new IMAPStore with a default timeout of 30 seconds for IMAP operations
func NewIMAPStore() *IMAPStore {
	return &IMAPStore{
		timeout: 30 * time.Second,
	}
}

// Connect establishes a secure connection to the IMAP server using TLS. It returns an error if the connection fails.
func (s *IMAPStore) Connect(server string) error {
	cl, err := client.DialTLS(server, nil)
	if err != nil {
		return fmt.Errorf("IMAP connection error: %w", err)
	}
	s.client = cl
	return nil
}

// Login authenticates the user with the IMAP server using the provided username and password. It returns an error if authentication fails or if there is no active connection.
func (s *IMAPStore) Login(user, password string) error {
	if s.client == nil {
		return fmt.Errorf("not connected")
	}
	return s.client.Login(user, password)
}

// LoginXOAUTH2 authenticates with an OAuth2 bearer token instead of a password, as required by Gmail and Outlook when basic auth is disabled.
func (s *IMAPStore) LoginXOAUTH2(user, accessToken string) error {
	if s.client == nil {
		return fmt.Errorf("not connected")
	}
	return s.client.Authenticate(newXOAUTH2Client(user, accessToken))
}

// SelectMailbox selects the specified mailbox (e.g., "INBOX") for subsequent operations. It returns an error if the mailbox cannot be selected or if there is no active connection.
func (s *IMAPStore) SelectMailbox(name string) error {
	if s.client == nil {
		return fmt.Errorf("not connected")
	}
	_, err := s.client.Select(name, false)
	return err
}

// ListRecentMessageIDs returns the sequence ids of the most recent messages in the selected mailbox, ascending, at most limit of them.
func (s *IMAPStore) ListRecentMessageIDs(limit int) ([]uint32, error) {
	if s.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	ids, err := s.client.Search(imap.NewSearchCriteria())
	if err != nil {
		return nil, fmt.Errorf("error searching mailbox: %w", err)
	}

	if limit > 0 && len(ids) > limit {
		ids = ids[len(ids)-limit:]
	}

	return ids, nil
}

// FetchRawMessage retrieves the full raw source of the message with the given sequence id. It returns an error if the fetch operation fails, if there is no active connection, or if no message comes back.
func (s *IMAPStore) FetchRawMessage(id uint32) ([]byte, error) {
	if s.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(id)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem()}

	prevTimeout := s.client.Timeout
	s.client.Timeout = s.timeout
	defer func() { s.client.Timeout = prevTimeout }()

	messages := make(chan *imap.Message, 1)
	done := make(chan error, 1)

	go func() {
		done <- s.client.Fetch(seqSet, items, messages)
	}()

	var msg *imap.Message
	for m := range messages {
		msg = m
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching message %d: %w", id, err)
	}

	if msg == nil {
		return nil, fmt.Errorf("no message retrieved for id %d", id)
	}

	body := msg.GetBody(section)
	if body == nil {
		return nil, fmt.Errorf("no body section for message %d", id)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("error reading message %d: %w", id, err)
	}

	return raw, nil
}

// Close logs out from the IMAP server and closes the connection. It returns an error if the logout operation fails. If there is no active connection, it simply returns nil.
func (s *IMAPStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Logout()
}
