package bench

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/Davincible/cryptobench/pkg/encoding"
	"github.com/Davincible/cryptobench/pkg/secure"
)

var (
	ErrSessionNotFound  = errors.New("session not found")
	ErrAmbiguousID      = errors.New("session id prefix is ambiguous")
	ErrChecksumMismatch = errors.New("checksum mismatch - data may be corrupted")
)

// Session is one saved benchmark invocation.
type Session struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Created         time.Time `json:"created"`
	Tags            []string  `json:"tags"`
	PlaintextDigest string    `json:"plaintext_digest"`
	PlaintextLen    int       `json:"plaintext_len"`
	Results         []Result  `json:"results"`
	Checksum        string    `json:"checksum"`
}

// Store keeps sessions as one JSON file each under a directory.
type Store struct {
	storePath string
	sessions  map[string]*Session
}

// OpenStore creates the directory if needed and loads every readable session.
// Files that fail to parse or verify are skipped.
func OpenStore(storePath string) (*Store, error) {
	store := &Store{
		storePath: storePath,
		sessions:  make(map[string]*Session),
	}

	if err := os.MkdirAll(storePath, 0700); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	if err := store.load(); err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	return store, nil
}

// NewSession wraps results with an ID and the plaintext fingerprint.
func NewSession(name string, tags []string, plaintext []byte, results []Result) (*Session, error) {
	id, err := generateID()
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = "bench"
	}

	return &Session{
		ID:              id,
		Name:            name,
		Created:         time.Now().UTC(),
		Tags:            tags,
		PlaintextDigest: encoding.Digest(plaintext),
		PlaintextLen:    len(plaintext),
		Results:         results,
	}, nil
}

// Add stores s, replacing any session with the same ID.
func (st *Store) Add(s *Session) error {
	if s.ID == "" {
		id, err := generateID()
		if err != nil {
			return err
		}
		s.ID = id
	}
	if s.Created.IsZero() {
		s.Created = time.Now().UTC()
	}

	if err := s.seal(); err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}

	if err := st.save(s); err != nil {
		return err
	}

	st.sessions[s.ID] = s
	return nil
}

// Get returns the session whose ID equals id or, failing that, is the only one
// starting with id.
func (st *Store) Get(id string) (*Session, error) {
	if s, ok := st.sessions[id]; ok {
		return s, nil
	}

	var match *Session
	for key, s := range st.sessions {
		if id != "" && strings.HasPrefix(key, id) {
			if match != nil {
				return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
			}
			match = s
		}
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return match, nil
}

// List returns sessions carrying every tag in tags, newest first.
func (st *Store) List(tags []string) []*Session {
	var result []*Session
	for _, s := range st.sessions {
		if s.hasAllTags(tags) {
			result = append(result, s)
		}
	}

	sortNewestFirst(result)
	return result
}

// Search matches query against names and tags, case-insensitively. Exact name
// matches sort first.
func (st *Store) Search(query string) []*Session {
	query = strings.ToLower(query)

	var results []*Session
	for _, s := range st.sessions {
		if s.matches(query) {
			results = append(results, s)
		}
	}

	sort.Slice(results, func(i, j int) bool {
		iExact := strings.ToLower(results[i].Name) == query
		jExact := strings.ToLower(results[j].Name) == query
		if iExact != jExact {
			return iExact
		}
		return results[i].Created.After(results[j].Created)
	})

	return results
}

// Delete removes a session from memory and disk.
func (st *Store) Delete(id string) error {
	s, err := st.Get(id)
	if err != nil {
		return err
	}

	delete(st.sessions, s.ID)

	if err := os.Remove(st.filename(s)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Len returns the number of loaded sessions.
func (st *Store) Len() int {
	return len(st.sessions)
}

func (st *Store) load() error {
	entries, err := os.ReadDir(st.storePath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		s, err := loadSession(filepath.Join(st.storePath, entry.Name()))
		if err != nil {
			continue
		}
		st.sessions[s.ID] = s
	}

	return nil
}

func loadSession(filename string) (*Session, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	if s.ID == "" {
		return nil, fmt.Errorf("session in %s has no id", filename)
	}

	if err := s.verify(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (st *Store) save(s *Session) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(st.filename(s), data, 0600); err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	return nil
}

func (st *Store) filename(s *Session) string {
	safeName := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '_'
		}
	}, s.Name)
	if len(safeName) > 50 {
		safeName = safeName[:50]
	}

	return filepath.Join(st.storePath, fmt.Sprintf("%s_%s.json", safeName, s.ShortID()))
}

// ShortID returns the first eight characters of the ID.
func (s *Session) ShortID() string {
	if len(s.ID) > 8 {
		return s.ID[:8]
	}
	return s.ID
}

// checksum is the digest of the session encoded without its checksum field.
func (s *Session) checksum() (string, error) {
	temp := *s
	temp.Checksum = ""

	data, err := json.Marshal(temp)
	if err != nil {
		return "", err
	}
	return encoding.Digest(data), nil
}

func (s *Session) seal() error {
	sum, err := s.checksum()
	if err != nil {
		return err
	}
	s.Checksum = sum
	return nil
}

func (s *Session) verify() error {
	if s.Checksum == "" {
		return ErrChecksumMismatch
	}

	sum, err := s.checksum()
	if err != nil {
		return err
	}
	if !secure.Equal([]byte(sum), []byte(s.Checksum)) {
		return ErrChecksumMismatch
	}
	return nil
}

func (s *Session) hasAllTags(tags []string) bool {
	have := make(map[string]bool, len(s.Tags))
	for _, tag := range s.Tags {
		have[strings.ToLower(tag)] = true
	}

	for _, tag := range tags {
		if !have[strings.ToLower(tag)] {
			return false
		}
	}
	return true
}

func (s *Session) matches(query string) bool {
	if strings.Contains(strings.ToLower(s.Name), query) {
		return true
	}
	for _, tag := range s.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func sortNewestFirst(sessions []*Session) {
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].Created.After(sessions[j].Created)
	})
}

func generateID() (string, error) {
	b, err := secure.Random(16)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", b), nil
}
