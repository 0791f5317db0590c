package credentials

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/security"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
)

const storeName = "credentials"

// Store keeps usernames with password digests. Plaintext passwords are
// never retained.
type Store struct {
	mu     sync.RWMutex
	users  map[string]string
	hasher security.Hasher
	snap   snapshot.Store[models.UserAccount]
	logg   *logger.Logger
}

func NewStore(hasher security.Hasher, snap snapshot.Store[models.UserAccount], logg *logger.Logger) (*Store, error) {
	if hasher == nil {
		return nil, errors.New("password hasher required")
	}
	if snap == nil {
		return nil, errors.New("credentials snapshot required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Store{users: map[string]string{}, hasher: hasher, snap: snap, logg: logg}, nil
}

func (s *Store) Load(ctx context.Context) error {
	accounts, err := snapshot.LoadOrEmpty(ctx, s.snap, storeName)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]string, len(accounts))
	for _, a := range accounts {
		s.users[a.Username] = a.PasswordHash
	}
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		s.logg.Warn(s.logg.WithStore(ctx, storeName), "credentials unavailable, starting empty")
		return err
	}
	return nil
}

func (s *Store) AddUser(ctx context.Context, username, password string) error {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return pkgerrors.New(pkgerrors.CodeEmptyField, "username and password are required")
	}
	digest, err := s.hasher.Hash(password)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; ok {
		return pkgerrors.Newf(pkgerrors.CodeDuplicateKey, "user %s already exists", username)
	}
	s.users[username] = digest
	return s.save(ctx)
}

// Seed adds the user unless it already exists. It reports whether a user
// was created.
func (s *Store) Seed(ctx context.Context, username, password string) (bool, error) {
	err := s.AddUser(ctx, username, password)
	if pkgerrors.Is(err, pkgerrors.CodeDuplicateKey) {
		return false, nil
	}
	if err != nil && !pkgerrors.Is(err, pkgerrors.CodeStorageUnavailable) {
		return false, err
	}
	return true, err
}

// Verify reports whether password matches the stored digest. It does not
// say whether the username or the password was wrong.
func (s *Store) Verify(username, password string) bool {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false
	}
	s.mu.RLock()
	digest, ok := s.users[username]
	s.mu.RUnlock()
	if !ok {
		// hash anyway so unknown users take as long as wrong passwords
		_, _ = s.hasher.Hash(password)
		return false
	}
	match, err := s.hasher.Verify(password, digest)
	return err == nil && match
}

func (s *Store) RemoveUser(ctx context.Context, username string) error {
	username = strings.TrimSpace(username)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "user %s not found", username)
	}
	delete(s.users, username)
	return s.save(ctx)
}

func (s *Store) Usernames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// save must be called with s.mu held.
func (s *Store) save(ctx context.Context) error {
	names := make([]string, 0, len(s.users))
	for name := range s.users {
		names = append(names, name)
	}
	sort.Strings(names)
	accounts := make([]models.UserAccount, 0, len(names))
	for _, name := range names {
		accounts = append(accounts, models.UserAccount{Username: name, PasswordHash: s.users[name]})
	}
	if err := snapshot.SaveErr(s.snap.Save(ctx, accounts), storeName); err != nil {
		s.logg.Error(s.logg.WithStore(ctx, storeName), "save credentials", err)
		return err
	}
	return nil
}
