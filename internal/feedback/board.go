// Package feedback stores customer feedback notes and dish reviews. Both
// are append-only.
package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/angelmondragon/backoffice/pkg/db/models"
	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/logger"
	"github.com/angelmondragon/backoffice/pkg/snapshot"
	"github.com/angelmondragon/backoffice/pkg/validate"
	"github.com/google/uuid"
)

const (
	storeName        = "feedback"
	DefaultMaxLength = 200
)

type Board struct {
	mu      sync.RWMutex
	entries []models.Feedback
	maxLen  int
	snap    snapshot.Store[models.Feedback]
	logg    *logger.Logger
	now     func() time.Time
}

// NewBoard creates a board accepting notes of up to maxLen characters. A
// non-positive maxLen falls back to DefaultMaxLength.
func NewBoard(snap snapshot.Store[models.Feedback], maxLen int, logg *logger.Logger) (*Board, error) {
	if snap == nil {
		return nil, errors.New("feedback snapshot required")
	}
	if maxLen <= 0 {
		maxLen = DefaultMaxLength
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Board{
		entries: []models.Feedback{},
		maxLen:  maxLen,
		snap:    snap,
		logg:    logg,
		now:     time.Now,
	}, nil
}

func (b *Board) Load(ctx context.Context) error {
	entries, err := snapshot.LoadOrEmpty(ctx, b.snap, storeName)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = entries
	if err != nil && !errors.Is(err, snapshot.ErrNotExist) {
		b.logg.Warn(b.logg.WithStore(ctx, storeName), "feedback unavailable, starting empty")
		return err
	}
	return nil
}

// Add stores a note with the current time. Length is counted in characters,
// not bytes.
func (b *Board) Add(ctx context.Context, text string) (*models.Feedback, error) {
	if err := validate.Var(pkgerrors.CodeEmptyField, "text", text, fmt.Sprintf("notblank,max=%d", b.maxLen)); err != nil {
		return nil, err
	}
	entry := models.Feedback{
		ID:        uuid.New(),
		Text:      text,
		CreatedAt: b.now().UTC(),
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, entry)
	if err := snapshot.SaveErr(b.snap.Save(ctx, b.entries), storeName); err != nil {
		b.logg.Error(b.logg.WithStore(ctx, storeName), "save feedback", err)
		return &entry, err
	}
	return &entry, nil
}

// List returns notes in the order they were left.
func (b *Board) List() []models.Feedback {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Feedback{}, b.entries...)
}

func (b *Board) MaxLength() int {
	return b.maxLen
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
