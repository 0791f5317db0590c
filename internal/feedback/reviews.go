package feedback

import (
	"context"
	"errors"
	"strings"

	pkgerrors "github.com/angelmondragon/backoffice/pkg/errors"
	"github.com/angelmondragon/backoffice/pkg/journal"
	"github.com/angelmondragon/backoffice/pkg/logger"
)

// DishReview is one line of the review journal.
type DishReview struct {
	Username string
	Dish     string
	Review   string
}

type lineJournal interface {
	Append(line string) error
	Lines() ([]string, error)
}

// Reviews appends dish reviews as "username,dish,review" lines.
type Reviews struct {
	lines lineJournal
	logg  *logger.Logger
}

func NewReviews(lines lineJournal, logg *logger.Logger) (*Reviews, error) {
	if lines == nil {
		return nil, errors.New("review journal required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &Reviews{lines: lines, logg: logg}, nil
}

// Review records a review. Username and dish must not contain commas since
// they delimit the line; the review text may.
func (r *Reviews) Review(ctx context.Context, username, dish, review string) (*DishReview, error) {
	if blank(username) || blank(dish) || blank(review) {
		return nil, pkgerrors.New(pkgerrors.CodeEmptyField, "username, dish and review are required")
	}
	entry := &DishReview{
		Username: strings.TrimSpace(username),
		Dish:     strings.TrimSpace(dish),
		Review:   strings.TrimSpace(review),
	}
	if strings.Contains(entry.Username, ",") || strings.Contains(entry.Dish, ",") {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedDetails, "username and dish cannot contain commas")
	}
	if strings.ContainsAny(entry.Username+entry.Dish+entry.Review, "\r\n") {
		return nil, pkgerrors.New(pkgerrors.CodeMalformedDetails, "username, dish and review must fit on one line")
	}

	line := entry.Username + "," + entry.Dish + "," + entry.Review
	if err := r.lines.Append(line); err != nil {
		r.logg.Error(r.logg.WithStore(ctx, "reviews"), "append review", err)
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "save review")
	}
	return entry, nil
}

// Reviews reads every review back. A journal that was never written is empty.
func (r *Reviews) Reviews(ctx context.Context) ([]DishReview, error) {
	lines, err := r.lines.Lines()
	if err != nil {
		if errors.Is(err, journal.ErrNotExist) {
			return []DishReview{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeStorageUnavailable, err, "read reviews")
	}
	out := make([]DishReview, 0, len(lines))
	for _, line := range lines {
		parts := strings.SplitN(line, ",", 3)
		if len(parts) != 3 {
			r.logg.Warn(r.logg.WithField(ctx, "line", line), "skipping malformed review")
			continue
		}
		out = append(out, DishReview{Username: parts[0], Dish: parts[1], Review: parts[2]})
	}
	return out, nil
}
