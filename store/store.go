// Package store keeps matches and their moves in a SQL database.
package store

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/icco/gutil/logging"
	"github.com/icco/takrules"
	"github.com/icco/takrules/ptn"
	"github.com/ifo/sanic"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"moul.io/zapgorm2"
)

var (
	log = logging.Must(logging.NewLogger(takrules.Service))

	// ErrInvalidTag is returned for tag keys PTN cannot carry.
	ErrInvalidTag = errors.New("invalid tag")

	tagKeyRegex = regexp.MustCompile(`^[0-9A-Za-z_]+$`)
	policy      = bluemonday.StrictPolicy()
)

// Options are the per-match settings picked at creation.
type Options struct {
	Size    int
	Packed  bool
	RoadTie takrules.RoadTieRule
	Tags    map[string]string
}

// Store wraps a database handle.
type Store struct {
	db     *gorm.DB
	worker *sanic.Worker
}

// Open connects to dsn. Postgres URLs and key=value strings go to postgres,
// anything else is treated as a sqlite file name.
func Open(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("database dsn is empty")
	}

	l := zapgorm2.New(log.Desugar())
	l.SetAsDefault()
	config := &gorm.Config{
		Logger: l.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector(dsn), config)
	if err != nil {
		return nil, err
	}

	return New(db)
}

func dialector(dsn string) gorm.Dialector {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") || strings.HasPrefix(dsn, "host=") {
		return postgres.Open(dsn)
	}
	return sqlite.Open(dsn)
}

// New migrates db and wraps it.
func New(db *gorm.DB) (*Store, error) {
	if err := AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run auto-migration: %w", err)
	}

	return &Store{db: db, worker: sanic.NewWorker7()}, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) nextSlug() string {
	id := s.worker.NextID()
	return s.worker.IDString(id)
}

// CreateMatch stores a new match and returns its slug.
func (s *Store) CreateMatch(ctx context.Context, opts Options) (string, error) {
	if opts.Size < takrules.MinSize || opts.Size > takrules.MaxSize {
		return "", fmt.Errorf("%w: %d", takrules.ErrInvalidSize, opts.Size)
	}
	if opts.Packed && opts.Size != 5 {
		return "", fmt.Errorf("%w: packed boards are 5x5, got %d", takrules.ErrInvalidSize, opts.Size)
	}

	m := Match{
		Slug:    s.nextSlug(),
		Size:    opts.Size,
		Packed:  opts.Packed,
		RoadTie: opts.RoadTie.String(),
		Status:  StatusActive,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		if err := upsertTag(tx, m.ID, ptn.TagSize, strconv.Itoa(opts.Size)); err != nil {
			return err
		}
		for k, v := range opts.Tags {
			if err := upsertTag(tx, m.ID, k, v); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	log.Infow("created match", "slug", m.Slug, "size", m.Size, "packed", m.Packed)
	return m.Slug, nil
}

func (s *Store) match(ctx context.Context, slug string) (*Match, error) {
	var m Match
	err := s.db.WithContext(ctx).
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Moves", func(db *gorm.DB) *gorm.DB { return db.Order("ply") }).
		Where("slug = ?", policy.Sanitize(slug)).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateTag sets a tag on a match. Values are stripped of markup.
func (s *Store) UpdateTag(ctx context.Context, slug, key, value string) error {
	m, err := s.match(ctx, slug)
	if err != nil {
		return err
	}
	return upsertTag(s.db.WithContext(ctx), m.ID, key, value)
}

func upsertTag(db *gorm.DB, matchID int64, key, value string) error {
	if !tagKeyRegex.MatchString(key) {
		return fmt.Errorf("%w: key %q", ErrInvalidTag, key)
	}

	var tag Tag
	result := db.Where("match_id = ? AND key = ?", matchID, key).Limit(1).Find(&tag)
	if result.Error != nil {
		return result.Error
	}

	tag.Value = policy.Sanitize(value)
	if result.RowsAffected == 0 {
		tag.MatchID = matchID
		tag.Key = key
		return db.Create(&tag).Error
	}
	return db.Save(&tag).Error
}

// Tags returns a match's tags in creation order.
func (s *Store) Tags(ctx context.Context, slug string) ([]Tag, error) {
	m, err := s.match(ctx, slug)
	if err != nil {
		return nil, err
	}
	return m.Tags, nil
}

func newGame(m *Match) (*takrules.Game, error) {
	var g *takrules.Game
	var err error
	if m.Packed {
		g, err = takrules.NewPackedGame(m.Size)
	} else {
		g, err = takrules.NewGame(m.Size)
	}
	if err != nil {
		return nil, err
	}
	if rule, ok := takrules.ParseRoadTieRule(m.RoadTie); ok {
		g.RoadTie = rule
	}
	return g, nil
}

func replay(m *Match) (*takrules.Game, error) {
	g, err := newGame(m)
	if err != nil {
		return nil, err
	}
	for _, mv := range m.Moves {
		if _, err := g.Play(mv.Text, takrules.Player(mv.Player), takrules.NoPlayer); err != nil {
			return nil, fmt.Errorf("match %s ply %d (%s): %w", m.Slug, mv.Ply, mv.Text, err)
		}
	}
	return g, nil
}

// LoadGame rebuilds a match's game by replaying its stored moves.
func (s *Store) LoadGame(ctx context.Context, slug string) (*takrules.Game, *Match, error) {
	m, err := s.match(ctx, slug)
	if err != nil {
		return nil, nil, err
	}
	g, err := replay(m)
	if err != nil {
		return nil, m, err
	}
	return g, m, nil
}

// RecordMove validates mv for player against the match's game and stores it
// in canonical notation. It returns the winner reported after the move.
func (s *Store) RecordMove(ctx context.Context, slug string, player takrules.Player, mv string) (takrules.Player, error) {
	g, m, err := s.LoadGame(ctx, slug)
	if err != nil {
		return takrules.NoPlayer, err
	}

	winner, err := g.DoMove(mv, player)
	if err != nil {
		return takrules.NoPlayer, err
	}
	history := g.History()
	played := history[len(history)-1]

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := MoveRecord{
			MatchID: m.ID,
			Ply:     len(history) - 1,
			Player:  int(player),
			Text:    played.String(),
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		// The first result stands; later moves are recorded but do not
		// change it.
		if winner == takrules.NoPlayer || m.Status == StatusFinished {
			return nil
		}
		return updateStatus(tx, m.Slug, StatusFinished, winner)
	})
	if err != nil {
		return takrules.NoPlayer, err
	}

	log.Debugw("recorded move", "slug", m.Slug, "move", played.String(), "player", player.String(), "winner", winner.String())
	return winner, nil
}

// SetResult marks a match finished with the given winner.
func (s *Store) SetResult(ctx context.Context, slug string, winner takrules.Player) error {
	return updateStatus(s.db.WithContext(ctx), slug, StatusFinished, winner)
}

func updateStatus(db *gorm.DB, slug, status string, winner takrules.Player) error {
	result := db.Model(&Match{}).Where("slug = ?", slug).Updates(map[string]interface{}{
		"status": status,
		"winner": int(winner),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Record exports a match as a PTN record.
func (s *Store) Record(ctx context.Context, slug string) (*ptn.Record, error) {
	g, m, err := s.LoadGame(ctx, slug)
	if err != nil {
		return nil, err
	}

	tags := []*ptn.Tag{{Key: ptn.TagDate, Value: m.CreatedAt.Format(ptn.DateFormat)}}
	for _, t := range m.Tags {
		tags = append(tags, &ptn.Tag{Key: t.Key, Value: t.Value})
	}
	return ptn.FromGame(g, tags...), nil
}

// List returns matches, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Match, error) {
	var matches []Match
	q := s.db.WithContext(ctx).Order("id DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&matches).Error; err != nil {
		log.Errorw("listing matches", zap.Error(err))
		return nil, err
	}
	return matches, nil
}
