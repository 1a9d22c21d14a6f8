package store

import (
	"context"
	"errors"
	"testing"

	"github.com/icco/takrules"
	"github.com/icco/takrules/ptn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	// Use in-memory SQLite for testing with silent logger to avoid test output pollution
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Every pooled connection would get its own empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func playMoves(t *testing.T, s *Store, slug string, moves ...string) takrules.Player {
	t.Helper()
	var winner takrules.Player
	player := takrules.PlayerOne
	for _, mv := range moves {
		var err error
		winner, err = s.RecordMove(context.Background(), slug, player, mv)
		require.NoError(t, err, mv)
		player = player.Other()
	}
	return winner
}

func TestCreateMatch(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug1, err := s.CreateMatch(ctx, Options{Size: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, slug1)

	slug2, err := s.CreateMatch(ctx, Options{Size: 6})
	require.NoError(t, err)
	assert.NotEqual(t, slug1, slug2)

	g, m, err := s.LoadGame(ctx, slug2)
	require.NoError(t, err)
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, StatusActive, m.Status)
	require.Len(t, m.Tags, 1)
	assert.Equal(t, ptn.TagSize, m.Tags[0].Key)
	assert.Equal(t, "6", m.Tags[0].Value)
}

func TestCreateMatchErrors(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	tests := []struct {
		name string
		opts Options
		want error
	}{
		{"too small", Options{Size: 3}, takrules.ErrInvalidSize},
		{"too big", Options{Size: 9}, takrules.ErrInvalidSize},
		{"packed 6x6", Options{Size: 6, Packed: true}, takrules.ErrInvalidSize},
		{"bad tag key", Options{Size: 5, Tags: map[string]string{"bad key": "x"}}, ErrInvalidTag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateMatch(ctx, tt.opts)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}

	matches, err := s.List(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, matches, "failed creates should not leave rows behind")
}

func TestTagsAreSanitized(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 5, Tags: map[string]string{
		ptn.TagPlayer1: "<b>alice</b>",
	}})
	require.NoError(t, err)
	require.NoError(t, s.UpdateTag(ctx, slug, ptn.TagPlayer2, `<script>alert("x")</script>bob`))
	require.NoError(t, s.UpdateTag(ctx, slug, ptn.TagPlayer1, "carol"))

	tags, err := s.Tags(ctx, slug)
	require.NoError(t, err)
	values := map[string]string{}
	for _, tag := range tags {
		values[tag.Key] = tag.Value
	}
	assert.Equal(t, map[string]string{
		ptn.TagSize:    "5",
		ptn.TagPlayer1: "carol",
		ptn.TagPlayer2: "bob",
	}, values)
}

func TestRecordMoveRoadGame(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 4})
	require.NoError(t, err)

	winner := playMoves(t, s, slug, "b1", "a1", "a2", "b2", "a3", "b3", "a4")
	assert.Equal(t, takrules.PlayerOne, winner)

	g, m, err := s.LoadGame(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, m.Status)
	assert.Equal(t, int(takrules.PlayerOne), m.Winner)
	assert.Equal(t, takrules.PlayerOne, g.Winner())
	assert.Equal(t, 7, g.TurnNumber())
	require.Len(t, m.Moves, 7)
	assert.Equal(t, 6, m.Moves[6].Ply)
}

func TestRecordMoveKeepsFirstWinner(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 4, RoadTie: takrules.RoadTieMover})
	require.NoError(t, err)
	assert.Equal(t, takrules.PlayerOne, playMoves(t, s, slug, "b1", "a1", "a2", "b2", "a3", "b3", "a4"))

	// b4 completes player two's b file while player one's a file still
	// stands, and the mover takes the double road.
	winner, err := s.RecordMove(ctx, slug, takrules.PlayerTwo, "b4")
	require.NoError(t, err)
	assert.Equal(t, takrules.PlayerTwo, winner)

	g, m, err := s.LoadGame(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, 8, g.TurnNumber())
	assert.Equal(t, StatusFinished, m.Status)
	assert.Equal(t, int(takrules.PlayerOne), m.Winner)
}

func TestRecordMoveStoresCanonicalText(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 5})
	require.NoError(t, err)
	playMoves(t, s, slug, "a1F", "b1", "b1+")

	_, m, err := s.LoadGame(ctx, slug)
	require.NoError(t, err)
	var texts []string
	for _, mv := range m.Moves {
		texts = append(texts, mv.Text)
	}
	assert.Equal(t, []string{"a1", "b1", "1b1+1"}, texts)
}

func TestRecordMoveRejects(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 5})
	require.NoError(t, err)

	_, err = s.RecordMove(ctx, slug, takrules.PlayerTwo, "a1")
	assert.True(t, errors.Is(err, takrules.ErrWrongTurn), "got %v", err)

	_, err = s.RecordMove(ctx, slug, takrules.PlayerOne, "Ca1")
	assert.True(t, errors.Is(err, takrules.ErrMustPlaceFlatOnOpening), "got %v", err)

	_, err = s.RecordMove(ctx, "nope", takrules.PlayerOne, "a1")
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "got %v", err)

	g, _, err := s.LoadGame(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, 0, g.TurnNumber())
}

func TestMatchSettingsSurviveReload(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 5, Packed: true, RoadTie: takrules.RoadTieMover})
	require.NoError(t, err)
	playMoves(t, s, slug, "a1", "e5")

	g, _, err := s.LoadGame(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, takrules.RoadTieMover, g.RoadTie)
	_, packed := g.Board().(*takrules.PackedBoard)
	assert.True(t, packed)
	assert.Equal(t, "x4,1/x5/x5/x5/2,x4", takrules.FormatBoard(g.Board()))
}

func TestSetResult(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 5})
	require.NoError(t, err)
	require.NoError(t, s.SetResult(ctx, slug, takrules.PlayerTwo))

	_, m, err := s.LoadGame(ctx, slug)
	require.NoError(t, err)
	assert.Equal(t, StatusFinished, m.Status)
	assert.Equal(t, int(takrules.PlayerTwo), m.Winner)

	err = s.SetResult(ctx, "missing", takrules.PlayerOne)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound), "got %v", err)
}

func TestRecordExport(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	slug, err := s.CreateMatch(ctx, Options{Size: 4, Tags: map[string]string{
		ptn.TagPlayer1: "alice",
		ptn.TagPlayer2: "bob",
	}})
	require.NoError(t, err)
	playMoves(t, s, slug, "b1", "a1", "a2", "b2", "a3", "b3", "a4")

	r, err := s.Record(ctx, slug)
	require.NoError(t, err)

	result, err := r.GetMeta(ptn.TagResult)
	require.NoError(t, err)
	assert.Equal(t, "R-0", result)
	player, err := r.GetMeta(ptn.TagPlayer1)
	require.NoError(t, err)
	assert.Equal(t, "alice", player)
	date, err := r.GetMeta(ptn.TagDate)
	require.NoError(t, err)
	assert.Len(t, date, len(ptn.DateFormat))
	assert.Len(t, r.Turns, 4)

	again, err := ptn.Parse([]byte(r.String()))
	require.NoError(t, err)
	g, err := again.Replay()
	require.NoError(t, err)
	assert.Equal(t, takrules.PlayerOne, g.Winner())
}

func TestList(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	first, err := s.CreateMatch(ctx, Options{Size: 5})
	require.NoError(t, err)
	second, err := s.CreateMatch(ctx, Options{Size: 5})
	require.NoError(t, err)

	matches, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, second, matches[0].Slug)
	assert.Equal(t, first, matches[1].Slug)

	matches, err = s.List(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestDialector(t *testing.T) {
	assert.Equal(t, "postgres", dialector("postgres://u@localhost/tak").Name())
	assert.Equal(t, "postgres", dialector("host=localhost user=tak").Name())
	assert.Equal(t, "sqlite", dialector("tak.db").Name())
}
