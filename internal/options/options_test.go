package options

import (
	"context"
	"database/sql"
	"path/filepath"
	"sync"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rebeliceyang/lazyfilter/internal/models"
)

var people = []models.Option{
	{"name": "Ada Lovelace", "id": "u1"},
	{"name": "Alan Turing", "id": 2},
	{"name": "Grace Hopper", "id": "u3"},
}

func labels(opts []models.Option, key string) []string {
	return lo.Map(opts, func(o models.Option, _ int) string {
		v, _ := o.Field(key)
		return v
	})
}

func TestStaticLoader(t *testing.T) {
	l := StaticLoader{Options: people, LabelKey: "name"}

	got, err := l.Load(context.Background(), "AL")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alan Turing"}, labels(got, "name"))

	got, err = l.Load(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	l.Limit = 2
	got, _ = l.Load(context.Background(), "")
	assert.Len(t, got, 2)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx, "a")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEnumLoader(t *testing.T) {
	got, err := EnumLoader([]string{"in_progress", "success"}).Load(context.Background(), "prog")
	require.NoError(t, err)
	assert.Equal(t, []models.Option{{"label": "In Progress", "value": "in_progress"}}, got)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	teams := LoaderFunc(func(_ context.Context, q string) ([]models.Option, error) {
		return []models.Option{{"label": "Core " + q, "value": "core"}}, nil
	})
	r.Register("teams", teams)
	r.Register("users", StaticLoader{Options: people, LabelKey: "name"})

	assert.Equal(t, []string{"teams", "users"}, r.Names())

	l, ok := r.ForProps(models.AsyncListProps{LoadOptionsOf: "teams"})
	require.True(t, ok)
	got, err := l.Load(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, "Core x", got[0]["label"])

	_, ok = r.ForProps(models.AsyncListProps{LoadOptionsOf: "missing"})
	assert.False(t, ok)

	l, ok = r.ForProps(models.ObjectProps{Options: people, LabelKey: "name", ValueKey: "id"})
	require.True(t, ok)
	got, _ = l.Load(context.Background(), "grace")
	assert.Equal(t, []string{"Grace Hopper"}, labels(got, "name"))

	_, ok = r.ForProps(models.StringProps{})
	assert.False(t, ok)
}

func TestSearchLastQueryWins(t *testing.T) {
	var s Search

	first := s.Begin("a")
	second := s.Begin("ad")
	assert.False(t, s.Accept(first), "superseded query is dropped")
	assert.True(t, s.Accept(second))
	assert.Equal(t, "ad", s.Latest())

	// A slow first response arriving after the second one is still dropped.
	third := s.Begin("ada")
	assert.False(t, s.Accept(second))
	assert.True(t, s.Accept(third))
}

func TestSearchConcurrent(t *testing.T) {
	var s Search
	var wg sync.WaitGroup
	tickets := make([]Ticket, 50)

	for i := range tickets {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tickets[i] = s.Begin("q")
		}(i)
	}
	wg.Wait()

	accepted := lo.Filter(tickets, func(t Ticket, _ int) bool { return s.Accept(t) })
	assert.Len(t, accepted, 1)
	assert.Equal(t, uint64(len(tickets)), accepted[0].Seq)
}

func TestRun(t *testing.T) {
	var s Search
	ticket := s.Begin("turing")
	res := Run(context.Background(), StaticLoader{Options: people, LabelKey: "name"}, ticket)

	require.NoError(t, res.Err)
	assert.Equal(t, ticket, res.Ticket)
	assert.Equal(t, []string{"Alan Turing"}, labels(res.Options, "name"))
}

func TestMergeSelected(t *testing.T) {
	selected := []models.Option{{"name": "Grace Hopper", "id": "u3"}}
	results := []models.Option{people[0], people[2], people[1], people[0]}

	got := MergeSelected(selected, results, "id")
	assert.Equal(t, []string{"Grace Hopper", "Ada Lovelace", "Alan Turing"}, labels(got, "name"))

	assert.Empty(t, MergeSelected(nil, nil, "id"))
}

func TestSQLiteLoader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.db")

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	_, err = db.Exec(`CREATE TABLE teams (id INTEGER PRIMARY KEY, "team name" TEXT);
		INSERT INTO teams (id, "team name") VALUES (1, 'Core'), (2, 'Growth'), (3, 'Core Infra');`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	l, err := Open(context.Background(), Source{
		Driver:      DriverSQLite,
		DSN:         path,
		Table:       "teams",
		LabelColumn: "team name",
		ValueColumn: "id",
	}, "", 10)
	require.NoError(t, err)
	defer func() { _ = l.Close() }()

	got, err := l.Load(context.Background(), "core")
	require.NoError(t, err)
	assert.Equal(t, []models.Option{
		{"label": "Core", "value": "1"},
		{"label": "Core Infra", "value": "3"},
	}, got)
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(context.Background(), Source{Driver: DriverSQLite}, "", 0)
	assert.Error(t, err)

	_, err = Open(context.Background(), Source{Driver: "mysql", Table: "t", LabelColumn: "l", ValueColumn: "v"}, "", 0)
	assert.ErrorContains(t, err, "unsupported")
}

func TestPostgresQuery(t *testing.T) {
	q := postgresQuery(Source{Table: "users", LabelColumn: "full name", ValueColumn: "id"})
	assert.Equal(t,
		`SELECT "full name"::text AS label, "id"::text AS value FROM "users" WHERE "full name"::text ILIKE $1 ORDER BY 1 LIMIT $2`,
		q)
}

func TestConnString(t *testing.T) {
	src := Source{Host: "db", Database: "app", User: "me"}
	assert.Equal(t, "host=db port=5432 user=me database=app sslmode=prefer password=pw", src.connString("pw"))

	src.DSN = "postgres://x"
	assert.Equal(t, "postgres://x", src.connString("pw"))
}
