package activity

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "sub", "activity.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id string, at time.Time) Record {
	return Record{ID: id, Type: TypeGeneral, Icon: "🎓", Color: "slate", Title: "General Q&A", Timestamp: at}
}

func ids(records []Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.ID
	}
	return out
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.UnixMilli(1_700_000_000_000)

	r := record("a", at)
	r.HasResult = true
	r.ResultPreview = "Plants use light..."
	require.NoError(t, s.Save(ctx, r))

	got, err := s.LoadRecent(ctx, 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, r.ID, got[0].ID)
	assert.Equal(t, r.Type, got[0].Type)
	assert.True(t, got[0].HasResult)
	assert.Equal(t, r.ResultPreview, got[0].ResultPreview)
	assert.True(t, at.Equal(got[0].Timestamp))
}

func TestStore_ResaveMovesToFront(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, record(id, now)))
	}

	updated := record("a", now)
	updated.HasResult = true
	updated.ResultPreview = "done..."
	require.NoError(t, s.Save(ctx, updated))

	got, err := s.LoadRecent(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, ids(got))
	assert.True(t, got[0].HasResult)
	assert.Equal(t, "done...", got[0].ResultPreview)
}

func TestStore_Cap(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for i := 1; i <= MaxStored+1; i++ {
		require.NoError(t, s.Save(ctx, record(fmt.Sprintf("r%02d", i), time.Now())))
	}

	got, err := s.LoadRecent(ctx, 100)
	require.NoError(t, err)
	require.Len(t, got, MaxStored)
	assert.Equal(t, "r11", got[0].ID)
	assert.Equal(t, "r02", got[MaxStored-1].ID)

	recent, err := s.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"r11", "r10", "r09", "r08", "r07"}, ids(recent))
}

func TestStore_Persists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activity.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, record("kept", time.Now())))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Recent(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, ids(got))
}

func TestStore_InvalidRecord(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	bad := []Record{
		{},
		{ID: "x", Type: "weather", Title: "t", Timestamp: time.Now()},
		{ID: "x", Type: TypeMath, Timestamp: time.Now()},
		{ID: "x", Type: TypeMath, Title: "t"},
	}
	for _, r := range bad {
		assert.ErrorIs(t, s.Save(ctx, r), ErrInvalidRecord)
	}

	got, err := s.LoadRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text     string
		hasImage bool
		want     Type
	}{
		{"anything", true, TypeScan},
		{"hitung luas lingkaran", false, TypeMath},
		{"What is the formula for speed?", false, TypeMath},
		{"siapa presiden pertama", false, TypeHistory},
		{"Tell me the history of Rome", false, TypeHistory},
		{"why does my program crash", false, TypeCoding},
		{"Kode ini error", false, TypeCoding},
		{"explain photosynthesis", false, TypeGeneral},
		// math keywords are checked first
		{"calculate the error", false, TypeMath},
	}
	for _, tt := range tests {
		info := Classify(tt.text, tt.hasImage)
		assert.Equal(t, tt.want, info.Type, tt.text)
		assert.NotEmpty(t, info.Icon)
		assert.NotEmpty(t, info.Title)
	}
}

func TestNewRecord(t *testing.T) {
	now := time.Now()
	r := NewRecord("math homework", false, now)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, TypeMath, r.Type)
	assert.Equal(t, now, r.Timestamp)
	assert.False(t, r.HasResult)
	assert.NoError(t, r.Validate())

	assert.NotEqual(t, r.ID, NewRecord("math homework", false, now).ID)
}

func TestPreview(t *testing.T) {
	assert.Equal(t, "Explanation finished", Preview(""))
	assert.Equal(t, "short...", Preview("short"))
	assert.Equal(t, "### Answer 1. step...", Preview("### Answer\n\n1. step"))

	long := strings.Repeat("é", 60)
	assert.Equal(t, strings.Repeat("é", 50)+"...", Preview(long))
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		ago  time.Duration
		want string
	}{
		{0, "just now"},
		{59 * time.Second, "just now"},
		{time.Minute, "1 minute ago"},
		{45 * time.Minute, "45 minutes ago"},
		{time.Hour, "1 hour ago"},
		{23 * time.Hour, "23 hours ago"},
		{24 * time.Hour, "yesterday"},
		{47 * time.Hour, "yesterday"},
		{3 * 24 * time.Hour, "3 days ago"},
		{7 * 24 * time.Hour, "1 week ago"},
		{30 * 24 * time.Hour, "1 week ago"},
	}
	for _, tt := range tests {
		if got := RelativeTime(now, now.Add(-tt.ago)); got != tt.want {
			t.Errorf("RelativeTime(-%v) = %q, want %q", tt.ago, got, tt.want)
		}
	}
}
