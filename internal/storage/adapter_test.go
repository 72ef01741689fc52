package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jacksmith/hp/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePeople() []model.Prospect {
	people := []model.Prospect{
		model.NewProspect("Paul Hudson", "paul@hackingwithswift.com"),
		model.NewProspect("", ""),
		model.NewProspect("Taylor", "taylor@example.com"),
	}
	people[2].Contacted = true
	return people
}

// adapters returns a fresh adapter of each kind rooted in a temp dir.
func adapters(t *testing.T) map[string]Adapter {
	t.Helper()
	dir := t.TempDir()

	sq, err := OpenSQLite(filepath.Join(dir, "prospects.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sq.Close() })

	return map[string]Adapter{
		"file":   NewFileAdapter(filepath.Join(dir, "prospects.json")),
		"sqlite": sq,
	}
}

func TestAdapterRoundTrip(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			people := samplePeople()
			require.NoError(t, a.Save(people))

			got, err := a.Load()
			require.NoError(t, err)
			assert.Equal(t, people, got)
		})
	}
}

func TestAdapterLoadMissing(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			got, err := a.Load()
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestAdapterSaveReplaces(t *testing.T) {
	for name, a := range adapters(t) {
		t.Run(name, func(t *testing.T) {
			people := samplePeople()
			require.NoError(t, a.Save(people))
			require.NoError(t, a.Save(people[:1]))

			got, err := a.Load()
			require.NoError(t, err)
			assert.Equal(t, people[:1], got)

			require.NoError(t, a.Save(nil))
			got, err = a.Load()
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestFileAdapterCorruptData(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all"},
		{"truncated", `[{"id":"6f1c2a3b-0000-4000-8000-000000000001","name":"a"`},
		{"wrong shape", `{"people":[]}`},
		{"missing field", `[{"id":"6f1c2a3b-0000-4000-8000-000000000001","name":"a","emailAddress":""}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "prospects.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			got, err := NewFileAdapter(path).Load()
			assert.Error(t, err)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestFileAdapterUnreadable(t *testing.T) {
	// A directory where the file should be cannot be read as a file.
	path := filepath.Join(t.TempDir(), "prospects.json")
	require.NoError(t, os.Mkdir(path, 0755))

	a := NewFileAdapter(path)
	got, err := a.Load()
	assert.Error(t, err)
	assert.Empty(t, got)

	assert.Error(t, a.Save(samplePeople()))
}

func TestFileAdapterSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	a := NewFileAdapter(filepath.Join(dir, "prospects.json"))

	for i := 0; i < 3; i++ {
		require.NoError(t, a.Save(samplePeople()))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "prospects.json", entries[0].Name())
}

func TestFileAdapterFailedSaveKeepsPreviousVersion(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prospects.json")
	a := NewFileAdapter(path)

	people := samplePeople()
	require.NoError(t, a.Save(people))

	// Make the directory read-only so the temp file cannot be created.
	require.NoError(t, os.Chmod(dir, 0555))
	t.Cleanup(func() { os.Chmod(dir, 0755) })
	if f, err := os.CreateTemp(dir, "probe"); err == nil {
		// Running as root; permissions are not enforced.
		f.Close()
		os.Remove(f.Name())
		t.Skip("directory permissions not enforced")
	}

	assert.Error(t, a.Save(people[:1]))

	got, err := a.Load()
	require.NoError(t, err)
	assert.Equal(t, people, got)
}

func TestSQLiteAdapterCorruptPayload(t *testing.T) {
	sq, err := OpenSQLite(filepath.Join(t.TempDir(), "prospects.db"))
	require.NoError(t, err)
	defer sq.Close()

	_, err = sq.db.Exec(`INSERT INTO slots (key, payload) VALUES (?, ?)`, SaveKey, []byte("{"))
	require.NoError(t, err)

	got, err := sq.Load()
	assert.Error(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
