package selection

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harmya/grifter-or-pro/internal/types"
)

// firstK is a deterministic chooser for tests.
type firstK struct{}

func (firstK) Choose(k int, from []string) []string {
	return append([]string(nil), from[:min(k, len(from))]...)
}

func blobs(paths ...string) []types.TreeEntry {
	tree := make([]types.TreeEntry, 0, len(paths))
	for _, p := range paths {
		tree = append(tree, types.TreeEntry{Path: p, Type: types.EntryBlob})
	}
	return tree
}

func TestNew(t *testing.T) {
	s, err := New("", nil, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &UniformSelector{}, s)

	s, err = New(StrategyOracle, &MockLLMClient{}, nil, nil)
	require.NoError(t, err)
	assert.IsType(t, &OracleSelector{}, s)

	_, err = New(StrategyOracle, nil, nil, nil)
	require.Error(t, err)

	_, err = New("fastest", nil, nil, nil)
	require.Error(t, err)
}

func TestUniformSelector_PicksFromRelevantOnly(t *testing.T) {
	tree := blobs("README.md", "package.json", "a.go", "b.py", "c.rs", "d.ts", "tests/e.go")
	s := &UniformSelector{}

	for i := 0; i < 20; i++ {
		got, err := s.Select(context.Background(), tree, "", DefaultCount)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Subset(t, []string{"a.go", "b.py", "c.rs", "d.ts"}, got)
	}
}

func TestUniformSelector_FewerThanCount(t *testing.T) {
	got, err := (&UniformSelector{}).Select(context.Background(), blobs("only.go", "README.md"), "", 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"only.go"}, got)
}

func TestUniformSelector_NothingRelevant(t *testing.T) {
	got, err := (&UniformSelector{}).Select(context.Background(), blobs("README.md", "package.json"), "", 3)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUniformSelector_DefaultCount(t *testing.T) {
	got, err := (&UniformSelector{Chooser: firstK{}}).Select(context.Background(), blobs("a.go", "b.go", "c.go", "d.go"), "", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a.go", "b.go", "c.go"}, got)
}

func TestUniformSelector_StubbedChooserIsDeterministic(t *testing.T) {
	s := &UniformSelector{Chooser: firstK{}}
	tree := blobs("a.go", "b.go", "c.go", "d.go")

	first, err := s.Select(context.Background(), tree, "", 2)
	require.NoError(t, err)
	second, err := s.Select(context.Background(), tree, "", 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
