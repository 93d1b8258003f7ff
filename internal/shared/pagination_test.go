package shared

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewPageRequestClampsInput(t *testing.T) {
	req := NewPageRequest(-5, 0)
	require.Equal(t, 0, req.Number)
	require.Equal(t, 10, req.Size) // default size

	req = NewPageRequest(2, 25)
	require.Equal(t, 2, req.Number)
	require.Equal(t, 25, req.Size)
	require.Equal(t, 50, req.Offset())
}

func TestNewPageEnvelopeMath(t *testing.T) {
	page := NewPage([]string{"a", "b", "c"}, NewPageRequest(0, 3), 7)
	require.Equal(t, int64(7), page.Page.TotalElements)
	require.Equal(t, 3, page.Page.TotalPages)
	require.True(t, page.Page.First)
	require.False(t, page.Page.Last)
	require.True(t, page.Page.HasNext)
	require.False(t, page.Page.HasPrevious)

	last := NewPage([]string{"g"}, NewPageRequest(2, 3), 7)
	require.True(t, last.Page.Last)
	require.False(t, last.Page.HasNext)
	require.True(t, last.Page.HasPrevious)
}

func TestNewPageEmptyResult(t *testing.T) {
	page := NewPage[string](nil, NewPageRequest(0, 10), 0)
	require.NotNil(t, page.Content) // marshals as [], never null
	require.Empty(t, page.Content)
	require.Zero(t, page.Page.TotalPages)
	require.True(t, page.Page.First)
}

func TestNewPageBeyondLastPage(t *testing.T) {
	page := NewPage[string](nil, NewPageRequest(9, 10), 5)
	require.Equal(t, 1, page.Page.TotalPages)
	require.True(t, page.Page.Last)
	require.False(t, page.Page.HasNext)
}
