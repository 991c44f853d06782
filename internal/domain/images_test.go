package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewImageList_CombinesMainAndGallery(t *testing.T) {
	l := NewImageList("main.jpg", []string{"g1.jpg", "g2.jpg"})
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, "main.jpg", l.Main())
	assert.Equal(t, []string{"g1.jpg", "g2.jpg"}, l.Gallery())
}

func TestNewImageList_EmptyMain(t *testing.T) {
	l := NewImageList("", []string{"g1.jpg"})
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, "g1.jpg", l.Main())
	assert.Empty(t, l.Gallery())
}

func TestSetMain_NewURLPrepends(t *testing.T) {
	l := NewImageList("a.jpg", []string{"b.jpg"})
	l.SetMain("c.jpg")
	assert.Equal(t, "c.jpg", l.Main())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, l.Gallery())
}

func TestSetMain_ExistingURLMovesToFront(t *testing.T) {
	l := NewImageList("a.jpg", []string{"b.jpg", "c.jpg"})
	l.SetMain("c.jpg")
	assert.Equal(t, "c.jpg", l.Main())
	assert.Equal(t, []string{"a.jpg", "b.jpg"}, l.Gallery())
	assert.Equal(t, 3, l.Len())
}

func TestAdd_SkipsDuplicatesAndEmpty(t *testing.T) {
	l := NewImageList("a.jpg", nil)
	l.Add("b.jpg", "", "a.jpg", "c.jpg")
	assert.Equal(t, []string{"a.jpg", "b.jpg", "c.jpg"}, l.URLs())
}

// Moving image X to index 0 promotes it to main; the others keep their
// relative order.
func TestMove_PromotesNewMain(t *testing.T) {
	l := NewImageList("a.jpg", []string{"b.jpg", "c.jpg", "d.jpg"})
	require.NoError(t, l.Move(2, 0))
	assert.Equal(t, "c.jpg", l.Main())
	assert.Equal(t, []string{"a.jpg", "b.jpg", "d.jpg"}, l.Gallery())
}

func TestMove_WithinGallery(t *testing.T) {
	l := NewImageList("a.jpg", []string{"b.jpg", "c.jpg"})
	require.NoError(t, l.Move(1, 2))
	assert.Equal(t, "a.jpg", l.Main())
	assert.Equal(t, []string{"c.jpg", "b.jpg"}, l.Gallery())
}

func TestMove_OutOfRange(t *testing.T) {
	l := NewImageList("a.jpg", nil)
	assert.Error(t, l.Move(0, 5))
	assert.Error(t, l.Move(-1, 0))
	assert.Error(t, l.Move(3, 0))
}

func TestRemove_MainPromotesNext(t *testing.T) {
	l := NewImageList("a.jpg", []string{"b.jpg", "c.jpg"})
	require.NoError(t, l.Remove(0))
	assert.Equal(t, "b.jpg", l.Main())
	assert.Equal(t, []string{"c.jpg"}, l.Gallery())
}

// Removing the last remaining image clears both main and gallery.
func TestRemove_LastImageClearsList(t *testing.T) {
	l := NewImageList("a.jpg", nil)
	require.NoError(t, l.Remove(0))
	assert.Equal(t, "", l.Main())
	assert.Equal(t, []string{}, l.Gallery())
	assert.Zero(t, l.Len())
}

func TestRemove_OutOfRange(t *testing.T) {
	l := NewImageList("a.jpg", nil)
	assert.Error(t, l.Remove(1))
	assert.Error(t, l.Remove(-1))
}

func TestURLs_ReturnsCopy(t *testing.T) {
	l := NewImageList("a.jpg", []string{"b.jpg"})
	urls := l.URLs()
	urls[0] = "mutated.jpg"
	assert.Equal(t, "a.jpg", l.Main())
}
