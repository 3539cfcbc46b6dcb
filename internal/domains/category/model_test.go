package category

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photobook-backend/internal/shared/mltext"
)

func TestNewCategoryGeneratesSlug(t *testing.T) {
	c, err := NewCategory(mltext.Text{mltext.LangRU: "Фотокниги премиум"}, nil, nil, "", "", 10)
	require.NoError(t, err)

	assert.Equal(t, "fotoknigi-premium", c.Slug)
	assert.True(t, c.IsActive)
	assert.True(t, c.IsRoot())
	assert.Equal(t, 10, c.SortOrder)
}

func TestNewCategoryValidation(t *testing.T) {
	_, err := NewCategory(mltext.Text{}, nil, nil, "", "", 0)
	assert.ErrorIs(t, err, ErrInvalidName)

	long := mltext.Text{mltext.LangEN: strings.Repeat("a", 256)}
	_, err = NewCategory(long, nil, nil, "", "", 0)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = NewCategory(mltext.Text{mltext.LangEN: "Valid"}, nil, nil, "", "", 1000)
	assert.ErrorIs(t, err, ErrInvalidSortOrder)
}

func TestCategoryUpdateRegeneratesSlug(t *testing.T) {
	c, err := NewCategory(mltext.Text{mltext.LangEN: "Photobooks"}, nil, nil, "", "", 0)
	require.NoError(t, err)
	assert.Equal(t, "photobooks", c.Slug)

	err = c.Update(mltext.Text{mltext.LangEN: "Photo Albums"}, nil, "", "", 5)
	require.NoError(t, err)
	assert.Equal(t, "photo-albums", c.Slug)
	assert.Equal(t, 5, c.SortOrder)
}

func TestUncategorizedPlaceholder(t *testing.T) {
	p := NewUncategorizedPlaceholder()

	assert.Equal(t, UncategorizedSlug, p.Slug)
	assert.True(t, p.IsRoot())
	assert.True(t, p.IsUncategorized())
	assert.Equal(t, "Без категории", p.Name.Get(mltext.LangRU))
	assert.Equal(t, "Uncategorized", p.Name.Get(mltext.LangEN))
	assert.Equal(t, "Առանց կատեգորիայի", p.Name.Get(mltext.LangHY))
}
