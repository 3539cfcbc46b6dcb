package mltext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFallsBackThroughLanguages(t *testing.T) {
	full := Text{LangRU: "Фотокниги", LangEN: "Photobooks", LangHY: "Ֆոտոգրքեր"}
	assert.Equal(t, "Photobooks", full.Get(LangEN))
	assert.Equal(t, "Фотокниги", full.Get("de"))

	enOnly := Text{LangEN: "Photobooks"}
	assert.Equal(t, "Photobooks", enOnly.Get(LangRU))

	hyOnly := Text{LangHY: "Ֆոտոգրքեր"}
	assert.Equal(t, "Ֆոտոգրքեր", hyOnly.Primary())

	blank := Text{LangRU: "   "}
	assert.Equal(t, "", blank.Get(LangRU))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, Text{}.IsEmpty())
	assert.True(t, Text(nil).IsEmpty())
	assert.True(t, Text{LangRU: "  "}.IsEmpty())
	assert.False(t, Text{LangHY: "Ալբոմ"}.IsEmpty())
}

func TestClone(t *testing.T) {
	original := Text{LangRU: "Книга"}
	copied := original.Clone()
	copied[LangRU] = "Альбом"

	assert.Equal(t, "Книга", original[LangRU])
	assert.Nil(t, Text(nil).Clone())
}
