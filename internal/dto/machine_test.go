package dto

import (
	"testing"

	"github.com/aretw0/turing/pkg/machines"
	"github.com/stretchr/testify/assert"
)

func TestFromDefinition(t *testing.T) {
	info := FromDefinition(machines.Compare())

	assert.Equal(t, "compare", info.Name)
	assert.Equal(t, "01X_", info.Alphabet)
	assert.Equal(t, "_", info.Fill)
	assert.Equal(t, 1, info.Cursor)
	assert.Equal(t, 9, info.States)
	assert.Equal(t, map[string]string{"6": "A < B", "7": "A > B", "8": "A = B"}, info.HaltLabels)
	assert.Equal(t, []string{"6: A < B", "7: A > B", "8: A = B"}, info.SortedLabels())
}

func TestFromDefinitions(t *testing.T) {
	infos := FromDefinitions(machines.All())
	assert.Len(t, infos, 3)
	assert.Nil(t, infos[0].HaltLabels)
	assert.Empty(t, infos[0].SortedLabels())
}
