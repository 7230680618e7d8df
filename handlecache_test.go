package adsmux

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHandleCacheGetSetDelete(t *testing.T) {
	c := newHandleCache()

	_, ok := c.get("Main.counter")
	assert.False(t, ok)

	c.set("Main.counter", 42)
	got, ok := c.get("Main.counter")
	assert.True(t, ok)
	assert.Equal(t, uint32(42), got)

	c.delete("Main.counter")
	_, ok = c.get("Main.counter")
	assert.False(t, ok)
}

func TestHandleCacheClearEmptiesAllEntries(t *testing.T) {
	c := newHandleCache()
	c.set("a", 1)
	c.set("b", 2)

	c.clear()

	_, ok := c.get("a")
	assert.False(t, ok)
	_, ok = c.get("b")
	assert.False(t, ok)
}
