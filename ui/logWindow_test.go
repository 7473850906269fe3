package ui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogBufferKeepsNewestLines(t *testing.T) {
	b := newLogBuffer(3)
	for i := 1; i <= 5; i++ {
		b.add(fmt.Sprintf("line %d", i))
	}

	assert.Equal(t, []string{"line 3", "line 4", "line 5"}, b.filter(""))

	kept, total := b.counts()
	assert.Equal(t, 3, kept)
	assert.Equal(t, 5, total)
}

func TestLogBufferFilterIgnoresCase(t *testing.T) {
	b := newLogBuffer(10)
	b.add(`{"level":"info","message":"Background applied"}`)
	b.add(`{"level":"error","message":"random image request failed"}`)

	assert.Equal(t, []string{`{"level":"error","message":"random image request failed"}`}, b.filter("ERROR"))
	assert.Empty(t, b.filter("nothing like this"))
}
