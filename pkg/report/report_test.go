package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriterSinkFormat(t *testing.T) {
	var buf strings.Builder
	s := NewWriterSink(&buf)

	s.Post("crawler", "Clicked \"a\" in tab \"main\"")
	s.Post("crawler", "Waited 3000 ms")

	assert.Equal(t,
		"[crawler] Clicked \"a\" in tab \"main\"\n[crawler] Waited 3000 ms\n",
		buf.String())
}

func TestMultiSinkFansOut(t *testing.T) {
	a := &MemorySink{}
	b := &MemorySink{}
	m := MultiSink{a, b}

	m.Post("crawler", "hello")

	assert.Equal(t, Entry{Actor: "crawler", Text: "hello"}, a.Last())
	assert.Equal(t, Entry{Actor: "crawler", Text: "hello"}, b.Last())
}

func TestMemorySink(t *testing.T) {
	s := &MemorySink{}
	assert.Equal(t, Entry{}, s.Last())
	assert.Empty(t, s.Entries())

	s.Post("a", "one")
	s.Post("b", "two")

	assert.Equal(t, Entry{Actor: "b", Text: "two"}, s.Last())
	assert.Len(t, s.Entries(), 2)
}
