package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const feedPage = `<html>
<head>
	<title>Search / Feed</title>
	<meta name="description" content="Latest posts">
	<meta property="og:title" content="Feed">
	<script>window.__data = {}</script>
</head>
<body>
	<nav><a href="/">Home</a></nav>
	<main>
		<article><p>Great #busan_food tour today</p></article>
		<article><p>Trying BUSAN_FOOD spots downtown</p></article>
		<article><p>Completely unrelated post</p></article>
	</main>
	<footer>site footer</footer>
</body>
</html>`

func TestBuildSnapshotSearchTermMatching(t *testing.T) {
	snapshot, err := BuildSnapshot(feedPage, SnapshotOptions{SearchTerm: "busan_food"})
	require.NoError(t, err)

	// Both the literal and the hash-tagged mention match, case-insensitively.
	assert.Equal(t, 2, snapshot.Matches)
	assert.Contains(t, snapshot.Markup, "#busan_food tour")
	assert.Contains(t, snapshot.Markup, "BUSAN_FOOD spots")
	assert.NotContains(t, snapshot.Markup, "unrelated")
}

func TestBuildSnapshotNoMatches(t *testing.T) {
	snapshot, err := BuildSnapshot(feedPage, SnapshotOptions{SearchTerm: "nosuchterm"})
	require.NoError(t, err)

	assert.Equal(t, 0, snapshot.Matches)
	assert.Empty(t, snapshot.Markup)
	assert.False(t, snapshot.Truncated)
}

func TestBuildSnapshotWithoutTermKeepsScopeRoot(t *testing.T) {
	snapshot, err := BuildSnapshot(feedPage, SnapshotOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, snapshot.Matches)
	assert.Contains(t, snapshot.Markup, "Great #busan_food tour today")
	assert.Contains(t, snapshot.Markup, "unrelated post")
	// Page chrome outside and inside the scope is sanitized away.
	assert.NotContains(t, snapshot.Markup, "site footer")
	assert.NotContains(t, snapshot.Markup, "window.__data")
}

func TestBuildSnapshotCollectsHeadMetadata(t *testing.T) {
	snapshot, err := BuildSnapshot(feedPage, SnapshotOptions{})
	require.NoError(t, err)

	assert.Contains(t, snapshot.Markup, "<title>Search / Feed</title>")
	assert.Contains(t, snapshot.Markup, `content="Latest posts"`)
	assert.Contains(t, snapshot.Markup, `property="og:title"`)
	// Head metadata comes before body content.
	assert.Less(t,
		strings.Index(snapshot.Markup, "<title>"),
		strings.Index(snapshot.Markup, "busan_food"))
}

func TestBuildSnapshotFallsBackToBody(t *testing.T) {
	page := `<html><body><div><p>No main element here</p></div></body></html>`
	snapshot, err := BuildSnapshot(page, SnapshotOptions{})
	require.NoError(t, err)

	assert.Contains(t, snapshot.Markup, "No main element here")
}

func TestBuildSnapshotTruncation(t *testing.T) {
	long := "<main><p>" + strings.Repeat("a", 500) + "</p></main>"

	t.Run("over the cap", func(t *testing.T) {
		snapshot, err := BuildSnapshot(long, SnapshotOptions{MaxChars: 100})
		require.NoError(t, err)
		assert.True(t, snapshot.Truncated)
		assert.Len(t, snapshot.Markup, 100)
	})

	t.Run("under the cap", func(t *testing.T) {
		snapshot, err := BuildSnapshot(long, SnapshotOptions{MaxChars: 10_000})
		require.NoError(t, err)
		assert.False(t, snapshot.Truncated)
		assert.Less(t, len(snapshot.Markup), 10_000)
	})
}

func TestBuildSnapshotFragmentsSeparatedByBlankLine(t *testing.T) {
	page := `<html><body><main>
		<article><p>first busan_food post</p></article>
		<article><p>second busan_food post</p></article>
	</main></body></html>`

	snapshot, err := BuildSnapshot(page, SnapshotOptions{SearchTerm: "busan_food"})
	require.NoError(t, err)

	assert.Equal(t, 2, snapshot.Matches)
	assert.Contains(t, snapshot.Markup, "</article>\n\n<article>")
}
