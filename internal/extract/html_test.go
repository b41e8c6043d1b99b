package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLToText(t *testing.T) {
	html := `<html><head><style>body { color: red; }</style></head>
<body><p>Hello there</p><script>alert("x");</script></body></html>`

	text, err := HTMLToText([]byte(html))
	require.NoError(t, err)
	assert.Contains(t, text, "Hello there")
	assert.NotContains(t, text, "alert")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "<p>")
}

func TestHTMLToTextPlainInput(t *testing.T) {
	text, err := HTMLToText([]byte("just plain words"))
	require.NoError(t, err)
	assert.Equal(t, "just plain words", text)
}
