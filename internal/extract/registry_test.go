package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestForContentTypeDispatch(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	assert.NotNil(t, r.ForContentType("image/png"))
	assert.NotNil(t, r.ForContentType("image/jpeg"))
	assert.NotNil(t, r.ForContentType("application/pdf"))
	assert.NotNil(t, r.ForContentType(ContentTypeDocx))
	assert.NotNil(t, r.ForContentType("text/plain"))

	assert.Nil(t, r.ForContentType("application/octet-stream"))
	assert.Nil(t, r.ForContentType("application/zip"))
	assert.Nil(t, r.ForContentType("text/html"))
	assert.Nil(t, r.ForContentType(""))
}

func TestTextExtractor(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	fn := r.ForContentType("text/plain")
	require.NotNil(t, fn)
	assert.Equal(t, "meeting notes\n", fn([]byte("meeting notes")))
}

func TestPDFExtractorMalformedInput(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	fn := r.ForContentType("application/pdf")
	require.NotNil(t, fn)
	assert.Equal(t, "", fn([]byte("this is not a pdf")))
	assert.Equal(t, "", fn(nil))
}

func TestDocxExtractorMalformedInput(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	fn := r.ForContentType(ContentTypeDocx)
	require.NotNil(t, fn)
	assert.Equal(t, "", fn([]byte("this is not a docx")))
}

func TestSafeRecoversPanic(t *testing.T) {
	r := NewRegistry(zap.NewNop())

	fn := r.safe("panicky", func(_ []byte) string {
		panic("boom")
	})
	assert.Equal(t, "", fn([]byte("data")))
}
