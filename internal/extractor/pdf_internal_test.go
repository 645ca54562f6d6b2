package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextFromContentStream_TjAndTJ(t *testing.T) {
	stream := []byte("BT\n/F1 12 Tf\n72 712 Td\n(Lease Agreement) Tj\n0 -14 Td\n[(Monthly) -300 (rent) 20 (al)] TJ\nET\n")

	got := textFromContentStream(stream)

	assert.Equal(t, "Lease Agreement Monthly rental", got)
}

func TestTextFromContentStream_NewlineOperators(t *testing.T) {
	stream := []byte("BT (first) Tj T* (second) Tj (third) ' ET")

	got := textFromContentStream(stream)

	assert.Equal(t, "first\nsecond\nthird", got)
}

func TestTextFromContentStream_EscapesAndNesting(t *testing.T) {
	stream := []byte(`BT (a \(b\) (c) \101\n) Tj ET`)

	got := textFromContentStream(stream)

	assert.Equal(t, "a (b) (c) A\n", got)
}

func TestTextFromContentStream_HexAndUTF16(t *testing.T) {
	stream := []byte("BT <4C6F616E> Tj <FEFF00E9> Tj ET")

	got := textFromContentStream(stream)

	assert.Equal(t, "Loané", got)
}

func TestTextFromContentStream_IgnoresNonTextOperands(t *testing.T) {
	stream := []byte("q 1 0 0 1 0 0 cm /Im1 Do Q % comment (hidden) Tj\nBT (shown) Tj ET")

	got := textFromContentStream(stream)

	assert.Equal(t, "shown", got)
}

func TestTextFromContentStream_SkipsInlineImage(t *testing.T) {
	stream := []byte("BI /W 2 /H 2 ID \x00(\xff) Tj EI BT (after) Tj ET")

	got := textFromContentStream(stream)

	assert.Equal(t, "after", got)
}
