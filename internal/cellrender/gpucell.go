package cellrender

import "encoding/binary"

// CellMode discriminates what a GPUCell instance draws; the shader
// branches on it. Values are deliberately sparse so bitmask extensions
// (currently unused) can be OR'd onto the base value later.
type CellMode uint8

const (
	ModeBG                CellMode = 1
	ModeFG                CellMode = 2
	ModeCursorRect        CellMode = 3
	ModeCursorRectHollow  CellMode = 4
	ModeCursorBar         CellMode = 5
	ModeFGColor           CellMode = 7
	ModeStrikethrough     CellMode = 8
)

// GPUCell is a bit-exact packed per-instance vertex attribute record.
// Field order is observable to the vertex shader (attributes 0..7 bind in
// declaration order) and must not be reordered.
type GPUCell struct {
	GridCol uint16
	GridRow uint16

	GlyphX      uint32
	GlyphY      uint32
	GlyphWidth  uint32
	GlyphHeight uint32

	GlyphOffsetX int32
	GlyphOffsetY int32

	FgR, FgG, FgB, FgA uint8
	BgR, BgG, BgB, BgA uint8

	Mode      CellMode
	GridWidth uint8
}

// gpuCellSize is sizeof(GPUCell) as packed on the wire: 2+2 + 4*4 + 4*2 +
// 8*1 + 1 + 1.
const gpuCellSize = 2 + 2 + 16 + 8 + 8 + 1 + 1

// encodeTo writes c into buf[0:gpuCellSize] in the exact field order
// above, little-endian, matching how BufferSnapshot.SerializeToBinary
// writes a fixed-layout record directly into a pre-sized buffer rather
// than through reflection or a generic codec.
func (c GPUCell) encodeTo(buf []byte) {
	binary.LittleEndian.PutUint16(buf[0:], c.GridCol)
	binary.LittleEndian.PutUint16(buf[2:], c.GridRow)
	binary.LittleEndian.PutUint32(buf[4:], c.GlyphX)
	binary.LittleEndian.PutUint32(buf[8:], c.GlyphY)
	binary.LittleEndian.PutUint32(buf[12:], c.GlyphWidth)
	binary.LittleEndian.PutUint32(buf[16:], c.GlyphHeight)
	binary.LittleEndian.PutUint32(buf[20:], uint32(c.GlyphOffsetX))
	binary.LittleEndian.PutUint32(buf[24:], uint32(c.GlyphOffsetY))
	buf[28] = c.FgR
	buf[29] = c.FgG
	buf[30] = c.FgB
	buf[31] = c.FgA
	buf[32] = c.BgR
	buf[33] = c.BgG
	buf[34] = c.BgB
	buf[35] = c.BgA
	buf[36] = byte(c.Mode)
	buf[37] = c.GridWidth
}

// EncodeCells packs a slice of cells for GPU upload, one gpuCellSize
// record each, in order.
func EncodeCells(cells []GPUCell) []byte {
	buf := make([]byte, len(cells)*gpuCellSize)
	for i, c := range cells {
		c.encodeTo(buf[i*gpuCellSize:])
	}
	return buf
}
