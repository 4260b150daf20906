package twofish

// Reduction polynomials for the two GF(2^8) representations Twofish uses.
const (
	rsPoly  = 0x14d // Reed-Solomon code over key bytes
	mdsPoly = 0x169 // MDS matrix applied to h outputs
)

// gfMul multiplies a and b in GF(2^8) modulo the irreducible polynomial poly.
func gfMul(a, b, poly uint32) uint32 {
	var x uint32
	for ; b != 0; b >>= 1 {
		if b&1 != 0 {
			x ^= a
		}
		a <<= 1
		if a&0x100 != 0 {
			a ^= poly
		}
	}
	return x
}

// rsMatrix is the Reed-Solomon matrix, transposed so that row j holds the
// coefficients applied to key byte j of an 8-byte group.
var rsMatrix = [8][4]byte{
	{0x01, 0xa4, 0x02, 0xa4},
	{0xa4, 0x56, 0xa1, 0x55},
	{0x55, 0x82, 0xfc, 0x87},
	{0x87, 0xf3, 0xc1, 0x5a},
	{0x5a, 0x1e, 0x47, 0x58},
	{0x58, 0xc6, 0xae, 0xdb},
	{0xdb, 0x68, 0x3d, 0x9e},
	{0x9e, 0xe5, 0x19, 0x03},
}

// mdsColumn spreads the substituted byte x of column col over a 32-bit word
// according to the MDS matrix.
func mdsColumn(col int, x byte) uint32 {
	v := uint32(x)
	ef := gfMul(v, 0xef, mdsPoly)
	fb := gfMul(v, 0x5b, mdsPoly)
	switch col {
	case 0:
		return ef<<24 | ef<<16 | fb<<8 | v
	case 1:
		return ef | ef<<8 | fb<<16 | v<<24
	case 2:
		return ef<<24 | ef<<8 | fb | v<<16
	default:
		return fb | fb<<24 | ef<<16 | v<<8
	}
}
