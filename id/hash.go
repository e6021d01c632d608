package id

const (
	hashSeed = 0x0d6e_8feb_8665_9fd9
	hashMul  = 0xd6e8_feb8_6659_fd93
)

// Crate is the placeholder segment standing for the enclosing crate in
// crate::module paths.
var Crate = FromText("crate")

// FromText hashes text into a Single id. The result only depends on the
// bytes of text.
func FromText(text string) Id {
	x := uint64(hashSeed)
	for i := 0; i < len(text); i++ {
		x += uint64(text[i])
		x ^= x >> 32
		x *= hashMul
		x ^= x >> 32
		x *= hashMul
		x ^= x >> 32
	}
	return Id(x & singleMask)
}
