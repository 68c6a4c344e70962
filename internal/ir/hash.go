package ir

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"

	"golang.org/x/text/unicode/norm"
)

// Hash is a deterministic 64-bit digest of an Item, used as its runtime
// identity by the assembler and, eventually, the VM's function table.
type Hash uint64

// domainItem separates Item hashing from any future hash domain (e.g. a
// type hash or a trait hash) the same way the teacher's hashWithDomain
// keeps InvocationID/CompletionID/BindingHash from colliding with each
// other despite sharing a hash function.
const domainItem = "quillc/item/v1"

// HashItem computes the stable digest of an Item.
//
// Each component is NFC-normalized before hashing so that visually
// identical identifiers using different Unicode compositions collide
// deterministically instead of producing distinct, confusable Items.
// Components are length-prefixed before concatenation so that
// ["ab", "c"] and ["a", "bc"] never hash to the same digest.
func HashItem(item Item) Hash {
	h := sha256.New()
	h.Write([]byte(domainItem))
	h.Write([]byte{0x00}) // domain/data separator, mirrors the teacher's scheme

	var lenBuf [4]byte
	for _, c := range item.Components {
		normalized := norm.NFC.String(c)
		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(normalized)))
		h.Write(lenBuf[:])
		h.Write([]byte(normalized))
	}

	sum := h.Sum(nil)
	return Hash(binary.BigEndian.Uint64(sum[:8]))
}

// String renders the hash as lowercase hex, e.g. for diagnostics and
// golden-file snapshots.
func (h Hash) String() string {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(h))
	return hex.EncodeToString(buf[:])
}
