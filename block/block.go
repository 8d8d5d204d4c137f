// Package block implements BlockFraming/Dispatch: the one-byte coder tag
// that selects among the five entropy coders (a closed sum type, not an
// open interface hierarchy), and the BWT block header that precedes
// every coder's payload in the outer stream.
package block

import (
	"github.com/jkokkala/bwtc-go/arith"
	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/huffman"
	"github.com/jkokkala/bwtc-go/ifreq"
	"github.com/jkokkala/bwtc-go/internal"
	"github.com/jkokkala/bwtc-go/interpolative"
	"github.com/jkokkala/bwtc-go/mtf"
)

// Tag is the one-byte coder selector carried in each block's header
// (see WriteHeader).
type Tag byte

const (
	TagHuffman       Tag = 'H'
	TagArithmetic    Tag = 'm'
	TagInterpolative Tag = 'i'
	TagInverseFreq   Tag = 'G'
	TagMTF_F         Tag = 'F'
	TagMTF_f         Tag = 'f'
	TagMTF_A         Tag = 'A'
	TagMTF_a         Tag = 'a'
	TagMTF_0         Tag = '0'
)

// Header is the BWT precompressor block header: the coder tag and
// primary index of the Burrows-Wheeler rotation, plus the block's
// uncompressed size. An all-zero size marks the end of the stream.
type Header struct {
	Coder Tag
	Ptr   int
	Size  int
}

// WriteHeader writes h, byte-aligned: a 48-bit size, the one-byte coder
// tag, and a 32-bit primary index.
func WriteHeader(w *bitio.Writer, h Header) {
	w.Flush()
	w.Write48Value(uint64(h.Size))
	w.WriteByte(byte(h.Coder))
	for i := 3; i >= 0; i-- {
		w.WriteByte(byte(h.Ptr >> uint(8*i)))
	}
}

// ReadHeader reads a header written by WriteHeader. The second return
// value is false at the end-of-stream marker (no bytes remain, or the
// size field is zero), in which case Header is the zero value.
func ReadHeader(r *bitio.Reader) (Header, bool) {
	if r.CompressedDataEnding() {
		return Header{}, false
	}
	size := r.Read48()
	coder := Tag(r.ReadByte())
	var ptr uint32
	for i := 0; i < 4; i++ {
		ptr = (ptr << 8) | uint32(r.ReadByte())
	}
	if size == 0 {
		return Header{}, false
	}
	return Header{Coder: coder, Ptr: int(ptr), Size: int(size)}, true
}

// WriteEnd writes the end-of-stream marker: an all-zero header.
func WriteEnd(w *bitio.Writer) {
	WriteHeader(w, Header{})
}

// EncodeBlock dispatches to the coder named by tag.
func EncodeBlock(w *bitio.Writer, tag Tag, data []byte) error {
	switch tag {
	case TagHuffman:
		return huffman.EncodeBlock(w, data)
	case TagArithmetic:
		return arith.EncodeBlock(w, data)
	case TagInterpolative:
		return interpolative.EncodeBlock(w, data, true)
	case TagInverseFreq:
		return ifreq.EncodeBlock(w, data)
	case TagMTF_F, TagMTF_f, TagMTF_A, TagMTF_a, TagMTF_0:
		return mtf.EncodeBlock(w, data, mtf.Variant(tag))
	default:
		var err error
		func() {
			defer internal.Recover(&err)
			internal.Raise(internal.MalformedHeader, "unknown coder tag")
		}()
		return err
	}
}

// DecodeBlock reverses EncodeBlock.
func DecodeBlock(r *bitio.Reader, tag Tag) ([]byte, error) {
	switch tag {
	case TagHuffman:
		return huffman.DecodeBlock(r)
	case TagArithmetic:
		return arith.DecodeBlock(r)
	case TagInterpolative:
		return interpolative.DecodeBlock(r, true)
	case TagInverseFreq:
		return ifreq.DecodeBlock(r)
	case TagMTF_F, TagMTF_f, TagMTF_A, TagMTF_a, TagMTF_0:
		return mtf.DecodeBlock(r, mtf.Variant(tag))
	default:
		var err error
		func() {
			defer internal.Recover(&err)
			internal.Raise(internal.MalformedHeader, "unknown coder tag")
		}()
		return nil, err
	}
}
