// Command bwtc is the outer driver for the entropy back-end: it slices
// input into fixed-size blocks, runs the Burrows-Wheeler transform on
// each, dispatches to the selected entropy coder, and assembles the
// framed stream (and reverses the process on decompress).
package main

import (
	"fmt"
	"hash/crc32"
	"io"
	"log"
	"os"

	"github.com/dsnet/golib/hashutil"
	"github.com/spf13/cobra"

	"github.com/jkokkala/bwtc-go/bitio"
	"github.com/jkokkala/bwtc-go/block"
	"github.com/jkokkala/bwtc-go/bwt"
)

var (
	blockSize int
	coderTag  string
	outPath   string
)

func coderFromFlag(s string) (block.Tag, error) {
	switch s {
	case "huffman":
		return block.TagHuffman, nil
	case "arith":
		return block.TagArithmetic, nil
	case "interp":
		return block.TagInterpolative, nil
	case "ifreq":
		return block.TagInverseFreq, nil
	case "mtf-huff":
		return block.TagMTF_F, nil
	case "mtf-huff-rle":
		return block.TagMTF_f, nil
	case "mtf-arith":
		return block.TagMTF_A, nil
	case "mtf-arith-rle":
		return block.TagMTF_a, nil
	case "mtf-huff-zrle":
		return block.TagMTF_0, nil
	default:
		return 0, fmt.Errorf("unknown coder %q", s)
	}
}

func openOutput() (io.WriteCloser, error) {
	if outPath == "" || outPath == "-" {
		return os.Stdout, nil
	}
	return os.Create(outPath)
}

func readInput(args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}

func runCompress(cmd *cobra.Command, args []string) error {
	tag, err := coderFromFlag(coderTag)
	if err != nil {
		return err
	}

	data, err := readInput(args)
	if err != nil {
		return err
	}
	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	w := bitio.NewWriter()
	var combined uint32
	nblocks := 0
	for off := 0; off < len(data); {
		end := off + blockSize
		if end > len(data) {
			end = len(data)
		}
		chunk := append([]byte(nil), data[off:end]...)

		crc := crc32.ChecksumIEEE(chunk)
		if nblocks == 0 {
			combined = crc
		} else {
			combined = hashutil.CombineCRC32(crc32.IEEE, combined, crc, int64(len(chunk)))
		}

		ptr := bwt.Encode(chunk)
		block.WriteHeader(w, block.Header{Coder: tag, Ptr: ptr, Size: len(chunk)})
		if err := block.EncodeBlock(w, tag, chunk); err != nil {
			return err
		}
		nblocks++
		off = end
	}
	block.WriteEnd(w)
	w.Write48Value(uint64(combined))

	if _, err := out.Write(w.Bytes()); err != nil {
		return err
	}
	log.Printf("bwtc: compressed %d byte(s) in %d block(s)", len(data), nblocks)
	return nil
}

func runDecompress(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	out, err := openOutput()
	if err != nil {
		return err
	}
	defer out.Close()

	r := bitio.NewReader(data)
	var combined uint32
	nblocks := 0
	for {
		h, ok := block.ReadHeader(r)
		if !ok {
			break
		}
		chunk, err := block.DecodeBlock(r, h.Coder)
		if err != nil {
			return err
		}
		bwt.Decode(chunk, h.Ptr)

		crc := crc32.ChecksumIEEE(chunk)
		if nblocks == 0 {
			combined = crc
		} else {
			combined = hashutil.CombineCRC32(crc32.IEEE, combined, crc, int64(len(chunk)))
		}
		if _, err := out.Write(chunk); err != nil {
			return err
		}
		nblocks++
	}

	footer := r.Read48()
	if uint32(footer) != combined {
		return fmt.Errorf("bwtc: checksum mismatch after %d block(s)", nblocks)
	}
	log.Printf("bwtc: decompressed %d block(s)", nblocks)
	return nil
}

func main() {
	root := &cobra.Command{
		Use:   "bwtc",
		Short: "BWT-based block compressor entropy back-end",
	}

	compressCmd := &cobra.Command{
		Use:   "compress [file]",
		Short: "compress a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompress,
	}
	compressCmd.Flags().IntVar(&blockSize, "block-size", 900000, "block size in bytes")
	compressCmd.Flags().StringVar(&coderTag, "coder", "mtf-arith-rle", "entropy coder: huffman, arith, interp, ifreq, mtf-huff, mtf-huff-rle, mtf-arith, mtf-arith-rle, mtf-huff-zrle")
	compressCmd.Flags().StringVarP(&outPath, "output", "o", "-", "output file, - for stdout")

	decompressCmd := &cobra.Command{
		Use:   "decompress [file]",
		Short: "decompress a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDecompress,
	}
	decompressCmd.Flags().StringVarP(&outPath, "output", "o", "-", "output file, - for stdout")

	root.AddCommand(compressCmd, decompressCmd)
	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
