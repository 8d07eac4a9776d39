package ops

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"

	"github.com/orbitward/filemgr/internal/dispatch"
)

// Decompress expands the archive at Source1 into Target. The codec is
// chosen by file extension: .gz for gzip, .zst for zstd.
func (r *Runner) Decompress(ctx context.Context, e dispatch.Entry) error {
	src, closeSrc, err := r.open(e.Source1)
	if err != nil {
		return r.fail(e, "Decompress File", err)
	}
	defer closeSrc()

	var reader io.Reader
	switch {
	case strings.HasSuffix(e.Source1, ".gz"):
		gz, err := gzip.NewReader(src)
		if err != nil {
			return r.fail(e, "Decompress File", err)
		}
		defer gz.Close()
		reader = gz
	case strings.HasSuffix(e.Source1, ".zst"):
		zr, err := zstd.NewReader(src)
		if err != nil {
			return r.fail(e, "Decompress File", err)
		}
		defer zr.Close()
		reader = zr
	default:
		return r.fail(e, "Decompress File",
			fmt.Errorf("unsupported archive format: %s", e.Source1))
	}

	dst, closeDst, err := r.create(e.Target)
	if err != nil {
		return r.fail(e, "Decompress File", err)
	}
	defer closeDst()

	if _, err := io.Copy(dst, reader); err != nil {
		return r.fail(e, "Decompress File", err)
	}

	r.complete(e, "Decompress File command: src = %s, tgt = %s", e.Source1, e.Target)
	return nil
}
