package utils

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
)

var gzipMagic = []byte{0x1f, 0x8b}

// body closes the decoder, if any, together with the underlying stream.
type body struct {
	io.Reader
	closers []io.Closer
}

func (b body) Close() error {
	var errs []error
	for _, c := range b.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// MaybeGunzip sniffs the gzip magic and decodes transparently. Servers that
// pre-compress database.json without Content-Encoding are served this way.
func MaybeGunzip(src io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(src)
	head, err := br.Peek(len(gzipMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if !bytes.Equal(head, gzipMagic) {
		return body{Reader: br, closers: []io.Closer{src}}, nil
	}

	zr, err := gzip.NewReader(br)
	if err != nil {
		return nil, err
	}
	return body{Reader: zr, closers: []io.Closer{zr, src}}, nil
}

func GzipBytes(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(src); err != nil {
		return nil, errors.Join(err, zw.Close())
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
