/*
 * compress.go, part of zeomerge.
 *
 * Copyright 2026 The zeomerge Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package structio

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Compression is the compression applied to a structure file.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	Flate
)

//compressionLevel is used for gzip and flate.
const compressionLevel = 6

var suffixes = map[string]Compression{".gz": Gzip, ".zst": Zstd, ".zz": Flate}

func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	case Flate:
		return "flate"
	}
	return "none"
}

//SplitCompression returns the compression for name, given by its suffix,
//and name without the compression suffix.
func SplitCompression(name string) (Compression, string) {
	ext := strings.ToLower(filepath.Ext(name))
	if c, ok := suffixes[ext]; ok {
		return c, name[:len(name)-len(ext)]
	}
	return None, name
}

//zstd decoders have a Close method with no return value.
type zstdCloser struct {
	*zstd.Decoder
}

func (z zstdCloser) Close() error {
	z.Decoder.Close()
	return nil
}

//fileReader reads from a decompressor and closes both it and the file.
type fileReader struct {
	io.Reader
	dec io.Closer
	f   *os.File
}

func (r *fileReader) Close() error {
	var err error
	if r.dec != nil {
		err = r.dec.Close()
	}
	if err2 := r.f.Close(); err == nil {
		err = err2
	}
	return err
}

//decompressor wraps r to read data compressed with c.
func decompressor(r io.Reader, c Compression) (io.ReadCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewReader(r)
	case Zstd:
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, err
		}
		return zstdCloser{d}, nil
	case Flate:
		return flate.NewReader(r), nil
	}
	return io.NopCloser(r), nil
}

//compressor wraps w to compress the data written with c.
func compressor(w io.Writer, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		return gzip.NewWriterLevel(w, compressionLevel)
	case Zstd:
		return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
	case Flate:
		return flate.NewWriter(w, compressionLevel)
	}
	return nopWriteCloser{w}, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

//openFile opens name for reading, decompressing it if its suffix says so.
func openFile(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	c, _ := SplitCompression(name)
	dec, err := decompressor(bufio.NewReader(f), c)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &fileReader{Reader: dec, dec: dec, f: f}, nil
}

//atomicWrite writes to a temporary file in the same directory as name, using write, and
//renames it to name only if everything went well. Nothing is left behind on errors.
func atomicWrite(name string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(name), "."+filepath.Base(name)+".tmp*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()
	c, _ := SplitCompression(name)
	buf := bufio.NewWriter(tmp)
	w, err := compressor(buf, c)
	if err != nil {
		return err
	}
	if err = write(w); err != nil {
		return err
	}
	if err = w.Close(); err != nil {
		return err
	}
	if err = buf.Flush(); err != nil {
		return err
	}
	//CreateTemp makes owner-only files.
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}
