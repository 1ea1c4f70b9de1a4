// Copyright (C) The otukit Authors. All rights reserved.
//
// SPDX-License-Identifier: AGPL-3.0

package otukit

import (
	"bufio"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/klauspost/pgzip"
)

// openInput opens a command's input: "-" means stdin, a .gz suffix
// means gzip-compressed.
func openInput(fnm string, stdin io.Reader) (io.ReadCloser, error) {
	if fnm == "-" {
		return ioutil.NopCloser(stdin), nil
	}
	f, err := os.Open(fnm)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(fnm, ".gz") {
		gz, err := pgzip.NewReader(bufio.NewReaderSize(f, 4*1024*1024))
		if err != nil {
			f.Close()
			return nil, err
		}
		return gzReadCloser{gz, f}, nil
	}
	return f, nil
}

type gzReadCloser struct {
	*pgzip.Reader
	f *os.File
}

func (gz gzReadCloser) Close() error {
	err := gz.Reader.Close()
	if err2 := gz.f.Close(); err == nil {
		err = err2
	}
	return err
}

// openOutput opens a command's output: "-" means stdout.
func openOutput(fnm string, stdout io.Writer) (io.WriteCloser, error) {
	if fnm == "-" {
		return nopCloser{stdout}, nil
	}
	return os.OpenFile(fnm, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0777)
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
