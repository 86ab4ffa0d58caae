// Copyright 2017 The go-hep Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rootio is a self-describing deserializer for the ROOT binary
// container format used throughout high-energy physics. It reads a
// file's directory tree and the objects stored in it, decoding those
// objects according to schema records ("streamers") embedded in the
// file itself — including objects whose class the package has never
// seen before a given file is opened.
//
// The package depends only on two abstract collaborators: a ByteSource
// for random-access reads (package source ships a local memory-mapped
// implementation and an HTTP range-request one), and a compress.Registry
// for decompressing object payloads (package compress ships zlib and
// LZMA codecs). Tree/branch analysis of TTree-shaped records is layered
// on top of this package, not part of it.
package rootio
