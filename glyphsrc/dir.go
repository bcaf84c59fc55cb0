// seehuhn.de/go/gridfont - compile pixel-grid glyph sources into fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package glyphsrc

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Ext is the file name extension of glyph source files.
const Ext = ".txt"

// ReadDirs parses all glyph source files in the given directories.
// Subdirectories are not searched, and directories which do not exist
// contribute no records.
//
// Files are parsed concurrently.  The records are returned sorted by path.
// Files which fail to parse are reported in perrs, also sorted by path, and
// do not stop the other files from being read.  The error return is only
// used for I/O errors and for cancellation of ctx.
func ReadDirs(ctx context.Context, dirs ...string) (recs []*Record, perrs []*ParseError, err error) {
	paths, err := listSources(dirs)
	if err != nil {
		return nil, nil, err
	}

	type result struct {
		rec  *Record
		perr *ParseError
	}
	results := make([]result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rec, err := Parse(path, data)
			var perr *ParseError
			switch {
			case errors.As(err, &perr):
				results[i].perr = perr
			case err != nil:
				return err
			default:
				results[i].rec = rec
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	for _, r := range results {
		if r.perr != nil {
			perrs = append(perrs, r.perr)
		} else {
			recs = append(recs, r.rec)
		}
	}
	return recs, perrs, nil
}

// listSources returns the sorted, de-duplicated list of glyph source files
// in dirs.
func listSources(dirs []string) ([]string, error) {
	var paths []string
	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		} else if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), Ext) {
				continue
			}
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}
