// Copyright (C) 2024 the polintern authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package objectstore

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

// DiskStore stores blobs below a root directory, one subdirectory per
// project.
type DiskStore struct {
	root string
}

func NewDisk(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("could not create blob root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

func (d *DiskStore) Driver() Driver { return DriverDisk }

// path rejects keys escaping the root. Keys are server-constructed, this
// guards against a sanitization bug upstream, not against callers.
func (d *DiskStore) path(key string) (string, error) {
	p := filepath.Join(d.root, filepath.FromSlash(key))
	if !strings.HasPrefix(p, filepath.Clean(d.root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("invalid blob key %q", key)
	}
	return p, nil
}

func (d *DiskStore) Put(_ context.Context, key string, r io.Reader, contentType string) (Info, error) {
	p, err := d.path(key)
	if err != nil {
		return Info{}, err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return Info{}, err
	}

	f, err := os.Create(p)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	size, err := io.Copy(f, r)
	if err != nil {
		os.Remove(p) // nolint:errcheck
		return Info{}, err
	}

	return Info{Key: key, Size: size, ContentType: contentType}, nil
}

func (d *DiskStore) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	p, err := d.path(key)
	if err != nil {
		return Info{}, nil, err
	}

	f, err := os.Open(p)
	if err != nil {
		return Info{}, nil, err
	}

	stat, err := f.Stat()
	if err != nil {
		f.Close()
		return Info{}, nil, err
	}

	return Info{
		Key:         key,
		Size:        stat.Size(),
		ContentType: mime.TypeByExtension(filepath.Ext(p)),
	}, f, nil
}

func (d *DiskStore) Delete(_ context.Context, key string) error {
	p, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
