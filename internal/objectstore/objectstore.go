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
	"os"
)

type Driver string

const (
	DriverDisk Driver = "disk" // local filesystem (default, dev)
	DriverS3   Driver = "s3"   // S3 / MinIO compatible
)

// Info describes a stored blob.
type Info struct {
	Key         string `json:"key"`
	Size        int64  `json:"sizeBytes"`
	ContentType string `json:"contentType,omitempty"`
}

// Store is the blob storage behind project file attachments. Keys are
// namespaced per project: "<projectID>/<filename>". Put overwrites an
// existing key, replacement semantics live in the caller.
type Store interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	Driver() Driver
}

// FromEnv selects the backend via BLOB_DRIVER, defaulting to the local
// filesystem under PROJECT_FILE_DIR.
func FromEnv(ctx context.Context) (Store, error) {
	switch Driver(os.Getenv("BLOB_DRIVER")) {
	case DriverS3:
		return NewS3FromEnv(ctx)
	case DriverDisk, "":
		dir := os.Getenv("PROJECT_FILE_DIR")
		if dir == "" {
			dir = "./projects-files"
		}
		return NewDisk(dir)
	default:
		return nil, fmt.Errorf("unknown blob driver %q", os.Getenv("BLOB_DRIVER"))
	}
}
