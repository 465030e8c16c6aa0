package storage

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
)

// Allow-list for uploaded images. A file is accepted when EITHER its reported
// MIME type OR its extension matches: some clients mis-report the MIME type
// for HEIC/HEIF, so either signal is enough.
var allowedMimeTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".heic": true,
	".heif": true,
}

// UnsupportedFileError names the file that failed the type allow-list.
type UnsupportedFileError struct {
	Filename string
}

func (e *UnsupportedFileError) Error() string {
	return fmt.Sprintf("unsupported file %q: only JPEG, JPG, PNG, WebP, HEIC and HEIF formats are allowed", e.Filename)
}

// FileTooLargeError names a file exceeding the per-file size limit.
type FileTooLargeError struct {
	Filename string
	MaxBytes int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file %q exceeds the %d MB size limit", e.Filename, e.MaxBytes/(1024*1024))
}

// TooManyFilesError reports a batch over the per-request file count bound.
type TooManyFilesError struct {
	Count, Max int
}

func (e *TooManyFilesError) Error() string {
	return fmt.Sprintf("too many files: %d uploaded, at most %d allowed", e.Count, e.Max)
}

// Ingestor validates and durably stores batches of uploaded images.
type Ingestor struct {
	uploader Uploader
	maxFiles int
	maxBytes int64
}

// NewIngestor creates an Ingestor bounded by maxFiles per batch and maxBytes
// per file.
func NewIngestor(uploader Uploader, maxFiles int, maxBytes int64) *Ingestor {
	return &Ingestor{uploader: uploader, maxFiles: maxFiles, maxBytes: maxBytes}
}

// ValidateFile checks a single file header against the type and size policy.
func (ing *Ingestor) ValidateFile(fh *multipart.FileHeader) error {
	if fh.Size > ing.maxBytes {
		return &FileTooLargeError{Filename: fh.Filename, MaxBytes: ing.maxBytes}
	}
	contentType := strings.ToLower(strings.TrimSpace(fh.Header.Get("Content-Type")))
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedMimeTypes[contentType] && !allowedExtensions[ext] {
		return &UnsupportedFileError{Filename: fh.Filename}
	}
	return nil
}

// SaveAll validates every file first, then stores them, returning the public
// paths in upload order. If any file fails validation nothing is stored. If a
// save fails midway, files already written in the batch are removed
// best-effort before the error is returned, so a half-accepted batch never
// leaks orphans into the record store.
func (ing *Ingestor) SaveAll(ctx context.Context, files []*multipart.FileHeader) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > ing.maxFiles {
		return nil, &TooManyFilesError{Count: len(files), Max: ing.maxFiles}
	}

	for _, fh := range files {
		if err := ing.ValidateFile(fh); err != nil {
			return nil, err
		}
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		src, err := fh.Open()
		if err != nil {
			ing.rollback(ctx, paths)
			return nil, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
		}
		publicPath, err := ing.uploader.Save(ctx, StoredName(fh.Filename), src, fh.Header.Get("Content-Type"))
		src.Close()
		if err != nil {
			ing.rollback(ctx, paths)
			return nil, fmt.Errorf("failed to store uploaded file %q: %w", fh.Filename, err)
		}
		paths = append(paths, publicPath)
	}

	return paths, nil
}

func (ing *Ingestor) rollback(ctx context.Context, paths []string) {
	for _, p := range paths {
		if err := ing.uploader.Delete(ctx, p); err != nil {
			log.Printf("Ingest rollback: failed to remove %s: %v", p, err)
		}
	}
}
