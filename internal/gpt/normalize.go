package gpt

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zip"
)

const (
	// Manifest is the entry point gpt opens for Sentinel-3 products.
	Manifest = "xfdumanifest.xml"

	archivePattern = "*S3*.zip"
	folderPattern  = "*S3*.SEN3"
)

// normalize returns the path gpt should open for input. Sentinel-3 archives
// are extracted into dir first.
func normalize(input, dir string, logger *slog.Logger) (string, error) {
	base := filepath.Base(input)

	if ok, _ := filepath.Match(archivePattern, base); ok {
		logger.Debug("Detected Sentinel-3 archive, extracting.", "archive", input)
		if err := extract(input, dir, logger); err != nil {
			return "", err
		}
		stem := strings.TrimSuffix(base, filepath.Ext(base))
		manifest := filepath.Join(dir, stem+".SEN3", Manifest)
		if _, err := os.Stat(manifest); err != nil {
			return "", fmt.Errorf("archive %s has no %s.SEN3/%s: %w", input, stem, Manifest, err)
		}
		return manifest, nil
	}

	if ok, _ := filepath.Match(folderPattern, base); ok {
		logger.Debug("Detected Sentinel-3 folder.", "folder", input)
		return filepath.Join(input, Manifest), nil
	}

	return input, nil
}

// extract unpacks every entry of the archive below dir.
func extract(archive, dir string, logger *slog.Logger) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return fmt.Errorf("opening archive: %w", err)
	}
	defer r.Close()

	root := filepath.Clean(dir) + string(filepath.Separator)
	var total uint64
	for _, f := range r.File {
		target := filepath.Join(dir, filepath.FromSlash(f.Name))
		if !strings.HasPrefix(target, root) {
			return fmt.Errorf("archive entry %q escapes the extraction directory", f.Name)
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}
		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
		total += f.UncompressedSize64
	}

	logger.Debug("Archive extracted.", "archive", archive, "entries", len(r.File), "size", humanize.Bytes(total))
	return nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	src, err := f.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}
