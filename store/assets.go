package store

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// allowed extensions per asset kind
var assetExtensions = map[string]map[string]bool{
	AssetImage: {".jpg": true, ".jpeg": true, ".png": true, ".webp": true},
	AssetVideo: {".mp4": true, ".mov": true, ".webm": true},
	AssetPDF:   {".pdf": true},
}

var assetSubdirs = map[string]string{
	AssetImage: "images",
	AssetVideo: "videos",
	AssetPDF:   "documents",
}

// LocalAssetStore writes uploaded files under a base directory and returns
// the relative path as the asset reference.
type LocalAssetStore struct {
	BaseDir string
}

// NewLocalAssetStore builds an asset store rooted at baseDir.
func NewLocalAssetStore(baseDir string) *LocalAssetStore {
	return &LocalAssetStore{BaseDir: baseDir}
}

// UploadAsset saves the file under a uuid filename and returns its reference.
// The extension must match the declared kind.
func (s *LocalAssetStore) UploadAsset(kind string, file *multipart.FileHeader) (string, error) {
	subdir, ok := assetSubdirs[kind]
	if !ok {
		return "", fmt.Errorf("unknown asset kind %q", kind)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !assetExtensions[kind][ext] {
		return "", fmt.Errorf("file extension %q is not allowed for %s assets", ext, kind)
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(s.BaseDir, subdir)
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	name := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(destDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.ToSlash(filepath.Join("uploads", subdir, name)), nil
}
