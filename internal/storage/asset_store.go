package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/Sukh767/Volt-Vogue/internal/model"
)

// AssetStore keeps product images on local disk under a fixed root and
// serves them by public URL path. It stands in for the third-party asset
// host the frontend uploads to in production.
type AssetStore struct {
	rootAbs   string
	publicURL string
}

func NewAssetStore(root string, publicURL string) (*AssetStore, error) {
	if strings.TrimSpace(root) == "" {
		return nil, fmt.Errorf("asset root cannot be empty")
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve asset root: %w", err)
	}

	if err := os.MkdirAll(rootAbs, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root: %w", err)
	}

	return &AssetStore{rootAbs: rootAbs, publicURL: strings.TrimRight(publicURL, "/")}, nil
}

func (s *AssetStore) RootAbs() string {
	return s.rootAbs
}

// Save decodes a data URL ("data:image/png;base64,...") and writes it under
// the asset root. It returns the asset id and the public URL.
func (s *AssetStore) Save(_ context.Context, dataURL string) (string, string, error) {
	payload := dataURL
	ext := ".bin"
	if strings.HasPrefix(dataURL, "data:") {
		header, rest, found := strings.Cut(dataURL, ",")
		if !found {
			return "", "", fmt.Errorf("%w: malformed data url", model.ErrInvalidInput)
		}
		payload = rest
		switch {
		case strings.Contains(header, "image/png"):
			ext = ".png"
		case strings.Contains(header, "image/jpeg"), strings.Contains(header, "image/jpg"):
			ext = ".jpg"
		case strings.Contains(header, "image/webp"):
			ext = ".webp"
		}
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", "", fmt.Errorf("%w: image payload is not valid base64", model.ErrInvalidInput)
	}

	assetID := uuid.NewString() + ext
	if err := os.WriteFile(filepath.Join(s.rootAbs, assetID), data, 0o600); err != nil {
		return "", "", fmt.Errorf("write asset %q: %w", assetID, err)
	}

	return assetID, s.publicURL + "/" + assetID, nil
}

// Delete removes a stored asset. Removing an already-absent asset is not an
// error; product deletion must stay idempotent.
func (s *AssetStore) Delete(_ context.Context, assetID string) error {
	cleaned := filepath.Base(strings.TrimSpace(assetID))
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return fmt.Errorf("%w: invalid asset id", model.ErrInvalidInput)
	}

	err := os.Remove(filepath.Join(s.rootAbs, cleaned))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove asset %q: %w", cleaned, err)
	}
	return nil
}
