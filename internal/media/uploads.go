package media

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/playercv/platform/internal/domain"
)

// MaxUploadBytes caps a single image upload.
const MaxUploadBytes = 5 << 20

var extByMime = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/gif":     ".gif",
	"image/webp":    ".webp",
	"image/svg+xml": ".svg",
}

// Save stores an uploaded image under kind with a generated name and returns
// the store-relative path to persist on the profile.
func (s *Store) Save(kind, filename, contentType string, r io.Reader) (string, error) {
	if kind != KindPhotos && kind != KindLogos {
		return "", domain.ErrValidation(fmt.Sprintf("type de fichier inconnu : %s", kind))
	}
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if !strings.HasPrefix(contentType, "image/") {
		return "", domain.ErrValidation("seules les images sont acceptées")
	}

	data, err := io.ReadAll(io.LimitReader(r, MaxUploadBytes+1))
	if err != nil {
		return "", domain.ErrInternal("lecture du fichier", err)
	}
	if len(data) > MaxUploadBytes {
		return "", domain.ErrPayloadTooLarge("image trop volumineuse (5 Mo maximum)")
	}
	if len(data) == 0 {
		return "", domain.ErrValidation("fichier vide")
	}

	name := path.Join(kind, uuid.NewString()+uploadExt(filename, contentType))
	if err := s.root.MkdirAll(kind, 0o755); err != nil {
		return "", domain.ErrInternal("création du dossier", err)
	}
	if err := s.root.WriteFile(name, data, 0o644); err != nil {
		return "", domain.ErrInternal("enregistrement du fichier", err)
	}
	s.logger.Info("image stored", "path", name, "bytes", len(data))
	return name, nil
}

// uploadExt keeps a known image extension from the client name, else derives
// one from the content type.
func uploadExt(filename, contentType string) string {
	ext := strings.ToLower(path.Ext(strings.ReplaceAll(filename, "\\", "/")))
	if _, ok := mimeByExt[ext]; ok {
		return ext
	}
	mime, _, _ := strings.Cut(contentType, ";")
	return extByMime[strings.TrimSpace(mime)]
}
