package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/MilesT98/Actify/internal/config"
)

// PhotoStore stocke les binaires photo et renvoie une URL opaque.
// Le reste du serveur ne manipule que des URLs, jamais des octets.
type PhotoStore interface {
	UploadSubmissionPhoto(ctx context.Context, file multipart.File, submissionID string) (string, error)
	UploadProfilePhoto(ctx context.Context, file multipart.File, userID string) (string, error)
	UploadGroupPhoto(ctx context.Context, file multipart.File, groupID string) (string, error)
}

// CloudinaryService implémente PhotoStore sur Cloudinary
type CloudinaryService struct {
	cld *cloudinary.Cloudinary
}

var _ PhotoStore = (*CloudinaryService)(nil)

func NewCloudinaryService(cfg *config.Config) (*CloudinaryService, error) {
	if cfg.CloudinaryCloudName == "" || cfg.CloudinaryAPIKey == "" || cfg.CloudinaryAPISecret == "" {
		return nil, fmt.Errorf("cloudinary configuration is missing")
	}

	cld, err := cloudinary.NewFromParams(
		cfg.CloudinaryCloudName,
		cfg.CloudinaryAPIKey,
		cfg.CloudinaryAPISecret,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary: %w", err)
	}

	return &CloudinaryService{cld: cld}, nil
}

// UploadSubmissionPhoto envoie la preuve photo d'une soumission
func (s *CloudinaryService) UploadSubmissionPhoto(ctx context.Context, file multipart.File, submissionID string) (string, error) {
	publicID := fmt.Sprintf("submissions/%s", submissionID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "actify/submissions",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Transformation: "c_limit,h_1600,w_1200,q_auto", // Format portrait, qualité auto
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload submission photo: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// UploadProfilePhoto envoie la photo de profil d'un utilisateur
func (s *CloudinaryService) UploadProfilePhoto(ctx context.Context, file multipart.File, userID string) (string, error) {
	publicID := fmt.Sprintf("profiles/%s", userID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "actify/profiles",
		Overwrite:      &overwrite, // Écrase l'ancienne photo
		ResourceType:   "image",
		Format:         "jpg",
		Transformation: "c_fill,g_face,h_500,w_500", // Carré centré sur le visage
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload profile photo: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// UploadGroupPhoto envoie la photo de couverture d'un groupe
func (s *CloudinaryService) UploadGroupPhoto(ctx context.Context, file multipart.File, groupID string) (string, error) {
	publicID := fmt.Sprintf("groups/%s", groupID)
	overwrite := true

	uploadResult, err := s.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		PublicID:       publicID,
		Folder:         "actify/groups",
		Overwrite:      &overwrite,
		ResourceType:   "image",
		Transformation: "c_fill,h_800,w_1200", // Format paysage
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload group photo: %w", err)
	}

	return uploadResult.SecureURL, nil
}

// DeleteImage supprime une image par son public ID
func (s *CloudinaryService) DeleteImage(ctx context.Context, publicID string) error {
	_, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: "image",
	})
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}

	return nil
}
