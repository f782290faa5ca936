package services

import (
	"context"
	"fmt"
	"mime/multipart"
)

// LocalPhotoStore est le PhotoStore de développement : il ne stocke rien
// et renvoie des URLs déterministes sous BASE_URL. Utilisé quand la
// configuration Cloudinary est absente (STORE_DRIVER=memory typiquement).
type LocalPhotoStore struct {
	BaseURL string
}

var _ PhotoStore = (*LocalPhotoStore)(nil)

func NewLocalPhotoStore(baseURL string) *LocalPhotoStore {
	return &LocalPhotoStore{BaseURL: baseURL}
}

func (s *LocalPhotoStore) UploadSubmissionPhoto(_ context.Context, _ multipart.File, submissionID string) (string, error) {
	return fmt.Sprintf("%s/static/submissions/%s.jpg", s.BaseURL, submissionID), nil
}

func (s *LocalPhotoStore) UploadProfilePhoto(_ context.Context, _ multipart.File, userID string) (string, error) {
	return fmt.Sprintf("%s/static/profiles/%s.jpg", s.BaseURL, userID), nil
}

func (s *LocalPhotoStore) UploadGroupPhoto(_ context.Context, _ multipart.File, groupID string) (string, error) {
	return fmt.Sprintf("%s/static/groups/%s.jpg", s.BaseURL, groupID), nil
}
