package materials

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/estudos/internal/api"
	"github.com/abhisek/estudos/internal/domain"
)

// Uploader is the part of api.Gateway that accepts materials.
type Uploader interface {
	UploadMaterials(ctx context.Context, files []api.Material) (*api.UploadResult, error)
}

// Upload opens files, sends them in one request and returns the plan with
// its quizzes and session id attached.
func Upload(ctx context.Context, u Uploader, files []File) (domain.StudyPlan, error) {
	handles := make([]*os.File, 0, len(files))
	defer func() {
		for _, fh := range handles {
			fh.Close()
		}
	}()

	mats := make([]api.Material, 0, len(files))
	for _, f := range files {
		fh, err := os.Open(f.Path)
		if err != nil {
			return domain.StudyPlan{}, fmt.Errorf("open %s: %w", f.Path, err)
		}
		handles = append(handles, fh)
		mats = append(mats, api.Material{Name: f.Name, Reader: fh})
	}

	res, err := u.UploadMaterials(ctx, mats)
	if err != nil {
		return domain.StudyPlan{}, err
	}
	return res.Plan(), nil
}
