package portfolios

import (
	"context"
	"fmt"

	"portfolio-views/internal/stores"

	"golang.org/x/sync/errgroup"
)

var allowedUploadExtensions = map[string]struct{}{
	".jpeg": {}, ".jpg": {}, ".png": {}, ".pdf": {}, ".doc": {},
	".docx": {}, ".xls": {}, ".xlsx": {}, ".txt": {},
}

// savedFiles holds the public URLs of stored uploads. Empty means not uploaded.
type savedFiles struct {
	profileImageURL  string
	resumeURL        string
	projectImageURLs []string
}

func (s *portfolioService) validateFiles(files *Files) error {
	if files == nil {
		return nil
	}
	if len(files.ProjectImages) > s.opts.MaxProjectImages {
		return errValidationFailed(fmt.Sprintf("at most %d project images are allowed", s.opts.MaxProjectImages), nil)
	}

	check := func(field string, upload *Upload) error {
		if upload == nil {
			return nil
		}
		if _, ok := allowedUploadExtensions[stores.UploadExtension(upload.Filename)]; !ok {
			return errValidationFailed(fmt.Sprintf("%s: only images and documents are allowed", field), nil)
		}
		if upload.Size > s.opts.MaxFileBytes {
			return errValidationFailed(fmt.Sprintf("%s: file too large: must be <= %d bytes", field, s.opts.MaxFileBytes), nil)
		}
		return nil
	}

	if err := check("profileImage", files.ProfileImage); err != nil {
		return err
	}
	if err := check("resume", files.Resume); err != nil {
		return err
	}
	for i, upload := range files.ProjectImages {
		if err := check(fmt.Sprintf("projectImages[%d]", i), upload); err != nil {
			return err
		}
	}
	return nil
}

// saveFiles stores all uploads concurrently. Only the first projectCount
// project images are kept. Files already written when another one fails stay
// on disk unreferenced.
func (s *portfolioService) saveFiles(ctx context.Context, files *Files, projectCount int) (*savedFiles, error) {
	saved := &savedFiles{projectImageURLs: make([]string, projectCount)}
	if files.isEmpty() {
		return saved, nil
	}

	group, groupCtx := errgroup.WithContext(ctx)
	save := func(dst *string, folder string, upload *Upload) {
		if upload == nil {
			return
		}
		group.Go(func() error {
			readCloser, err := upload.Open()
			if err != nil {
				return fmt.Errorf("open %s: %w", upload.Filename, err)
			}
			defer readCloser.Close()

			urlPath, err := s.uploadStore.Save(groupCtx, folder, upload.Filename, readCloser)
			if err != nil {
				return err
			}
			*dst = urlPath
			return nil
		})
	}

	save(&saved.profileImageURL, stores.UploadFolderProfiles, files.ProfileImage)
	save(&saved.resumeURL, stores.UploadFolderResumes, files.Resume)
	for i, upload := range files.ProjectImages {
		if i >= projectCount {
			break
		}
		save(&saved.projectImageURLs[i], stores.UploadFolderProjects, upload)
	}

	if err := group.Wait(); err != nil {
		return nil, errInternalUploadStoreFailed(err)
	}
	return saved, nil
}
