package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/lequocbao/image-cropping/internal/models"
)

// UploadMultiple stores a batch of crop outputs concurrently. The
// returned slice is positional: urls[i] belongs to files[i], and a
// failed upload leaves an empty string there while its cause is folded
// into the returned error.
func (s *StorageService) UploadMultiple(ctx context.Context, files []models.UploadFile) ([]string, error) {
	if len(files) == 0 {
		return []string{}, nil
	}

	urls := make([]string, len(files))
	errs := make([]error, len(files))

	numWorkers := 5
	if len(files) < numWorkers {
		numWorkers = len(files)
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				buffer := bytes.NewBuffer(files[i].Data)
				url, err := s.Upload(ctx, buffer, files[i].Filename, files[i].ContentType)
				urls[i] = url
				errs[i] = err
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()

	var failed []string
	for i, err := range errs {
		if err != nil {
			urls[i] = ""
			failed = append(failed, fmt.Sprintf("file %d: %v", i, err))
		}
	}

	if len(failed) > 0 {
		return urls, fmt.Errorf("failed to upload %d files: %s",
			len(failed), strings.Join(failed, "; "))
	}

	return urls, nil
}
