package monopng

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/monopng/mono"
)

const numWorkers = 10

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".gif", ".jpg", ".jpeg":
		return true
	}
	return false
}

func (m *MonoPNG) findImages(ctx context.Context, base, skip string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if file != base && info.Name()[0] == '.' {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if info.Mode().IsDir() {
				// Don't convert our own output
				if file == skip {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !isImage(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (m *MonoPNG) convertFile(e *mono.Encoder, src, dst, file string) error {
	rel, err := filepath.Rel(src, file)
	if err != nil {
		return err
	}
	target := filepath.Join(dst, strings.TrimSuffix(rel, filepath.Ext(rel))+".png")

	sha, b, err := hashFile(file)
	if err != nil {
		return err
	}

	settings := e.Settings()
	screen, err := m.db.FindScreen(sha, settings)
	if err != nil {
		return err
	}

	if screen == nil {
		img, _, err := image.Decode(bytes.NewReader(b))
		if err != nil {
			m.logger.Printf("Skipping \"%s\": %s\n", file, err)
			return nil
		}

		e.SetImage(img)
		if screen, err = e.Encode(); err != nil {
			return err
		}

		if err := m.db.AddScreen(sha, settings, screen); err != nil {
			return err
		}
	} else {
		m.logger.Printf("Using cached screen for \"%s\"\n", file)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	return os.WriteFile(target, screen, 0644)
}

func (m *MonoPNG) imageWorker(ctx context.Context, src, dst string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)

		// Each worker has its own encoder
		e := mono.NewEncoder(m.opts...)
		for file := range in {
			if err := m.convertFile(e, src, dst, file); err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Convert encodes every image found under src, writing each one to the
// same relative path under dst with a .png extension.
func (m *MonoPNG) Convert(src, dst string) error {
	src, err := filepath.Abs(src)
	if err != nil {
		return err
	}

	dst, err = filepath.Abs(dst)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := m.findImages(ctx, src, dst)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < numWorkers; i++ {
		errc, err := m.imageWorker(ctx, src, dst, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
