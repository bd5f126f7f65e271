package analyzerimpl

import (
	"context"
	"encoding/base64"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// downloadConcurrency bounds the image fan-out so a single request cannot
// open an unreasonable number of outbound connections.
const downloadConcurrency = 5

// downloadImages fetches every URL concurrently and returns the surviving
// images as content-type-tagged base64 data URLs, in the original URL order.
// A failed download is logged and dropped, never aborting the batch.
func (a *AnalyzerImpl) downloadImages(ctx context.Context, urls []string) []string {
	slots := make([]string, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(downloadConcurrency)

	for i, url := range urls {
		i, url := i, url // per-iteration copies; the go directive predates Go 1.22 loopvar semantics
		g.Go(func() error {
			resp, err := a.http.R().SetContext(gctx).Get(url)
			if err != nil {
				a.Logger.Warn("Image download failed", "url", url, "error", err)
				return nil
			}
			if resp.IsError() {
				a.Logger.Warn("Image download failed", "url", url, "status", resp.StatusCode())
				return nil
			}

			contentType := resp.Header().Get("Content-Type")
			if contentType == "" {
				contentType = "image/jpeg"
			}

			slots[i] = fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(resp.Body()))
			return nil
		})
	}
	// Workers only ever return nil; Wait is used for the fan-in.
	_ = g.Wait()

	images := make([]string, 0, len(slots))
	for _, dataURL := range slots {
		if dataURL != "" {
			images = append(images, dataURL)
		}
	}
	return images
}
