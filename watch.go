package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/hesusruiz/sectlink/docio"
)

// watch checks periodically if the input file has been modified, and if so
// it processes the file again. It returns when ctx is done.
// Errors in the document are logged and do not stop watching.
func (r *run) watch(ctx context.Context, interval time.Duration) error {

	fileSource, ok := r.source.(docio.FileSource)
	if !ok {
		return errors.New("only files can be watched")
	}

	var oldTimestamp time.Time

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {

		// Get the modified timestamp of the input file
		info, err := os.Stat(fileSource.Path)
		if err != nil {
			return &docio.SourceUnavailableError{Op: "stat", Target: fileSource.Path, Err: err}
		}

		// If current modified timestamp is newer than the previous timestamp, process the file
		if currentTimestamp := info.ModTime(); oldTimestamp.Before(currentTimestamp) {
			oldTimestamp = currentTimestamp
			r.log.Infow("processing", "file", fileSource.Path)
			if err := r.processOnce(ctx); err != nil {
				r.log.Errorw("processing failed", "file", fileSource.Path, "error", err)
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}
