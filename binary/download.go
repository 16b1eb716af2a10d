package binary

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/fatih/color"
)

// fetch downloads the gzip tarball at url and unpacks it into destination
// while it streams, without keeping a copy of the archive around.
func fetch(ctx context.Context, client *http.Client, log logger, url, destination string) (err error) {
	log.detail(fmt.Sprintf("downloading %s", url))

	start := time.Now()
	defer func() { log.elapsed(start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", useragent)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download archive: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("received unexpected response when downloading archive: http%d", resp.StatusCode)
	}

	data, finish := progress(resp.Body, resp.ContentLength, log)
	defer finish()

	if err := untar(data, destination, log); err != nil {
		return fmt.Errorf("failed to extract archive: %w", err)
	}

	return nil
}

// progress wraps an io.Reader to display a progress bar when the log output is a terminal.
// Returns the wrapped reader and a function to finalize the progress display.
func progress(reader io.Reader, size int64, log logger) (io.Reader, func()) {
	terminal, ok := log.terminal()
	if !ok {
		return reader, func() {}
	}

	bar := pb.
		New64(size).
		SetTemplate(
			pb.ProgressBarTemplate(
				color.New(color.FgHiBlack).Sprint(
					`   └ {{counters . }}` +
						` {{bar . "[" "=" ">" " " "]" }} {{percent . }}` +
						` {{speed . }}`,
				),
			),
		).
		SetWriter(terminal).
		SetRefreshRate(time.Second / 60).
		SetMaxWidth(100).
		Start()

	return bar.NewProxyReader(reader), func() { bar.Finish() }
}
