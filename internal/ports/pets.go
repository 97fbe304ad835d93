package ports

import "context"

// ImageSource looks up a random pet image.
type ImageSource interface {
	// RandomImage returns the URL of a random image. Failures wrap
	// domain.ErrImageUnavailable.
	RandomImage(ctx context.Context) (string, error)
}

// ImageProbe checks that the image behind a URL can actually be decoded.
type ImageProbe interface {
	Probe(ctx context.Context, url string) error
}
