package embedhandlers

import "fmt"

// ImageHandler is a minimal, non-recursive handler for the "image"
// embed type: the embed value is the image source URL (a string), and
// composing/transforming two images always keeps the later one,
// mirroring how Quill's own image blot treats a retain-embed as an
// opaque reference that either stays or is wholesale replaced.
type ImageHandler struct{}

// Compose keeps e2 when this is an overlay (insert-over-retain,
// isRetain false), and also keeps e2 on retain-over-retain — an image
// embed has no internal structure to fold, only to replace.
func (ImageHandler) Compose(e1, e2 any, isRetain bool) (any, error) {
	src, ok := e2.(string)
	if !ok {
		return nil, fmt.Errorf("embedhandlers: image handler expects a string source, got %T", e2)
	}
	return src, nil
}

// Transform keeps e2: a concurrent edit to one image retain does not
// need to defer to another image retain, since neither can partially
// apply.
func (ImageHandler) Transform(e1, e2 any, priority bool) (any, error) {
	src, ok := e2.(string)
	if !ok {
		return nil, fmt.Errorf("embedhandlers: image handler expects a string source, got %T", e2)
	}
	return src, nil
}

// Invert restores base's source.
func (ImageHandler) Invert(e, base any) (any, error) {
	src, ok := base.(string)
	if !ok {
		return nil, fmt.Errorf("embedhandlers: image handler expects a string source, got %T", base)
	}
	return src, nil
}
