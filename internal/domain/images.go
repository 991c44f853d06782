package domain

import (
	"fmt"
)

// ImageList is the combined ordered image list for a product. Index 0 is
// always the main image; everything after it is the gallery in display
// order. Reordering the list promotes a new main image.
type ImageList struct {
	urls []string
}

// NewImageList builds the combined list from a main image URL and the
// gallery. An empty main image yields a list of just the gallery.
func NewImageList(main string, gallery []string) ImageList {
	urls := make([]string, 0, len(gallery)+1)
	if main != "" {
		urls = append(urls, main)
	}
	urls = append(urls, gallery...)
	return ImageList{urls: urls}
}

// Len returns the number of images in the list.
func (l ImageList) Len() int {
	return len(l.urls)
}

// URLs returns a copy of the combined list.
func (l ImageList) URLs() []string {
	out := make([]string, len(l.urls))
	copy(out, l.urls)
	return out
}

// Main returns the current main image, or "" when the list is empty.
func (l ImageList) Main() string {
	if len(l.urls) == 0 {
		return ""
	}
	return l.urls[0]
}

// Gallery returns everything after the main image, in order. Never nil.
func (l ImageList) Gallery() []string {
	if len(l.urls) <= 1 {
		return []string{}
	}
	out := make([]string, len(l.urls)-1)
	copy(out, l.urls[1:])
	return out
}

// SetMain promotes the URL to index 0. A URL already in the list is moved;
// a new URL is inserted at the front.
func (l *ImageList) SetMain(url string) {
	if url == "" {
		return
	}
	for i, u := range l.urls {
		if u == url {
			l.urls = append(l.urls[:i], l.urls[i+1:]...)
			break
		}
	}
	l.urls = append([]string{url}, l.urls...)
}

// Add appends URLs to the end of the list (gallery tail). Duplicates of
// URLs already present are skipped.
func (l *ImageList) Add(urls ...string) {
	for _, url := range urls {
		if url == "" || l.contains(url) {
			continue
		}
		l.urls = append(l.urls, url)
	}
}

// Move relocates the image at index from to index to, shifting the rest.
// Moving an image to index 0 makes it the main image.
func (l *ImageList) Move(from, to int) error {
	if from < 0 || from >= len(l.urls) {
		return fmt.Errorf("move: source index %d out of range", from)
	}
	if to < 0 || to >= len(l.urls) {
		return fmt.Errorf("move: destination index %d out of range", to)
	}
	if from == to {
		return nil
	}
	url := l.urls[from]
	l.urls = append(l.urls[:from], l.urls[from+1:]...)
	rest := append([]string{url}, l.urls[to:]...)
	l.urls = append(l.urls[:to], rest...)
	return nil
}

// Remove deletes the image at the given index. Removing index 0 promotes
// the next image to main; removing the last image leaves an empty list.
func (l *ImageList) Remove(i int) error {
	if i < 0 || i >= len(l.urls) {
		return fmt.Errorf("remove: index %d out of range", i)
	}
	l.urls = append(l.urls[:i], l.urls[i+1:]...)
	return nil
}

func (l ImageList) contains(url string) bool {
	for _, u := range l.urls {
		if u == url {
			return true
		}
	}
	return false
}
