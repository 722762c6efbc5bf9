package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

// maxPlaceholderDimension bounds generated placeholder images
const maxPlaceholderDimension = 2000

// Placeholder handles GET /api/placeholder/{width}/{height}.
// It renders a flat grey SVG labelled with its size, standing in for game artwork.
func Placeholder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	width, err := parseDimension(vars["width"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("width must be between 1 and 2000"))
		return
	}
	height, err := parseDimension(vars["height"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("height must be between 1 and 2000"))
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, placeholderSVG, width, height, width, height, width, height)
}

const placeholderSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">` +
	`<rect width="100%%" height="100%%" fill="#cccccc"/>` +
	`<text x="50%%" y="50%%" dominant-baseline="middle" text-anchor="middle" font-family="sans-serif" font-size="20" fill="#666666">%d&#215;%d</text>` +
	`</svg>`

func parseDimension(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > maxPlaceholderDimension {
		return 0, fmt.Errorf("dimension %d out of range", n)
	}
	return n, nil
}
