// Package cli contains shared output helpers for the command-line interface.
package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/VolleyLord/pexels/internal/photos"
)

// PrintPage writes a photo page as an aligned table.
func PrintPage(w io.Writer, result photos.PageResult) {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPHOTOGRAPHER\tSIZE\tLIKED\tALT")
	for _, p := range result.Photos {
		liked := ""
		if p.IsLiked() {
			liked = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%dx%d\t%s\t%s\n",
			p.ID, p.Photographer, p.Width, p.Height, liked, truncate(p.Alt, 50))
	}
	_ = tw.Flush()

	if result.HasNext() {
		fmt.Fprintf(w, "\nnext page: %d\n", *result.NextKey)
	}
}

// PrintPhoto writes the full detail view of one photo.
func PrintPhoto(w io.Writer, p photos.Photo) {
	fmt.Fprintf(w, "ID:           %d\n", p.ID)
	fmt.Fprintf(w, "Photographer: %s", p.Photographer)
	if p.PhotographerURL != "" {
		fmt.Fprintf(w, " (%s)", p.PhotographerURL)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Size:         %dx%d\n", p.Width, p.Height)
	fmt.Fprintf(w, "Avg color:    %s\n", photos.FormatAvgColor(p.AvgColor))
	fmt.Fprintf(w, "Page:         %s\n", p.URL)
	fmt.Fprintf(w, "Image:        %s\n", p.DetailImageURL())
	if p.Alt != "" {
		fmt.Fprintf(w, "Alt:          %s\n", p.Alt)
	}
	if p.Liked != nil {
		fmt.Fprintf(w, "Bookmarked:   %t\n", *p.Liked)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
