package main

import (
	"bufio"
	"fmt"
	"net/http"
	"time"

	"github.com/viewstream-dev/viewstream/pkg/contenttype"
	"github.com/viewstream-dev/viewstream/pkg/export"
)

// Demo views shared by the serve and export commands.

func homeView(w *bufio.Writer, _ *http.Request) error {
	if _, err := w.WriteString("<!DOCTYPE html>\n<html><head><title>viewstream</title></head><body>\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "<h1>viewstream demo</h1>\n<p>rendered at %s</p>\n", time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}
	_, err := w.WriteString("</body></html>\n")
	return err
}

func statusView(w *bufio.Writer, _ *http.Request) error {
	_, err := fmt.Fprintf(w, `{"status":"ok","time":%q}`, time.Now().UTC().Format(time.RFC3339))
	return err
}

// exportPages returns the demo pages the export command publishes.
func exportPages() []export.Page {
	jsonType := contenttype.New(contenttype.ApplicationJSON)

	return []export.Page{
		{
			Key: "index.html",
			View: func(w *bufio.Writer) error {
				return homeView(w, nil)
			},
		},
		{
			Key:         "status.json",
			ContentType: &jsonType,
			View: func(w *bufio.Writer) error {
				return statusView(w, nil)
			},
		},
	}
}
