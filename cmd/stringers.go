package cmd

import (
	"bytes"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/irysname/irysname/registry"
)

// nowFunc anchors relative timestamps, replaced in tests
var nowFunc = time.Now

type recordStringer registry.Record

// String assumes Username & Owner are present
func (r recordStringer) String() string {
	w := &bytes.Buffer{}
	title := color.New(color.FgGreen, color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s\n", title(r.Username))
	fmt.Fprintf(w, "owner: %s\n", r.Owner)
	if r.Timestamp > 0 {
		fmt.Fprintf(w, "registered %s\n", humanize.RelTime(time.UnixMilli(r.Timestamp), nowFunc(), "ago", "from now"))
	}
	if r.ID != "" {
		fmt.Fprintf(w, "%s\n", faint(r.ID))
	}
	fmt.Fprintln(w, "")
	return w.String()
}
