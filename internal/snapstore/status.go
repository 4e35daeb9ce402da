package snapstore

import (
	"fmt"
	"io"

	"github.com/sprintchart/burndown/schema"
)

// PrintStoreStatus prints store status information.
func PrintStoreStatus(w io.Writer, status schema.StoreStatus) {
	_, _ = fmt.Fprintf(w, "Store Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Location: %s\n", status.Location)
	_, _ = fmt.Fprintf(w, "Total Snapshots: %d\n", status.TotalEntries)
	if status.TotalEntries > 0 {
		_, _ = fmt.Fprintf(w, "First Snapshot: %s\n", status.FirstKey)
		_, _ = fmt.Fprintf(w, "Last Snapshot: %s\n", status.LastKey)
		_, _ = fmt.Fprintf(w, "Last Update: %s\n", status.LastUpdateTime.Format("2006-01-02 15:04:05"))
	}
	_, _ = fmt.Fprintf(w, "Size: %d bytes\n", status.SizeBytes)
}
