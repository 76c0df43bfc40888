package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// LowStockJob invokes the updateLowStockProducts mutation and appends a
// result summary to its log.
type LowStockJob struct {
	Client *Client
	Log    *Sink
}

type lowStockResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	UpdatedProducts []string `json:"updatedProducts"`
}

// Run executes the mutation once. Transport failures and malformed
// responses are written as a single error line.
func (j *LowStockJob) Run(ctx context.Context) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	data, err := j.Client.Execute(ctx, `mutation {
	updateLowStockProducts {
		success
		message
		updatedProducts
	}
}`)
	if err != nil {
		return j.Log.Append(fmt.Sprintf("[%s] Error: %v", timestamp, err))
	}

	var result lowStockResult
	if err := json.Unmarshal(data["updateLowStockProducts"], &result); err != nil {
		return j.Log.Append(fmt.Sprintf("[%s] Error: malformed response: %v", timestamp, err))
	}

	var entry strings.Builder
	fmt.Fprintf(&entry, "[%s] Low Stock Update:\n", timestamp)
	fmt.Fprintf(&entry, "Success: %t\n", result.Success)
	fmt.Fprintf(&entry, "Message: %s\n", result.Message)
	if len(result.UpdatedProducts) > 0 {
		entry.WriteString("Updated Products:\n")
		for _, product := range result.UpdatedProducts {
			fmt.Fprintf(&entry, "  %s\n", product)
		}
	} else {
		entry.WriteString("No products updated\n")
	}
	return j.Log.Append(entry.String())
}
