package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// ReportJob queries the CRM aggregates and appends a one-line summary to
// the report log.
type ReportJob struct {
	Client *Client
	Log    *Sink
}

// Run fetches the aggregates and logs the report line.
func (j *ReportJob) Run(ctx context.Context) error {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	data, err := j.Client.Execute(ctx, `query {
	totalCustomers
	totalOrders
	totalRevenue
}`)
	if err != nil {
		return j.Log.Append(fmt.Sprintf("%s - Error: %v", timestamp, err))
	}

	var customers, orders int64
	var revenue float64
	if err := json.Unmarshal(data["totalCustomers"], &customers); err != nil {
		return j.Log.Append(fmt.Sprintf("%s - Error: malformed response: %v", timestamp, err))
	}
	if err := json.Unmarshal(data["totalOrders"], &orders); err != nil {
		return j.Log.Append(fmt.Sprintf("%s - Error: malformed response: %v", timestamp, err))
	}
	if err := json.Unmarshal(data["totalRevenue"], &revenue); err != nil {
		return j.Log.Append(fmt.Sprintf("%s - Error: malformed response: %v", timestamp, err))
	}

	return j.Log.Append(fmt.Sprintf("%s - Report: %d customers, %d orders, %.2f revenue", timestamp, customers, orders, revenue))
}
