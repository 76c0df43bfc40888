package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// HeartbeatJob appends an "alive" line to the heartbeat log and, when a
// client is configured, probes the GraphQL endpoint with a trivial query.
type HeartbeatJob struct {
	Client *Client
	Log    *Sink
}

// Run executes one heartbeat. The probe outcome is logged either way; only
// sink failures are returned.
func (j *HeartbeatJob) Run(ctx context.Context) error {
	timestamp := time.Now().Format("02/01/2006-15:04:05")

	if err := j.Log.Append(fmt.Sprintf("%s CRM is alive", timestamp)); err != nil {
		return err
	}

	if j.Client == nil {
		return nil
	}

	data, err := j.Client.Execute(ctx, `query { hello }`)
	if err != nil {
		return j.Log.Append(fmt.Sprintf("%s GraphQL endpoint check failed: %v", timestamp, err))
	}

	var hello string
	if raw, ok := data["hello"]; ok {
		// A decode failure leaves hello empty, which is still a response.
		_ = json.Unmarshal(raw, &hello)
	}
	return j.Log.Append(fmt.Sprintf("%s GraphQL endpoint is responsive: %s", timestamp, hello))
}
