// crmjobs runs the CRM scheduled jobs, either once (-once) or on the
// configured cron cadences. Each job talks to the GraphQL API over HTTP
// and appends its outcome to its own log file; jobs share no state.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"crm/internal/jobs"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

type namedJob struct {
	name string
	spec string
	run  func(context.Context) error
}

func main() {
	once := flag.String("once", "", "run the named jobs once and exit (comma-separated: heartbeat,lowstock,reminders,report or 'all')")
	flag.Parse()

	viper.SetDefault("GRAPHQL_URL", "http://localhost:8000/graphql")
	viper.SetDefault("HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt")
	viper.SetDefault("LOWSTOCK_LOG", "/tmp/low_stock_updates_log.txt")
	viper.SetDefault("REMINDERS_LOG", "/tmp/order_reminders_log.txt")
	viper.SetDefault("REPORT_LOG", "/tmp/crm_report_log.txt")
	viper.SetDefault("HEARTBEAT_CRON", "*/5 * * * *")
	viper.SetDefault("LOWSTOCK_CRON", "0 */12 * * *")
	viper.SetDefault("REMINDERS_CRON", "0 8 * * 1")
	viper.SetDefault("REPORT_CRON", "0 6 * * 1")
	viper.SetDefault("HEARTBEAT_RETRIES", 3)
	viper.AutomaticEnv()

	endpoint := viper.GetString("GRAPHQL_URL")

	client := jobs.NewClient(endpoint)

	// Only the heartbeat probe retries; the other jobs log a single
	// failure line and wait for their next invocation.
	heartbeatClient := jobs.NewClient(endpoint)
	heartbeatClient.Retries = viper.GetInt("HEARTBEAT_RETRIES")

	heartbeat := &jobs.HeartbeatJob{
		Client: heartbeatClient,
		Log:    jobs.NewSink(viper.GetString("HEARTBEAT_LOG")),
	}
	lowStock := &jobs.LowStockJob{
		Client: client,
		Log:    jobs.NewSink(viper.GetString("LOWSTOCK_LOG")),
	}
	reminders := &jobs.OrderReminderJob{
		Client: client,
		Log:    jobs.NewSink(viper.GetString("REMINDERS_LOG")),
	}
	report := &jobs.ReportJob{
		Client: client,
		Log:    jobs.NewSink(viper.GetString("REPORT_LOG")),
	}

	all := []namedJob{
		{"heartbeat", viper.GetString("HEARTBEAT_CRON"), heartbeat.Run},
		{"lowstock", viper.GetString("LOWSTOCK_CRON"), lowStock.Run},
		{"reminders", viper.GetString("REMINDERS_CRON"), reminders.Run},
		{"report", viper.GetString("REPORT_CRON"), report.Run},
	}

	if *once != "" {
		runOnce(all, *once)
		return
	}

	scheduler := cron.New()
	for _, job := range all {
		job := job
		if _, err := scheduler.AddFunc(job.spec, func() {
			if err := job.run(context.Background()); err != nil {
				log.Printf("Job %s failed: %v", job.name, err)
			}
		}); err != nil {
			log.Fatalf("Invalid cron spec for %s (%q): %v", job.name, job.spec, err)
		}
		log.Printf("Scheduled job %s (%s)", job.name, job.spec)
	}
	scheduler.Start()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stopping job scheduler...")
	<-scheduler.Stop().Done()
}

func runOnce(all []namedJob, names string) {
	wanted := map[string]bool{}
	for _, name := range strings.Split(names, ",") {
		wanted[strings.TrimSpace(name)] = true
	}
	for _, job := range all {
		if !wanted["all"] && !wanted[job.name] {
			continue
		}
		if err := job.run(context.Background()); err != nil {
			log.Printf("Job %s failed: %v", job.name, err)
		} else {
			log.Printf("Job %s done", job.name)
		}
	}
}
