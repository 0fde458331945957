package export

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/shrimpsizemoose/trekker/logger"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/shrimpsizemoose/pluggbulle/internal/app"
	"github.com/shrimpsizemoose/pluggbulle/internal/scoring"
)

type valueWriter interface {
	Write(ctx context.Context, sheetID, writeRange string, values [][]interface{}) error
}

type sheetsWriter struct {
	svc *sheets.Service
}

func (w *sheetsWriter) Write(ctx context.Context, sheetID, writeRange string, values [][]interface{}) error {
	_, err := w.svc.Spreadsheets.Values.Update(sheetID, writeRange, &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	return err
}

type GSheetExporter struct {
	service   *app.Service
	scheduler *gocron.Scheduler
	writers   map[string]valueWriter
}

func NewGSheetExporter(service *app.Service) (*GSheetExporter, error) {
	ctx := context.Background()
	loc, err := service.Config.Location()
	if err != nil {
		return nil, err
	}

	e := &GSheetExporter{
		service:   service,
		scheduler: gocron.NewScheduler(loc),
		writers:   make(map[string]valueWriter),
	}

	for name, cfg := range service.Config.GSheet {
		svc, err := sheets.NewService(ctx, option.WithCredentialsFile(cfg.CredentialsPath))
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service for %s: %w", name, err)
		}
		e.writers[name] = &sheetsWriter{svc: svc}

		name, cfg := name, cfg
		_, err = e.scheduler.Cron(cfg.Schedule).Do(func() {
			if err := e.Export(context.Background(), name, cfg); err != nil {
				logger.Error.Printf("Export %s failed: %v", name, err)
			}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to schedule export %s: %w", name, err)
		}
		logger.Info.Printf("Scheduled export %s to sheet %s with %q", name, cfg.SheetID, cfg.Schedule)
	}

	e.scheduler.StartAsync()
	return e, nil
}

func (e *GSheetExporter) Stop() {
	e.scheduler.Stop()
}

var reportHeader = []interface{}{
	"student", "score", "label", "overall risk",
	"tasks completed", "tasks overdue", "hours this week", "hours trend",
}

func reportRow(d scoring.Dashboard) []interface{} {
	return []interface{}{
		d.Student,
		d.Score.Total,
		d.Score.Label,
		string(d.Risk.Overall),
		d.Tasks.Completed,
		d.Tasks.Overdue,
		d.Weekly.Current.HoursAttended,
		string(d.Weekly.Delta.HoursAttended.Trend),
	}
}

func (e *GSheetExporter) students(cfg app.GSheetConfig) ([]string, error) {
	if len(cfg.Students) > 0 {
		return cfg.Students, nil
	}
	return e.service.Store.ListStudents()
}

// Export writes the report table anchored at the header range, then stamps
// the update time.
func (e *GSheetExporter) Export(ctx context.Context, name string, cfg app.GSheetConfig) error {
	writer, ok := e.writers[name]
	if !ok {
		return fmt.Errorf("no sheet writer for %s", name)
	}

	students, err := e.students(cfg)
	if err != nil {
		return fmt.Errorf("failed to list students: %w", err)
	}

	rows := [][]interface{}{reportHeader}
	for _, student := range students {
		d, err := e.service.Dashboard(ctx, student)
		if err != nil {
			logger.Error.Printf("Skipping %s in export %s: %v", student, name, err)
			continue
		}
		rows = append(rows, reportRow(d))
	}

	tableRange := fmt.Sprintf("%s!%s", cfg.SheetName, cfg.HeaderRange)
	if err := writer.Write(ctx, cfg.SheetID, tableRange, rows); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	if cfg.TimestampRange == "" {
		return nil
	}
	stampRange := fmt.Sprintf("%s!%s", cfg.SheetName, cfg.TimestampRange)
	stamp := timestamp(e.service.Now(), e.service.Config.EmojiVariants)
	if err := writer.Write(ctx, cfg.SheetID, stampRange, [][]interface{}{{stamp}}); err != nil {
		return fmt.Errorf("failed to write timestamp: %w", err)
	}

	logger.Info.Printf("Exported %d students to %s", len(rows)-1, name)
	return nil
}

func timestamp(now time.Time, emojis []string) string {
	text := fmt.Sprintf("UPD: %s", now.Format("2 January 15:04"))
	if len(emojis) > 0 {
		text += " " + emojis[rand.Intn(len(emojis))]
	}
	return text
}
