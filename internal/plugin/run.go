package plugin

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/suykerbuyk/note-connections/internal/archive"
	"github.com/suykerbuyk/note-connections/internal/host"
	"github.com/suykerbuyk/note-connections/internal/prompt"
	"github.com/suykerbuyk/note-connections/internal/report"
	"github.com/suykerbuyk/note-connections/internal/sampler"
)

// RunResult holds the output of a run.
type RunResult struct {
	RunID   string
	Report  host.Document
	Notes   []host.Document
	Skipped bool
	Reason  string
}

// Run executes the analyze action once. Missing configuration and an empty
// vault are reported through a notice and a skipped result, not an error.
// Any other failure is reported through a notice and a log record and
// returned; nothing is retried.
func (p *Plugin) Run(ctx context.Context) (*RunResult, error) {
	apiKey := p.Settings().APIKey
	if apiKey == "" {
		p.host.Notice(MsgMissingKey)
		return &RunResult{Skipped: true, Reason: "no API key configured"}, nil
	}

	p.setState(Running)
	rec := archive.Record{ID: uuid.NewString(), StartedAt: p.now()}
	log := p.logger.With(zap.String("run_id", rec.ID))

	result, err := p.run(ctx, apiKey, &rec, log)
	rec.FinishedAt = p.now()

	if err != nil {
		p.setState(Failed)
		p.host.Notice(MsgFailed)
		log.Error("note analysis failed", zap.Error(err))
		rec.State = Failed.String()
		rec.Error = err.Error()
		p.record(rec, log)
		return nil, err
	}

	p.setState(Done)
	if !result.Skipped {
		rec.State = Done.String()
		p.record(rec, log)
	}
	result.RunID = rec.ID
	return result, nil
}

func (p *Plugin) run(ctx context.Context, apiKey string, rec *archive.Record, log *zap.Logger) (*RunResult, error) {
	docs, err := p.host.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	picked := sampler.Sample(docs, p.sampleSize, p.rng)
	if len(picked) == 0 {
		p.host.Notice(MsgNoNotes)
		return &RunResult{Skipped: true, Reason: "no notes found"}, nil
	}
	log.Debug("sampled notes", zap.Int("available", len(docs)), zap.Int("picked", len(picked)))

	bodies, err := p.readBodies(ctx, picked)
	if err != nil {
		return nil, err
	}

	text := prompt.Build(bodies)
	for _, d := range picked {
		rec.Notes = append(rec.Notes, d.Title)
	}
	rec.Prompt = text

	p.host.Notice(MsgAnalyzing)
	analysis, err := p.analyzer.Analyze(ctx, apiKey, text)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	rec.Analysis = analysis
	log.Debug("analysis received", zap.Int("chars", len(analysis)))

	doc, err := report.Write(ctx, p.host, picked, analysis, p.now())
	if err != nil {
		return nil, err
	}
	rec.ReportPath = doc.Path

	if p.openReport {
		if err := p.host.OpenDocument(ctx, doc); err != nil {
			log.Warn("could not open report", zap.String("path", doc.Path), zap.Error(err))
		}
	}

	p.host.Notice(MsgComplete)
	return &RunResult{Report: doc, Notes: picked}, nil
}

// readBodies reads all documents concurrently; bodies keep the order of docs.
func (p *Plugin) readBodies(ctx context.Context, docs []host.Document) ([]string, error) {
	bodies := make([]string, len(docs))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range docs {
		g.Go(func() error {
			body, err := p.host.ReadDocument(gctx, d)
			if err != nil {
				return fmt.Errorf("read note %s: %w", d.Path, err)
			}
			bodies[i] = body
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

func (p *Plugin) record(rec archive.Record, log *zap.Logger) {
	if p.recorder == nil {
		return
	}
	path, err := p.recorder.Save(rec)
	if err != nil {
		log.Warn("could not archive run record", zap.Error(err))
		return
	}
	log.Debug("run archived", zap.String("path", path))
}
