package weni

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/convtrace/convtrace/internal/analyzer"
)

// RunnerConfig configures an analysis run.
type RunnerConfig struct {
	StartDate string // DD-MM-YYYY
	EndDate   string // DD-MM-YYYY
	Verbose   bool
}

// TraceSink receives every raw trace before aggregation, e.g. to persist a
// capture for offline replay. A nil sink is valid.
type TraceSink func(raw map[string]any) error

// RunStats summarizes what one analysis run touched.
type RunStats struct {
	Conversations int
	AgentMessages int
	Traces        int
	FetchErrors   int
	StartTime     time.Time
	EndTime       time.Time
}

// Runner drives the fetch-and-aggregate pipeline: conversations, then the
// agent messages of each conversation, then the traces of each message.
// Processing is strictly sequential; the aggregates are mutated by this
// single loop only.
type Runner struct {
	client *Client
	config *RunnerConfig
	logger zerolog.Logger
}

// NewRunner creates a runner over an authenticated client.
func NewRunner(client *Client, config *RunnerConfig, logger zerolog.Logger) *Runner {
	return &Runner{
		client: client,
		config: config,
		logger: logger,
	}
}

// Run fetches every trace in the configured date range and feeds it through
// the aggregates. Failures fetching a single conversation or message are
// logged and skipped; the run keeps going.
func (r *Runner) Run(ctx context.Context, agg *analyzer.Aggregates, sink TraceSink) (*RunStats, error) {
	stats := &RunStats{StartTime: time.Now()}

	conversations, err := r.client.Conversations(ctx, r.config.StartDate, r.config.EndDate)
	if err != nil {
		// A partial conversation listing is still reportable.
		if len(conversations) == 0 {
			return stats, fmt.Errorf("failed to list conversations: %w", err)
		}
		r.logger.Warn().Err(err).Msg("conversation listing incomplete, analyzing partial results")
		stats.FetchErrors++
	}
	stats.Conversations = len(conversations)

	for i, conv := range conversations {
		if err := ctx.Err(); err != nil {
			stats.EndTime = time.Now()
			return stats, err
		}

		r.logger.Info().
			Int("index", i+1).
			Int("total", len(conversations)).
			Int64("conversation_id", conv.ID).
			Msg("processing conversation")

		messages, err := r.client.Messages(ctx, conv.URN, conv.CreatedOn)
		if err != nil {
			r.logger.Warn().Err(err).Int64("conversation_id", conv.ID).Msg("skipping conversation")
			stats.FetchErrors++
			continue
		}

		for _, msg := range messages {
			if !msg.IsAgent() {
				continue
			}
			stats.AgentMessages++

			traces, err := r.client.Traces(ctx, msg.ID)
			if err != nil {
				r.logger.Warn().Err(err).Int64("message_id", msg.ID).Msg("skipping message traces")
				stats.FetchErrors++
				continue
			}

			for _, raw := range traces {
				if sink != nil {
					if err := sink(raw); err != nil {
						return stats, fmt.Errorf("trace sink failed: %w", err)
					}
				}
				agg.Observe(raw)
				stats.Traces++
			}
		}
	}

	stats.EndTime = time.Now()
	r.logger.Info().
		Int("conversations", stats.Conversations).
		Int("agent_messages", stats.AgentMessages).
		Int("traces", stats.Traces).
		Int("fetch_errors", stats.FetchErrors).
		Dur("elapsed", stats.EndTime.Sub(stats.StartTime)).
		Msg("analysis complete")

	return stats, nil
}
