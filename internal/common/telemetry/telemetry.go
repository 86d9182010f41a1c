// File path: internal/common/telemetry/telemetry.go
package telemetry

import (
	"context"
	"expvar"
	"strings"
	"sync"
	"time"

	"github.com/nicodishanthj/affirmd/internal/common"
)

type spanKey struct{}

type span struct {
	name  string
	start time.Time
}

var (
	initOnce sync.Once

	affirmationsCreatedTotal *expvar.Int
	examplesSeededTotal      *expvar.Int
	reordersTotal            *expvar.Int

	practiceTotal        *expvar.Int
	fullCompletionsTotal *expvar.Int
	streakUpdatesTotal   *expvar.Int
	currentStreak        *expvar.Int

	storeOpsTotal     *expvar.Map
	storeLatencyMS    *expvar.Map
	httpResponseTotal *expvar.Map
)

func ensureInit() {
	initOnce.Do(func() {
		affirmationsCreatedTotal = expvar.NewInt("affirm_affirmations_created_total")
		examplesSeededTotal = expvar.NewInt("affirm_examples_seeded_total")
		reordersTotal = expvar.NewInt("affirm_reorders_total")

		practiceTotal = expvar.NewInt("affirm_practice_total")
		fullCompletionsTotal = expvar.NewInt("affirm_full_completions_total")
		streakUpdatesTotal = expvar.NewInt("affirm_streak_updates_total")
		currentStreak = expvar.NewInt("affirm_current_streak")

		storeOpsTotal = expvar.NewMap("affirm_store_ops_total")
		storeLatencyMS = expvar.NewMap("affirm_store_latency_ms")
		httpResponseTotal = expvar.NewMap("affirm_http_responses_total")
	})
}

// StartSpan marks the start of a named operation; the returned func logs its
// duration with any extra attributes.
func StartSpan(ctx context.Context, name string) (context.Context, func(attrs ...interface{})) {
	ensureInit()
	sp := &span{name: name, start: time.Now()}
	ctx = context.WithValue(ctx, spanKey{}, sp)
	logger := common.Logger()
	logger.Debug("trace: start", "span", name)
	return ctx, func(attrs ...interface{}) {
		duration := time.Since(sp.start)
		logger.Debug("trace: end", append([]interface{}{"span", name, "dur", duration}, attrs...)...)
	}
}

// SpanDuration reports how long the span carried by ctx has been running.
func SpanDuration(ctx context.Context) time.Duration {
	sp, _ := ctx.Value(spanKey{}).(*span)
	if sp == nil {
		return 0
	}
	return time.Since(sp.start)
}

func RecordAffirmationCreated(count int) {
	ensureInit()
	if count <= 0 {
		return
	}
	affirmationsCreatedTotal.Add(int64(count))
}

func RecordExamplesSeeded(count int) {
	ensureInit()
	if count <= 0 {
		return
	}
	examplesSeededTotal.Add(int64(count))
	affirmationsCreatedTotal.Add(int64(count))
}

func RecordReorder() {
	ensureInit()
	reordersTotal.Add(1)
}

func RecordPractice(fullyComplete bool) {
	ensureInit()
	practiceTotal.Add(1)
	if fullyComplete {
		fullCompletionsTotal.Add(1)
	}
}

func RecordStreakUpdate(current int) {
	ensureInit()
	streakUpdatesTotal.Add(1)
	currentStreak.Set(int64(current))
}

func RecordStoreOp(kind string, duration time.Duration) {
	ensureInit()
	key := normalizeKey(kind, "unknown")
	storeOpsTotal.Add(key, 1)
	if duration > 0 {
		storeLatencyMS.Add(key, duration.Milliseconds())
	}
}

func RecordHTTPResponse(status int) {
	ensureInit()
	var class string
	switch {
	case status >= 500:
		class = "5xx"
	case status >= 400:
		class = "4xx"
	case status >= 300:
		class = "3xx"
	default:
		class = "2xx"
	}
	httpResponseTotal.Add(class, 1)
}

func normalizeKey(kind, fallback string) string {
	key := strings.TrimSpace(strings.ToLower(kind))
	if key == "" {
		return fallback
	}
	return key
}
