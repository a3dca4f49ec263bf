package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ludo-technologies/polyscan/domain"
	"github.com/ludo-technologies/polyscan/internal/logging"
)

// stubFileAnalyzer echoes the path back and tracks concurrency
type stubFileAnalyzer struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	calls       atomic.Int32
	delay       time.Duration
	onAnalyze   func(path string)
}

func (s *stubFileAnalyzer) AnalyzeFile(_ context.Context, path string, content string) domain.AnalysisResult {
	s.calls.Add(1)
	n := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		cur := s.maxInFlight.Load()
		if n <= cur || s.maxInFlight.CompareAndSwap(cur, n) {
			break
		}
	}
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.onAnalyze != nil {
		s.onAnalyze(path)
	}
	return domain.NewSuccessResult(path, domain.LanguageText, domain.NewStructure(), domain.Metrics{LineCount: len(content)}, content)
}

// recordingProgress records every progress call
type recordingProgress struct {
	mu           sync.Mutex
	started      []string
	totals       []int
	increments   []int
	descriptions []string
	completed    int
}

func (r *recordingProgress) StartTask(description string, total int) domain.TaskProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = append(r.started, description)
	r.totals = append(r.totals, total)
	return &recordingTask{r: r}
}

func (r *recordingProgress) IsInteractive() bool { return false }

func (r *recordingProgress) Close() {}

type recordingTask struct {
	r *recordingProgress
}

func (t *recordingTask) Increment(n int) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	t.r.increments = append(t.r.increments, n)
}

func (t *recordingTask) Describe(description string) {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	t.r.descriptions = append(t.r.descriptions, description)
}

func (t *recordingTask) Complete() {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	t.r.completed++
}

func makeInputs(n int) []domain.FileInput {
	files := make([]domain.FileInput, n)
	for i := range files {
		files[i] = domain.FileInput{
			Path:    fmt.Sprintf("src/file-%02d.txt", i),
			Content: strings.Repeat("x", i),
		}
	}
	return files
}

func TestBatchAnalyzer_PreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	stub := &stubFileAnalyzer{delay: time.Millisecond}
	b := NewBatchAnalyzer(stub, 10, nil, logging.Discard())

	files := makeInputs(25)
	results := b.AnalyzeFiles(context.Background(), files)

	require.Len(t, results, 25)
	for i, r := range results {
		assert.Equal(t, files[i].Path, r.Path)
		assert.Equal(t, i, r.Metrics.LineCount)
	}
	assert.Equal(t, int32(25), stub.calls.Load())
	assert.LessOrEqual(t, stub.maxInFlight.Load(), int32(10))
}

func TestBatchAnalyzer_Progress(t *testing.T) {
	defer goleak.VerifyNone(t)

	progress := &recordingProgress{}
	b := NewBatchAnalyzer(&stubFileAnalyzer{}, 10, progress, logging.Discard())

	b.AnalyzeFiles(context.Background(), makeInputs(25))

	assert.Equal(t, []string{"Analyzing files"}, progress.started)
	assert.Equal(t, []int{25}, progress.totals)
	assert.Equal(t, []int{10, 10, 5}, progress.increments)
	assert.Equal(t, []string{
		"10 of 25 files analyzed",
		"20 of 25 files analyzed",
		"25 of 25 files analyzed",
	}, progress.descriptions)
	assert.Equal(t, 1, progress.completed)
}

func TestBatchAnalyzer_BatchSizeBoundsConcurrency(t *testing.T) {
	defer goleak.VerifyNone(t)

	stub := &stubFileAnalyzer{delay: 2 * time.Millisecond}
	b := NewBatchAnalyzer(stub, 3, nil, logging.Discard())

	results := b.AnalyzeFiles(context.Background(), makeInputs(10))

	assert.Len(t, results, 10)
	assert.LessOrEqual(t, stub.maxInFlight.Load(), int32(3))
}

func TestBatchAnalyzer_EmptyInput(t *testing.T) {
	progress := &recordingProgress{}
	b := NewBatchAnalyzer(&stubFileAnalyzer{}, 10, progress, logging.Discard())

	results := b.AnalyzeFiles(context.Background(), nil)

	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, progress.started)
}

func TestBatchAnalyzer_DefaultBatchSize(t *testing.T) {
	b := NewBatchAnalyzer(&stubFileAnalyzer{}, 0, nil, nil)
	assert.Equal(t, 10, b.batchSize)
}

func TestBatchAnalyzer_CancelledBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	stub := &stubFileAnalyzer{}
	b := NewBatchAnalyzer(stub, 10, nil, logging.Discard())

	files := makeInputs(5)
	results := b.AnalyzeFiles(ctx, files)

	require.Len(t, results, 5)
	assert.Equal(t, int32(0), stub.calls.Load())
	for i, r := range results {
		assert.False(t, r.Success)
		assert.Equal(t, files[i].Path, r.Path)
		assert.Contains(t, r.ErrorMessage(), "analysis cancelled")
	}
}

func TestBatchAnalyzer_CancelledBetweenBatches(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stub := &stubFileAnalyzer{onAnalyze: func(path string) {
		if path == "src/file-00.txt" {
			cancel()
		}
	}}
	b := NewBatchAnalyzer(stub, 10, nil, logging.Discard())

	results := b.AnalyzeFiles(ctx, makeInputs(25))

	require.Len(t, results, 25)
	for i := 0; i < 10; i++ {
		assert.True(t, results[i].Success, "first batch completes")
	}
	for i := 10; i < 25; i++ {
		assert.False(t, results[i].Success)
		assert.Contains(t, results[i].ErrorMessage(), context.Canceled.Error())
	}
	assert.Equal(t, int32(10), stub.calls.Load())
}
