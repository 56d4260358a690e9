package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBatch(t *testing.T, workers int, opts Options) *Batch {
	t.Helper()
	b := NewBatch(workers, opts, zerolog.Disabled)
	t.Cleanup(b.Close)
	return b
}

func TestBatch_IsolatesFailures(t *testing.T) {
	b := setupBatch(t, 3, Options{})

	jobs := []Job{
		{ID: "ok-1", Data: []byte(sampleDoc)},
		{ID: "malformed", Data: []byte(`{"keys":`)},
		{ID: "bad-digit", Data: []byte(`{"keys":{"n":1,"k":1},"1":{"base":"10","value":"g"}}`)},
		{ID: "ok-2", Data: []byte(`{"keys":{"n":2,"k":2},"1":{"base":"10","value":"4"},"3":{"base":"10","value":"12"}}`)},
		{ID: "suspect", Data: []byte(nonIntegerDoc)},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcomes, err := b.Run(ctx, jobs)
	require.NoError(t, err)
	require.Len(t, outcomes, len(jobs))

	for i, o := range outcomes {
		assert.Equal(t, i, o.Index)
		assert.Equal(t, jobs[i].ID, o.JobID)
		assert.NotZero(t, o.Worker)
	}

	require.NoError(t, outcomes[0].Err)
	assert.Equal(t, int64(3), outcomes[0].Solution.Secret.Int64())

	var malformed *MalformedInputError
	assert.ErrorAs(t, outcomes[1].Err, &malformed)
	assert.Nil(t, outcomes[1].Solution)

	var digitErr *InvalidDigitError
	assert.ErrorAs(t, outcomes[2].Err, &digitErr)

	require.NoError(t, outcomes[3].Err)
	assert.Equal(t, int64(0), outcomes[3].Solution.Secret.Int64())

	require.NoError(t, outcomes[4].Err)
	assert.False(t, outcomes[4].Solution.Exact())
}

func TestBatch_ManyJobs(t *testing.T) {
	b := setupBatch(t, 4, Options{})

	// y = 5x^2 + 2x + c for c = job index
	jobs := make([]Job, 200)
	for i := range jobs {
		c := int64(i)
		y := func(x int64) int64 { return 5*x*x + 2*x + c }
		doc := fmt.Sprintf(`{"keys":{"n":3,"k":3},"1":{"base":"10","value":"%d"},"2":{"base":"10","value":"%d"},"4":{"base":"10","value":"%d"}}`, y(1), y(2), y(4))
		jobs[i] = Job{ID: fmt.Sprintf("job-%d", i), Data: []byte(doc)}
	}

	outcomes, err := b.Run(context.Background(), jobs)
	require.NoError(t, err)

	workersSeen := make(map[int]bool)
	for i, o := range outcomes {
		require.NoError(t, o.Err, "job %d", i)
		assert.Equal(t, int64(i), o.Solution.Secret.Int64())
		workersSeen[o.Worker] = true
	}
	assert.Len(t, workersSeen, 4)
}

func TestBatch_Reusable(t *testing.T) {
	b := setupBatch(t, 2, Options{})

	for round := 0; round < 3; round++ {
		outcomes, err := b.Run(context.Background(), []Job{{ID: "sample", Data: []byte(sampleDoc)}})
		require.NoError(t, err)
		require.Len(t, outcomes, 1)
		assert.Equal(t, int64(3), outcomes[0].Solution.Secret.Int64())
	}
}

func TestBatch_StrictOption(t *testing.T) {
	b := setupBatch(t, 1, Options{Strict: true})

	outcomes, err := b.Run(context.Background(), []Job{{ID: "suspect", Data: []byte(nonIntegerDoc)}})
	require.NoError(t, err)

	var warning *NonIntegerResultWarning
	assert.ErrorAs(t, outcomes[0].Err, &warning)
}

func TestBatch_CanceledContext(t *testing.T) {
	b := setupBatch(t, 2, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := b.Run(ctx, []Job{{ID: "sample", Data: []byte(sampleDoc)}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBatch_Closed(t *testing.T) {
	b := NewBatch(1, Options{}, zerolog.Disabled)
	b.Close()
	b.Close()

	_, err := b.Run(context.Background(), []Job{{ID: "sample", Data: []byte(sampleDoc)}})
	assert.Error(t, err)
}

func TestSolverService_RecoversPanic(t *testing.T) {
	svc := NewSolverService(1, Options{}, zerolog.Disabled)
	// A nil solver panics inside Solve.
	svc.solver = nil

	collector := &collectContext{}
	svc.OnMessage(batchItem{index: 0, job: Job{ID: "boom", Data: []byte(sampleDoc)}}, collector)

	require.Len(t, collector.results, 1)
	assert.Error(t, collector.results[0].Err)
	assert.Contains(t, collector.results[0].Err.Error(), "panic")
	assert.Nil(t, collector.results[0].Solution)
}

type collectContext struct {
	results []Outcome
}

func (c *collectContext) SendResult(res Outcome) {
	c.results = append(c.results, res)
}
