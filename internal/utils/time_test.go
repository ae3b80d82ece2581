package util_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	util "github.com/saulo-duarte/quizsolver/internal/utils"
	"github.com/stretchr/testify/assert"
)

type fixedSource int

func (f fixedSource) Intn(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func TestRandomDuration(t *testing.T) {
	t.Run("Bounds", func(t *testing.T) {
		assert.Equal(t, 60*time.Second, util.RandomDuration(fixedSource(0), 60*time.Second, 180*time.Second))
		assert.Equal(t, 180*time.Second, util.RandomDuration(fixedSource(1<<30), 60*time.Second, 180*time.Second))
	})

	t.Run("WithinRange", func(t *testing.T) {
		rng := rand.New(rand.NewSource(1))
		for i := 0; i < 200; i++ {
			d := util.RandomDuration(rng, 5*time.Second, 15*time.Second)
			assert.GreaterOrEqual(t, d, 5*time.Second)
			assert.LessOrEqual(t, d, 15*time.Second)
		}
	})

	t.Run("EmptyRange", func(t *testing.T) {
		assert.Equal(t, time.Second, util.RandomDuration(fixedSource(3), time.Second, time.Second))
	})
}

func TestSleep(t *testing.T) {
	assert.NoError(t, util.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, util.Sleep(ctx, time.Hour), context.Canceled)
}
