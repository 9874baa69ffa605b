package simnet

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"talentflow-backend/apperrors"
)

func TestScriptedPolicy(t *testing.T) {
	t.Run(`consumes one script entry per operation`, func(t *testing.T) {
		p := NewScriptedPolicy(true, false, true)
		require.Equal(t, true, p.ShouldFail(Write))
		require.Equal(t, false, p.ShouldFail(Write))
		require.Equal(t, true, p.ShouldFail(Read))
	})

	t.Run(`succeeds past the end of the script`, func(t *testing.T) {
		p := NewScriptedPolicy(true)
		p.ShouldFail(Write)
		require.Equal(t, false, p.ShouldFail(Write))
		require.Equal(t, false, p.ShouldFail(Write))
	})
}

func TestDo(t *testing.T) {
	restore := Active
	t.Cleanup(func() { Active = restore })

	t.Run(`scripted failure surfaces as a status-coded error`, func(t *testing.T) {
		Active = NewScriptedPolicy(true)
		err := Do(context.Background(), Write, func() error {
			t.Fatal("operation must not run on a dropped call")
			return nil
		})
		require.NotNil(t, err)
		require.Equal(t, true, apperrors.IsSimulatedNetwork(err))
		require.Equal(t, 500, apperrors.StatusOf(err))
	})

	t.Run(`success runs the operation`, func(t *testing.T) {
		Active = NewScriptedPolicy(false)
		ran := false
		err := Do(context.Background(), Read, func() error {
			ran = true
			return nil
		})
		require.Nil(t, err)
		require.Equal(t, true, ran)
	})

	t.Run(`cancelled context aborts the delay`, func(t *testing.T) {
		Active = NewRandomPolicy(time.Hour, time.Hour, 0, 0)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := Do(ctx, Read, func() error { return nil })
		require.Equal(t, context.Canceled, err)
	})
}

func TestRandomPolicy(t *testing.T) {
	t.Run(`delay stays within bounds`, func(t *testing.T) {
		p := NewRandomPolicy(200*time.Millisecond, 1200*time.Millisecond, 0, 0)
		for i := 0; i < 100; i++ {
			d := p.Delay()
			require.GreaterOrEqual(t, d, 200*time.Millisecond)
			require.LessOrEqual(t, d, 1200*time.Millisecond)
		}
	})

	t.Run(`zero rates never fail`, func(t *testing.T) {
		p := NewRandomPolicy(0, 0, 0, 0)
		for i := 0; i < 100; i++ {
			require.Equal(t, false, p.ShouldFail(Write))
		}
	})

	t.Run(`full rate always fails`, func(t *testing.T) {
		p := NewRandomPolicy(0, 0, 1, 1)
		for i := 0; i < 100; i++ {
			require.Equal(t, true, p.ShouldFail(Read))
		}
	})
}
