package preview

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minet/internal/credential"
	domainerrors "minet/pkg/domain-errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestStore(t *testing.T) {
	t.Run("create then get round trips", func(t *testing.T) {
		s := NewStore()
		created := s.Create(credential.Data{FullName: "Ada Lovelace"})
		require.NotEmpty(t, created.ID)
		assert.Equal(t, uint64(1), created.Version)

		got, err := s.Get(created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.Data.FullName)
		assert.True(t, got.Pending())
	})

	t.Run("update bumps version", func(t *testing.T) {
		s := NewStore()
		d := s.Create(credential.Data{FullName: "Ada"})

		updated, err := s.Update(d.ID, credential.Data{FullName: "Ada Lovelace"})
		require.NoError(t, err)
		assert.Equal(t, uint64(2), updated.Version)
		assert.Equal(t, "Ada Lovelace", updated.Data.FullName)
	})

	t.Run("unknown draft yields not found", func(t *testing.T) {
		s := NewStore()
		_, err := s.Get("missing")
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeNotFound))

		_, err = s.Update("missing", credential.Data{})
		assert.True(t, domainerrors.HasCode(err, domainerrors.CodeNotFound))
	})

	t.Run("stale preview loses to a newer one", func(t *testing.T) {
		s := NewStore()
		d := s.Create(credential.Data{FullName: "Ada"})
		d, err := s.Update(d.ID, credential.Data{FullName: "Ada L"})
		require.NoError(t, err)

		require.True(t, s.SetPreview(d.ID, "new", d.Version))
		assert.False(t, s.SetPreview(d.ID, "old", d.Version-1))

		got, err := s.Get(d.ID)
		require.NoError(t, err)
		assert.Equal(t, "new", got.Preview)
		assert.False(t, got.Pending())
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		s := NewStore()
		d := s.Create(credential.Data{})
		s.Delete(d.ID)
		s.Delete(d.ID)
		_, err := s.Get(d.ID)
		assert.Error(t, err)
	})
}

func TestScheduler(t *testing.T) {
	t.Run("renders once after the quiet period", func(t *testing.T) {
		store := NewStore()
		var renders atomic.Int32
		sched := NewScheduler(store, func(_ context.Context, data credential.Data) (string, error) {
			renders.Add(1)
			return "preview:" + data.FullName, nil
		}, 20*time.Millisecond, testLogger())
		defer sched.Close()

		d := store.Create(credential.Data{FullName: "Ada"})
		sched.Schedule(d.ID)

		require.Eventually(t, func() bool {
			got, err := store.Get(d.ID)
			return err == nil && got.Preview == "preview:Ada"
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(1), renders.Load())
	})

	t.Run("rapid edits collapse into one render", func(t *testing.T) {
		store := NewStore()
		var renders atomic.Int32
		sched := NewScheduler(store, func(_ context.Context, data credential.Data) (string, error) {
			renders.Add(1)
			return "preview:" + data.FullName, nil
		}, 50*time.Millisecond, testLogger())
		defer sched.Close()

		d := store.Create(credential.Data{FullName: "A"})
		for _, name := range []string{"Ad", "Ada", "Ada L", "Ada Lovelace"} {
			_, err := store.Update(d.ID, credential.Data{FullName: name})
			require.NoError(t, err)
			sched.Schedule(d.ID)
			time.Sleep(5 * time.Millisecond)
		}

		require.Eventually(t, func() bool {
			got, err := store.Get(d.ID)
			return err == nil && got.Preview == "preview:Ada Lovelace"
		}, time.Second, 5*time.Millisecond)
		assert.Equal(t, int32(1), renders.Load())
	})

	t.Run("cancel drops the queued render", func(t *testing.T) {
		store := NewStore()
		var renders atomic.Int32
		sched := NewScheduler(store, func(_ context.Context, _ credential.Data) (string, error) {
			renders.Add(1)
			return "preview", nil
		}, 20*time.Millisecond, testLogger())
		defer sched.Close()

		d := store.Create(credential.Data{})
		sched.Schedule(d.ID)
		sched.Cancel(d.ID)

		time.Sleep(60 * time.Millisecond)
		assert.Equal(t, int32(0), renders.Load())
	})

	t.Run("render failure leaves draft pending", func(t *testing.T) {
		store := NewStore()
		sched := NewScheduler(store, func(_ context.Context, _ credential.Data) (string, error) {
			return "", fmt.Errorf("render exploded")
		}, 10*time.Millisecond, testLogger())
		defer sched.Close()

		d := store.Create(credential.Data{})
		sched.Schedule(d.ID)

		time.Sleep(50 * time.Millisecond)
		got, err := store.Get(d.ID)
		require.NoError(t, err)
		assert.True(t, got.Pending())
		assert.Empty(t, got.Preview)
	})
}
