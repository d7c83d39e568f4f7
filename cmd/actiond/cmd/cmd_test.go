package cmd

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/action"
	"github.com/bjaus/action/commands"
	"github.com/bjaus/action/internal/config"
)

func TestParseCLIArgs(t *testing.T) {
	args := parseCLIArgs([]string{"wxid_abc", "42", "1.5", "true", "null", `{"a":1}`, "hello there", `"quoted"`})

	require.Equal(t, 8, args.Len())
	assert.Equal(t, action.String("wxid_abc"), args.At(0))
	assert.Equal(t, action.Int(42), args.At(1))
	assert.Equal(t, action.Float(1.5), args.At(2))
	assert.Equal(t, action.Bool(true), args.At(3))
	assert.True(t, args.At(4).IsNull())
	assert.Equal(t, action.KindJSON, args.At(5).Kind())
	assert.Equal(t, action.String("hello there"), args.At(6))
	assert.Equal(t, action.String("quoted"), args.At(7))
}

func TestNewRegistry(t *testing.T) {
	promReg := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r, err := newRegistry(config.Default(), logger, promReg)
	require.NoError(t, err)

	assert.Len(t, r.Keys(), len(commands.All()))
	assert.ErrorIs(t, r.Register(commands.AddFriend()), action.ErrSealed)

	res := r.Dispatch(context.Background(), commands.KeySnsLikeCancel, "r1", action.String("sns-1"))
	require.NotNil(t, res)
	assert.True(t, res.Succeeded())

	res = r.Dispatch(context.Background(), commands.KeySnsLikeCancel, "r2")
	require.NotNil(t, res)
	assert.Equal(t, commands.MsgNoSnsID, res.Message())

	count, err := testutil.GatherAndCount(promReg, "action_dispatch_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewRegistry_WithBreaker(t *testing.T) {
	cfg := config.Default()
	cfg.Breaker.Enabled = true
	cfg.Breaker.MaxFailures = 1

	r, err := newRegistry(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)), prometheus.NewRegistry())
	require.NoError(t, err)

	res := r.Dispatch(context.Background(), commands.KeyUnlockScreen, "r1")
	require.NotNil(t, res)
	assert.True(t, res.Succeeded())
}

func TestKeysCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"keys"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, Execute())

	text := out.String()
	assert.Contains(t, text, "KEY")
	for _, c := range commands.All() {
		assert.Contains(t, text, c.Key())
		assert.Contains(t, text, c.Invoker().String())
	}
}

func TestSendRequiresKey(t *testing.T) {
	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"send"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	assert.Error(t, Execute())
}
