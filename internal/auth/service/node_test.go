package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNodes(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &NodeService{Store: st}

	t.Run("create and get", func(t *testing.T) {
		_, err := svc.Create(ctx, "landing.hero", "Welcome")
		require.NoError(t, err)

		node, err := svc.Get(ctx, "landing.hero")
		require.NoError(t, err)
		require.Equal(t, "Welcome", node.DefaultText)

		_, err = svc.Create(ctx, "landing.hero", "again")
		require.ErrorIs(t, err, ErrNodeExists)
	})

	t.Run("update text", func(t *testing.T) {
		require.NoError(t, svc.UpdateText(ctx, "landing.hero", "G'day"))

		node, err := svc.Get(ctx, "landing.hero")
		require.NoError(t, err)
		require.Equal(t, "G'day", node.DefaultText)

		require.ErrorIs(t, svc.UpdateText(ctx, "missing", "x"), ErrNodeNotFound)
	})

	t.Run("delete and list", func(t *testing.T) {
		_, err := svc.Create(ctx, "landing.footer", "")
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, "landing.footer"))
		require.ErrorIs(t, svc.Delete(ctx, "landing.footer"), ErrNodeNotFound)

		nodes, err := svc.List(ctx)
		require.NoError(t, err)
		require.Len(t, nodes, 1)
		require.Equal(t, "landing.hero", nodes[0].ID)
	})
}
