package workspace

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/urakawa"
	"github.com/aretw0/urakawa/pkg/adapters/memory"
	"github.com/aretw0/urakawa/pkg/core"
)

func TestManager_LockLifecycle(t *testing.T) {
	mgr := NewManager(urakawa.NewRepository(memory.NewStore()))
	ctx := context.Background()
	pr := core.NewProject()

	for i := 0; i < 1000; i++ {
		id := fmt.Sprintf("doc-%d", i)
		require.NoError(t, mgr.Save(ctx, id, pr))
		require.NoError(t, mgr.Delete(ctx, id))
	}

	assert.Empty(t, mgr.locks, "locks must be released once unused")
}

func TestManager_LockReleasedOnError(t *testing.T) {
	mgr := NewManager(urakawa.NewRepository(memory.NewStore()))

	_, err := mgr.Load(context.Background(), "missing")
	require.Error(t, err)
	assert.Empty(t, mgr.locks)
}
