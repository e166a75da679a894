package dbmetrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExecutor struct {
	TxExecutor
	name string
}

func TestGetExecutor(t *testing.T) {
	db := &fakeExecutor{name: "db"}
	tx := &fakeExecutor{name: "tx"}

	ctx := context.Background()
	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))
}

func TestWithTx_Nil(t *testing.T) {
	ctx := WithTx(context.Background(), nil)
	assert.False(t, IsInTransaction(ctx))
}

func TestOperationOf(t *testing.T) {
	assert.Equal(t, "select", operationOf("SELECT id FROM bookings"))
	assert.Equal(t, "insert", operationOf("\n  INSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operationOf("   "))
}
