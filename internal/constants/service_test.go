package constants_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwitczak/cabplanner/internal/constants"
	"github.com/mwitczak/cabplanner/internal/testdb"
	"github.com/mwitczak/cabplanner/pkg/enums"
	pkgerrors "github.com/mwitczak/cabplanner/pkg/errors"
)

func newService(t *testing.T) constants.Service {
	t.Helper()
	conn := testdb.Open(t)
	svc, err := constants.NewService(constants.NewRepository(conn))
	require.NoError(t, err)
	return svc
}

func TestSetCreatesAndGetReturns(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	group := "plyty"
	created, err := svc.Set(ctx, constants.SetInput{
		Key:   "board_thickness",
		Value: 18,
		Type:  enums.ConstantInt,
		Group: &group,
	})
	require.NoError(t, err)
	assert.Equal(t, "board_thickness", created.Key)

	loaded, err := svc.Get(ctx, "board_thickness")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.InDelta(t, 18.0, loaded.Value, 0.001)
	assert.Equal(t, enums.ConstantInt, loaded.ValueType)
}

func TestGetMissingReturnsNilNil(t *testing.T) {
	svc := newService(t)

	loaded, err := svc.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSetUpsertsInPlace(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	first, err := svc.Set(ctx, constants.SetInput{Key: "front_gap", Value: 3, Type: enums.ConstantInt})
	require.NoError(t, err)

	second, err := svc.Set(ctx, constants.SetInput{Key: "front_gap", Value: 2.5, Type: enums.ConstantFloat})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, 2.5, second.Value, 0.001)
	assert.Equal(t, enums.ConstantFloat, second.ValueType)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSetRejectsEmptyKey(t *testing.T) {
	svc := newService(t)

	_, err := svc.Set(context.Background(), constants.SetInput{Value: 1, Type: enums.ConstantInt})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestListFiltersByGroup(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	plyty, fronty := "plyty", "fronty"
	_, err := svc.Set(ctx, constants.SetInput{Key: "board_thickness", Value: 18, Type: enums.ConstantInt, Group: &plyty})
	require.NoError(t, err)
	_, err = svc.Set(ctx, constants.SetInput{Key: "front_gap", Value: 3, Type: enums.ConstantInt, Group: &fronty})
	require.NoError(t, err)

	rows, err := svc.List(ctx, "fronty")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "front_gap", rows[0].Key)
}

func TestSnapshotAccessors(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, constants.SetInput{Key: "board_thickness", Value: 16, Type: enums.ConstantInt})
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	assert.InDelta(t, 16.0, snapshot.Float("board_thickness", 18), 0.001)
	assert.Equal(t, 16, snapshot.Int("board_thickness", 18))
	assert.InDelta(t, 3.0, snapshot.Float("hdf_thickness", 3), 0.001)
	assert.Equal(t, 10, snapshot.Int("min_cut", 10))
}

func TestSnapshotIsAPointInTimeCopy(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	_, err := svc.Set(ctx, constants.SetInput{Key: "front_gap", Value: 3, Type: enums.ConstantInt})
	require.NoError(t, err)

	snapshot, err := svc.Snapshot(ctx)
	require.NoError(t, err)

	_, err = svc.Set(ctx, constants.SetInput{Key: "front_gap", Value: 4, Type: enums.ConstantInt})
	require.NoError(t, err)

	// The snapshot taken earlier keeps the old value; a fresh one sees the edit.
	assert.InDelta(t, 3.0, snapshot.Float("front_gap", 0), 0.001)

	fresh, err := svc.Snapshot(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, fresh.Float("front_gap", 0), 0.001)
}

func TestSeedDefaultsIsIdempotentAndKeepsEdits(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	require.NoError(t, svc.SeedDefaults(ctx))

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(constants.Defaults))

	_, err = svc.Set(ctx, constants.SetInput{Key: constants.KeyBoardThickness, Value: 16, Type: enums.ConstantInt})
	require.NoError(t, err)

	require.NoError(t, svc.SeedDefaults(ctx))

	edited, err := svc.Get(ctx, constants.KeyBoardThickness)
	require.NoError(t, err)
	assert.InDelta(t, 16.0, edited.Value, 0.001)

	all, err = svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, len(constants.Defaults))
}
