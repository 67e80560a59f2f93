package transform

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evgetd/evgetd/internal/registry"
	"github.com/evgetd/evgetd/internal/source"
	"github.com/evgetd/evgetd/pkg/event"
)

func newMouseRegistry() *registry.DeviceRegistry {
	r := registry.NewDeviceRegistry()
	r.RefreshAll(registry.Snapshot{Devices: []registry.DeviceSnapshotEntry{
		{
			ID: 3, Name: "m", TypeAtom: "MOUSE", Enabled: true,
			Buttons: map[int]string{1: "Left", 4: "WheelUp"},
			ScrollAxes: []registry.ScrollAxis{
				{Number: 2, Orientation: registry.Vertical, Increment: 1, CurrentValue: 100.0},
			},
			Valuators: []registry.ValuatorAxis{
				{Number: 0, Label: "Abs X"},
				{Number: 1, Label: "Abs Y"},
			},
		},
	}})
	return r
}

func TestTransformButtonPressResolvesRegisteredButtonName(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	t0 := time.Now()

	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventButtonPress,
		DeviceID: 3, DetailCode: 1, Timestamp: t0,
		RootX: 12.5, RootY: 30.0,
	})

	require.Len(t, out, 1)
	click, ok := out[0].Primary.(event.MouseClick)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), click.Common().Interval)
	assert.Equal(t, event.DeviceMouse, click.Common().DeviceKind)
	assert.Equal(t, "m", click.Common().DeviceName)
	assert.Equal(t, 12.5, click.Common().PositionX)
	assert.Equal(t, 30.0, click.Common().PositionY)
	assert.Equal(t, event.ActionPress, click.Action)
	assert.Equal(t, 1, click.ButtonID)
	assert.Equal(t, "Left", click.ButtonName)
}

func TestTransformMotionPositionFromValuators(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventMotion,
		DeviceID: 3, Timestamp: time.Now(),
		RootX: 1.0, RootY: 2.0,
		Valuators: map[int]float64{0: 640.0, 1: 480.0},
	})

	require.Len(t, out, 1)
	move, ok := out[0].Primary.(event.MouseMove)
	require.True(t, ok)
	assert.Equal(t, 640.0, move.Common().PositionX)
	assert.Equal(t, 480.0, move.Common().PositionY)
}

func TestTransformMotionPositionFallsBackToRoot(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventMotion,
		DeviceID: 3, Timestamp: time.Now(),
		RootX: 55.0, RootY: 66.0,
		Valuators: map[int]float64{0: 640.0}, // only X changed
	})

	require.Len(t, out, 1)
	move := out[0].Primary.(event.MouseMove)
	assert.Equal(t, 640.0, move.Common().PositionX)
	assert.Equal(t, 66.0, move.Common().PositionY, "the unchanged axis keeps the root position")
}

func TestTransformWheelPseudoButtonSuppressed(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventButtonPress,
		DeviceID: 3, DetailCode: 4, Timestamp: time.Now(),
	})
	assert.Empty(t, out)
}

func TestTransformScrollDeltaAccumulatesIntoMouseScroll(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventMotion,
		DeviceID: 3, Timestamp: time.Now(),
		Valuators: map[int]float64{2: 105.0},
	})

	require.Len(t, out, 1)
	scroll, ok := out[0].Primary.(event.MouseScroll)
	require.True(t, ok)
	assert.Equal(t, 5.0, scroll.VerticalDelta)
}

func TestTransformScrollNegativeIncrementFlipsDirection(t *testing.T) {
	r := registry.NewDeviceRegistry()
	r.RefreshAll(registry.Snapshot{Devices: []registry.DeviceSnapshotEntry{
		{
			ID: 3, Name: "m", TypeAtom: "MOUSE",
			ScrollAxes: []registry.ScrollAxis{
				{Number: 2, Orientation: registry.Vertical, Increment: -1, CurrentValue: 100.0},
			},
		},
	}})
	tr := New(r, nil, nil)

	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventMotion,
		DeviceID: 3, Timestamp: time.Now(),
		Valuators: map[int]float64{2: 105.0},
	})

	require.Len(t, out, 1)
	scroll := out[0].Primary.(event.MouseScroll)
	assert.Equal(t, -5.0, scroll.VerticalDelta, "negative increment flips the sign but keeps the delta magnitude")
}

func TestTransformDeviceChangedSuppressesOutputAndRefreshesOnce(t *testing.T) {
	calls := 0
	provider := snapshotProviderFunc(func(ctx context.Context) (registry.Snapshot, error) {
		calls++
		return registry.Snapshot{}, nil
	})
	tr := New(registry.NewDeviceRegistry(), provider, nil)

	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventDeviceChanged, Timestamp: time.Now(),
	})
	assert.Empty(t, out)
	assert.Equal(t, 1, calls)
}

func TestTransformNoPayloadReturnsEmpty(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{HasPayload: false})
	assert.Empty(t, out)
}

func TestTransformPointerEmulatedIgnored(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventMotion, DeviceID: 3,
		PointerEmulated: true, Timestamp: time.Now(),
		Valuators: map[int]float64{0: 10.0},
	})
	assert.Empty(t, out)
}

func TestTransformUnknownDeviceIgnored(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventButtonPress, DeviceID: 999, Timestamp: time.Now(),
	})
	assert.Empty(t, out)
}

func TestTransformIntervalMonotonicNonDecreasing(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	base := time.Now()

	var prev time.Duration
	for i := 0; i < 5; i++ {
		out := tr.Transform(context.Background(), source.RawEvent{
			HasPayload: true, Type: source.EventButtonPress,
			DeviceID: 3, DetailCode: 1,
			Timestamp: base.Add(time.Duration(i) * time.Millisecond),
		})
		require.Len(t, out, 1)
		iv := out[0].Primary.Common().Interval
		assert.GreaterOrEqual(t, iv, prev)
		prev = iv
	}
}

func TestTransformModifiersAttached(t *testing.T) {
	tr := New(newMouseRegistry(), nil, nil)
	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventButtonPress,
		DeviceID: 3, DetailCode: 1, Timestamp: time.Now(),
		ModifierMask: 1<<0 | 1<<2, // Shift + Control
	})

	require.Len(t, out, 1)
	require.Len(t, out[0].Modifiers, 2)
	assert.Equal(t, event.ModShift, out[0].Modifiers[0].Value)
	assert.Equal(t, event.ModControl, out[0].Modifiers[1].Value)
}

func TestTransformTouchBeginEmitsMoveAndClick(t *testing.T) {
	r := registry.NewDeviceRegistry()
	r.RefreshAll(registry.Snapshot{Devices: []registry.DeviceSnapshotEntry{
		{ID: 7, Name: "screen", TypeAtom: "TOUCHSCREEN"},
	}})
	tr := New(r, nil, nil)

	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventTouchBegin, DeviceID: 7, Timestamp: time.Now(),
	})

	require.Len(t, out, 2)
	assert.Equal(t, event.KindMouseMove, out[0].Kind())
	assert.Equal(t, event.KindMouseClick, out[1].Kind())
	click := out[1].Primary.(event.MouseClick)
	assert.Equal(t, event.ActionPress, click.Action)
}

func TestScrollFirstReadingEmitsZeroDeltaNoEvent(t *testing.T) {
	r := registry.NewDeviceRegistry()
	r.RefreshAll(registry.Snapshot{Devices: []registry.DeviceSnapshotEntry{
		{
			ID: 1, Name: "d", TypeAtom: "MOUSE",
			ScrollAxes: []registry.ScrollAxis{{Number: 5, Orientation: registry.Horizontal, Increment: 1, CurrentValue: 42.0}},
		},
	}})
	tr := New(r, nil, nil)

	out := tr.Transform(context.Background(), source.RawEvent{
		HasPayload: true, Type: source.EventMotion, DeviceID: 1, Timestamp: time.Now(),
		Valuators: map[int]float64{5: 42.0},
	})
	assert.Empty(t, out, "a zero delta must not emit a MouseScroll")
}

type snapshotProviderFunc func(ctx context.Context) (registry.Snapshot, error)

func (f snapshotProviderFunc) ListDevices(ctx context.Context) (registry.Snapshot, error) {
	return f(ctx)
}
